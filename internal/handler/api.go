package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chetan-code/planner/internal/models"
	"github.com/chetan-code/planner/internal/service"
)

// APIHandler is the JSON adapter over the domain service.
type APIHandler struct {
	svc *service.Service
}

func NewAPIHandler(svc *service.Service) *APIHandler {
	return &APIHandler{svc: svc}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userDetail struct {
	models.User
	Tasks   []models.Task    `json:"tasks"`
	History []models.History `json:"history"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeDomainError maps service failures onto the HTTP taxonomy:
// bad credentials 401, duplicate email 400, missing/unowned task 404.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, "Неверный логин или пароль.")
	case errors.Is(err, service.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "Введенный email уже зарегистрирован.")
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Задача не найдена.")
	default:
		slog.Error("request_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}

// Unauthorized rejects unauthenticated API calls.
func (h *APIHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusUnauthorized, "Неавторизованный")
}

// Token handles POST /token: form-encoded credentials in, bearer token out.
func (h *APIHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректная форма запроса.")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.svc.Authenticate(r.Context(), email, password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// CreateUser handles POST /users/.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Age      int    `json:"age"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректный JSON.")
		return
	}
	if in.Name == "" || in.Password == "" || !strings.Contains(in.Email, "@") {
		writeDetail(w, http.StatusBadRequest, "Укажите имя, корректный email и пароль.")
		return
	}

	user, err := h.svc.Register(r.Context(), in.Name, in.Email, in.Age, in.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Me handles GET /users/me: profile plus normalized tasks plus history.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	if _, err := h.svc.NormalizeDueDates(r.Context(), user); err != nil {
		writeDomainError(w, err)
		return
	}
	tasks, err := h.svc.ListTasks(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	history, err := h.svc.ListHistory(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userDetail{User: *user, Tasks: tasks, History: history})
}

// CreateTask handles POST /tasks/.
func (h *APIHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	var in struct {
		Title   string       `json:"title"`
		DueDate *models.Date `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректный JSON.")
		return
	}
	if in.Title == "" {
		writeDetail(w, http.StatusBadRequest, "Укажите название задачи.")
		return
	}

	task, err := h.svc.CreateTask(r.Context(), user, in.Title, in.DueDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ListTasks handles GET /tasks/: rollover normalization, then the list.
func (h *APIHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	if _, err := h.svc.NormalizeDueDates(r.Context(), user); err != nil {
		writeDomainError(w, err)
		return
	}
	tasks, err := h.svc.ListTasks(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// TasksByDate handles GET /tasks/{date} for the authenticated user.
func (h *APIHandler) TasksByDate(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	day, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректная дата.")
		return
	}
	tasks, err := h.svc.ListTasksForDay(r.Context(), user.ID, day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTask handles PATCH /tasks/{id}/complete?completed=bool. It
// writes the completion flag only and never touches the due date.
func (h *APIHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, false)
}

// UpdateTask handles PUT /tasks/{id}?completed=bool. Marking a task not
// completed through this path also pushes its due date to tomorrow.
func (h *APIHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, true)
}

func (h *APIHandler) transition(w http.ResponseWriter, r *http.Request, postpone bool) {
	user, _ := UserFrom(r)

	taskID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректный идентификатор задачи.")
		return
	}
	completed, err := strconv.ParseBool(r.URL.Query().Get("completed"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Параметр completed должен быть true или false.")
		return
	}

	task, err := h.svc.TransitionTask(r.Context(), user, uint(taskID), completed, postpone)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// History handles GET /history/.
func (h *APIHandler) History(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	history, err := h.svc.ListHistory(r.Context(), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// SharedTasks handles GET /share/tasks/{user_id}/{date}. Deliberately
// unauthenticated: knowing a user id and a date grants read access to
// that day's tasks. There is no revocation or scoping for shared links.
func (h *APIHandler) SharedTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "user_id"), 10, 32)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректный идентификатор пользователя.")
		return
	}
	day, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Некорректная дата.")
		return
	}

	tasks, err := h.svc.ListTasksForDay(r.Context(), uint(userID), day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
