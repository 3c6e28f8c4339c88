package handler

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chetan-code/planner/internal/auth"
	"github.com/chetan-code/planner/internal/models"
	"github.com/chetan-code/planner/internal/service"
)

// WebHandler is the server-rendered HTML adapter. It shares every
// business rule with the JSON surface through the same service; only the
// transport differs: the token rides in an httponly cookie and failures
// re-render the originating form with an inline message.
type WebHandler struct {
	svc  *service.Service
	tmpl *template.Template
}

func NewWebHandler(svc *service.Service, templates fs.FS) *WebHandler {
	return &WebHandler{
		svc:  svc,
		tmpl: template.Must(template.ParseFS(templates, "*.html")),
	}
}

type authPage struct {
	Name  string
	Email string
	Age   string
	Error string
}

type tasksPage struct {
	User    *models.User
	Tasks   []models.Task
	History []models.History
	Today   models.Date
	Error   string
}

type sharePage struct {
	OwnerID uint
	Day     models.Date
	Tasks   []models.Task
}

func (h *WebHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template_render_failed", "template", name, "error", err)
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    url.QueryEscape("Bearer " + token),
		Path:     "/",
		HttpOnly: true, //not visible to JS
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// HomeRedirect sends the root path to the task list; the auth middleware
// bounces anonymous visitors on to /login from there.
func HomeRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// LoginRedirect rejects unauthenticated HTML requests.
func (h *WebHandler) LoginRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *WebHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register.html", authPage{})
}

// Register creates the account and logs the user straight in. If the
// token cannot be issued the fresh account is rolled back best-effort
// and the form re-rendered.
func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "register.html", authPage{Error: "Некорректная форма запроса."})
		return
	}
	page := authPage{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Age:   r.PostFormValue("age"),
	}
	password := r.PostFormValue("password")

	if page.Name == "" || page.Email == "" || password == "" {
		page.Error = "Заполните все поля."
		h.render(w, http.StatusBadRequest, "register.html", page)
		return
	}
	age, err := strconv.Atoi(page.Age)
	if err != nil || age < 0 {
		page.Error = "Возраст должен быть числом."
		h.render(w, http.StatusBadRequest, "register.html", page)
		return
	}

	user, err := h.svc.Register(r.Context(), page.Name, page.Email, age, password)
	if err == service.ErrEmailTaken {
		page.Error = "Введенный email уже зарегистрирован."
		h.render(w, http.StatusBadRequest, "register.html", page)
		return
	}
	if err != nil {
		slog.Error("web_register_failed", "error", err)
		page.Error = "Не удалось зарегистрироваться, попробуйте снова."
		h.render(w, http.StatusInternalServerError, "register.html", page)
		return
	}

	token, err := h.svc.Authenticate(r.Context(), page.Email, password)
	if err != nil {
		// Best-effort rollback so a retry with the same email works.
		if delErr := h.svc.DeleteUser(r.Context(), user.ID); delErr != nil {
			slog.Error("register_rollback_failed", "user_id", user.ID, "error", delErr)
		}
		page.Error = "Не удалось войти после регистрации, попробуйте снова."
		h.render(w, http.StatusInternalServerError, "register.html", page)
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *WebHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", authPage{})
}

func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "login.html", authPage{Error: "Некорректная форма запроса."})
		return
	}
	page := authPage{Email: r.PostFormValue("email")}
	password := r.PostFormValue("password")

	token, err := h.svc.Authenticate(r.Context(), page.Email, password)
	if err == service.ErrInvalidCredentials {
		page.Error = "Неверный логин или пароль."
		h.render(w, http.StatusUnauthorized, "login.html", page)
		return
	}
	if err != nil {
		slog.Error("web_login_failed", "error", err)
		page.Error = "Не удалось войти, попробуйте снова."
		h.render(w, http.StatusInternalServerError, "login.html", page)
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *WebHandler) tasksData(r *http.Request, user *models.User) (tasksPage, error) {
	if _, err := h.svc.NormalizeDueDates(r.Context(), user); err != nil {
		return tasksPage{}, err
	}
	tasks, err := h.svc.ListTasks(r.Context(), user)
	if err != nil {
		return tasksPage{}, err
	}
	history, err := h.svc.ListHistory(r.Context(), user)
	if err != nil {
		return tasksPage{}, err
	}
	return tasksPage{User: user, Tasks: tasks, History: history, Today: h.svc.Today()}, nil
}

// Tasks renders the task list after the due-date rollover normalization.
func (h *WebHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	page, err := h.tasksData(r, user)
	if err != nil {
		slog.Error("web_tasks_failed", "error", err)
		http.Error(w, "Внутренняя ошибка сервера.", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "tasks.html", page)
}

// AddTask handles the add form with redirect-after-post; an empty title
// re-renders the page with an inline message instead.
func (h *WebHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
		return
	}
	title := r.PostFormValue("title")
	rawDue := r.PostFormValue("due_date")

	renderWithError := func(msg string) {
		page, err := h.tasksData(r, user)
		if err != nil {
			slog.Error("web_tasks_failed", "error", err)
			http.Error(w, "Внутренняя ошибка сервера.", http.StatusInternalServerError)
			return
		}
		page.Error = msg
		h.render(w, http.StatusBadRequest, "tasks.html", page)
	}

	if title == "" {
		renderWithError("Укажите название задачи.")
		return
	}

	var dueDate *models.Date
	if rawDue != "" {
		parsed, err := models.ParseDate(rawDue)
		if err != nil {
			renderWithError("Некорректная дата.")
			return
		}
		dueDate = &parsed
	}

	if _, err := h.svc.CreateTask(r.Context(), user, title, dueDate); err != nil {
		slog.Error("web_create_task_failed", "error", err)
		renderWithError("Не удалось создать задачу.")
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// CompleteTask toggles the completion flag from the list page.
func (h *WebHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r)

	taskID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "Задача не найдена.", http.StatusNotFound)
		return
	}
	completed := r.PostFormValue("completed") == "true"

	if _, err := h.svc.TransitionTask(r.Context(), user, uint(taskID), completed, false); err != nil {
		if err == service.ErrNotFound {
			http.Error(w, "Задача не найдена.", http.StatusNotFound)
			return
		}
		slog.Error("web_complete_task_failed", "error", err)
		http.Error(w, "Внутренняя ошибка сервера.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// Share renders the public read-only day view. No authentication on
// purpose: the share link is "user id + date grants read access".
func (h *WebHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "user_id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	day, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tasks, err := h.svc.ListTasksForDay(r.Context(), uint(userID), day)
	if err != nil {
		slog.Error("web_share_failed", "error", err)
		http.Error(w, "Внутренняя ошибка сервера.", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "share.html", sharePage{OwnerID: uint(userID), Day: day, Tasks: tasks})
}
