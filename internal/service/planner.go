package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chetan-code/planner/internal/auth"
	"github.com/chetan-code/planner/internal/models"
	"github.com/chetan-code/planner/internal/repository"
)

// Service holds every business rule. Both the REST and the HTML
// front-ends are thin adapters over this one layer.
type Service struct {
	db      *gorm.DB
	users   *repository.UserRepository
	tasks   *repository.TaskRepository
	history *repository.HistoryRepository
	tokens  *auth.TokenService
	loc     *time.Location
}

func New(db *gorm.DB, tokens *auth.TokenService, loc *time.Location) *Service {
	return &Service{
		db:      db,
		users:   repository.NewUserRepository(db),
		tasks:   repository.NewTaskRepository(db),
		history: repository.NewHistoryRepository(db),
		tokens:  tokens,
		loc:     loc,
	}
}

func (s *Service) Users() *repository.UserRepository { return s.users }

// Today is the current day in the service's configured location; due
// dates and history timestamps agree on this day boundary.
func (s *Service) Today() models.Date { return models.Today(s.loc) }

func (s *Service) entry(userID uint, action string) *models.History {
	return &models.History{
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().In(s.loc),
	}
}

// Register creates the account and its "Регистрация" audit entry in one
// transaction. Duplicate email fails with ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email string, age int, password string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Age: age, HashedPassword: hash}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.history.WithTx(tx).Append(ctx, s.entry(user.ID, "Регистрация"))
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race on the unique email index.
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and issues a fresh bearer token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user by email: %w", err)
	}
	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

// CreateTask records a task due today unless an explicit due date is
// given. The creation date is always today and never changes.
func (s *Service) CreateTask(ctx context.Context, user *models.User, title string, dueDate *models.Date) (*models.Task, error) {
	today := models.Today(s.loc)
	due := today
	if dueDate != nil {
		due = *dueDate
	}

	task := &models.Task{
		UserID:     user.ID,
		Title:      title,
		CreateDate: today,
		DueDate:    due,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, s.entry(user.ID, "Создана задача: "+title)); err != nil {
		return nil, err
	}
	return task, nil
}

// NormalizeDueDates advances every overdue incomplete task to today and
// returns the number of tasks touched. Calling it twice in a row leaves
// the second call with nothing to do.
func (s *Service) NormalizeDueDates(ctx context.Context, user *models.User) (int, error) {
	return s.tasks.AdvanceOverdue(ctx, user.ID, models.Today(s.loc))
}

// ListTasks is a pure read of all of the user's tasks.
func (s *Service) ListTasks(ctx context.Context, user *models.User) ([]models.Task, error) {
	return s.tasks.ListByUser(ctx, user.ID)
}

// ListTasksForDay filters by owner and exact due date. It takes a bare
// user id rather than an authenticated user: the public share view runs
// through here with no caller identity at all, by design.
func (s *Service) ListTasksForDay(ctx context.Context, userID uint, day models.Date) ([]models.Task, error) {
	return s.tasks.ListByUserAndDate(ctx, userID, day)
}

// TransitionTask is the single state-transition operation behind both
// task-update endpoints. The completion flag is written first; the due
// date moves to tomorrow only when the resulting state is incomplete and
// postpone is set. Appends one audit entry describing the new state.
func (s *Service) TransitionTask(ctx context.Context, user *models.User, taskID uint, completed, postpone bool) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, user.ID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}

	task.Completed = completed
	if !completed && postpone {
		task.DueDate = models.Today(s.loc).Tomorrow()
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	state := "выполненной"
	if !completed {
		state = "невыполненной"
	}
	action := fmt.Sprintf("Задача %q отмечена %s", task.Title, state)
	if err := s.history.Append(ctx, s.entry(user.ID, action)); err != nil {
		return nil, err
	}
	return task, nil
}

// ListHistory returns the user's audit trail, newest first.
func (s *Service) ListHistory(ctx context.Context, user *models.User) ([]models.History, error) {
	return s.history.ListByUser(ctx, user.ID)
}

// DeleteUser backs the best-effort registration rollback in the HTML
// flow. Nothing else removes accounts.
func (s *Service) DeleteUser(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}
