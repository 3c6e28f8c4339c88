package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chetan-code/planner/internal/models"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUserAndDate filters by owner and exact due date. It carries no
// caller identity: the public share view goes through here too.
func (r *TaskRepository) ListByUserAndDate(ctx context.Context, userID uint, day models.Date) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND due_date = ?", userID, day).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// AdvanceOverdue moves every incomplete task with a due date before the
// given day forward to that day and reports how many rows changed.
func (r *TaskRepository) AdvanceOverdue(ctx context.Context, userID uint, today models.Date) (int, error) {
	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("user_id = ? AND completed = ? AND due_date < ?", userID, false, today).
		Update("due_date", today)
	if res.Error != nil {
		return 0, fmt.Errorf("advance overdue tasks: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
