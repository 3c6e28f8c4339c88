package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chetan-code/planner/internal/models"
)

// HistoryRepository appends and reads the audit log. Entries are never
// updated or deleted.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *HistoryRepository) WithTx(tx *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *models.History) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID uint) ([]models.History, error) {
	var entries []models.History
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
