package models

import "time"

// History is one append-only audit entry for a user action. Entries are
// never mutated or deleted and are read newest-first.
type History struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"-"`
	Action    string    `gorm:"type:text" json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
