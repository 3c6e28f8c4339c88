package models

// Task is a titled, datable to-do item owned by one user. CreateDate is
// set once at creation; DueDate defaults to it and only ever moves
// forward (rollover to today for overdue incomplete tasks, or to
// tomorrow via an explicit postpone).
type Task struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index" json:"user_id"`
	Title      string `gorm:"index" json:"title"`
	Completed  bool   `gorm:"default:false" json:"completed"`
	CreateDate Date   `gorm:"type:date;index" json:"create_date"`
	DueDate    Date   `gorm:"type:date;index" json:"due_date"`
}
