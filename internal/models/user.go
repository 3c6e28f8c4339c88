package models

// User represents a registered account. The password hash never leaves
// the server.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"index" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Age            int       `json:"age"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Tasks          []Task    `gorm:"foreignKey:UserID" json:"-"`
	History        []History `gorm:"foreignKey:UserID" json:"-"`
}
