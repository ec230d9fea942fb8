package models

import (
	"time"
)

// User owns folders, files, provider connections and shares.
// The password field holds a bcrypt hash and never serializes to JSON.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName  *string   `gorm:"size:255" json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
