package models

import (
	"time"
)

// SharedFile is a share-link capability for one file. Token is a random
// 128-bit hex string; a nil ExpiresAt means the link never expires. At most
// one live row exists per file.
type SharedFile struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FileID    uint64     `gorm:"not null;index" json:"fileId"`
	UserID    uint64     `gorm:"not null;index" json:"userId"`
	Token     string     `gorm:"size:64;not null;uniqueIndex" json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName overrides the table name for SharedFile
func (SharedFile) TableName() string {
	return "shared_files"
}
