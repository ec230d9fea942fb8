package models

import (
	"time"
)

// File is a file metadata record. Uploads register metadata only; no bytes
// move through this service.
type File struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	MimeType     *string    `gorm:"size:255" json:"mimeType,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	FolderID     *uint64    `gorm:"index" json:"folderId,omitempty"`
	UserID       uint64     `gorm:"not null;index" json:"userId"`
	ProviderID   *uint64    `gorm:"index" json:"providerId,omitempty"`
	ExternalID   *string    `gorm:"size:255" json:"externalId,omitempty"`
	Path         string     `gorm:"size:1024;not null" json:"path"`
	ThumbnailURL *string    `gorm:"size:1024" json:"thumbnailUrl,omitempty"`
	IsFavorite   bool       `gorm:"not null;default:false" json:"isFavorite"`
	Tags         StringList `gorm:"type:json" json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for File
func (File) TableName() string {
	return "files"
}
