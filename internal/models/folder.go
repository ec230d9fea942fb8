package models

import (
	"time"
)

// Folder is a persisted folder record. Path is authoritative for hierarchy
// materialization; ParentID is a weak self-reference. Exactly one folder per
// user carries IsRoot.
type Folder struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ParentID   *uint64   `gorm:"index" json:"parentId,omitempty"`
	UserID     uint64    `gorm:"not null;index" json:"userId"`
	ProviderID *uint64   `gorm:"index" json:"providerId,omitempty"`
	ExternalID *string   `gorm:"size:255" json:"externalId,omitempty"`
	Path       string    `gorm:"size:1024;not null" json:"path"`
	IsRoot     bool      `gorm:"not null;default:false" json:"isRoot"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Folder
func (Folder) TableName() string {
	return "folders"
}
