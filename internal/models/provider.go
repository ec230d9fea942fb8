package models

import (
	"time"

	"gorm.io/datatypes"
)

// CloudProvider is a row in the global provider catalog (not user-owned).
type CloudProvider struct {
	ID       uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Type     string  `gorm:"size:32;not null" json:"type"` // gcp, aws, azure, ...
	Icon     *string `gorm:"size:255" json:"icon,omitempty"`
	// No column default: a default-true bool would override an explicit
	// false on insert, and callers always set the flag.
	IsActive bool `gorm:"not null" json:"isActive"`
}

// UserCloudProvider is one user's connection to a provider. There is at most
// one row per (user, provider); reconnecting updates the existing row.
type UserCloudProvider struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64         `gorm:"not null;index:idx_user_provider,unique" json:"userId"`
	ProviderID   uint64         `gorm:"not null;index:idx_user_provider,unique" json:"providerId"`
	AccessToken  *string        `gorm:"size:255" json:"accessToken,omitempty"`
	RefreshToken *string        `gorm:"size:255" json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time     `json:"expiresAt,omitempty"`
	IsActive     bool           `gorm:"not null" json:"isActive"`
	Metadata     datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TableName overrides the table name for CloudProvider
func (CloudProvider) TableName() string {
	return "cloud_providers"
}

// TableName overrides the table name for UserCloudProvider
func (UserCloudProvider) TableName() string {
	return "user_cloud_providers"
}
