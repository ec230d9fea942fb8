// Package storage defines the typed persistence abstraction behind the
// dashboard. Two implementations exist: an in-memory store (the default) and
// a GORM-backed store for real databases. Services only see this interface.
package storage

import (
	"context"

	"github.com/drivedeck/drivedeck/internal/models"
)

// Storage is the injected persistence abstraction. Implementations return
// types.ErrNotFound for unresolved ids and assign ids on create.
type Storage interface {
	// Users
	CreateUser(u *models.User) error
	GetUser(id uint64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(u *models.User) error

	// Provider catalog
	CreateProvider(p *models.CloudProvider) error
	GetProvider(id uint64) (*models.CloudProvider, error)
	ListProviders() ([]models.CloudProvider, error)

	// Per-user provider connections
	CreateUserProvider(c *models.UserCloudProvider) error
	UpdateUserProvider(c *models.UserCloudProvider) error
	GetUserProvider(userID, providerID uint64) (*models.UserCloudProvider, error)
	ListUserProviders(userID uint64) ([]models.UserCloudProvider, error)

	// Folders
	CreateFolder(f *models.Folder) error
	GetFolder(id uint64) (*models.Folder, error)
	GetRootFolder(userID uint64) (*models.Folder, error)
	ListFoldersByParent(userID, parentID uint64) ([]models.Folder, error)
	ListFoldersByUser(userID uint64) ([]models.Folder, error)

	// Files
	CreateFile(f *models.File) error
	GetFile(id uint64) (*models.File, error)
	UpdateFile(f *models.File) error
	DeleteFile(id uint64) error
	ListFilesByFolder(userID, folderID uint64) ([]models.File, error)
	ListFilesByUser(userID uint64) ([]models.File, error)
	ListFilesByProvider(userID, providerID uint64) ([]models.File, error)

	// Shares
	CreateShare(s *models.SharedFile) error
	GetShareByFile(fileID uint64) (*models.SharedFile, error)
	GetShareByToken(token string) (*models.SharedFile, error)
	ListSharesByUser(userID uint64) ([]models.SharedFile, error)
	DeleteSharesByFile(fileID uint64) (int64, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
