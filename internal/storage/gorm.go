package storage

import (
	"context"
	"errors"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/types"
	"gorm.io/gorm"
)

// Gorm is the database-backed Storage implementation. It works against any
// dialect database.Connect supports.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an open GORM handle as a Storage.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}
	return err
}

func (g *Gorm) CreateUser(u *models.User) error {
	var count int64
	if err := g.db.Model(&models.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return types.ErrExists
	}
	return g.db.Create(u).Error
}

func (g *Gorm) GetUser(id uint64) (*models.User, error) {
	var u models.User
	if err := g.db.First(&u, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (g *Gorm) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (g *Gorm) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (g *Gorm) UpdateUser(u *models.User) error {
	res := g.db.Model(&models.User{}).Where("id = ?", u.ID).Select("*").Omit("id", "created_at").Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (g *Gorm) CreateProvider(p *models.CloudProvider) error {
	return g.db.Create(p).Error
}

func (g *Gorm) GetProvider(id uint64) (*models.CloudProvider, error) {
	var p models.CloudProvider
	if err := g.db.First(&p, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (g *Gorm) ListProviders() ([]models.CloudProvider, error) {
	var out []models.CloudProvider
	if err := g.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) CreateUserProvider(c *models.UserCloudProvider) error {
	return g.db.Create(c).Error
}

func (g *Gorm) UpdateUserProvider(c *models.UserCloudProvider) error {
	res := g.db.Model(&models.UserCloudProvider{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (g *Gorm) GetUserProvider(userID, providerID uint64) (*models.UserCloudProvider, error) {
	var c models.UserCloudProvider
	err := g.db.Where("user_id = ? AND provider_id = ?", userID, providerID).First(&c).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (g *Gorm) ListUserProviders(userID uint64) ([]models.UserCloudProvider, error) {
	var out []models.UserCloudProvider
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) CreateFolder(f *models.Folder) error {
	return g.db.Create(f).Error
}

func (g *Gorm) GetFolder(id uint64) (*models.Folder, error) {
	var f models.Folder
	if err := g.db.First(&f, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (g *Gorm) GetRootFolder(userID uint64) (*models.Folder, error) {
	var f models.Folder
	err := g.db.Where("user_id = ? AND is_root = ?", userID, true).First(&f).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (g *Gorm) ListFoldersByParent(userID, parentID uint64) ([]models.Folder, error) {
	var out []models.Folder
	err := g.db.Where("user_id = ? AND parent_id = ?", userID, parentID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) ListFoldersByUser(userID uint64) ([]models.Folder, error) {
	var out []models.Folder
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) CreateFile(f *models.File) error {
	if f.Tags == nil {
		f.Tags = models.StringList{}
	}
	return g.db.Create(f).Error
}

func (g *Gorm) GetFile(id uint64) (*models.File, error) {
	var f models.File
	if err := g.db.First(&f, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (g *Gorm) UpdateFile(f *models.File) error {
	res := g.db.Model(&models.File{}).Where("id = ?", f.ID).
		Select("*").Omit("id", "created_at").Updates(f)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (g *Gorm) DeleteFile(id uint64) error {
	res := g.db.Delete(&models.File{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (g *Gorm) ListFilesByFolder(userID, folderID uint64) ([]models.File, error) {
	var out []models.File
	err := g.db.Where("user_id = ? AND folder_id = ?", userID, folderID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) ListFilesByUser(userID uint64) ([]models.File, error) {
	var out []models.File
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) ListFilesByProvider(userID, providerID uint64) ([]models.File, error) {
	var out []models.File
	err := g.db.Where("user_id = ? AND provider_id = ?", userID, providerID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) CreateShare(s *models.SharedFile) error {
	return g.db.Create(s).Error
}

func (g *Gorm) GetShareByFile(fileID uint64) (*models.SharedFile, error) {
	var s models.SharedFile
	if err := g.db.Where("file_id = ?", fileID).First(&s).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (g *Gorm) GetShareByToken(token string) (*models.SharedFile, error) {
	var s models.SharedFile
	if err := g.db.Where("token = ?", token).First(&s).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (g *Gorm) ListSharesByUser(userID uint64) ([]models.SharedFile, error) {
	var out []models.SharedFile
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gorm) DeleteSharesByFile(fileID uint64) (int64, error) {
	res := g.db.Where("file_id = ?", fileID).Delete(&models.SharedFile{})
	return res.RowsAffected, res.Error
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
