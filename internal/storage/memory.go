package storage

import (
	"context"
	"sync"
	"time"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/types"
)

// Memory is the in-memory Storage implementation. A single mutex serializes
// all access; every operation completes synchronously. Restart loses all data.
type Memory struct {
	mu sync.Mutex

	users         map[uint64]*models.User
	providers     map[uint64]*models.CloudProvider
	userProviders map[uint64]*models.UserCloudProvider
	folders       map[uint64]*models.Folder
	files         map[uint64]*models.File
	shares        map[uint64]*models.SharedFile

	// Monotonic id counters, one per entity type.
	userSeq         uint64
	providerSeq     uint64
	userProviderSeq uint64
	folderSeq       uint64
	fileSeq         uint64
	shareSeq        uint64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:         make(map[uint64]*models.User),
		providers:     make(map[uint64]*models.CloudProvider),
		userProviders: make(map[uint64]*models.UserCloudProvider),
		folders:       make(map[uint64]*models.Folder),
		files:         make(map[uint64]*models.File),
		shares:        make(map[uint64]*models.SharedFile),
	}
}

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return types.ErrExists
		}
	}

	m.userSeq++
	u.ID = m.userSeq
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) GetUser(id uint64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) UpdateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return types.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) CreateProvider(p *models.CloudProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providerSeq++
	p.ID = m.providerSeq
	cp := *p
	m.providers[p.ID] = &cp
	return nil
}

func (m *Memory) GetProvider(id uint64) (*models.CloudProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.providers[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) ListProviders() ([]models.CloudProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.CloudProvider, 0, len(m.providers))
	for id := uint64(1); id <= m.providerSeq; id++ {
		if p, ok := m.providers[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *Memory) CreateUserProvider(c *models.UserCloudProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userProviderSeq++
	c.ID = m.userProviderSeq
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	cp := *c
	m.userProviders[c.ID] = &cp
	return nil
}

func (m *Memory) UpdateUserProvider(c *models.UserCloudProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userProviders[c.ID]; !ok {
		return types.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	m.userProviders[c.ID] = &cp
	return nil
}

func (m *Memory) GetUserProvider(userID, providerID uint64) (*models.UserCloudProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.userProviders {
		if c.UserID == userID && c.ProviderID == providerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) ListUserProviders(userID uint64) ([]models.UserCloudProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.UserCloudProvider
	for id := uint64(1); id <= m.userProviderSeq; id++ {
		if c, ok := m.userProviders[id]; ok && c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *Memory) CreateFolder(f *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.folderSeq++
	f.ID = m.folderSeq
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	cp := *f
	m.folders[f.ID] = &cp
	return nil
}

func (m *Memory) GetFolder(id uint64) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *Memory) GetRootFolder(userID uint64) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.folders {
		if f.UserID == userID && f.IsRoot {
			cp := *f
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) ListFoldersByParent(userID, parentID uint64) ([]models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Folder
	for id := uint64(1); id <= m.folderSeq; id++ {
		f, ok := m.folders[id]
		if ok && f.UserID == userID && f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Memory) ListFoldersByUser(userID uint64) ([]models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Folder
	for id := uint64(1); id <= m.folderSeq; id++ {
		if f, ok := m.folders[id]; ok && f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Memory) CreateFile(f *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fileSeq++
	f.ID = m.fileSeq
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if f.Tags == nil {
		f.Tags = models.StringList{}
	}
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *Memory) GetFile(id uint64) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *Memory) UpdateFile(f *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[f.ID]; !ok {
		return types.ErrNotFound
	}
	f.UpdatedAt = time.Now()
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *Memory) DeleteFile(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return types.ErrNotFound
	}
	delete(m.files, id)
	return nil
}

func (m *Memory) ListFilesByFolder(userID, folderID uint64) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.File
	for id := uint64(1); id <= m.fileSeq; id++ {
		f, ok := m.files[id]
		if ok && f.UserID == userID && f.FolderID != nil && *f.FolderID == folderID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Memory) ListFilesByUser(userID uint64) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.File
	for id := uint64(1); id <= m.fileSeq; id++ {
		if f, ok := m.files[id]; ok && f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Memory) ListFilesByProvider(userID, providerID uint64) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.File
	for id := uint64(1); id <= m.fileSeq; id++ {
		f, ok := m.files[id]
		if ok && f.UserID == userID && f.ProviderID != nil && *f.ProviderID == providerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *Memory) CreateShare(s *models.SharedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shareSeq++
	s.ID = m.shareSeq
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	m.shares[s.ID] = &cp
	return nil
}

func (m *Memory) GetShareByFile(fileID uint64) (*models.SharedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.shares {
		if s.FileID == fileID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) GetShareByToken(token string) (*models.SharedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.shares {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *Memory) ListSharesByUser(userID uint64) ([]models.SharedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.SharedFile
	for id := uint64(1); id <= m.shareSeq; id++ {
		if s, ok := m.shares[id]; ok && s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *Memory) DeleteSharesByFile(fileID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, s := range m.shares {
		if s.FileID == fileID {
			delete(m.shares, id)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}
