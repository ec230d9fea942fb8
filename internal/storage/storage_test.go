package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/types"
)

// runStorageSuite exercises the Storage contract against one implementation.
// Both backends run the same suite; behavior must not diverge.
func runStorageSuite(t *testing.T, newStore func(t *testing.T) Storage) {
	t.Run("Users", func(t *testing.T) {
		st := newStore(t)

		u := &models.User{Username: "alice", Password: "hash", Email: "alice@example.com"}
		require.NoError(t, st.CreateUser(u))
		assert.NotZero(t, u.ID)

		got, err := st.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = st.GetUserByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got, err = st.GetUserByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = st.GetUser(9999)
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = st.GetUserByUsername("nobody")
		assert.ErrorIs(t, err, types.ErrNotFound)

		// Duplicate username or email is rejected
		err = st.CreateUser(&models.User{Username: "alice", Password: "x", Email: "other@example.com"})
		assert.ErrorIs(t, err, types.ErrExists)
		err = st.CreateUser(&models.User{Username: "alice2", Password: "x", Email: "alice@example.com"})
		assert.ErrorIs(t, err, types.ErrExists)

		name := "Alice Liddell"
		got.FullName = &name
		require.NoError(t, st.UpdateUser(got))
		got, err = st.GetUser(u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.FullName)
		assert.Equal(t, name, *got.FullName)

		err = st.UpdateUser(&models.User{ID: 9999, Username: "ghost", Email: "g@example.com"})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("Providers", func(t *testing.T) {
		st := newStore(t)

		p1 := &models.CloudProvider{Name: "Amazon S3", Type: "aws", IsActive: true}
		p2 := &models.CloudProvider{Name: "Dropbox", Type: "dropbox", IsActive: false}
		require.NoError(t, st.CreateProvider(p1))
		require.NoError(t, st.CreateProvider(p2))

		got, err := st.GetProvider(p1.ID)
		require.NoError(t, err)
		assert.Equal(t, "Amazon S3", got.Name)

		// An explicitly inactive row must persist as inactive
		got, err = st.GetProvider(p2.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		list, err := st.ListProviders()
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, p1.ID, list[0].ID)
		assert.Equal(t, p2.ID, list[1].ID)

		_, err = st.GetProvider(9999)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("UserProviders", func(t *testing.T) {
		st := newStore(t)
		user := &models.User{Username: "alice", Password: "h", Email: "a@example.com"}
		require.NoError(t, st.CreateUser(user))
		provider := &models.CloudProvider{Name: "Amazon S3", Type: "aws", IsActive: true}
		require.NoError(t, st.CreateProvider(provider))

		conn := &models.UserCloudProvider{UserID: user.ID, ProviderID: provider.ID, IsActive: true}
		require.NoError(t, st.CreateUserProvider(conn))

		got, err := st.GetUserProvider(user.ID, provider.ID)
		require.NoError(t, err)
		assert.Equal(t, conn.ID, got.ID)

		_, err = st.GetUserProvider(user.ID, 9999)
		assert.ErrorIs(t, err, types.ErrNotFound)

		got.IsActive = false
		require.NoError(t, st.UpdateUserProvider(got))
		got, err = st.GetUserProvider(user.ID, provider.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		list, err := st.ListUserProviders(user.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Folders", func(t *testing.T) {
		st := newStore(t)
		user := &models.User{Username: "alice", Password: "h", Email: "a@example.com"}
		require.NoError(t, st.CreateUser(user))

		root := &models.Folder{Name: "My Drive", UserID: user.ID, Path: "/", IsRoot: true}
		require.NoError(t, st.CreateFolder(root))
		child := &models.Folder{Name: "Work", UserID: user.ID, ParentID: &root.ID, Path: "/Work"}
		require.NoError(t, st.CreateFolder(child))

		got, err := st.GetRootFolder(user.ID)
		require.NoError(t, err)
		assert.Equal(t, root.ID, got.ID)

		_, err = st.GetRootFolder(9999)
		assert.ErrorIs(t, err, types.ErrNotFound)

		children, err := st.ListFoldersByParent(user.ID, root.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, "Work", children[0].Name)

		all, err := st.ListFoldersByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Files", func(t *testing.T) {
		st := newStore(t)
		user := &models.User{Username: "alice", Password: "h", Email: "a@example.com"}
		require.NoError(t, st.CreateUser(user))
		folder := &models.Folder{Name: "My Drive", UserID: user.ID, Path: "/", IsRoot: true}
		require.NoError(t, st.CreateFolder(folder))
		provider := &models.CloudProvider{Name: "Amazon S3", Type: "aws", IsActive: true}
		require.NoError(t, st.CreateProvider(provider))

		f1 := &models.File{Name: "a.txt", UserID: user.ID, FolderID: &folder.ID, Path: "/a.txt",
			Tags: models.StringList{"work"}}
		require.NoError(t, st.CreateFile(f1))
		f2 := &models.File{Name: "b.txt", UserID: user.ID, ProviderID: &provider.ID, Path: "/remote/b.txt"}
		require.NoError(t, st.CreateFile(f2))

		got, err := st.GetFile(f1.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"work"}, got.Tags)

		// A nil tag set persists as an empty list, never null
		got, err = st.GetFile(f2.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Tags)
		assert.Empty(t, got.Tags)

		byFolder, err := st.ListFilesByFolder(user.ID, folder.ID)
		require.NoError(t, err)
		require.Len(t, byFolder, 1)
		assert.Equal(t, "a.txt", byFolder[0].Name)

		byProvider, err := st.ListFilesByProvider(user.ID, provider.ID)
		require.NoError(t, err)
		require.Len(t, byProvider, 1)
		assert.Equal(t, "b.txt", byProvider[0].Name)

		byUser, err := st.ListFilesByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, byUser, 2)

		f1.IsFavorite = true
		require.NoError(t, st.UpdateFile(f1))
		got, err = st.GetFile(f1.ID)
		require.NoError(t, err)
		assert.True(t, got.IsFavorite)

		require.NoError(t, st.DeleteFile(f1.ID))
		_, err = st.GetFile(f1.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
		err = st.DeleteFile(f1.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("Shares", func(t *testing.T) {
		st := newStore(t)
		user := &models.User{Username: "alice", Password: "h", Email: "a@example.com"}
		require.NoError(t, st.CreateUser(user))
		file := &models.File{Name: "a.txt", UserID: user.ID, Path: "/a.txt"}
		require.NoError(t, st.CreateFile(file))

		exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		share := &models.SharedFile{FileID: file.ID, UserID: user.ID, Token: "tok123", ExpiresAt: &exp}
		require.NoError(t, st.CreateShare(share))

		got, err := st.GetShareByFile(file.ID)
		require.NoError(t, err)
		assert.Equal(t, "tok123", got.Token)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, exp.Equal(got.ExpiresAt.UTC()))

		got, err = st.GetShareByToken("tok123")
		require.NoError(t, err)
		assert.Equal(t, share.ID, got.ID)

		_, err = st.GetShareByToken("nope")
		assert.ErrorIs(t, err, types.ErrNotFound)

		list, err := st.ListSharesByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		removed, err := st.DeleteSharesByFile(file.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
		removed, err = st.DeleteSharesByFile(file.ID)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("Ping", func(t *testing.T) {
		st := newStore(t)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, st.Ping(ctx))
	})
}
