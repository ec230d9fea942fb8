package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
)

func TestRegisterUploadDefaultsToRoot(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")

	file, err := RegisterUpload(st, user.ID, UploadInput{Name: "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/notes.txt", file.Path)
	require.NotNil(t, file.FolderID)

	root, err := st.GetRootFolder(user.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *file.FolderID)
}

func TestRegisterUploadProviderScoped(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")
	provider := newTestProvider(t, st, "Amazon S3", "aws")

	// A provider-scoped file with no folder stays out of the drive tree
	file, err := RegisterUpload(st, user.ID, UploadInput{
		Name:       "remote.txt",
		ProviderID: &provider.ID,
		Path:       "/backups/remote.txt",
	})
	require.NoError(t, err)
	assert.Nil(t, file.FolderID)
	assert.Equal(t, "/backups/remote.txt", file.Path)

	contents, err := FolderContents(st, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, contents.Files)
}

func TestRegisterUploadValidation(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")

	_, err := RegisterUpload(st, user.ID, UploadInput{})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestRegisterUploadForeignFolder(t *testing.T) {
	st := storage.NewMemory()
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	folder, err := CreateFolder(st, alice.ID, "Private", nil, nil)
	require.NoError(t, err)

	_, err = RegisterUpload(st, bob.ID, UploadInput{Name: "sneaky.txt", FolderID: &folder.ID})
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}

func TestRegisterUploadDedupesTags(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")

	file, err := RegisterUpload(st, user.ID, UploadInput{
		Name: "notes.txt",
		Tags: []string{"work", "work", "", "urgent"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"work", "urgent"}, file.Tags)
}

func TestGetFileForViewer(t *testing.T) {
	st := storage.NewMemory()
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	file := newTestFile(t, st, alice.ID, "report.pdf", UploadInput{})

	// Owner reads without a token
	got, err := GetFileForViewer(st, file.ID, alice.ID, "")
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	// A share row existing grants nothing without the token
	share, err := GenerateShareLink(st, alice.ID, file.ID, nil)
	require.NoError(t, err)
	_, err = GetFileForViewer(st, file.ID, bob.ID, "")
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	// Token in hand reads
	got, err = GetFileForViewer(st, file.ID, bob.ID, share.Token)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	// A token for a different file does not transfer
	other := newTestFile(t, st, alice.ID, "other.pdf", UploadInput{})
	otherShare, err := GenerateShareLink(st, alice.ID, other.ID, nil)
	require.NoError(t, err)
	_, err = GetFileForViewer(st, file.ID, bob.ID, otherShare.Token)
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}

func TestGetFileForViewerExpiredToken(t *testing.T) {
	st := storage.NewMemory()
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	file := newTestFile(t, st, alice.ID, "report.pdf", UploadInput{})

	expiresIn := int64(-1)
	share, err := GenerateShareLink(st, alice.ID, file.ID, &expiresIn)
	require.NoError(t, err)

	_, err = GetFileForViewer(st, file.ID, bob.ID, share.Token)
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	// The owner is unaffected by expiry
	_, err = GetFileForViewer(st, file.ID, alice.ID, "")
	require.NoError(t, err)
}

func TestDeleteFileCascadesShares(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")
	file := newTestFile(t, st, user.ID, "report.pdf", UploadInput{})

	share, err := GenerateShareLink(st, user.ID, file.ID, nil)
	require.NoError(t, err)

	require.NoError(t, DeleteFile(st, user.ID, file.ID))

	_, err = st.GetFile(file.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, _, err = ResolveShareToken(st, share.Token)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteFileNotOwner(t *testing.T) {
	st := storage.NewMemory()
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	file := newTestFile(t, st, alice.ID, "report.pdf", UploadInput{})

	err := DeleteFile(st, bob.ID, file.ID)
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}

func TestToggleFavoriteInvolutive(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")
	file := newTestFile(t, st, user.ID, "report.pdf", UploadInput{})
	assert.False(t, file.IsFavorite)

	toggled, err := ToggleFavorite(st, user.ID, file.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = ToggleFavorite(st, user.ID, file.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestAddTagIdempotent(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")
	file := newTestFile(t, st, user.ID, "report.pdf", UploadInput{})

	tags, err := AddTag(st, user.ID, file.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"work"}, tags)

	tags, err = AddTag(st, user.ID, file.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"work"}, tags)

	// Tags are case-sensitive
	tags, err = AddTag(st, user.ID, file.ID, "Work")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"work", "Work"}, tags)

	_, err = AddTag(st, user.ID, file.ID, "")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestRemoveTag(t *testing.T) {
	st := storage.NewMemory()
	user := newTestUser(t, st, "alice")
	file := newTestFile(t, st, user.ID, "report.pdf", UploadInput{Tags: []string{"work", "urgent"}})

	tags, err := RemoveTag(st, user.ID, file.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"urgent"}, tags)

	// Removing an absent tag is a no-op
	tags, err = RemoveTag(st, user.ID, file.ID, "nope")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"urgent"}, tags)
}
