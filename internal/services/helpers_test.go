package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
)

func newTestUser(t *testing.T, st storage.Storage, username string) *models.User {
	t.Helper()
	user, err := Signup(st, SignupInput{
		Username: username,
		Password: "secret123",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return user
}

func newTestFile(t *testing.T, st storage.Storage, userID uint64, name string, in UploadInput) *models.File {
	t.Helper()
	in.Name = name
	file, err := RegisterUpload(st, userID, in)
	require.NoError(t, err)
	return file
}

func newTestProvider(t *testing.T, st storage.Storage, name, ptype string) *models.CloudProvider {
	t.Helper()
	p := &models.CloudProvider{Name: name, Type: ptype, IsActive: true}
	require.NoError(t, st.CreateProvider(p))
	return p
}
