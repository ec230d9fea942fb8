package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
)

// SharedFileWithFile joins a share row with its file for listing.
type SharedFileWithFile struct {
	models.SharedFile
	File models.File `json:"file"`
}

// GenerateShareLink issues a share token for a file the caller owns. If an
// active share already exists it is returned unchanged, expiry included.
// Tokens are 128-bit random hex; no uniqueness check is performed since the
// collision probability is negligible.
func GenerateShareLink(st storage.Storage, userID, fileID uint64, expiresIn *int64) (*models.SharedFile, error) {
	file, err := st.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, types.ErrAccessDenied
	}

	if existing, err := st.GetShareByFile(fileID); err == nil {
		return existing, nil
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	token, err := newShareToken()
	if err != nil {
		return nil, err
	}

	share := &models.SharedFile{
		FileID: fileID,
		UserID: userID,
		Token:  token,
	}
	if expiresIn != nil {
		exp := time.Now().Add(time.Duration(*expiresIn) * time.Second)
		share.ExpiresAt = &exp
	}
	if err := st.CreateShare(share); err != nil {
		return nil, err
	}
	return share, nil
}

// UserSharedFiles lists every share created by userID, joined with its file.
func UserSharedFiles(st storage.Storage, userID uint64) ([]SharedFileWithFile, error) {
	shares, err := st.ListSharesByUser(userID)
	if err != nil {
		return nil, err
	}

	out := []SharedFileWithFile{}
	for _, s := range shares {
		file, err := st.GetFile(s.FileID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, SharedFileWithFile{SharedFile: s, File: *file})
	}
	return out, nil
}

// RevokeShareLink deletes every share row for a file the caller owns.
// Returns types.ErrNotFound when no share existed.
func RevokeShareLink(st storage.Storage, userID, fileID uint64) error {
	file, err := st.GetFile(fileID)
	if err != nil {
		return err
	}
	if file.UserID != userID {
		return types.ErrAccessDenied
	}

	removed, err := st.DeleteSharesByFile(fileID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ResolveShareToken returns the file behind a share token. Expired tokens
// yield types.ErrExpired, unknown ones types.ErrNotFound.
func ResolveShareToken(st storage.Storage, token string) (*models.File, *models.SharedFile, error) {
	share, err := st.GetShareByToken(token)
	if err != nil {
		return nil, nil, err
	}
	if shareExpired(share) {
		return nil, nil, types.ErrExpired
	}

	file, err := st.GetFile(share.FileID)
	if err != nil {
		return nil, nil, err
	}
	return file, share, nil
}

// fileVisibleTo is the central capability check for reading a file: the owner
// always passes; anyone else must hold the file's current unexpired token.
// Mere existence of a share grants nothing.
func fileVisibleTo(st storage.Storage, file *models.File, viewerID uint64, token string) bool {
	if file.UserID == viewerID {
		return true
	}
	if token == "" {
		return false
	}
	share, err := st.GetShareByToken(token)
	if err != nil {
		return false
	}
	return share.FileID == file.ID && !shareExpired(share)
}

func shareExpired(share *models.SharedFile) bool {
	return share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now())
}

func newShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
