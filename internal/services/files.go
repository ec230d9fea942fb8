package services

import (
	"fmt"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
)

// UploadInput is the metadata registered for an uploaded file. No bytes move
// through this service; the path is computed from the containing folder
// unless the client supplies a provider-namespace path of its own.
type UploadInput struct {
	Name         string
	MimeType     *string
	Size         *int64
	FolderID     *uint64
	ProviderID   *uint64
	ExternalID   *string
	Path         string
	ThumbnailURL *string
	Tags         []string
}

// RegisterUpload records file metadata under the caller's drive.
func RegisterUpload(st storage.Storage, userID uint64, in UploadInput) (*models.File, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: file name is required", types.ErrValidation)
	}

	// Provider-scoped files with no explicit folder live in the provider
	// namespace only; everything else lands in a drive folder (root default).
	var folder *models.Folder
	var err error
	if in.FolderID != nil {
		folder, err = st.GetFolder(*in.FolderID)
		if err != nil {
			return nil, err
		}
		if folder.UserID != userID {
			return nil, types.ErrAccessDenied
		}
	} else if in.ProviderID == nil {
		folder, err = st.GetRootFolder(userID)
		if err != nil {
			return nil, err
		}
	}

	filePath := in.Path
	if filePath == "" {
		if folder != nil {
			filePath = childPath(folder.Path, in.Name)
		} else {
			filePath = "/" + in.Name
		}
	} else {
		filePath = normalizePath(filePath)
	}

	tags := models.StringList{}
	for _, t := range in.Tags {
		if t != "" && !tags.Contains(t) {
			tags = append(tags, t)
		}
	}

	var folderID *uint64
	if folder != nil {
		folderID = &folder.ID
	}
	file := &models.File{
		Name:         in.Name,
		MimeType:     in.MimeType,
		Size:         in.Size,
		FolderID:     folderID,
		UserID:       userID,
		ProviderID:   in.ProviderID,
		ExternalID:   in.ExternalID,
		Path:         filePath,
		ThumbnailURL: in.ThumbnailURL,
		Tags:         tags,
	}
	if err := st.CreateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

// GetFileForViewer fetches a file applying the read capability check: owners
// always pass, anyone else needs the file's unexpired share token.
func GetFileForViewer(st storage.Storage, fileID, viewerID uint64, token string) (*models.File, error) {
	file, err := st.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if !fileVisibleTo(st, file, viewerID, token) {
		return nil, types.ErrAccessDenied
	}
	return file, nil
}

// DeleteFile removes a file the caller owns and cascades to its share rows.
func DeleteFile(st storage.Storage, userID, fileID uint64) error {
	file, err := st.GetFile(fileID)
	if err != nil {
		return err
	}
	if file.UserID != userID {
		return types.ErrAccessDenied
	}

	if _, err := st.DeleteSharesByFile(fileID); err != nil {
		return err
	}
	return st.DeleteFile(fileID)
}

// ToggleFavorite flips the favorite flag on a file the caller owns.
func ToggleFavorite(st storage.Storage, userID, fileID uint64) (*models.File, error) {
	file, err := st.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, types.ErrAccessDenied
	}

	file.IsFavorite = !file.IsFavorite
	if err := st.UpdateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

// AddTag appends a tag to a file's tag set. Adding a tag that is already
// present is a no-op; no normalization is applied (case-sensitive, no trim).
func AddTag(st storage.Storage, userID, fileID uint64, tag string) (models.StringList, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: tag is required", types.ErrValidation)
	}

	file, err := st.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, types.ErrAccessDenied
	}

	if !file.Tags.Contains(tag) {
		file.Tags = append(file.Tags, tag)
		if err := st.UpdateFile(file); err != nil {
			return nil, err
		}
	}
	return file.Tags, nil
}

// RemoveTag removes a tag by exact match. Removing an absent tag is a no-op,
// not an error.
func RemoveTag(st storage.Storage, userID, fileID uint64, tag string) (models.StringList, error) {
	file, err := st.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, types.ErrAccessDenied
	}

	if file.Tags.Contains(tag) {
		next := models.StringList{}
		for _, t := range file.Tags {
			if t != tag {
				next = append(next, t)
			}
		}
		file.Tags = next
		if err := st.UpdateFile(file); err != nil {
			return nil, err
		}
	}
	return file.Tags, nil
}
