package services

import (
	"errors"
	"fmt"
	gopath "path"
	"strings"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
)

// EntryKind discriminates folder entries in a provider namespace view.
// Virtual entries are synthesized from file path prefixes and have no
// persisted folder record; parent entries are pure navigation affordances.
type EntryKind string

const (
	EntryReal    EntryKind = "folder"
	EntryVirtual EntryKind = "virtual"
	EntryParent  EntryKind = "parent"
)

// FolderEntry is a single folder row in a provider namespace view. ID is only
// set for real persisted folders.
type FolderEntry struct {
	ID   *uint64   `json:"id,omitempty"`
	Name string    `json:"name"`
	Path string    `json:"path"`
	Kind EntryKind `json:"kind"`
}

// DriveContents is the immediate-children view of a persisted folder.
type DriveContents struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}

// ProviderContentsView is the materialized view of one provider namespace path.
type ProviderContentsView struct {
	Folders []FolderEntry `json:"folders"`
	Files   []models.File `json:"files"`
}

// FolderContents returns the immediate children of folderID for userID.
// A nil folderID resolves to the user's root folder. Folders created through
// this service always carry a parent id, so direct-children queries are
// authoritative and an empty drive lists as empty.
func FolderContents(st storage.Storage, userID uint64, folderID *uint64) (*DriveContents, error) {
	var target *models.Folder
	var err error

	if folderID == nil {
		target, err = st.GetRootFolder(userID)
		if err != nil {
			return nil, err
		}
	} else {
		target, err = st.GetFolder(*folderID)
		if err != nil {
			return nil, err
		}
		if target.UserID != userID {
			return nil, types.ErrAccessDenied
		}
	}

	folders, err := st.ListFoldersByParent(userID, target.ID)
	if err != nil {
		return nil, err
	}
	files, err := st.ListFilesByFolder(userID, target.ID)
	if err != nil {
		return nil, err
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	if files == nil {
		files = []models.File{}
	}
	return &DriveContents{Folders: folders, Files: files}, nil
}

// ProviderContents materializes the direct children of a path inside a
// provider namespace from the user's flat, path-stamped file records.
// Subfolders are synthesized from path prefixes: each distinct next segment
// below the requested path becomes one virtual entry. When the path is not
// the namespace root, a parent navigation entry is prepended.
func ProviderContents(st storage.Storage, userID, providerID uint64, rawPath string) (*ProviderContentsView, error) {
	conn, err := st.GetUserProvider(userID, providerID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrAccessDenied
		}
		return nil, err
	}
	if !conn.IsActive {
		return nil, types.ErrAccessDenied
	}

	dir := normalizePath(rawPath)
	prefix := dir
	if prefix != "/" {
		prefix += "/"
	}

	files, err := st.ListFilesByProvider(userID, providerID)
	if err != nil {
		return nil, err
	}

	direct := []models.File{}
	entries := []FolderEntry{}
	seen := make(map[string]struct{})
	for _, f := range files {
		if gopath.Dir(f.Path) == dir {
			direct = append(direct, f)
			continue
		}
		if !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		// The next segment below dir names a virtual subfolder.
		name, _, _ := strings.Cut(f.Path[len(prefix):], "/")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, FolderEntry{
			Name: name,
			Path: prefix + name,
			Kind: EntryVirtual,
		})
	}

	if dir != "/" {
		parent := gopath.Dir(dir)
		name := gopath.Base(parent)
		if parent == "/" {
			name = "Root"
		}
		entries = append([]FolderEntry{{Name: name, Path: parent, Kind: EntryParent}}, entries...)
	}

	return &ProviderContentsView{Folders: entries, Files: direct}, nil
}

// CreateFolder creates a folder under parentID (the root folder when nil) and
// stamps its path from the parent's.
func CreateFolder(st storage.Storage, userID uint64, name string, parentID *uint64, providerID *uint64) (*models.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", types.ErrValidation)
	}

	var parent *models.Folder
	var err error
	if parentID == nil {
		parent, err = st.GetRootFolder(userID)
	} else {
		parent, err = st.GetFolder(*parentID)
		if err == nil && parent.UserID != userID {
			return nil, types.ErrAccessDenied
		}
	}
	if err != nil {
		return nil, err
	}

	folder := &models.Folder{
		Name:       name,
		ParentID:   &parent.ID,
		UserID:     userID,
		ProviderID: providerID,
		Path:       childPath(parent.Path, name),
	}
	if err := st.CreateFolder(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// normalizePath forces a leading slash and strips any trailing one.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func childPath(parentPath, name string) string {
	if parentPath == "/" {
		return "/" + name
	}
	return parentPath + "/" + name
}
