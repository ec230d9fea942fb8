package services

import (
	"strings"
	"time"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
)

// SizeRange bounds file size in bytes, inclusive.
type SizeRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// DateRange bounds file creation time, inclusive.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// SearchFilters is the structured filter set for advanced search. Absent
// fields impose no constraint; provided fields are ANDed together.
type SearchFilters struct {
	Name        *string    `json:"name,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Size        *SizeRange `json:"size,omitempty"`
	DateCreated *DateRange `json:"dateCreated,omitempty"`
	Provider    *uint64    `json:"provider,omitempty"`
}

// SearchFiles is raw search: case-insensitive substring match on file name.
// Only the caller's own files are ever returned.
func SearchFiles(st storage.Storage, userID uint64, query string) ([]models.File, error) {
	files, err := st.ListFilesByUser(userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	out := []models.File{}
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			out = append(out, f)
		}
	}
	return out, nil
}

// AdvancedSearch applies every provided filter field to the caller's files.
// With no fields set it returns the full set unfiltered.
func AdvancedSearch(st storage.Storage, userID uint64, filters SearchFilters) ([]models.File, error) {
	files, err := st.ListFilesByUser(userID)
	if err != nil {
		return nil, err
	}

	out := []models.File{}
	for _, f := range files {
		if matchesFilters(f, filters) {
			out = append(out, f)
		}
	}
	return out, nil
}

func matchesFilters(f models.File, filters SearchFilters) bool {
	if filters.Name != nil {
		if !strings.Contains(strings.ToLower(f.Name), strings.ToLower(*filters.Name)) {
			return false
		}
	}

	if filters.Type != nil {
		// Substring match so "image/" matches any image subtype and bare
		// extensions like "pdf" match "application/pdf".
		if f.MimeType == nil ||
			!strings.Contains(strings.ToLower(*f.MimeType), strings.ToLower(*filters.Type)) {
			return false
		}
	}

	if filters.Size != nil {
		// A file without a known size fails any bound check.
		if f.Size == nil {
			return false
		}
		if filters.Size.Min != nil && *f.Size < *filters.Size.Min {
			return false
		}
		if filters.Size.Max != nil && *f.Size > *filters.Size.Max {
			return false
		}
	}

	if filters.DateCreated != nil {
		if filters.DateCreated.From != nil && f.CreatedAt.Before(*filters.DateCreated.From) {
			return false
		}
		if filters.DateCreated.To != nil && f.CreatedAt.After(*filters.DateCreated.To) {
			return false
		}
	}

	if filters.Provider != nil {
		if f.ProviderID == nil || *f.ProviderID != *filters.Provider {
			return false
		}
	}

	return true
}
