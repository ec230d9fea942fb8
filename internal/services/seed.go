package services

import (
	"errors"
	"log"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// SeedDemoData installs the provider catalog and the deterministic demo
// account (demo / password123). Safe to call on every boot: it is a no-op
// when the demo user already exists.
func SeedDemoData(st storage.Storage) error {
	if err := seedCatalog(st); err != nil {
		return err
	}

	if _, err := st.GetUserByUsername("demo"); err == nil {
		return nil
	} else if !errors.Is(err, types.ErrNotFound) {
		return err
	}

	user, err := Signup(st, SignupInput{
		Username: "demo",
		Password: "password123",
		Email:    "demo@drivedeck.dev",
		FullName: strPtr("Demo User"),
	})
	if err != nil {
		return err
	}

	work, err := CreateFolder(st, user.ID, "Work Projects", nil, nil)
	if err != nil {
		return err
	}
	if _, err := CreateFolder(st, user.ID, "Reports", &work.ID, nil); err != nil {
		return err
	}
	personal, err := CreateFolder(st, user.ID, "Personal", nil, nil)
	if err != nil {
		return err
	}

	providers, err := st.ListProviders()
	if err != nil {
		return err
	}
	// Connect the first two catalog providers for the demo account.
	var connected []uint64
	for _, p := range providers {
		if len(connected) == 2 {
			break
		}
		if _, err := ConnectProvider(st, user.ID, p.ID, nil); err != nil {
			return err
		}
		connected = append(connected, p.ID)
	}

	var total uint64
	count := 0
	seedFile := func(in UploadInput) error {
		f, err := RegisterUpload(st, user.ID, in)
		if err != nil {
			return err
		}
		if f.Size != nil {
			total += uint64(*f.Size)
		}
		count++
		return nil
	}

	localFiles := []UploadInput{
		{Name: "Q3 Budget.xlsx", MimeType: strPtr("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"), Size: i64Ptr(48_312), FolderID: &work.ID, Tags: []string{"finance"}},
		{Name: "Roadmap.pdf", MimeType: strPtr("application/pdf"), Size: i64Ptr(2_481_152), FolderID: &work.ID, Tags: []string{"planning", "pdf"}},
		{Name: "vacation.jpg", MimeType: strPtr("image/jpeg"), Size: i64Ptr(3_145_728), FolderID: &personal.ID},
		{Name: "notes.txt", MimeType: strPtr("text/plain"), Size: i64Ptr(1_024)},
	}
	for _, in := range localFiles {
		if err := seedFile(in); err != nil {
			return err
		}
	}

	// Provider-scoped files carry namespace paths with nested directories so
	// the provider browser has virtual folders to show.
	if len(connected) > 0 {
		pid := connected[0]
		providerFiles := []UploadInput{
			{Name: "db-dump.sql", MimeType: strPtr("application/sql"), Size: i64Ptr(52_428_800), ProviderID: &pid, ExternalID: strPtr(uuid.NewString()), Path: "/backups/2025/db-dump.sql"},
			{Name: "app-logs.tar.gz", MimeType: strPtr("application/gzip"), Size: i64Ptr(10_485_760), ProviderID: &pid, ExternalID: strPtr(uuid.NewString()), Path: "/backups/2025/app-logs.tar.gz"},
			{Name: "readme.txt", MimeType: strPtr("text/plain"), Size: i64Ptr(512), ProviderID: &pid, ExternalID: strPtr(uuid.NewString()), Path: "/readme.txt"},
		}
		for _, in := range providerFiles {
			if err := seedFile(in); err != nil {
				return err
			}
		}
	}
	if len(connected) > 1 {
		pid := connected[1]
		if err := seedFile(UploadInput{
			Name: "holiday.png", MimeType: strPtr("image/png"), Size: i64Ptr(4_194_304),
			ProviderID: &pid, ExternalID: strPtr(uuid.NewString()), Path: "/media/holiday.png",
		}); err != nil {
			return err
		}
	}

	log.Printf("Seeded demo account %q: %d files, %s", user.Username, count, humanize.IBytes(total))
	return nil
}

func seedCatalog(st storage.Storage) error {
	existing, err := st.ListProviders()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := []models.CloudProvider{
		{Name: "Google Cloud Storage", Type: "gcp", Icon: strPtr("gcp.svg"), IsActive: true},
		{Name: "Amazon S3", Type: "aws", Icon: strPtr("aws.svg"), IsActive: true},
		{Name: "Azure Blob Storage", Type: "azure", Icon: strPtr("azure.svg"), IsActive: true},
		{Name: "Dropbox", Type: "dropbox", Icon: strPtr("dropbox.svg"), IsActive: false},
	}
	for i := range catalog {
		if err := st.CreateProvider(&catalog[i]); err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }
