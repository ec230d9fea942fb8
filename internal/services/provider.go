package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/drivedeck/drivedeck/internal/models"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConnectedProvider joins a user connection with its catalog row.
type ConnectedProvider struct {
	models.UserCloudProvider
	Provider models.CloudProvider `json:"provider"`
}

// simulated quota for mocked connections: 15 GiB total, nothing used yet.
const mockQuotaBytes uint64 = 15 << 30

// ProviderCatalog lists every provider offered to users.
func ProviderCatalog(st storage.Storage) ([]models.CloudProvider, error) {
	providers, err := st.ListProviders()
	if err != nil {
		return nil, err
	}
	out := []models.CloudProvider{}
	for _, p := range providers {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// ConnectedProviders lists the caller's active provider connections joined
// with their catalog rows. Disconnected (inactive) rows are omitted.
func ConnectedProviders(st storage.Storage, userID uint64) ([]ConnectedProvider, error) {
	conns, err := st.ListUserProviders(userID)
	if err != nil {
		return nil, err
	}

	out := []ConnectedProvider{}
	for _, c := range conns {
		if !c.IsActive {
			continue
		}
		provider, err := st.GetProvider(c.ProviderID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, ConnectedProvider{UserCloudProvider: c, Provider: *provider})
	}
	return out, nil
}

// ConnectProvider connects userID to a catalog provider, minting mock OAuth
// token material and a simulated storage quota. Reconnecting updates the
// existing row rather than duplicating it.
func ConnectProvider(st storage.Storage, userID, providerID uint64, connectionInfo map[string]interface{}) (*models.UserCloudProvider, error) {
	if _, err := st.GetProvider(providerID); err != nil {
		return nil, err
	}

	access := uuid.NewString()
	refresh := uuid.NewString()
	expires := time.Now().Add(time.Hour)

	meta := map[string]interface{}{
		"storageQuota":      mockQuotaBytes,
		"storageUsed":       0,
		"storageQuotaHuman": humanize.IBytes(mockQuotaBytes),
	}
	for k, v := range connectionInfo {
		meta[k] = v
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	existing, err := st.GetUserProvider(userID, providerID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		existing.AccessToken = &access
		existing.RefreshToken = &refresh
		existing.ExpiresAt = &expires
		existing.IsActive = true
		existing.Metadata = datatypes.JSON(metaJSON)
		if err := st.UpdateUserProvider(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	conn := &models.UserCloudProvider{
		UserID:       userID,
		ProviderID:   providerID,
		AccessToken:  &access,
		RefreshToken: &refresh,
		ExpiresAt:    &expires,
		IsActive:     true,
		Metadata:     datatypes.JSON(metaJSON),
	}
	if err := st.CreateUserProvider(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// DisconnectProvider deactivates the caller's connection. The row is kept so
// a later reconnect updates instead of duplicating.
func DisconnectProvider(st storage.Storage, userID, providerID uint64) error {
	conn, err := st.GetUserProvider(userID, providerID)
	if err != nil {
		return err
	}
	conn.IsActive = false
	return st.UpdateUserProvider(conn)
}
