package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/drivedeck/drivedeck/internal/config"
	"github.com/drivedeck/drivedeck/internal/storage"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck probes the storage backend and reports service health.
func HealthCheck(cfg *config.Config, st storage.Storage) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Storage ping failed: %v", err)
		log.Printf("Health check failed - storage ping: %v", err)
	} else {
		result.Storage = "ok"
		result.Details["storage_backend"] = cfg.StorageBackend
		if cfg.StorageBackend != "memory" {
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	return result
}
