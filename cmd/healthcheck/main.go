package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/drivedeck/drivedeck/internal/config"
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/utils"
)

// Probes a running server's health endpoint; intended for container
// HEALTHCHECK directives. Exits 0 when healthy, 1 otherwise.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Cheap TCP reachability check before the HTTP round trip
	if err := utils.PingService(cfg.BaseURL, 1500*time.Millisecond); err != nil {
		log.Fatalf("Server unreachable: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(cfg.BaseURL + "/api/health")
	if err != nil {
		log.Fatalf("Health request failed: %v", err)
	}
	defer resp.Body.Close()

	var result services.HealthCheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Failed to decode health check result: %v", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if resp.StatusCode != http.StatusOK || result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
