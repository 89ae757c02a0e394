package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultStorageCollection = "matches"
	defaultMaxSavedMatches   = 50
	defaultListPageSize      = 100
)

// GameConfig holds the tunables of the match save service.
type GameConfig struct {
	// StorageCollection is the Nakama storage collection saved matches live in.
	StorageCollection string `json:"storage_collection"`
	// MaxSavedMatches caps how many matches one user may keep.
	MaxSavedMatches int `json:"max_saved_matches"`
	// ListPageSize is the page size used when listing storage objects.
	ListPageSize int `json:"list_page_size"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, nil until loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetStorageCollection returns the configured collection or the default.
func GetStorageCollection() string {
	if cfg == nil || cfg.StorageCollection == "" {
		return defaultStorageCollection
	}
	return cfg.StorageCollection
}

// GetMaxSavedMatches returns the per-user saved match limit.
func GetMaxSavedMatches() int {
	if cfg == nil || cfg.MaxSavedMatches <= 0 {
		return defaultMaxSavedMatches
	}
	return cfg.MaxSavedMatches
}

// GetListPageSize returns the storage listing page size, capped at Nakama's limit of 100.
func GetListPageSize() int {
	if cfg == nil || cfg.ListPageSize <= 0 || cfg.ListPageSize > defaultListPageSize {
		return defaultListPageSize
	}
	return cfg.ListPageSize
}
