package sheets

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// cacheDuration keeps repeated dry runs from refetching a sheet that is still being edited
const cacheDuration = 10 * time.Minute

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Rows      [][]string `json:"rows"`
}

func getCachePath(key string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".30-day-scheduler_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	return filepath.Join(cacheDir, url.PathEscape(key)+".json"), nil
}

// readCache checks if a valid, unexpired cache exists for this sheet
func readCache(key string) ([][]string, bool) {
	path, err := getCachePath(key)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false
	}

	return entry.Rows, true
}

// writeCache saves the sheet to disk; failures only cost a refetch
func writeCache(key string, rows [][]string) {
	path, err := getCachePath(key)
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(CacheEntry{Timestamp: time.Now(), Rows: rows}, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
