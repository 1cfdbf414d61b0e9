package sheets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestCacheReadWrite(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "scheduler-cache-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	key := "pub-123_Teacher Contact"

	rows, ok := readCache(key)
	if ok || rows != nil {
		t.Errorf("expected readCache to fail for non-existent cache, but got success")
	}

	testRows := [][]string{{"First Name", "Last Name"}, {"Jane", "Doe"}}
	writeCache(key, testRows)

	expectedPath := filepath.Join(tempDir, ".30-day-scheduler_cache", "pub-123_Teacher%20Contact.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("expected cache file to be created at %s", expectedPath)
	}

	loaded, ok := readCache(key)
	if !ok {
		t.Fatalf("expected readCache to succeed for existing cache, but failed")
	}
	if !reflect.DeepEqual(testRows, loaded) {
		t.Errorf("loaded rows do not match written rows.\nGot: %+v\nExpected: %+v", loaded, testRows)
	}
}

func TestCacheExpiration(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	key := "expired_Signup"
	writeCache(key, [][]string{})

	cachePath, _ := getCachePath(key)
	data, _ := json.Marshal(CacheEntry{
		Timestamp: time.Now().Add(-time.Hour),
		Rows:      [][]string{{"Old"}},
	})
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.Fatalf("failed to rewrite cache file: %v", err)
	}

	if _, ok := readCache(key); ok {
		t.Errorf("expected readCache to reject an hour-old cache")
	}
}
