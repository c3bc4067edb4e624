package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "santorini-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbDir := filepath.Join(tmpDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		t.Fatalf("Failed to create db dir: %v", err)
	}

	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.WeightsPath != "" {
			t.Errorf("expected empty default weights path, got %q", cfg.WeightsPath)
		}
		if cfg.DefaultMoveTime != 30*time.Second {
			t.Errorf("expected 30s default move time, got %v", cfg.DefaultMoveTime)
		}
	})

	t.Run("NewMatchStats", func(t *testing.T) {
		stats := NewMatchStats()
		if stats.SearchesRun != 0 {
			t.Errorf("expected 0 searches run")
		}
		if stats.WinsByGodMatchup == nil {
			t.Errorf("expected non-nil WinsByGodMatchup map")
		}
	})

	t.Run("MatchStatsAccumulates", func(t *testing.T) {
		stats := NewMatchStats()
		stats.SearchesRun++
		stats.TotalNodes += 1000
		stats.TotalSearchTime += time.Second
		stats.WinsByGodMatchup["Mortal-vs-Hades"]++

		if stats.TotalNodes != 1000 {
			t.Errorf("expected 1000 total nodes, got %d", stats.TotalNodes)
		}
		if stats.WinsByGodMatchup["Mortal-vs-Hades"] != 1 {
			t.Errorf("expected 1 win for Mortal-vs-Hades")
		}
	})
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
