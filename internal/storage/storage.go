package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys.
const (
	keyConfig      = "config"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// EngineConfig stores the operator-tunable engine defaults: the NNUE
// weights file to auto-load and the per-move time budget a line-protocol
// search falls back to when a caller never sends a stop. The
// transposition table size is not configurable here.
type EngineConfig struct {
	WeightsPath     string        `json:"weights_path"`
	DefaultMoveTime time.Duration `json:"default_move_time"`
	LastUsed        time.Time     `json:"last_used"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() *EngineConfig {
	return &EngineConfig{
		WeightsPath:     "",
		DefaultMoveTime: 30 * time.Second,
		LastUsed:        time.Now(),
	}
}

// MatchStats tracks search activity across the engine's lifetime, broken
// down by god matchup the way the teacher's GameStats breaks chess results
// down by game mode and difficulty (internal/storage/storage.go).
type MatchStats struct {
	SearchesRun      int            `json:"searches_run"`
	TotalNodes       uint64         `json:"total_nodes"`
	TotalSearchTime  time.Duration  `json:"total_search_time"`
	WinsByGodMatchup map[string]int `json:"wins_by_god_matchup"`
}

// NewMatchStats returns empty match statistics.
func NewMatchStats() *MatchStats {
	return &MatchStats{WinsByGodMatchup: make(map[string]int)}
}

// SearchResult is one completed Engine search (started by StartSearch),
// recorded by RecordSearch.
type SearchResult struct {
	GodMatchup string // e.g. "Mortal-vs-Hades"
	Won        bool
	Nodes      uint64
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage of engine configuration and
// match statistics, grounded on the teacher's BadgerDB-backed preferences
// store (internal/storage/storage.go) but carrying Santorini's domain
// types instead of chess UI preferences.
type Storage struct {
	db *badger.DB
}

// NewStorage opens (creating if needed) the engine's BadgerDB database.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if no configuration has ever been saved.
func (s *Storage) IsFirstLaunch() (bool, error) {
	var firstLaunch = true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			firstLaunch = true
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first-launch setup (e.g. weights
// auto-detection) has run once.
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SaveConfig persists cfg.
func (s *Storage) SaveConfig(cfg *EngineConfig) error {
	cfg.LastUsed = time.Now()

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyConfig), data)
	})
}

// LoadConfig loads the persisted engine configuration, or defaults if none
// has ever been saved.
func (s *Storage) LoadConfig() (*EngineConfig, error) {
	cfg := DefaultConfig()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyConfig))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, cfg)
		})
	})

	return cfg, err
}

// SaveStats persists stats.
func (s *Storage) SaveStats(stats *MatchStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads the persisted match statistics, or empty stats if none
// has ever been saved.
func (s *Storage) LoadStats() (*MatchStats, error) {
	stats := NewMatchStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordSearch records one completed search and updates statistics.
func (s *Storage) RecordSearch(result SearchResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.SearchesRun++
	stats.TotalNodes += result.Nodes
	stats.TotalSearchTime += result.Duration
	if result.Won {
		stats.WinsByGodMatchup[result.GodMatchup]++
	}

	return s.SaveStats(stats)
}
