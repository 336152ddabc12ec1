/**
 * @description
 * File-backed cache of sportsbook odds keyed by "player|stat type".
 * The odds sync writes this file after each pull so line comparisons
 * survive restarts and stay available when the odds feed quota is spent.
 *
 * @dependencies
 * - encoding/json
 * - os
 *
 * @notes
 * - Keys are lowercased to make lookups insensitive to feed casing.
 */

package sportsbook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Quote is one book's line for a player prop.
type Quote struct {
	Line      float64 `json:"line"`
	OverOdds  float64 `json:"over_odds"`
	UnderOdds float64 `json:"under_odds"`
}

// Entry holds the quotes for a single player + stat type across books.
type Entry struct {
	DraftKings *Quote `json:"draftkings,omitempty"`
	FanDuel    *Quote `json:"fanduel,omitempty"`
}

type cacheFile struct {
	UpdatedAt time.Time        `json:"updated_at"`
	Odds      map[string]Entry `json:"odds"`
}

// Cache is an in-memory odds table with JSON file persistence.
type Cache struct {
	path string

	mu        sync.RWMutex
	odds      map[string]Entry
	updatedAt time.Time
}

func NewCache(path string) *Cache {
	return &Cache{
		path: path,
		odds: make(map[string]Entry),
	}
}

// Key builds the lookup key for a player and stat type.
func Key(playerName, statType string) string {
	return strings.ToLower(strings.TrimSpace(playerName)) + "|" + strings.ToLower(strings.TrimSpace(statType))
}

// Load reads the cache file from disk. A missing file is not an error;
// the cache just starts empty.
func (c *Cache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read odds cache: %w", err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse odds cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Odds != nil {
		c.odds = f.Odds
	}
	c.updatedAt = f.UpdatedAt
	return nil
}

// Save writes the current table to disk atomically via a temp file rename.
func (c *Cache) Save() error {
	c.mu.RLock()
	f := cacheFile{
		UpdatedAt: c.updatedAt,
		Odds:      c.odds,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode odds cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write odds cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Replace swaps in a freshly pulled odds table and stamps it.
func (c *Cache) Replace(odds map[string]Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.odds = odds
	c.updatedAt = time.Now().UTC()
}

// Lookup returns the quotes for a player prop, if any book carries it.
func (c *Cache) Lookup(playerName, statType string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.odds[Key(playerName, statType)]
	return e, ok
}

// Len reports how many player props the cache holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.odds)
}

// UpdatedAt reports when the table was last replaced.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
