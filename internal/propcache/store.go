/**
 * @description
 * Projection snapshot store.
 * Preserves previously computed projection fields across refresh cycles so a
 * refetch that returns NULL projections never blanks values a user already
 * saw. Snapshots live in a single Redis hash keyed per prop identity
 * (external_id, else player|stat|line) with no TTL and no eviction: a
 * deliberate trade of unbounded growth for stable display values.
 *
 * The store is an explicit dependency injected into the services that need
 * it, never ambient state.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 * - backend/internal/models
 */

package propcache

import (
	"context"
	"encoding/json"

	"github.com/courtedge-project/backend/internal/logger"
	"github.com/courtedge-project/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultHashKey is the Redis hash holding all snapshots.
const DefaultHashKey = "propcache:projections:v1"

// Snapshot is the cached subset of a prop's projection fields.
type Snapshot struct {
	Projection      *float64 `json:"projection"`
	ProbabilityOver *float64 `json:"probability_over"`
	Edge            *float64 `json:"edge"`
	Confidence      *string  `json:"confidence"`
}

// Store reads and writes projection snapshots.
type Store struct {
	Redis   *redis.Client
	HashKey string
}

// NewStore returns a snapshot store over the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{Redis: rdb, HashKey: DefaultHashKey}
}

// MergeWithCache backfills projection fields on the incoming props from the
// cache, field by field: a present incoming value always wins, a missing one
// falls back to the last non-null value observed. The input slice is not
// modified; cache errors degrade to returning the input unchanged.
func (s *Store) MergeWithCache(ctx context.Context, props []models.Prop) []models.Prop {
	if len(props) == 0 {
		return props
	}

	snapshots, err := s.fetch(ctx, props)
	if err != nil {
		logger.Error("propcache: read failed, serving props unmerged: %v", err)
		return props
	}

	merged := make([]models.Prop, len(props))
	for i, p := range props {
		merged[i] = p
		snap, ok := snapshots[p.CacheKey()]
		if !ok {
			continue
		}
		if merged[i].Projection == nil {
			merged[i].Projection = snap.Projection
		}
		if merged[i].ProbabilityOver == nil {
			merged[i].ProbabilityOver = snap.ProbabilityOver
		}
		if merged[i].Edge == nil {
			merged[i].Edge = snap.Edge
		}
		if merged[i].Confidence == nil {
			merged[i].Confidence = snap.Confidence
		}
	}
	return merged
}

// UpdateFrom writes snapshots for the given props, per field preferring the
// incoming value and keeping the previously cached one where the incoming is
// null. Write errors are logged and swallowed; the cache is an optimization,
// not a system of record.
func (s *Store) UpdateFrom(ctx context.Context, props []models.Prop) {
	if len(props) == 0 {
		return
	}

	existing, err := s.fetch(ctx, props)
	if err != nil {
		logger.Error("propcache: read-before-write failed: %v", err)
		existing = map[string]Snapshot{}
	}

	pipe := s.Redis.Pipeline()
	for _, p := range props {
		key := p.CacheKey()
		snap := existing[key]
		if p.Projection != nil {
			snap.Projection = p.Projection
		}
		if p.ProbabilityOver != nil {
			snap.ProbabilityOver = p.ProbabilityOver
		}
		if p.Edge != nil {
			snap.Edge = p.Edge
		}
		if p.Confidence != nil {
			snap.Confidence = p.Confidence
		}

		data, err := json.Marshal(snap)
		if err != nil {
			logger.Error("propcache: marshal snapshot for %s: %v", key, err)
			continue
		}
		pipe.HSet(ctx, s.HashKey, key, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("propcache: write failed: %v", err)
	}
}

// fetch loads the snapshots for the props' cache keys in one HMGet.
func (s *Store) fetch(ctx context.Context, props []models.Prop) (map[string]Snapshot, error) {
	keys := make([]string, len(props))
	for i, p := range props {
		keys[i] = p.CacheKey()
	}

	values, err := s.Redis.HMGet(ctx, s.HashKey, keys...).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make(map[string]Snapshot, len(keys))
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok || str == "" {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal([]byte(str), &snap); err != nil {
			// A corrupt snapshot is dropped, not fatal.
			continue
		}
		snapshots[keys[i]] = snap
	}
	return snapshots, nil
}
