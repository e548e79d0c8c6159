package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// Result TTLs. Diff complexity is immutable once computed, so it lives the
// longest; analytics drift as new activity lands and expire sooner.
const (
	ComplexityTTL = 24 * time.Hour
	TeamTTL       = 2 * time.Hour
	EngineerTTL   = 1 * time.Hour
)

// TTLFor returns the freshness window for one cache namespace.
func TTLFor(kind schema.CacheKind) time.Duration {
	switch kind {
	case schema.ComplexityCache:
		return ComplexityTTL
	case schema.TeamCache:
		return TeamTTL
	default:
		return EngineerTTL
	}
}

// cacheEnvelope wraps a cached payload with the identity it was computed
// for. The identity fields are verified on read so a key collision or a
// scheme change can never surface someone else's result.
type cacheEnvelope struct {
	Kind      schema.CacheKind `json:"kind"`
	Project   string           `json:"project"`
	User      string           `json:"user,omitempty"`
	Timeframe schema.Timeframe `json:"timeframe,omitempty"`
	Data      json.RawMessage  `json:"data"`
}

func complexityKey(project string, iid int) string {
	return fmt.Sprintf("%s:%s:%d:-", schema.ComplexityCache, project, iid)
}

func teamKey(project string, tf schema.Timeframe) string {
	return fmt.Sprintf("%s:%s:-:%s", schema.TeamCache, project, tf)
}

func engineerKey(project, username string, tf schema.Timeframe) string {
	return fmt.Sprintf("%s:%s:%s:%s", schema.EngineerCache, project, username, tf)
}

// resultCache reads and writes versioned result envelopes through a cache
// store. Expired, mismatched or unparseable entries are treated as misses
// and evicted on the spot.
type resultCache struct {
	store contract.CacheStore
	now   func() time.Time
}

func (c *resultCache) lookup(key string, want cacheEnvelope, out any) bool {
	raw, storedAt, err := c.store.Get(key)
	if err != nil {
		return false
	}
	if c.now().Unix()-storedAt > int64(TTLFor(want.Kind).Seconds()) {
		c.evict(key)
		return false
	}
	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.evict(key)
		return false
	}
	if env.Kind != want.Kind || env.Project != want.Project ||
		env.User != want.User || env.Timeframe != want.Timeframe {
		c.evict(key)
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.evict(key)
		return false
	}
	return true
}

func (c *resultCache) save(key string, env cacheEnvelope, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	env.Data = data
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	// caching is best effort, a write failure only costs a recompute
	_ = c.store.Set(key, raw, c.now().Unix())
}

func (c *resultCache) evict(key string) {
	_ = c.store.Delete(key)
}

// ClearResults removes cached results. An empty kind clears every
// namespace; project and user narrow the sweep when set. Returns the
// number of entries removed.
func ClearResults(store contract.CacheStore, kind schema.CacheKind, project, user string) (int64, error) {
	kinds := []schema.CacheKind{kind}
	if kind == "" {
		kinds = []schema.CacheKind{schema.ComplexityCache, schema.TeamCache, schema.EngineerCache}
	}

	var removed int64
	for _, k := range kinds {
		prefix := string(k) + ":"
		if project != "" {
			prefix += project + ":"
			if user != "" && k == schema.EngineerCache {
				prefix += user + ":"
			}
		}
		n, err := store.DeletePrefix(prefix)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}
