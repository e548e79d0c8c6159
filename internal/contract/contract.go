// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/reviewlens/schema"
)

// ListMROptions narrows a merge request listing call.
type ListMROptions struct {
	State        schema.MRState
	CreatedAfter string // ISO8601, empty means no lower bound
	AuthorID     int    // 0 means any author
}

// SourceClient defines the read operations needed against the review platform.
// This allows the core analysis logic to be tested without network access.
type SourceClient interface {
	// ListMergeRequests returns all merge requests for the project matching opts,
	// following pagination to exhaustion.
	ListMergeRequests(ctx context.Context, project string, opts ListMROptions) ([]schema.MergeRequest, error)

	// ListNotes returns all notes on one merge request, oldest first.
	ListNotes(ctx context.Context, project string, iid int) ([]schema.Note, error)

	// GetChanges returns the file diffs for one merge request.
	GetChanges(ctx context.Context, project string, iid int) (schema.MRChanges, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int64, error)
	Set(key string, value []byte, timestamp int64) error
	Delete(key string) error
	DeletePrefix(prefix string) (int64, error)
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
