package schema

import "time"

// CacheStatus summarizes the state of the result cache backend.
type CacheStatus struct {
	Backend         DatabaseBackend `json:"backend"`
	Connected       bool            `json:"connected"`
	TotalEntries    int64           `json:"total_entries"`
	LastEntryTime   *time.Time      `json:"last_entry_time"`
	OldestEntryTime *time.Time      `json:"oldest_entry_time"`
	TableSizeBytes  int64           `json:"table_size_bytes"`
}
