package schema

// Custom string types for type safety.
type (
	// Timeframe represents the analysis lookback window.
	Timeframe string

	// MRState represents the lifecycle state of a merge request.
	MRState string

	// Severity represents the weight of a review-comment category.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// CacheKind tags the namespace of a cached result.
	CacheKind string
)

// All timeframes supported.
const (
	Week    Timeframe = "7d"
	Month   Timeframe = "30d" // default
	Quarter Timeframe = "90d"
)

// Days returns the number of days covered by the timeframe.
func (t Timeframe) Days() int {
	switch t {
	case Week:
		return 7
	case Quarter:
		return 90
	default:
		return 30
	}
}

// All merge request states surfaced by the platform.
const (
	OpenedState MRState = "opened"
	MergedState MRState = "merged"
	ClosedState MRState = "closed"
	AnyState    MRState = "all"
)

// All comment-category severities.
const (
	LowSeverity    Severity = "low"
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// Weight returns the penalty multiplier for the severity.
// High-severity feedback costs 3x as much as low-severity feedback.
func (s Severity) Weight() float64 {
	switch s {
	case HighSeverity:
		return 3
	case MediumSeverity:
		return 2
	default:
		return 1
	}
}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidTimeframes lists all valid analysis timeframes.
var ValidTimeframes = map[Timeframe]struct{}{
	Week:    {},
	Month:   {},
	Quarter: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Cache namespaces. Each kind has its own TTL because the underlying
// data goes stale at different rates: diffs never change after merge,
// while analytics shift as new comments and changes land.
const (
	ComplexityCache CacheKind = "complexity"
	TeamCache       CacheKind = "team"
	EngineerCache   CacheKind = "engineer"
)
