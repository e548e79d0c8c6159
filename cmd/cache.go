package cmd

import (
	"fmt"

	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/internal/iocache"
	"github.com/huangsam/reviewlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config
	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids project and
// token validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis result cache (reduces API calls)",
	Long: `Manage the result cache that avoids refetching merge request data.

Reviewlens caches complexity scores and analytics rollups so repeat runs
skip most API calls. Each result kind carries its own expiry: complexity
scores live for a day, team rollups for two hours, engineer reports for one.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  reviewlens cache status

  # Clear cache after history rewrites or permission changes
  reviewlens cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis results",
	Long: `Delete all cached analysis results from the configured backend.

Use this when:
- Merge request history was rewritten upstream
- Cache may be stale or corrupted
- Testing performance without cache

Without narrowing flags the whole backend is wiped:
For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

With --kind, --clear-project, or --clear-user, only matching entries
are removed and the backing table stays in place.

Examples:
  # Clear SQLite cache (default)
  reviewlens cache clear

  # Drop only stale team rollups for one project
  reviewlens cache clear --kind team --clear-project group/repo

  # Clear MySQL cache (set connection string via env variable)
  REVIEWLENS_CACHE_BACKEND=mysql REVIEWLENS_CACHE_DB_CONNECT="..." reviewlens cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		kind := viper.GetString("kind")
		project := viper.GetString("clear-project")
		user := viper.GetString("clear-user")

		switch schema.CacheKind(kind) {
		case "", schema.ComplexityCache, schema.TeamCache, schema.EngineerCache:
		default:
			contract.LogFatal("Invalid cache kind", fmt.Errorf("must be complexity, team, or engineer (received %s)", kind))
		}

		if kind == "" && project == "" && user == "" {
			if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
				contract.LogFatal("Failed to clear cache", err)
			}
			fmt.Println("Cache cleared successfully.")
			return
		}

		removed, err := core.ClearResults(iocache.Manager.GetResultStore(), schema.CacheKind(kind), project, user)
		if err != nil {
			contract.LogFatal("Failed to clear cache entries", err)
		}
		fmt.Printf("Removed %d cache entries.\n", removed)
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the result cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  reviewlens cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
