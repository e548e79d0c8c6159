// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTeam prints team analytics using the configured output format.
func (ow *OutWriter) WriteTeam(analytics schema.TeamAnalytics, cfg *contract.Config, duration time.Duration) error {
	return WriteTeamResults(analytics, cfg, duration)
}

// WriteEngineer prints an engineer report using the configured output format.
func (ow *OutWriter) WriteEngineer(report schema.EngineerReport, cfg *contract.Config, duration time.Duration) error {
	return WriteEngineerResults(report, cfg, duration)
}

// WriteDashboard prints the workload dashboard using the configured output format.
func (ow *OutWriter) WriteDashboard(data schema.DashboardData, cfg *contract.Config, duration time.Duration) error {
	return WriteDashboardResults(data, cfg, duration)
}
