package services

import (
	"context"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// ComputeReportFn produces the payload locked into a snapshot. It is only
// invoked when no snapshot exists yet for the requested period.
type ComputeReportFn func(ctx context.Context) (any, error)

// SnapshotSvc makes period reports idempotent: the first request computes
// and locks a snapshot, every later request returns it verbatim.
type SnapshotSvc interface {
	// GetOrCompute returns the stored snapshot for (snapshotType, label),
	// computing and locking it first when absent. Concurrent first-time
	// requests resolve to a single stored snapshot.
	GetOrCompute(ctx context.Context, snapshotType domain.SnapshotType, label string, start, end time.Time, compute ComputeReportFn, lockedBy, notes string) (*domain.ReportSnapshot, error)

	// MonthEnd locks the period report for a "YYYY-MM" period.
	MonthEnd(ctx context.Context, periodLabel, lockedBy, notes string) (*domain.ReportSnapshot, error)

	// YearEnd locks the period report for a calendar year.
	YearEnd(ctx context.Context, year int, lockedBy, notes string) (*domain.ReportSnapshot, error)
}
