package repositories

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// SnapshotRepository persists locked period reports.
type SnapshotRepository interface {
	// FindSnapshot retrieves the snapshot for (snapshotType, label).
	// Returns apperrors.ErrNotFound when absent.
	FindSnapshot(ctx context.Context, snapshotType domain.SnapshotType, label string) (*domain.ReportSnapshot, error)

	// InsertSnapshot persists a new snapshot. When a concurrent caller has
	// already locked the same (type, label), the stored winner is returned
	// with alreadyExists=true instead of an error.
	InsertSnapshot(ctx context.Context, snap domain.ReportSnapshot) (stored *domain.ReportSnapshot, alreadyExists bool, err error)
}
