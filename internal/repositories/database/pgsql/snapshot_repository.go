package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for locked period reports.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `snapshot_id, snapshot_type, label, range_start, range_end, data, locked_by, notes, generated_at`

func scanSnapshot(row pgx.Row) (domain.ReportSnapshot, error) {
	var (
		s        domain.ReportSnapshot
		lockedBy sql.NullString
		notes    sql.NullString
	)
	err := row.Scan(
		&s.SnapshotID,
		&s.Type,
		&s.Label,
		&s.RangeStart,
		&s.RangeEnd,
		&s.Data,
		&lockedBy,
		&notes,
		&s.GeneratedAt,
	)
	s.LockedBy = lockedBy.String
	s.Notes = notes.String
	return s, err
}

// FindSnapshot retrieves the snapshot for (snapshotType, label).
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, snapshotType domain.SnapshotType, label string) (*domain.ReportSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM report_snapshots WHERE snapshot_type = $1 AND label = $2;`
	snap, err := scanSnapshot(r.Pool.QueryRow(ctx, query, snapshotType, label))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot "+string(snapshotType)+"/"+label, err)
	}
	return &snap, nil
}

// InsertSnapshot persists a new snapshot. The unique (snapshot_type, label)
// index arbitrates concurrent first-time requests: the loser re-fetches the
// winner's stored snapshot instead of surfacing an error.
func (r *PgxSnapshotRepository) InsertSnapshot(ctx context.Context, snap domain.ReportSnapshot) (*domain.ReportSnapshot, bool, error) {
	query := `
		INSERT INTO report_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		snap.SnapshotID,
		snap.Type,
		snap.Label,
		snap.RangeStart,
		snap.RangeEnd,
		snap.Data,
		nullIfEmpty(snap.LockedBy),
		nullIfEmpty(snap.Notes),
		snap.GeneratedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			stored, findErr := r.FindSnapshot(ctx, snap.Type, snap.Label)
			if findErr != nil {
				return nil, false, apperrors.NewAppError(500, "failed to fetch winning snapshot "+string(snap.Type)+"/"+snap.Label, findErr)
			}
			return stored, true, nil
		}
		return nil, false, apperrors.NewAppError(500, "failed to insert snapshot "+string(snap.Type)+"/"+snap.Label, err)
	}
	return &snap, false, nil
}
