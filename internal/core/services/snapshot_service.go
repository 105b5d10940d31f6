package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/utils/period"
)

// snapshotService locks period reports. A snapshot is computed at most once
// per (type, label); later requests return the stored payload verbatim, so
// backdated postings never change an already published period.
type snapshotService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
	reportingSvc portssvc.ReportingSvc
}

// NewSnapshotService wires the snapshot cache over the report aggregator.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepository, reportingSvc portssvc.ReportingSvc) portssvc.SnapshotSvc {
	return &snapshotService{snapshotRepo: snapshotRepo, reportingSvc: reportingSvc}
}

var _ portssvc.SnapshotSvc = (*snapshotService)(nil)

// GetOrCompute implements portssvc.SnapshotSvc. The compute function runs
// only on a miss; when two callers race on the same period, the unique
// (type, label) constraint picks a single winner and the loser re-fetches
// the winner's stored snapshot.
func (s *snapshotService) GetOrCompute(ctx context.Context, snapshotType domain.SnapshotType, label string, start, end time.Time, compute portssvc.ComputeReportFn, lockedBy, notes string) (*domain.ReportSnapshot, error) {
	existing, err := s.snapshotRepo.FindSnapshot(ctx, snapshotType, label)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up snapshot",
			slog.String("type", string(snapshotType)), slog.String("label", label))
		return nil, fmt.Errorf("failed to look up snapshot %s/%s: %w", snapshotType, label, err)
	}

	payload, err := compute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute report for %s/%s: %w", snapshotType, label, err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report for %s/%s: %w", snapshotType, label, err)
	}

	snap := domain.ReportSnapshot{
		SnapshotID:  uuid.NewString(),
		Type:        snapshotType,
		Label:       label,
		RangeStart:  start,
		RangeEnd:    end,
		Data:        data,
		LockedBy:    lockedBy,
		Notes:       notes,
		GeneratedAt: time.Now().UTC(),
	}

	stored, alreadyExists, err := s.snapshotRepo.InsertSnapshot(ctx, snap)
	if err != nil {
		s.LogError(ctx, err, "Failed to store snapshot",
			slog.String("type", string(snapshotType)), slog.String("label", label))
		return nil, fmt.Errorf("failed to store snapshot %s/%s: %w", snapshotType, label, err)
	}
	if alreadyExists {
		s.LogInfo(ctx, "Concurrent caller locked the snapshot first, returning stored version",
			slog.String("type", string(snapshotType)), slog.String("label", label))
		return stored, nil
	}

	s.LogInfo(ctx, "Snapshot locked",
		slog.String("snapshot_id", stored.SnapshotID),
		slog.String("type", string(snapshotType)),
		slog.String("label", label))
	return stored, nil
}

// MonthEnd implements portssvc.SnapshotSvc.
func (s *snapshotService) MonthEnd(ctx context.Context, periodLabel, lockedBy, notes string) (*domain.ReportSnapshot, error) {
	rng, err := period.Month(periodLabel)
	if err != nil {
		return nil, err
	}
	return s.GetOrCompute(ctx, domain.SnapshotMonthEnd, rng.Label, rng.Start, rng.End, func(ctx context.Context) (any, error) {
		return s.reportingSvc.PeriodReport(ctx, rng.Start, rng.End)
	}, lockedBy, notes)
}

// YearEnd implements portssvc.SnapshotSvc.
func (s *snapshotService) YearEnd(ctx context.Context, year int, lockedBy, notes string) (*domain.ReportSnapshot, error) {
	rng, err := period.Year(year)
	if err != nil {
		return nil, err
	}
	return s.GetOrCompute(ctx, domain.SnapshotYearEnd, rng.Label, rng.Start, rng.End, func(ctx context.Context) (any, error) {
		return s.reportingSvc.PeriodReport(ctx, rng.Start, rng.End)
	}, lockedBy, notes)
}
