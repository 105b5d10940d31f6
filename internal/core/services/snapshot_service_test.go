package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/core/services"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context, snapshotType domain.SnapshotType, label string) (*domain.ReportSnapshot, error) {
	args := m.Called(ctx, snapshotType, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) InsertSnapshot(ctx context.Context, snap domain.ReportSnapshot) (*domain.ReportSnapshot, bool, error) {
	args := m.Called(ctx, snap)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ReportSnapshot), args.Bool(1), args.Error(2)
}

// --- Mock ReportingSvc ---
type MockReportingSvc struct {
	mock.Mock
}

var _ portssvc.ReportingSvc = (*MockReportingSvc)(nil)

func (m *MockReportingSvc) TrialBalance(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingSvc) IncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingSvc) MemberBalances(ctx context.Context, asOf time.Time) ([]domain.MemberBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberBalanceRow), args.Error(1)
}

func (m *MockReportingSvc) ClearingReconciliation(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClearingRow), args.Error(1)
}

func (m *MockReportingSvc) MemberStatement(ctx context.Context, memberID string, from, to *time.Time) (*domain.MemberStatement, error) {
	args := m.Called(ctx, memberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberStatement), args.Error(1)
}

func (m *MockReportingSvc) PeriodReport(ctx context.Context, start, end time.Time) (*domain.PeriodReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodReport), args.Error(1)
}

func TestMonthEnd_FirstRequestComputesAndLocks(t *testing.T) {
	repo := new(MockSnapshotRepository)
	reporting := new(MockReportingSvc)
	svc := services.NewSnapshotService(repo, reporting)

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.PeriodReport{Start: start, End: end}

	repo.On("FindSnapshot", mock.Anything, domain.SnapshotMonthEnd, "2025-08").Return(nil, apperrors.ErrNotFound).Once()
	reporting.On("PeriodReport", mock.Anything, start, end).Return(report, nil).Once()
	repo.On("InsertSnapshot", mock.Anything, mock.AnythingOfType("domain.ReportSnapshot")).
		Return(&domain.ReportSnapshot{SnapshotID: "s-1", Type: domain.SnapshotMonthEnd, Label: "2025-08"}, false, nil).
		Run(func(args mock.Arguments) {
			snap := args.Get(1).(domain.ReportSnapshot)
			assert.Equal(t, domain.SnapshotMonthEnd, snap.Type)
			assert.Equal(t, "2025-08", snap.Label)
			assert.Equal(t, start, snap.RangeStart)
			assert.Equal(t, end, snap.RangeEnd)
			assert.Equal(t, "ops", snap.LockedBy)

			var decoded domain.PeriodReport
			require.NoError(t, json.Unmarshal(snap.Data, &decoded))
			assert.Equal(t, start, decoded.Start)
		}).Once()

	snap, err := svc.MonthEnd(context.Background(), "2025-08", "ops", "august close")

	require.NoError(t, err)
	assert.Equal(t, "s-1", snap.SnapshotID)
	repo.AssertExpectations(t)
	reporting.AssertExpectations(t)
}

func TestMonthEnd_RepeatRequestNeverRecomputes(t *testing.T) {
	repo := new(MockSnapshotRepository)
	reporting := new(MockReportingSvc)
	svc := services.NewSnapshotService(repo, reporting)

	stored := &domain.ReportSnapshot{SnapshotID: "s-1", Type: domain.SnapshotMonthEnd, Label: "2025-08", Data: json.RawMessage(`{"trialBalance":[]}`)}
	repo.On("FindSnapshot", mock.Anything, domain.SnapshotMonthEnd, "2025-08").Return(stored, nil).Once()

	snap, err := svc.MonthEnd(context.Background(), "2025-08", "ops", "")

	require.NoError(t, err)
	// The stored payload comes back verbatim, even if the ledger has since changed.
	assert.Equal(t, stored, snap)
	reporting.AssertNotCalled(t, "PeriodReport", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "InsertSnapshot", mock.Anything, mock.Anything)
}

func TestMonthEnd_ConcurrentLockReturnsWinner(t *testing.T) {
	repo := new(MockSnapshotRepository)
	reporting := new(MockReportingSvc)
	svc := services.NewSnapshotService(repo, reporting)

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	winner := &domain.ReportSnapshot{SnapshotID: "s-winner", Type: domain.SnapshotMonthEnd, Label: "2025-08"}

	repo.On("FindSnapshot", mock.Anything, domain.SnapshotMonthEnd, "2025-08").Return(nil, apperrors.ErrNotFound).Once()
	reporting.On("PeriodReport", mock.Anything, start, end).Return(&domain.PeriodReport{}, nil).Once()
	repo.On("InsertSnapshot", mock.Anything, mock.AnythingOfType("domain.ReportSnapshot")).Return(winner, true, nil).Once()

	snap, err := svc.MonthEnd(context.Background(), "2025-08", "", "")

	require.NoError(t, err)
	assert.Equal(t, winner, snap)
}

func TestYearEnd_LocksCalendarYear(t *testing.T) {
	repo := new(MockSnapshotRepository)
	reporting := new(MockReportingSvc)
	svc := services.NewSnapshotService(repo, reporting)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	repo.On("FindSnapshot", mock.Anything, domain.SnapshotYearEnd, "2024").Return(nil, apperrors.ErrNotFound).Once()
	reporting.On("PeriodReport", mock.Anything, start, end).Return(&domain.PeriodReport{Start: start, End: end}, nil).Once()
	repo.On("InsertSnapshot", mock.Anything, mock.AnythingOfType("domain.ReportSnapshot")).
		Return(&domain.ReportSnapshot{SnapshotID: "s-2024"}, false, nil).Once()

	snap, err := svc.YearEnd(context.Background(), 2024, "", "")

	require.NoError(t, err)
	assert.Equal(t, "s-2024", snap.SnapshotID)
}

func TestYearEnd_RejectsImplausibleYear(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := services.NewSnapshotService(repo, new(MockReportingSvc))

	_, err := svc.YearEnd(context.Background(), 1815, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "FindSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonthEnd_ComputeFailurePropagates(t *testing.T) {
	repo := new(MockSnapshotRepository)
	reporting := new(MockReportingSvc)
	svc := services.NewSnapshotService(repo, reporting)

	repo.On("FindSnapshot", mock.Anything, domain.SnapshotMonthEnd, "2025-08").Return(nil, apperrors.ErrNotFound).Once()
	reporting.On("PeriodReport", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := svc.MonthEnd(context.Background(), "2025-08", "", "")

	require.Error(t, err)
	repo.AssertNotCalled(t, "InsertSnapshot", mock.Anything, mock.Anything)
}
