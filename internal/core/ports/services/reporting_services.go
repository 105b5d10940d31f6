package services

import (
	"context"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// ReportingSvc derives reports from the transaction log. All operations are
// read-only and re-runnable; results reflect committed state at call time.
type ReportingSvc interface {
	// TrialBalance groups ledger activity in [start, end] by account.
	TrialBalance(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error)

	// IncomeStatement rolls the trial balance up into the P&L.
	IncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatement, error)

	// MemberBalances recomputes every member's AR/POA position from the
	// full log up to asOf.
	MemberBalances(ctx context.Context, asOf time.Time) ([]domain.MemberBalanceRow, error)

	// ClearingReconciliation nets clearing-account movement over [start, end].
	ClearingReconciliation(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error)

	// MemberStatement lists a member's transactions chronologically.
	MemberStatement(ctx context.Context, memberID string, from, to *time.Time) (*domain.MemberStatement, error)

	// PeriodReport composes the full snapshot payload for [start, end].
	PeriodReport(ctx context.Context, start, end time.Time) (*domain.PeriodReport, error)
}
