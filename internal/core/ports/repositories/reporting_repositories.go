package repositories

import (
	"context"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberAccountNet is one (member, account) group's debit-minus-credit
// position, the raw material for member balance folding.
type MemberAccountNet struct {
	MemberID    string
	AccountCode string
	Net         decimal.Decimal
}

// ReportingRepository exposes the aggregate queries reports are derived
// from. All methods are read-only over committed ledger state.
type ReportingRepository interface {
	// TrialBalanceData groups all lines dated within [start, end] by
	// account, with per-account debit/credit/net, ordered by account code.
	TrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error)

	// MemberAccountNets groups member-tracked lines dated on or before
	// asOf by (member, account code).
	MemberAccountNets(ctx context.Context, asOf time.Time) ([]MemberAccountNet, error)

	// ClearingData groups lines on clearing accounts dated within
	// [start, end], ordered by account code.
	ClearingData(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error)
}
