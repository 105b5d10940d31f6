package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's debit/credit activity over a date range.
// Net follows the debit-positive convention: net = debit - credit.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// IncomeStatement partitions trial balance activity into the P&L roll-up.
// Income and contra-income accumulate as credits, so their displayed totals
// are sign-flipped from the debit-positive nets.
type IncomeStatement struct {
	Income        []TrialBalanceRow `json:"income"`
	ContraIncome  []TrialBalanceRow `json:"contraIncome"`
	Expenses      []TrialBalanceRow `json:"expenses"`
	TotalIncome   decimal.Decimal   `json:"totalIncome"`
	TotalContra   decimal.Decimal   `json:"totalContraIncome"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	Profit        decimal.Decimal   `json:"profit"`
}

// MemberBalanceRow folds a member's receivable and payment-on-account
// positions into one row. Positive net means the member owes the
// organization; negative means the organization holds the member's credit.
type MemberBalanceRow struct {
	MemberID string          `json:"memberID"`
	AR       decimal.Decimal `json:"ar"`
	POA      decimal.Decimal `json:"poa"`
	Net      decimal.Decimal `json:"net"`
}

// ClearingRow is the net movement of one clearing account over a range,
// used to reconcile external settlement batches.
type ClearingRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// PeriodReport is the full payload computed for a period and locked into
// month-end and year-end snapshots.
type PeriodReport struct {
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	TrialBalance    []TrialBalanceRow  `json:"trialBalance"`
	IncomeStatement *IncomeStatement   `json:"incomeStatement"`
	MemberBalances  []MemberBalanceRow `json:"memberBalances"`
	Clearing        []ClearingRow      `json:"clearingReconciliation"`
}

// MemberStatement is a member's chronological transaction history.
type MemberStatement struct {
	MemberID     string               `json:"memberID"`
	Transactions []JournalTransaction `json:"transactions"`
}
