package domain

import "time"

// AccountType defines the fundamental accounting type of a chart-of-accounts entry.
type AccountType string

const (
	Asset        AccountType = "Asset"
	Liability    AccountType = "Liability"
	Equity       AccountType = "Equity"
	Income       AccountType = "Income"
	ContraIncome AccountType = "ContraIncome"
	Expense      AccountType = "Expense"
)

// Well-known account codes from the seeded chart. The posting guardrails and
// the derived membership operations reference these directly; the seed
// migration is the single source of their metadata.
const (
	AccountCash             = "1100" // Cash
	AccountBank             = "1200" // Bank; only Settlement documents may touch it
	AccountVATRecoverable   = "1160" // VAT recoverable on processing fees
	AccountReceivable       = "1400" // Accounts receivable (members), member-tracked
	AccountPaymentOnAccount = "2020" // Payment on account (member credits), member-tracked
	AccountContraIncome     = "4900" // Credit notes / discounts
	AccountProcessingFees   = "5100" // Payment processing fees
	AccountWriteOffs        = "5200" // Bad debt / write-offs
)

// Account is a chart-of-accounts entry. Accounts are created and updated only
// by administrative action; the posting engine references them read-only.
type Account struct {
	Code            string      `json:"code"`
	Description     string      `json:"description"`
	AccountType     AccountType `json:"type"`
	IsCash          bool        `json:"isCash"`
	IsClearing      bool        `json:"isClearing"`
	IsMemberTracked bool        `json:"isMemberTracked"`
	IsRevenue       bool        `json:"isRevenue"`
	IsContraRevenue bool        `json:"isContraRevenue"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
