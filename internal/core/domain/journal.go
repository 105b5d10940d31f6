package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a journal line is a debit or a credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// DocType classifies the business document a transaction records.
// The set is extensible; these are the ones the derived operations produce.
type DocType string

const (
	DocInvoice    DocType = "Invoice"
	DocCreditNote DocType = "CreditNote"
	DocReceipt    DocType = "Receipt"
	DocWriteOff   DocType = "WriteOff"
	DocClaim      DocType = "Claim"
	DocSettlement DocType = "Settlement"
)

// PeriodBucket is the coarse aging classification carried on member-tracked lines.
type PeriodBucket string

const (
	BucketArrears PeriodBucket = "arrears"
	BucketCurrent PeriodBucket = "current"
	BucketAdvance PeriodBucket = "advance"
)

// ApplicationMemberID derives the pseudo-member identifier used to hold funds
// for an application before a real member record exists.
func ApplicationMemberID(applicationID string) string {
	return fmt.Sprintf("app:%s", applicationID)
}

// JournalLine is the persisted shape of a single line within a transaction.
type JournalLine struct {
	LineID        string          `json:"lineID"`
	AccountCode   string          `json:"accountCode"`
	Direction     Direction       `json:"direction"`
	Amount        decimal.Decimal `json:"amount"` // non-negative, 2dp
	MemberID      string          `json:"memberID,omitempty"`
	ApplicationID string          `json:"applicationID,omitempty"`
	PeriodBucket  PeriodBucket    `json:"periodBucket,omitempty"`
	RevenueSub    string          `json:"revenueSubType,omitempty"`
	AdjSub        string          `json:"adjSubType,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
}

// EffectiveMemberID returns the member identity the line is attributed to,
// preferring a real member over an application pseudo-member.
func (l JournalLine) EffectiveMemberID() string {
	if l.MemberID != "" {
		return l.MemberID
	}
	if l.ApplicationID != "" {
		return ApplicationMemberID(l.ApplicationID)
	}
	return ""
}

// EnrichedLine is the working shape used only inside the posting engine:
// a line plus the resolved chart-of-accounts entry. It never persists.
type EnrichedLine struct {
	JournalLine
	Account Account
}

// Label renders the display label attached to enriched lines in responses.
func (l EnrichedLine) Label() string {
	return fmt.Sprintf("%s (%s)", l.AccountCode, l.Account.Description)
}

// StoredLines strips enrichment, yielding the persisted line shape.
func StoredLines(enriched []EnrichedLine) []JournalLine {
	lines := make([]JournalLine, len(enriched))
	for i, e := range enriched {
		lines[i] = e.JournalLine
	}
	return lines
}

// JournalTransaction is one immutable ledger entry: a dated, balanced set of
// at least two lines identified by its business document number. Corrections
// are posted as new reversing transactions, never as updates.
type JournalTransaction struct {
	TransactionID string        `json:"transactionID"`
	Date          time.Time     `json:"date"`
	DocType       DocType       `json:"docType"`
	DocNo         string        `json:"docNo"` // unique; the idempotency key for posting
	Memo          string        `json:"memo"`
	Lines         []JournalLine `json:"lines"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// DebitTotal sums the debit lines at 2dp.
func (t JournalTransaction) DebitTotal() decimal.Decimal {
	return lineTotal(t.Lines, Debit)
}

// CreditTotal sums the credit lines at 2dp.
func (t JournalTransaction) CreditTotal() decimal.Decimal {
	return lineTotal(t.Lines, Credit)
}

func lineTotal(lines []JournalLine, dir Direction) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Direction == dir {
			total = total.Add(l.Amount.Round(2))
		}
	}
	return total
}
