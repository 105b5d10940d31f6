package dto

import (
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a balanced journal posting request.
type JournalLineRequest struct {
	AccountCode   string          `json:"accountCode" binding:"required"`
	Direction     string          `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	MemberID      string          `json:"memberID"`
	ApplicationID string          `json:"applicationID"`
	PeriodBucket  string          `json:"periodBucket" binding:"omitempty,oneof=arrears current advance"`
	RevenueSub    string          `json:"revenueSubType"`
	AdjSub        string          `json:"adjSubType"`
	CategoryName  string          `json:"categoryName"`
}

// ToDomain converts a request line into the persisted line shape.
func (r JournalLineRequest) ToDomain() domain.JournalLine {
	return domain.JournalLine{
		AccountCode:   r.AccountCode,
		Direction:     domain.Direction(r.Direction),
		Amount:        r.Amount,
		MemberID:      r.MemberID,
		ApplicationID: r.ApplicationID,
		PeriodBucket:  domain.PeriodBucket(r.PeriodBucket),
		RevenueSub:    r.RevenueSub,
		AdjSub:        r.AdjSub,
		CategoryName:  r.CategoryName,
	}
}

// PostJournalRequest posts an arbitrary balanced journal.
type PostJournalRequest struct {
	Date    time.Time            `json:"date" binding:"required"`
	DocType string               `json:"docType" binding:"required"`
	DocNo   string               `json:"docNo" binding:"required"`
	Memo    string               `json:"memo"`
	Lines   []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomainLines converts all request lines.
func (r PostJournalRequest) ToDomainLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = l.ToDomain()
	}
	return lines
}

// TransactionResponse is the externally visible shape of a ledger entry.
type TransactionResponse struct {
	TransactionID string               `json:"transactionID"`
	Date          time.Time            `json:"date"`
	DocType       domain.DocType       `json:"docType"`
	DocNo         string               `json:"docNo"`
	Memo          string               `json:"memo"`
	Lines         []domain.JournalLine `json:"lines"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToTransactionResponse maps a domain transaction to its response shape.
func ToTransactionResponse(txn *domain.JournalTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		DocType:       txn.DocType,
		DocNo:         txn.DocNo,
		Memo:          txn.Memo,
		Lines:         txn.Lines,
		TotalDebit:    txn.DebitTotal(),
		TotalCredit:   txn.CreditTotal(),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses maps a slice of transactions.
func ToTransactionResponses(txns []domain.JournalTransaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// ListTransactionsParams filters journal listing.
type ListTransactionsParams struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	DocType  string     `form:"docType"`
	MemberID string     `form:"memberId"`
	Limit    int        `form:"limit"`
	Skip     int        `form:"skip"`
}

// ListTransactionsResponse pages the transaction log.
type ListTransactionsResponse struct {
	Total int                   `json:"total"`
	Skip  int                   `json:"skip"`
	Limit int                   `json:"limit"`
	Items []TransactionResponse `json:"items"`
}
