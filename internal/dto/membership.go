package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRequest raises a member's annual subscription invoice. When
// JoinDate is set mid-year, a pro-rata credit note follows the invoice.
type InvoiceRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	DocNo        string          `json:"docNo" binding:"required"`
	MemberID     string          `json:"memberID" binding:"required"`
	AnnualFee    decimal.Decimal `json:"annualFee" binding:"required"`
	IncomeCode   string          `json:"incomeCode" binding:"required"`
	CategoryName string          `json:"categoryName"`
	PeriodBucket string          `json:"periodBucket" binding:"omitempty,oneof=arrears current advance"`
	JoinDate     *time.Time      `json:"joinDate"`
}

// CreditNoteRequest reduces a member's receivable.
type CreditNoteRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	DocNo        string          `json:"docNo" binding:"required"`
	MemberID     string          `json:"memberID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PeriodBucket string          `json:"periodBucket" binding:"omitempty,oneof=arrears current advance"`
	AdjSub       string          `json:"adjSubType"`
	CategoryName string          `json:"categoryName"`
}

// ReceiptRequest records unlinked money-in against a clearing account.
// Either MemberID or ApplicationID must be present.
type ReceiptRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	DocNo         string          `json:"docNo" binding:"required"`
	MemberID      string          `json:"memberID"`
	ApplicationID string          `json:"applicationID"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ClearingCode  string          `json:"clearingCode" binding:"required"`
	PeriodBucket  string          `json:"bucket" binding:"omitempty,oneof=arrears current advance"`
	Provider      string          `json:"provider"`
}

// ClaimRequest transfers application-held credit to a real member. The
// amount is supplied explicitly by the caller.
type ClaimRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	DocNo         string          `json:"docNo" binding:"required"`
	ApplicationID string          `json:"applicationID" binding:"required"`
	MemberID      string          `json:"memberID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PeriodBucket  string          `json:"bucket" binding:"omitempty,oneof=arrears current advance"`
}

// WriteOffRequest writes off a member's bad debt.
type WriteOffRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	DocNo        string          `json:"docNo" binding:"required"`
	MemberID     string          `json:"memberID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PeriodBucket string          `json:"periodBucket" binding:"omitempty,oneof=arrears current advance"`
}

// ChangeCategoryRequest moves a member between subscription categories
// mid-year: a full invoice for the new category plus two pro-rata credit
// notes (unused old period, pre-change new period).
type ChangeCategoryRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	DocNoBase       string          `json:"docNoBase" binding:"required"`
	MemberID        string          `json:"memberID" binding:"required"`
	OldIncomeCode   string          `json:"oldIncomeCode" binding:"required"`
	OldCategoryName string          `json:"oldCategoryName"`
	OldAnnualFee    decimal.Decimal `json:"oldAnnualFee" binding:"required"`
	NewIncomeCode   string          `json:"newIncomeCode" binding:"required"`
	NewCategoryName string          `json:"newCategoryName"`
	NewAnnualFee    decimal.Decimal `json:"newAnnualFee" binding:"required"`
	ChangeDate      time.Time       `json:"changeDate" binding:"required"`
	PeriodBucket    string          `json:"periodBucket" binding:"omitempty,oneof=arrears current advance"`
}

// SettlementRequest moves settled funds from a clearing account to the bank.
type SettlementRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	DocNo        string          `json:"docNo" binding:"required"`
	ClearingCode string          `json:"clearingCode" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Memo         string          `json:"memo"`
}
