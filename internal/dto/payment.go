package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettledPaymentRequest is the normalized shape the payment-processor
// integration delivers once a payment has settled. ExtraLines carries any
// processor-specific breakdown the caller wants posted alongside; those
// lines pass through the same validation as any other journal line.
type SettledPaymentRequest struct {
	PaymentIntentID string               `json:"paymentIntentId" binding:"required"`
	Amount          decimal.Decimal      `json:"amount" binding:"required"`
	Currency        string               `json:"currency" binding:"required"`
	Status          string               `json:"status" binding:"required"`
	Provider        string               `json:"provider"`
	ClearingCode    string               `json:"clearingCode"`
	MemberID        string               `json:"memberID"`
	ApplicationID   string               `json:"applicationID"`
	SettledAt       time.Time            `json:"settledAt"`
	ExtraLines      []JournalLineRequest `json:"extraLines" binding:"omitempty,dive"`
}
