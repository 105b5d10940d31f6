package services

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/clubworks/ledger_service/internal/dto"
)

// PaymentSvc turns normalized settled-payment notifications into balanced
// receipt journals. Replays of the same paymentIntentId are idempotent.
type PaymentSvc interface {
	// RecordSettledPayment posts the receipt journal for a settled payment.
	// Returns nil without posting when the payment status is not settled.
	RecordSettledPayment(ctx context.Context, req dto.SettledPaymentRequest) (*domain.JournalTransaction, error)
}
