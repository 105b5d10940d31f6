package services

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/clubworks/ledger_service/internal/dto"
)

// MembershipSvc assembles the membership document postings. Each returned
// transaction was posted independently under its own docNo, so a partially
// completed multi-transaction operation is safe to retry: already posted
// parts replay idempotently.
type MembershipSvc interface {
	// Invoice posts the annual fee invoice and, for a mid-year join date,
	// a pro-rata credit note under "<docNo>-PRORATA".
	Invoice(ctx context.Context, req dto.InvoiceRequest) ([]*domain.JournalTransaction, error)

	// CreditNote posts a contra-income adjustment against a member's receivable.
	CreditNote(ctx context.Context, req dto.CreditNoteRequest) (*domain.JournalTransaction, error)

	// Receipt posts unlinked money-in to a clearing account against
	// payment-on-account, with optional processor fee lines.
	Receipt(ctx context.Context, req dto.ReceiptRequest) (*domain.JournalTransaction, error)

	// ClaimApplicationCredit moves application-held credit to a member.
	ClaimApplicationCredit(ctx context.Context, req dto.ClaimRequest) (*domain.JournalTransaction, error)

	// WriteOff expenses a member's bad debt.
	WriteOff(ctx context.Context, req dto.WriteOffRequest) (*domain.JournalTransaction, error)

	// ChangeCategory re-invoices a member onto a new category mid-year.
	ChangeCategory(ctx context.Context, req dto.ChangeCategoryRequest) ([]*domain.JournalTransaction, error)

	// Settlement moves settled clearing funds into the bank account.
	Settlement(ctx context.Context, req dto.SettlementRequest) (*domain.JournalTransaction, error)
}
