package services

import (
	"context"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalCreatedEvent is the outbound notification emitted after a new
// transaction is persisted. Idempotent replays do not re-emit.
type JournalCreatedEvent struct {
	JournalID   string               `json:"journalId"`
	DocNo       string               `json:"docNo"`
	DocType     domain.DocType       `json:"docType"`
	Date        time.Time            `json:"date"`
	Memo        string               `json:"memo"`
	Entries     []domain.JournalLine `json:"entries"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
}

// EventPublisher is the outbound event-distribution boundary. Publishing is
// fire-and-forget from the ledger's perspective: a failure is logged by the
// caller and never fails or rolls back the posting.
type EventPublisher interface {
	PublishJournalCreated(ctx context.Context, evt JournalCreatedEvent) error
}
