package services

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
	"github.com/clubworks/ledger_service/internal/dto"
)

// PostingSvc is the journal posting engine: the single write path into the
// ledger. Posting is idempotent per docNo.
type PostingSvc interface {
	// PostBalancedJournal validates, enriches and atomically persists a
	// balanced multi-line transaction, returning the stored record. A
	// repeated docNo returns the previously stored transaction unchanged.
	PostBalancedJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.JournalTransaction, error)
}

// JournalReaderSvc defines read operations over the transaction log.
type JournalReaderSvc interface {
	// GetTransaction retrieves a transaction with its lines by id.
	GetTransaction(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// GetTransactionByDocNo retrieves a transaction by document number.
	GetTransactionByDocNo(ctx context.Context, docNo string) (*domain.JournalTransaction, error)

	// ListTransactions pages the log newest-first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines posting and reading.
type JournalSvcFacade interface {
	PostingSvc
	JournalReaderSvc
}
