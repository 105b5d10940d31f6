package repositories

import (
	"context"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// TransactionFilter narrows ledger queries. Zero values mean "no constraint".
type TransactionFilter struct {
	From     *time.Time
	To       *time.Time
	DocType  domain.DocType
	MemberID string
	Limit    int
	Skip     int
}

// JournalReader defines read operations over the immutable transaction log.
type JournalReader interface {
	// FindTransactionByDocNo retrieves a transaction with its lines by
	// business document number. Returns apperrors.ErrNotFound when absent.
	FindTransactionByDocNo(ctx context.Context, docNo string) (*domain.JournalTransaction, error)

	// FindTransactionByID retrieves a transaction with its lines by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// ListTransactions retrieves transactions matching the filter, newest
	// first, with the total count before pagination.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.JournalTransaction, int, error)
}

// JournalWriter defines the single write operation on the ledger.
type JournalWriter interface {
	// InsertTransaction persists a transaction and its lines atomically.
	// When another writer has already persisted the same doc_no, the stored
	// winner is returned with alreadyExists=true instead of an error, so
	// callers handle the race without inspecting storage error types.
	InsertTransaction(ctx context.Context, txn domain.JournalTransaction) (stored *domain.JournalTransaction, alreadyExists bool, err error)
}

// JournalRepositoryFacade combines ledger repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
