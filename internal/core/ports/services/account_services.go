package services

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// AccountSvc exposes the chart of accounts. Reads serve the posting engine
// and reports; upsert is the administrative path only.
type AccountSvc interface {
	// GetAccount retrieves one chart entry by code.
	GetAccount(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes batch-resolves codes to chart entries.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpsertAccount creates or replaces a chart entry.
	UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}
