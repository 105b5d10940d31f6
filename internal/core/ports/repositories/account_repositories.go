package repositories

import (
	"context"

	"github.com/clubworks/ledger_service/internal/core/domain"
)

// AccountReader defines read operations against the chart of accounts.
// The posting engine only ever reads; accounts change by admin action.
type AccountReader interface {
	// FindAccountByCode retrieves a single chart-of-accounts entry.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple entries in one batch,
	// keyed by code. Missing codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the full chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines the administrative write path for the chart.
type AccountWriter interface {
	// UpsertAccount creates or replaces a chart-of-accounts entry.
	UpsertAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines chart-of-accounts repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
