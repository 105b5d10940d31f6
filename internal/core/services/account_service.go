package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
)

// accountService exposes the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService wires the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvc {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// GetAccount implements portssvc.AccountSvc.
func (s *accountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByCodes implements portssvc.AccountSvc.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to batch-resolve accounts")
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts implements portssvc.AccountSvc.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpsertAccount implements portssvc.AccountSvc.
func (s *accountService) UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	if account.Code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	switch account.AccountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.ContraIncome, domain.Expense:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, account.AccountType)
	}

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.accountRepo.UpsertAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to upsert account", slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to upsert account %s: %w", account.Code, err)
	}

	s.LogInfo(ctx, "Account upserted", slog.String("code", account.Code))
	return &account, nil
}
