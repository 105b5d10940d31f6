package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// reportingService derives reports from the transaction log. Everything here
// is a pure read; two calls over the same committed state return the same
// rows in the same order.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalSvc    portssvc.JournalReaderSvc
}

// NewReportingService wires the report aggregator.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, journalSvc portssvc.JournalReaderSvc) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo, journalSvc: journalSvc}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// TrialBalance implements portssvc.ReportingSvc.
func (s *reportingService) TrialBalance(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.TrialBalanceData(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance")
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}
	return rows, nil
}

// IncomeStatement implements portssvc.ReportingSvc. Income and contra-income
// accumulate as credits, so their section totals flip sign from the
// debit-positive trial balance nets.
func (s *reportingService) IncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatement, error) {
	rows, err := s.TrialBalance(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stmt := &domain.IncomeStatement{
		Income:        []domain.TrialBalanceRow{},
		ContraIncome:  []domain.TrialBalanceRow{},
		Expenses:      []domain.TrialBalanceRow{},
		TotalIncome:   decimal.Zero,
		TotalContra:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range rows {
		switch row.AccountType {
		case domain.Income:
			stmt.Income = append(stmt.Income, row)
			stmt.TotalIncome = stmt.TotalIncome.Add(row.Net.Neg())
		case domain.ContraIncome:
			stmt.ContraIncome = append(stmt.ContraIncome, row)
			stmt.TotalContra = stmt.TotalContra.Add(row.Net)
		case domain.Expense:
			stmt.Expenses = append(stmt.Expenses, row)
			stmt.TotalExpenses = stmt.TotalExpenses.Add(row.Net)
		}
	}
	stmt.Profit = stmt.TotalIncome.Sub(stmt.TotalContra).Sub(stmt.TotalExpenses)
	return stmt, nil
}

// MemberBalances implements portssvc.ReportingSvc. Balances are recomputed in
// full from the log; there is no incremental running-balance state to drift.
func (s *reportingService) MemberBalances(ctx context.Context, asOf time.Time) ([]domain.MemberBalanceRow, error) {
	nets, err := s.reportingRepo.MemberAccountNets(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate member balances")
		return nil, fmt.Errorf("failed to aggregate member balances: %w", err)
	}

	byMember := make(map[string]*domain.MemberBalanceRow)
	for _, n := range nets {
		row, ok := byMember[n.MemberID]
		if !ok {
			row = &domain.MemberBalanceRow{
				MemberID: n.MemberID,
				AR:       decimal.Zero,
				POA:      decimal.Zero,
			}
			byMember[n.MemberID] = row
		}
		switch n.AccountCode {
		case domain.AccountReceivable:
			row.AR = row.AR.Add(n.Net)
		case domain.AccountPaymentOnAccount:
			// POA is a liability; a credit balance is a positive credit held.
			row.POA = row.POA.Add(n.Net.Neg())
		}
	}

	rows := make([]domain.MemberBalanceRow, 0, len(byMember))
	for _, row := range byMember {
		row.Net = row.AR.Sub(row.POA)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MemberID < rows[j].MemberID })
	return rows, nil
}

// ClearingReconciliation implements portssvc.ReportingSvc.
func (s *reportingService) ClearingReconciliation(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error) {
	rows, err := s.reportingRepo.ClearingData(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate clearing reconciliation")
		return nil, fmt.Errorf("failed to aggregate clearing reconciliation: %w", err)
	}
	return rows, nil
}

// MemberStatement implements portssvc.ReportingSvc.
func (s *reportingService) MemberStatement(ctx context.Context, memberID string, from, to *time.Time) (*domain.MemberStatement, error) {
	var txns []domain.JournalTransaction
	skip := 0
	for {
		page, err := s.journalSvc.ListTransactions(ctx, dto.ListTransactionsParams{
			From:     from,
			To:       to,
			MemberID: memberID,
			Limit:    200,
			Skip:     skip,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			txns = append(txns, domain.JournalTransaction{
				TransactionID: item.TransactionID,
				Date:          item.Date,
				DocType:       item.DocType,
				DocNo:         item.DocNo,
				Memo:          item.Memo,
				Lines:         item.Lines,
				CreatedAt:     item.CreatedAt,
			})
		}
		skip += len(page.Items)
		if skip >= page.Total || len(page.Items) == 0 {
			break
		}
	}

	// The list endpoint pages newest-first; a statement reads oldest-first.
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].CreatedAt.Before(txns[j].CreatedAt)
	})

	return &domain.MemberStatement{MemberID: memberID, Transactions: txns}, nil
}

// PeriodReport implements portssvc.ReportingSvc. The four sections are
// independent reads, fanned out concurrently.
func (s *reportingService) PeriodReport(ctx context.Context, start, end time.Time) (*domain.PeriodReport, error) {
	report := &domain.PeriodReport{Start: start, End: end}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.TrialBalance(gctx, start, end)
		report.TrialBalance = rows
		return err
	})
	g.Go(func() error {
		stmt, err := s.IncomeStatement(gctx, start, end)
		report.IncomeStatement = stmt
		return err
	})
	g.Go(func() error {
		rows, err := s.MemberBalances(gctx, end)
		report.MemberBalances = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.ClearingReconciliation(gctx, start, end)
		report.Clearing = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
