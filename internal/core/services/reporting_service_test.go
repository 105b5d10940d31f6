package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	"github.com/clubworks/ledger_service/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) MemberAccountNets(ctx context.Context, asOf time.Time) ([]portsrepo.MemberAccountNet, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.MemberAccountNet), args.Error(1)
}

func (m *MockReportingRepository) ClearingData(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClearingRow), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	reportStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reportEnd   = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

// A year of activity: an invoice of 1200, a 100 credit note, 0 expenses paid.
func sampleTrialBalance() []domain.TrialBalanceRow {
	return []domain.TrialBalanceRow{
		{AccountCode: "1400", AccountName: "Accounts receivable (Members)", AccountType: domain.Asset, Debit: dec("1200.00"), Credit: dec("100.00"), Net: dec("1100.00")},
		{AccountCode: "4000", AccountName: "Subscription income", AccountType: domain.Income, Debit: dec("0.00"), Credit: dec("1200.00"), Net: dec("-1200.00")},
		{AccountCode: "4900", AccountName: "Credit Notes / Discounts", AccountType: domain.ContraIncome, Debit: dec("100.00"), Credit: dec("0.00"), Net: dec("100.00")},
	}
}

func TestIncomeStatement_SignFlipAndProfit(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, nil)

	repo.On("TrialBalanceData", mock.Anything, reportStart, reportEnd).Return(sampleTrialBalance(), nil).Once()

	stmt, err := svc.IncomeStatement(context.Background(), reportStart, reportEnd)

	require.NoError(t, err)
	require.Len(t, stmt.Income, 1)
	require.Len(t, stmt.ContraIncome, 1)
	assert.Empty(t, stmt.Expenses)

	// Income accumulates as credits, so the displayed total flips sign.
	assert.Equal(t, "1200.00", stmt.TotalIncome.StringFixed(2))
	assert.Equal(t, "100.00", stmt.TotalContra.StringFixed(2))
	assert.Equal(t, "0.00", stmt.TotalExpenses.StringFixed(2))
	assert.Equal(t, "1100.00", stmt.Profit.StringFixed(2))
}

func TestIncomeStatement_Deterministic(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, nil)

	repo.On("TrialBalanceData", mock.Anything, reportStart, reportEnd).Return(sampleTrialBalance(), nil).Twice()

	first, err := svc.IncomeStatement(context.Background(), reportStart, reportEnd)
	require.NoError(t, err)
	second, err := svc.IncomeStatement(context.Background(), reportStart, reportEnd)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMemberBalances_FoldsARAndPOA(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, nil)

	asOf := reportEnd
	repo.On("MemberAccountNets", mock.Anything, asOf).Return([]portsrepo.MemberAccountNet{
		{MemberID: "M-1", AccountCode: domain.AccountReceivable, Net: dec("1100.00")},
		{MemberID: "M-1", AccountCode: domain.AccountPaymentOnAccount, Net: dec("-200.00")},
		{MemberID: "app:A-7", AccountCode: domain.AccountPaymentOnAccount, Net: dec("-40.00")},
	}, nil).Once()

	rows, err := svc.MemberBalances(context.Background(), asOf)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by member id: "M-1" then "app:A-7".
	m1 := rows[0]
	assert.Equal(t, "M-1", m1.MemberID)
	assert.Equal(t, "1100.00", m1.AR.StringFixed(2))
	assert.Equal(t, "200.00", m1.POA.StringFixed(2))
	assert.Equal(t, "900.00", m1.Net.StringFixed(2))

	app := rows[1]
	assert.Equal(t, "app:A-7", app.MemberID)
	assert.Equal(t, "0.00", app.AR.StringFixed(2))
	assert.Equal(t, "40.00", app.POA.StringFixed(2))
	assert.Equal(t, "-40.00", app.Net.StringFixed(2))
}

func TestPeriodReport_ComposesAllSections(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, nil)

	repo.On("TrialBalanceData", mock.Anything, reportStart, reportEnd).Return(sampleTrialBalance(), nil).Twice()
	repo.On("MemberAccountNets", mock.Anything, reportEnd).Return([]portsrepo.MemberAccountNet{
		{MemberID: "M-1", AccountCode: domain.AccountReceivable, Net: dec("1100.00")},
	}, nil).Once()
	repo.On("ClearingData", mock.Anything, reportStart, reportEnd).Return([]domain.ClearingRow{
		{AccountCode: "1220", AccountName: "Card gateway clearing", Debit: dec("100.00"), Credit: dec("100.00"), Net: dec("0.00")},
	}, nil).Once()

	report, err := svc.PeriodReport(context.Background(), reportStart, reportEnd)

	require.NoError(t, err)
	assert.Equal(t, reportStart, report.Start)
	assert.Equal(t, reportEnd, report.End)
	assert.Len(t, report.TrialBalance, 3)
	require.NotNil(t, report.IncomeStatement)
	assert.Equal(t, "1100.00", report.IncomeStatement.Profit.StringFixed(2))
	assert.Len(t, report.MemberBalances, 1)
	assert.Len(t, report.Clearing, 1)
	repo.AssertExpectations(t)
}
