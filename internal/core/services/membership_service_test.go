package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/core/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// recordingPostingSvc captures every posting request and echoes it back as a
// stored transaction, so tests can inspect the assembled documents.
type recordingPostingSvc struct {
	requests []dto.PostJournalRequest
}

var _ portssvc.PostingSvc = (*recordingPostingSvc)(nil)

func (r *recordingPostingSvc) PostBalancedJournal(_ context.Context, req dto.PostJournalRequest) (*domain.JournalTransaction, error) {
	r.requests = append(r.requests, req)
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = l.ToDomain()
	}
	return &domain.JournalTransaction{
		TransactionID: "t-" + req.DocNo,
		Date:          req.Date,
		DocType:       domain.DocType(req.DocType),
		DocNo:         req.DocNo,
		Memo:          req.Memo,
		Lines:         lines,
	}, nil
}

func lineAmounts(req dto.PostJournalRequest) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range req.Lines {
		if l.Direction == "DEBIT" {
			debits = debits.Add(l.Amount.Round(2))
		} else {
			credits = credits.Add(l.Amount.Round(2))
		}
	}
	return debits, credits
}

func TestInvoice_WithoutJoinDatePostsSingleJournal(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	txns, err := svc.Invoice(context.Background(), dto.InvoiceRequest{
		Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DocNo:      "INV-1",
		MemberID:   "M-1",
		AnnualFee:  decimal.NewFromInt(365),
		IncomeCode: "4000",
	})

	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Len(t, posting.requests, 1)

	req := posting.requests[0]
	assert.Equal(t, string(domain.DocInvoice), req.DocType)
	assert.Equal(t, domain.AccountReceivable, req.Lines[0].AccountCode)
	assert.Equal(t, "M-1", req.Lines[0].MemberID)
	assert.Equal(t, "current", req.Lines[0].PeriodBucket)
	assert.Equal(t, "4000", req.Lines[1].AccountCode)
	assert.Equal(t, "subscription", req.Lines[1].RevenueSub)
}

func TestInvoice_MidYearJoinAddsProRataCreditNote(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	// 2025 has 365 days; joining July 4 leaves Jan 1..Jul 3 = 184 days unused.
	joinDate := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	txns, err := svc.Invoice(context.Background(), dto.InvoiceRequest{
		Date:       time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		DocNo:      "INV-2",
		MemberID:   "M-2",
		AnnualFee:  decimal.NewFromInt(100),
		IncomeCode: "4000",
		JoinDate:   &joinDate,
	})

	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Len(t, posting.requests, 2)

	creditNote := posting.requests[1]
	assert.Equal(t, "INV-2-PRORATA", creditNote.DocNo)
	assert.Equal(t, string(domain.DocCreditNote), creditNote.DocType)
	assert.Equal(t, domain.AccountContraIncome, creditNote.Lines[0].AccountCode)
	assert.Equal(t, "prorata", creditNote.Lines[0].AdjSub)
	assert.Equal(t, domain.AccountReceivable, creditNote.Lines[1].AccountCode)
	// 100 * 184/365 = 50.4109... rounds to 50.41
	assert.Equal(t, "50.41", creditNote.Lines[0].Amount.StringFixed(2))
}

func TestInvoice_JanuaryFirstJoinEarnsNoCredit(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	joinDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	txns, err := svc.Invoice(context.Background(), dto.InvoiceRequest{
		Date:       joinDate,
		DocNo:      "INV-3",
		MemberID:   "M-3",
		AnnualFee:  decimal.NewFromInt(100),
		IncomeCode: "4000",
		JoinDate:   &joinDate,
	})

	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Len(t, posting.requests, 1)
}

func TestReceipt_StripeBreaksFeeOutOfClearing(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.Receipt(context.Background(), dto.ReceiptRequest{
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		DocNo:        "RCT-1",
		MemberID:     "M-1",
		Amount:       decimal.NewFromInt(100),
		ClearingCode: "1220",
		Provider:     "stripe",
	})

	require.NoError(t, err)
	require.Len(t, posting.requests, 1)

	req := posting.requests[0]
	require.Len(t, req.Lines, 5)
	// Gross receipt legs.
	assert.Equal(t, "1220", req.Lines[0].AccountCode)
	assert.Equal(t, domain.AccountPaymentOnAccount, req.Lines[1].AccountCode)
	// Fee legs: 1.4% of 100 + 0.25 = 1.65, VAT 23% = 0.38, total 2.03.
	assert.Equal(t, domain.AccountProcessingFees, req.Lines[2].AccountCode)
	assert.Equal(t, "1.65", req.Lines[2].Amount.StringFixed(2))
	assert.Equal(t, domain.AccountVATRecoverable, req.Lines[3].AccountCode)
	assert.Equal(t, "0.38", req.Lines[3].Amount.StringFixed(2))
	assert.Equal(t, "1220", req.Lines[4].AccountCode)
	assert.Equal(t, "2.03", req.Lines[4].Amount.StringFixed(2))

	debits, credits := lineAmounts(req)
	assert.True(t, debits.Equal(credits), "receipt with fees must balance")
}

func TestReceipt_ApplicationHeldFunds(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.Receipt(context.Background(), dto.ReceiptRequest{
		Date:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		DocNo:         "RCT-2",
		ApplicationID: "A-9",
		Amount:        decimal.NewFromInt(40),
		ClearingCode:  "1210",
	})

	require.NoError(t, err)
	req := posting.requests[0]
	require.Len(t, req.Lines, 2)
	assert.Equal(t, "A-9", req.Lines[1].ApplicationID)
	assert.Empty(t, req.Lines[1].MemberID)
}

func TestReceipt_RequiresSomeIdentity(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.Receipt(context.Background(), dto.ReceiptRequest{
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		DocNo:        "RCT-3",
		Amount:       decimal.NewFromInt(40),
		ClearingCode: "1210",
	})

	require.Error(t, err)
	assert.Empty(t, posting.requests)
}

func TestClaim_MovesCreditBetweenPOALegs(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.ClaimApplicationCredit(context.Background(), dto.ClaimRequest{
		Date:          time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		DocNo:         "CLM-1",
		ApplicationID: "A-9",
		MemberID:      "M-9",
		Amount:        decimal.NewFromInt(40),
	})

	require.NoError(t, err)
	req := posting.requests[0]
	require.Len(t, req.Lines, 2)
	assert.Equal(t, domain.AccountPaymentOnAccount, req.Lines[0].AccountCode)
	assert.Equal(t, "A-9", req.Lines[0].ApplicationID)
	assert.Equal(t, "DEBIT", req.Lines[0].Direction)
	assert.Equal(t, domain.AccountPaymentOnAccount, req.Lines[1].AccountCode)
	assert.Equal(t, "M-9", req.Lines[1].MemberID)
	assert.Equal(t, "CREDIT", req.Lines[1].Direction)
}

func TestWriteOff_ExpensesReceivable(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.WriteOff(context.Background(), dto.WriteOffRequest{
		Date:     time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
		DocNo:    "WO-1",
		MemberID: "M-5",
		Amount:   decimal.NewFromFloat(12.50),
	})

	require.NoError(t, err)
	req := posting.requests[0]
	assert.Equal(t, string(domain.DocWriteOff), req.DocType)
	assert.Equal(t, domain.AccountWriteOffs, req.Lines[0].AccountCode)
	assert.Equal(t, domain.AccountReceivable, req.Lines[1].AccountCode)
	assert.Equal(t, "M-5", req.Lines[1].MemberID)
}

func TestChangeCategory_PostsInvoiceAndTwoCredits(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	txns, err := svc.ChangeCategory(context.Background(), dto.ChangeCategoryRequest{
		Date:            time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DocNoBase:       "CHG-1",
		MemberID:        "M-1",
		OldIncomeCode:   "4000",
		OldCategoryName: "General",
		OldAnnualFee:    decimal.NewFromInt(365),
		NewIncomeCode:   "4090",
		NewCategoryName: "Student",
		NewAnnualFee:    decimal.NewFromInt(73),
		ChangeDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, txns, 3)
	require.Len(t, posting.requests, 3)

	assert.Equal(t, "CHG-1-INVNEW", posting.requests[0].DocNo)
	assert.Equal(t, "CHG-1-COLD", posting.requests[1].DocNo)
	assert.Equal(t, "CHG-1-CNEW", posting.requests[2].DocNo)

	// Old fee 365 over Jul 1..Dec 31 (184 days of 365) credits 184.00.
	assert.Equal(t, "184.00", posting.requests[1].Lines[0].Amount.StringFixed(2))
	// New fee 73 over Jan 1..Jun 30 (181 days of 365) credits 36.20.
	assert.Equal(t, "36.20", posting.requests[2].Lines[0].Amount.StringFixed(2))

	assert.Equal(t, "category-change", posting.requests[1].Lines[0].AdjSub)
	assert.Equal(t, "General", posting.requests[1].Lines[0].CategoryName)
	assert.Equal(t, "Student", posting.requests[2].Lines[0].CategoryName)
}

func TestSettlement_MovesClearingToBank(t *testing.T) {
	posting := &recordingPostingSvc{}
	svc := services.NewMembershipService(posting)

	_, err := svc.Settlement(context.Background(), dto.SettlementRequest{
		Date:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		DocNo:        "SET-1",
		ClearingCode: "1220",
		Amount:       decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	req := posting.requests[0]
	assert.Equal(t, string(domain.DocSettlement), req.DocType)
	assert.Equal(t, domain.AccountBank, req.Lines[0].AccountCode)
	assert.Equal(t, "DEBIT", req.Lines[0].Direction)
	assert.Equal(t, "1220", req.Lines[1].AccountCode)
	assert.Equal(t, "CREDIT", req.Lines[1].Direction)
}
