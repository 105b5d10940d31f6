package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
	"github.com/clubworks/ledger_service/internal/utils/fees"
	"github.com/clubworks/ledger_service/internal/utils/prorata"
)

// membershipService assembles membership documents into balanced journals and
// posts each one through the posting engine. It holds no storage of its own.
type membershipService struct {
	BaseService
	posting portssvc.PostingSvc
}

// NewMembershipService wires the document assembly over the posting engine.
func NewMembershipService(posting portssvc.PostingSvc) portssvc.MembershipSvc {
	return &membershipService{posting: posting}
}

var _ portssvc.MembershipSvc = (*membershipService)(nil)

func bucketOrCurrent(bucket string) string {
	if bucket == "" {
		return string(domain.BucketCurrent)
	}
	return bucket
}

// Invoice raises the annual fee against the member's receivable. A mid-year
// join date additionally posts a pro-rata credit note under "<docNo>-PRORATA"
// covering the pre-join portion of the year.
func (s *membershipService) Invoice(ctx context.Context, req dto.InvoiceRequest) ([]*domain.JournalTransaction, error) {
	bucket := bucketOrCurrent(req.PeriodBucket)

	invoice := dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocInvoice),
		DocNo:   req.DocNo,
		Memo:    fmt.Sprintf("Annual subscription invoice for member %s", req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode:  domain.AccountReceivable,
				Direction:    string(domain.Debit),
				Amount:       req.AnnualFee,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
			{
				AccountCode:  req.IncomeCode,
				Direction:    string(domain.Credit),
				Amount:       req.AnnualFee,
				RevenueSub:   "subscription",
				CategoryName: req.CategoryName,
			},
		},
	}

	posted, err := s.posting.PostBalancedJournal(ctx, invoice)
	if err != nil {
		return nil, err
	}
	result := []*domain.JournalTransaction{posted}

	creditAmount, ok, err := s.preJoinCredit(req)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, nil
	}

	creditNote := dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocCreditNote),
		DocNo:   req.DocNo + "-PRORATA",
		Memo:    fmt.Sprintf("Pro-rata credit for pre-join period, member %s", req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode:  domain.AccountContraIncome,
				Direction:    string(domain.Debit),
				Amount:       creditAmount,
				AdjSub:       "prorata",
				CategoryName: req.CategoryName,
			},
			{
				AccountCode:  domain.AccountReceivable,
				Direction:    string(domain.Credit),
				Amount:       creditAmount,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
		},
	}

	postedCN, err := s.posting.PostBalancedJournal(ctx, creditNote)
	if err != nil {
		// The invoice already stands; a retry replays it idempotently and
		// then re-attempts this credit note.
		s.LogError(ctx, err, "Invoice posted but pro-rata credit note failed",
			slog.String("doc_no", req.DocNo))
		return result, err
	}
	return append(result, postedCN), nil
}

// preJoinCredit computes the pro-rata credit for the part of the year before
// the join date. Joining on or before January 1 earns no credit.
func (s *membershipService) preJoinCredit(req dto.InvoiceRequest) (decimal.Decimal, bool, error) {
	if req.JoinDate == nil {
		return decimal.Zero, false, nil
	}
	join := *req.JoinDate
	yearStart := prorata.YearStart(join)
	dayBefore := join.AddDate(0, 0, -1)
	if dayBefore.Before(yearStart) {
		return decimal.Zero, false, nil
	}
	amount, err := prorata.ForPeriod(req.AnnualFee, yearStart, dayBefore)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: join date: %v", apperrors.ErrValidation, err)
	}
	if amount.IsZero() {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// CreditNote posts a contra-income adjustment against the member's receivable.
func (s *membershipService) CreditNote(ctx context.Context, req dto.CreditNoteRequest) (*domain.JournalTransaction, error) {
	bucket := bucketOrCurrent(req.PeriodBucket)
	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocCreditNote),
		DocNo:   req.DocNo,
		Memo:    fmt.Sprintf("Credit note for member %s", req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode:  domain.AccountContraIncome,
				Direction:    string(domain.Debit),
				Amount:       req.Amount,
				AdjSub:       req.AdjSub,
				CategoryName: req.CategoryName,
			},
			{
				AccountCode:  domain.AccountReceivable,
				Direction:    string(domain.Credit),
				Amount:       req.Amount,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
		},
	})
}

// Receipt records gross money-in on a clearing account against payment on
// account. Stripe receipts also break the processor fee out of the clearing
// balance into the fee expense and recoverable VAT accounts.
func (s *membershipService) Receipt(ctx context.Context, req dto.ReceiptRequest) (*domain.JournalTransaction, error) {
	if req.MemberID == "" && req.ApplicationID == "" {
		return nil, fmt.Errorf("%w: receipt requires a memberID or applicationID", apperrors.ErrValidation)
	}
	bucket := bucketOrCurrent(req.PeriodBucket)

	lines := []dto.JournalLineRequest{
		{
			AccountCode: req.ClearingCode,
			Direction:   string(domain.Debit),
			Amount:      req.Amount,
		},
		{
			AccountCode:   domain.AccountPaymentOnAccount,
			Direction:     string(domain.Credit),
			Amount:        req.Amount,
			MemberID:      req.MemberID,
			ApplicationID: req.ApplicationID,
			PeriodBucket:  bucket,
		},
	}

	if req.Provider == "stripe" {
		fee := fees.StripeBreakdown(req.Amount)
		lines = append(lines,
			dto.JournalLineRequest{
				AccountCode: domain.AccountProcessingFees,
				Direction:   string(domain.Debit),
				Amount:      fee.FeeNoVAT,
			},
			dto.JournalLineRequest{
				AccountCode: domain.AccountVATRecoverable,
				Direction:   string(domain.Debit),
				Amount:      fee.FeeVAT,
			},
			dto.JournalLineRequest{
				AccountCode: req.ClearingCode,
				Direction:   string(domain.Credit),
				Amount:      fee.FeeTotal,
			},
		)
	}

	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocReceipt),
		DocNo:   req.DocNo,
		Memo:    "Receipt on account",
		Lines:   lines,
	})
}

// ClaimApplicationCredit moves credit held under the application pseudo-member
// onto the real member, both legs on payment on account.
func (s *membershipService) ClaimApplicationCredit(ctx context.Context, req dto.ClaimRequest) (*domain.JournalTransaction, error) {
	bucket := bucketOrCurrent(req.PeriodBucket)
	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocClaim),
		DocNo:   req.DocNo,
		Memo:    fmt.Sprintf("Claim application credit %s for member %s", req.ApplicationID, req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode:   domain.AccountPaymentOnAccount,
				Direction:     string(domain.Debit),
				Amount:        req.Amount,
				ApplicationID: req.ApplicationID,
				PeriodBucket:  bucket,
			},
			{
				AccountCode:  domain.AccountPaymentOnAccount,
				Direction:    string(domain.Credit),
				Amount:       req.Amount,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
		},
	})
}

// WriteOff expenses a member's uncollectable receivable.
func (s *membershipService) WriteOff(ctx context.Context, req dto.WriteOffRequest) (*domain.JournalTransaction, error) {
	bucket := bucketOrCurrent(req.PeriodBucket)
	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocWriteOff),
		DocNo:   req.DocNo,
		Memo:    fmt.Sprintf("Write off bad debt for member %s", req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode: domain.AccountWriteOffs,
				Direction:   string(domain.Debit),
				Amount:      req.Amount,
			},
			{
				AccountCode:  domain.AccountReceivable,
				Direction:    string(domain.Credit),
				Amount:       req.Amount,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
		},
	})
}

// ChangeCategory moves a member onto a new subscription category mid-year.
// Three independent postings result:
//
//	<base>-INVNEW  full-year invoice at the new category fee
//	<base>-COLD    credit for the unused part of the old category year
//	<base>-CNEW    credit for the pre-change part of the new category year
//
// Each posting is idempotent under its own docNo, so a failed step can be
// retried without double-charging the earlier steps.
func (s *membershipService) ChangeCategory(ctx context.Context, req dto.ChangeCategoryRequest) ([]*domain.JournalTransaction, error) {
	bucket := bucketOrCurrent(req.PeriodBucket)
	change := req.ChangeDate

	oldUnused, err := prorata.ForPeriod(req.OldAnnualFee, change, prorata.YearEnd(change))
	if err != nil {
		return nil, fmt.Errorf("%w: change date: %v", apperrors.ErrValidation, err)
	}

	var newPreChange decimal.Decimal
	dayBefore := change.AddDate(0, 0, -1)
	if !dayBefore.Before(prorata.YearStart(change)) {
		newPreChange, err = prorata.ForPeriod(req.NewAnnualFee, prorata.YearStart(change), dayBefore)
		if err != nil {
			return nil, fmt.Errorf("%w: change date: %v", apperrors.ErrValidation, err)
		}
	}

	var posted []*domain.JournalTransaction

	invoice, err := s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocInvoice),
		DocNo:   req.DocNoBase + "-INVNEW",
		Memo:    fmt.Sprintf("Category change invoice (%s) for member %s", req.NewCategoryName, req.MemberID),
		Lines: []dto.JournalLineRequest{
			{
				AccountCode:  domain.AccountReceivable,
				Direction:    string(domain.Debit),
				Amount:       req.NewAnnualFee,
				MemberID:     req.MemberID,
				PeriodBucket: bucket,
			},
			{
				AccountCode:  req.NewIncomeCode,
				Direction:    string(domain.Credit),
				Amount:       req.NewAnnualFee,
				RevenueSub:   "subscription",
				CategoryName: req.NewCategoryName,
			},
		},
	})
	if err != nil {
		return posted, err
	}
	posted = append(posted, invoice)

	steps := []struct {
		suffix       string
		amount       decimal.Decimal
		categoryName string
		memo         string
	}{
		{"-COLD", oldUnused, req.OldCategoryName, "unused old category period"},
		{"-CNEW", newPreChange, req.NewCategoryName, "pre-change new category period"},
	}
	for _, step := range steps {
		if step.amount.IsZero() {
			continue
		}
		cn, err := s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
			Date:    req.Date,
			DocType: string(domain.DocCreditNote),
			DocNo:   req.DocNoBase + step.suffix,
			Memo:    fmt.Sprintf("Category change credit (%s) for member %s", step.memo, req.MemberID),
			Lines: []dto.JournalLineRequest{
				{
					AccountCode:  domain.AccountContraIncome,
					Direction:    string(domain.Debit),
					Amount:       step.amount,
					AdjSub:       "category-change",
					CategoryName: step.categoryName,
				},
				{
					AccountCode:  domain.AccountReceivable,
					Direction:    string(domain.Credit),
					Amount:       step.amount,
					MemberID:     req.MemberID,
					PeriodBucket: bucket,
				},
			},
		})
		if err != nil {
			s.LogError(ctx, err, "Category change step failed, earlier steps stand",
				slog.String("doc_no", req.DocNoBase+step.suffix))
			return posted, err
		}
		posted = append(posted, cn)
	}

	return posted, nil
}

// Settlement moves settled funds off a clearing account into the bank. This
// is the only document type permitted to touch the bank account.
func (s *membershipService) Settlement(ctx context.Context, req dto.SettlementRequest) (*domain.JournalTransaction, error) {
	memo := req.Memo
	if memo == "" {
		memo = fmt.Sprintf("Settlement from clearing %s", req.ClearingCode)
	}
	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    req.Date,
		DocType: string(domain.DocSettlement),
		DocNo:   req.DocNo,
		Memo:    memo,
		Lines: []dto.JournalLineRequest{
			{
				AccountCode: domain.AccountBank,
				Direction:   string(domain.Debit),
				Amount:      req.Amount,
			},
			{
				AccountCode: req.ClearingCode,
				Direction:   string(domain.Credit),
				Amount:      req.Amount,
			},
		},
	})
}
