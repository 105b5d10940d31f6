package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// paymentService turns settled-payment notifications into receipt journals.
// The docNo derives from the payment intent id, so processor replays of the
// same settlement collapse onto one posting.
type paymentService struct {
	BaseService
	membershipSvc portssvc.MembershipSvc
	posting       portssvc.PostingSvc
}

// NewPaymentService wires the payment integration over the document services.
func NewPaymentService(membershipSvc portssvc.MembershipSvc, posting portssvc.PostingSvc) portssvc.PaymentSvc {
	return &paymentService{membershipSvc: membershipSvc, posting: posting}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// RecordSettledPayment implements portssvc.PaymentSvc.
func (s *paymentService) RecordSettledPayment(ctx context.Context, req dto.SettledPaymentRequest) (*domain.JournalTransaction, error) {
	if !strings.EqualFold(req.Status, "succeeded") {
		s.LogInfo(ctx, "Ignoring payment in non-settled status",
			slog.String("payment_intent_id", req.PaymentIntentID),
			slog.String("status", req.Status))
		return nil, nil
	}

	docNo := "PAY-" + req.PaymentIntentID
	date := req.SettledAt
	if date.IsZero() {
		date = time.Now().UTC()
	}
	clearingCode := req.ClearingCode
	if clearingCode == "" {
		clearingCode = domain.AccountCash
	}

	if len(req.ExtraLines) > 0 {
		return s.postWithExtraLines(ctx, req, docNo, date, clearingCode)
	}

	return s.membershipSvc.Receipt(ctx, dto.ReceiptRequest{
		Date:          date,
		DocNo:         docNo,
		MemberID:      req.MemberID,
		ApplicationID: req.ApplicationID,
		Amount:        req.Amount,
		ClearingCode:  clearingCode,
		Provider:      strings.ToLower(req.Provider),
	})
}

// postWithExtraLines posts the receipt with the caller-supplied processor
// breakdown instead of the derived stripe fee lines. The extra lines pass
// through the posting engine unmodified, so an unbalanced breakdown is
// rejected the same way any other journal would be.
func (s *paymentService) postWithExtraLines(ctx context.Context, req dto.SettledPaymentRequest, docNo string, date time.Time, clearingCode string) (*domain.JournalTransaction, error) {
	lines := []dto.JournalLineRequest{
		{
			AccountCode: clearingCode,
			Direction:   string(domain.Debit),
			Amount:      req.Amount,
		},
		{
			AccountCode:   domain.AccountPaymentOnAccount,
			Direction:     string(domain.Credit),
			Amount:        req.Amount,
			MemberID:      req.MemberID,
			ApplicationID: req.ApplicationID,
			PeriodBucket:  string(domain.BucketCurrent),
		},
	}
	lines = append(lines, req.ExtraLines...)

	return s.posting.PostBalancedJournal(ctx, dto.PostJournalRequest{
		Date:    date,
		DocType: string(domain.DocReceipt),
		DocNo:   docNo,
		Memo:    fmt.Sprintf("Settled payment %s (%s)", req.PaymentIntentID, strings.ToLower(req.Provider)),
		Lines:   lines,
	})
}
