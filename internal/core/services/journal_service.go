package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

var (
	ErrJournalMinEntries    = errors.New("journal must have at least two lines")
	ErrUnknownAccount       = errors.New("journal line references an unknown account code")
	ErrUnbalancedJournal    = errors.New("journal debit and credit totals differ")
	ErrGuardrailViolation   = errors.New("journal violates a posting guardrail")
	ErrMissingMemberContext = errors.New("member-tracked line requires a member identity and period bucket")
)

// Guardrail is one policy rule applied to an enriched journal before
// persistence. The set is extensible; rules see resolved account metadata.
type Guardrail func(docType domain.DocType, lines []domain.EnrichedLine) error

// BankSettlementOnly rejects any document other than a Settlement touching
// the designated bank account.
func BankSettlementOnly(docType domain.DocType, lines []domain.EnrichedLine) error {
	if docType == domain.DocSettlement {
		return nil
	}
	for _, l := range lines {
		if l.AccountCode == domain.AccountBank {
			return fmt.Errorf("%w: only Settlement documents may post to %s (%s)",
				ErrGuardrailViolation, domain.AccountBank, l.Account.Description)
		}
	}
	return nil
}

// MemberContextRequired rejects lines on member-tracked accounts that lack
// a member (or application) identity or a period bucket.
func MemberContextRequired(_ domain.DocType, lines []domain.EnrichedLine) error {
	for _, l := range lines {
		if !l.Account.IsMemberTracked {
			continue
		}
		if l.EffectiveMemberID() == "" || l.PeriodBucket == "" {
			return fmt.Errorf("%w: account %s", ErrMissingMemberContext, l.AccountCode)
		}
	}
	return nil
}

// journalService is the balanced-journal posting engine and log reader.
type journalService struct {
	BaseService
	accountSvc  portssvc.AccountSvc
	journalRepo portsrepo.JournalRepositoryFacade
	publisher   portssvc.EventPublisher
	guardrails  []Guardrail
}

// NewJournalService creates the posting engine with the default guardrails.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvc, publisher portssvc.EventPublisher, extra ...Guardrail) portssvc.JournalSvcFacade {
	guardrails := append([]Guardrail{BankSettlementOnly, MemberContextRequired}, extra...)
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
		publisher:   publisher,
		guardrails:  guardrails,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// enrichLines resolves every distinct account code in one batch and attaches
// the chart entry to each line. The enrichment exists only inside this
// engine; StoredLines strips it again before persistence.
func (s *journalService) enrichLines(ctx context.Context, lines []domain.JournalLine) ([]domain.EnrichedLine, error) {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountCode]; !ok {
			seen[l.AccountCode] = struct{}{}
			codes = append(codes, l.AccountCode)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}

	enriched := make([]domain.EnrichedLine, len(lines))
	for i, l := range lines {
		account, ok := accounts[l.AccountCode]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, l.AccountCode)
		}
		l.Amount = l.Amount.Round(2)
		enriched[i] = domain.EnrichedLine{JournalLine: l, Account: account}
	}
	return enriched, nil
}

// validateBalance checks the double-entry invariant on rounded line amounts.
func (s *journalService) validateBalance(lines []domain.EnrichedLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		if l.Amount.IsNegative() {
			return fmt.Errorf("%w: line amount must be non-negative on account %s", apperrors.ErrValidation, l.AccountCode)
		}
		switch l.Direction {
		case domain.Debit:
			debits = debits.Add(l.Amount)
		case domain.Credit:
			credits = credits.Add(l.Amount)
		default:
			return fmt.Errorf("%w: unknown direction %q on account %s", apperrors.ErrValidation, l.Direction, l.AccountCode)
		}
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debit total %s vs credit total %s", ErrUnbalancedJournal, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// PostBalancedJournal implements portssvc.PostingSvc.
//
// All validation happens before any write; a failed posting never leaves a
// partially written transaction. Posting the same docNo again (sequentially
// or in a race) returns the stored winner and emits no second event.
func (s *journalService) PostBalancedJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.JournalTransaction, error) {
	if len(req.Lines) < 2 {
		return nil, ErrJournalMinEntries
	}

	enriched, err := s.enrichLines(ctx, req.ToDomainLines())
	if err != nil {
		return nil, err
	}

	if err := s.validateBalance(enriched); err != nil {
		return nil, err
	}

	docType := domain.DocType(req.DocType)
	for _, rule := range s.guardrails {
		if err := rule(docType, enriched); err != nil {
			return nil, err
		}
	}

	// Idempotency on docNo: a repeat returns the stored record untouched.
	existing, err := s.journalRepo.FindTransactionByDocNo(ctx, req.DocNo)
	if err == nil {
		s.LogInfo(ctx, "Journal already posted, returning stored transaction", slog.String("doc_no", req.DocNo))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check docNo %s: %w", req.DocNo, err)
	}

	now := time.Now().UTC()
	lines := domain.StoredLines(enriched)
	for i := range lines {
		lines[i].LineID = uuid.NewString()
	}
	txn := domain.JournalTransaction{
		TransactionID: uuid.NewString(),
		Date:          req.Date,
		DocType:       docType,
		DocNo:         req.DocNo,
		Memo:          req.Memo,
		Lines:         lines,
		CreatedAt:     now,
	}

	stored, alreadyExists, err := s.journalRepo.InsertTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to insert journal transaction", slog.String("doc_no", req.DocNo))
		return nil, fmt.Errorf("failed to persist journal %s: %w", req.DocNo, err)
	}
	if alreadyExists {
		// A concurrent caller won the docNo race; their record stands.
		s.LogInfo(ctx, "Concurrent post won the docNo race, returning stored transaction", slog.String("doc_no", req.DocNo))
		return stored, nil
	}

	s.LogInfo(ctx, "Journal posted",
		slog.String("transaction_id", stored.TransactionID),
		slog.String("doc_no", stored.DocNo),
		slog.String("doc_type", string(stored.DocType)))

	s.notifyJournalCreated(ctx, stored)
	return stored, nil
}

// notifyJournalCreated emits the journal.created event. Publishing is
// fire-and-forget: a failure is logged and the posting stands.
func (s *journalService) notifyJournalCreated(ctx context.Context, txn *domain.JournalTransaction) {
	if s.publisher == nil {
		return
	}
	evt := portssvc.JournalCreatedEvent{
		JournalID:   txn.TransactionID,
		DocNo:       txn.DocNo,
		DocType:     txn.DocType,
		Date:        txn.Date,
		Memo:        txn.Memo,
		Entries:     txn.Lines,
		TotalDebit:  txn.DebitTotal(),
		TotalCredit: txn.CreditTotal(),
	}
	if err := s.publisher.PublishJournalCreated(ctx, evt); err != nil {
		s.LogWarn(ctx, "Failed to publish journal.created event",
			slog.String("doc_no", txn.DocNo), slog.String("error", err.Error()))
	}
}

// GetTransaction implements portssvc.JournalReaderSvc.
func (s *journalService) GetTransaction(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// GetTransactionByDocNo implements portssvc.JournalReaderSvc.
func (s *journalService) GetTransactionByDocNo(ctx context.Context, docNo string) (*domain.JournalTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByDocNo(ctx, docNo)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by docNo", slog.String("doc_no", docNo))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions implements portssvc.JournalReaderSvc.
func (s *journalService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	skip := params.Skip
	if skip < 0 {
		skip = 0
	}

	filter := portsrepo.TransactionFilter{
		From:     params.From,
		To:       params.To,
		DocType:  domain.DocType(params.DocType),
		MemberID: params.MemberID,
		Limit:    limit,
		Skip:     skip,
	}
	txns, total, err := s.journalRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Total: total,
		Skip:  skip,
		Limit: limit,
		Items: dto.ToTransactionResponses(txns),
	}, nil
}
