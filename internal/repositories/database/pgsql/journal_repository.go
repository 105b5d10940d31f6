package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the transaction log.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// InsertTransaction persists a transaction and its lines inside one database
// transaction. The unique index on doc_no arbitrates concurrent posts of the
// same document: the loser re-fetches the winner's stored record.
func (r *PgxJournalRepository) InsertTransaction(ctx context.Context, txn domain.JournalTransaction) (*domain.JournalTransaction, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	txnQuery := `
		INSERT INTO gl_transactions (transaction_id, date, doc_type, doc_no, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.Date,
		txn.DocType,
		txn.DocNo,
		txn.Memo,
		txn.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			stored, findErr := r.FindTransactionByDocNo(ctx, txn.DocNo)
			if findErr != nil {
				return nil, false, apperrors.NewAppError(500, "failed to fetch winning transaction for doc_no "+txn.DocNo, findErr)
			}
			return stored, true, nil
		}
		return nil, false, apperrors.NewAppError(500, "failed to insert transaction "+txn.DocNo, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO gl_lines (line_id, transaction_id, account_code, direction, amount, member_id, application_id, period_bucket, revenue_sub, adj_sub, category_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range txn.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			txn.TransactionID,
			line.AccountCode,
			line.Direction,
			line.Amount,
			nullIfEmpty(line.MemberID),
			nullIfEmpty(line.ApplicationID),
			nullIfEmpty(string(line.PeriodBucket)),
			nullIfEmpty(line.RevenueSub),
			nullIfEmpty(line.AdjSub),
			nullIfEmpty(line.CategoryName),
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to insert lines for transaction "+txn.DocNo, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return &txn, false, nil
}

const txnColumns = `transaction_id, date, doc_type, doc_no, memo, created_at`

func scanTransaction(row pgx.Row) (domain.JournalTransaction, error) {
	var t domain.JournalTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.Date,
		&t.DocType,
		&t.DocNo,
		&t.Memo,
		&t.CreatedAt,
	)
	return t, err
}

// FindTransactionByDocNo retrieves a transaction with its lines by document number.
func (r *PgxJournalRepository) FindTransactionByDocNo(ctx context.Context, docNo string) (*domain.JournalTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM gl_transactions WHERE doc_no = $1;`
	return r.findOne(ctx, query, docNo)
}

// FindTransactionByID retrieves a transaction with its lines by id.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM gl_transactions WHERE transaction_id = $1;`
	return r.findOne(ctx, query, transactionID)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, query string, arg any) (*domain.JournalTransaction, error) {
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}

	linesByTxn, err := r.findLinesByTransactionIDs(ctx, []string{txn.TransactionID})
	if err != nil {
		return nil, err
	}
	txn.Lines = linesByTxn[txn.TransactionID]
	return &txn, nil
}

// findLinesByTransactionIDs fetches lines for a set of transactions in one query.
func (r *PgxJournalRepository) findLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.JournalLine, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}
	query := `
		SELECT line_id, transaction_id, account_code, direction, amount, member_id, application_id, period_bucket, revenue_sub, adj_sub, category_name
		FROM gl_lines
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transactions", err)
	}
	defer rows.Close()

	linesByTxn := make(map[string][]domain.JournalLine)
	for rows.Next() {
		var (
			l             domain.JournalLine
			transactionID string
			memberID      sql.NullString
			applicationID sql.NullString
			periodBucket  sql.NullString
			revenueSub    sql.NullString
			adjSub        sql.NullString
			categoryName  sql.NullString
		)
		if err := rows.Scan(
			&l.LineID,
			&transactionID,
			&l.AccountCode,
			&l.Direction,
			&l.Amount,
			&memberID,
			&applicationID,
			&periodBucket,
			&revenueSub,
			&adjSub,
			&categoryName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		l.MemberID = memberID.String
		l.ApplicationID = applicationID.String
		l.PeriodBucket = domain.PeriodBucket(periodBucket.String)
		l.RevenueSub = revenueSub.String
		l.AdjSub = adjSub.String
		l.CategoryName = categoryName.String
		linesByTxn[transactionID] = append(linesByTxn[transactionID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}

	for _, id := range transactionIDs {
		if _, ok := linesByTxn[id]; !ok {
			linesByTxn[id] = []domain.JournalLine{}
		}
	}
	return linesByTxn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first,
// with the total matching count before pagination.
func (r *PgxJournalRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.JournalTransaction, int, error) {
	whereClause := ` WHERE 1=1`
	args := []any{}

	if filter.From != nil {
		args = append(args, *filter.From)
		whereClause += ` AND t.date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		whereClause += ` AND t.date <= $` + strconv.Itoa(len(args))
	}
	if filter.DocType != "" {
		args = append(args, filter.DocType)
		whereClause += ` AND t.doc_type = $` + strconv.Itoa(len(args))
	}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		n := strconv.Itoa(len(args))
		whereClause += ` AND EXISTS (
			SELECT 1 FROM gl_lines l
			WHERE l.transaction_id = t.transaction_id
			AND (l.member_id = $` + n + ` OR 'app:' || l.application_id = $` + n + `)
		)`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM gl_transactions t` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions", err)
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Skip)
	skipPos := strconv.Itoa(len(args))
	pageQuery := `SELECT ` + txnColumns + ` FROM gl_transactions t` + whereClause +
		` ORDER BY t.date DESC, t.created_at DESC LIMIT $` + limitPos + ` OFFSET $` + skipPos + `;`

	rows, err := r.Pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns := []domain.JournalTransaction{}
	ids := []string{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, txn)
		ids = append(ids, txn.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	linesByTxn, err := r.findLinesByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range txns {
		txns[i].Lines = linesByTxn[txns[i].TransactionID]
	}
	return txns, total, nil
}
