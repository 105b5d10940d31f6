package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// TrialBalanceData groups lines dated within [start, end] by account.
// Net follows the debit-positive convention.
func (r *reportingRepository) TrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.code,
			a.description,
			a.account_type,
			SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN l.direction = 'CREDIT' THEN l.amount ELSE 0 END) AS total_credit,
			SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE -l.amount END) AS net
		FROM gl_lines l
		JOIN accounts a ON l.account_code = a.code
		JOIN gl_transactions t ON l.transaction_id = t.transaction_id
		WHERE t.date BETWEEN $1 AND $2
		GROUP BY a.code, a.description, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
			&row.Net,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// MemberAccountNets groups member-tracked lines dated on or before asOf by
// (effective member, account code). Application-held lines fold under their
// "app:<id>" pseudo-member.
func (r *reportingRepository) MemberAccountNets(ctx context.Context, asOf time.Time) ([]portsrepo.MemberAccountNet, error) {
	query := `
		SELECT
			COALESCE(l.member_id, 'app:' || l.application_id) AS effective_member,
			l.account_code,
			SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE -l.amount END) AS net
		FROM gl_lines l
		JOIN accounts a ON l.account_code = a.code
		JOIN gl_transactions t ON l.transaction_id = t.transaction_id
		WHERE t.date <= $1
			AND a.is_member_tracked
			AND (l.member_id IS NOT NULL OR l.application_id IS NOT NULL)
		GROUP BY effective_member, l.account_code
		ORDER BY effective_member, l.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying member balances: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.MemberAccountNet{}
	for rows.Next() {
		var (
			n      portsrepo.MemberAccountNet
			member sql.NullString
		)
		if err := rows.Scan(&member, &n.AccountCode, &n.Net); err != nil {
			return nil, fmt.Errorf("error scanning member balance row: %w", err)
		}
		n.MemberID = member.String
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member balance rows: %w", err)
	}
	return result, nil
}

// ClearingData groups lines on clearing accounts dated within [start, end].
func (r *reportingRepository) ClearingData(ctx context.Context, start, end time.Time) ([]domain.ClearingRow, error) {
	query := `
		SELECT
			a.code,
			a.description,
			SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN l.direction = 'CREDIT' THEN l.amount ELSE 0 END) AS total_credit,
			SUM(CASE WHEN l.direction = 'DEBIT' THEN l.amount ELSE -l.amount END) AS net
		FROM gl_lines l
		JOIN accounts a ON l.account_code = a.code
		JOIN gl_transactions t ON l.transaction_id = t.transaction_id
		WHERE t.date BETWEEN $1 AND $2
			AND a.is_clearing
		GROUP BY a.code, a.description
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying clearing data: %w", err)
	}
	defer rows.Close()

	result := []domain.ClearingRow{}
	for rows.Next() {
		var row domain.ClearingRow
		if err := rows.Scan(
			&row.AccountCode,
			&row.AccountName,
			&row.Debit,
			&row.Credit,
			&row.Net,
		); err != nil {
			return nil, fmt.Errorf("error scanning clearing row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clearing rows: %w", err)
	}
	return result, nil
}
