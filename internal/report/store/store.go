package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfarias/fincontrol/internal/ledger"
	"github.com/dfarias/fincontrol/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// dateClause appends due-date bounds to a query that already has a
// WHERE clause, returning the grown arg list.
func dateClause(query string, filter report.Filter, args []any) (string, []any) {
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND e.due_date >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND e.due_date <= $%d", len(args))
	}

	return query, args
}

// Summary computes all four headline figures in one pass. COALESCE
// keeps every figure at zero over an empty table.
func (s *Store) Summary(ctx context.Context, filter report.Filter) (*report.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN e.type = 'RECEITA' THEN e.amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN e.type = 'DESPESA' THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.type = 'RECEITA' AND e.status = 'PENDENTE' THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.type = 'DESPESA' AND e.status = 'PENDENTE' THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.status = 'VENCIDO' THEN e.amount ELSE 0 END), 0)
		FROM entries e
		WHERE 1=1`

	query, args := dateClause(query, filter, nil)

	var summary report.Summary

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.NetBalance,
		&summary.TotalReceivable,
		&summary.TotalPayable,
		&summary.TotalOverdue,
	)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	return &summary, nil
}

func (s *Store) TotalsByCategory(ctx context.Context, filter report.Filter) ([]report.CategoryTotal, error) {
	query := `
		SELECT c.name, SUM(e.amount)
		FROM entries e
		JOIN categories c ON c.id = e.category_id
		WHERE 1=1`

	query, args := dateClause(query, filter, nil)
	query += `
		GROUP BY c.name
		ORDER BY SUM(e.amount) DESC, c.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []report.CategoryTotal

	for rows.Next() {
		var t report.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return totals, nil
}

// MonthlyTotals groups amounts by the YYYY-MM of the due date and the
// entry type. The payment date is deliberately not used: the cash-flow
// chart shows when money is due, not when it settled.
func (s *Store) MonthlyTotals(ctx context.Context, filter report.Filter) ([]report.MonthlyTotal, error) {
	query := `
		SELECT to_char(e.due_date, 'YYYY-MM') AS month, e.type, SUM(e.amount)
		FROM entries e
		WHERE 1=1`

	query, args := dateClause(query, filter, nil)
	query += `
		GROUP BY month, e.type
		ORDER BY month ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []report.MonthlyTotal

	for rows.Next() {
		var t report.MonthlyTotal

		var typeStr string

		if err := rows.Scan(&t.Month, &typeStr, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning monthly total: %w", err)
		}

		t.Type = ledger.Type(typeStr)

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly totals: %w", err)
	}

	return totals, nil
}

const rankingQuery = `
	SELECT c.name, SUM(e.amount)
	FROM entries e
	JOIN contacts c ON c.id = e.contact_id
	WHERE e.type = $1 AND e.status IN ('PENDENTE', 'VENCIDO')
	GROUP BY c.name
	ORDER BY SUM(e.amount) DESC, c.name ASC
	LIMIT $2`

func (s *Store) TopDebtors(ctx context.Context, limit int) ([]report.RankingEntry, error) {
	return s.ranking(ctx, "RECEITA", limit)
}

func (s *Store) TopCreditors(ctx context.Context, limit int) ([]report.RankingEntry, error) {
	return s.ranking(ctx, "DESPESA", limit)
}

func (s *Store) ranking(ctx context.Context, entryType string, limit int) ([]report.RankingEntry, error) {
	rows, err := s.db.QueryContext(ctx, rankingQuery, entryType, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	defer rows.Close()

	var entries []report.RankingEntry

	for rows.Next() {
		var e report.RankingEntry
		if err := rows.Scan(&e.Name, &e.Total); err != nil {
			return nil, fmt.Errorf("scanning ranking entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ranking entries: %w", err)
	}

	return entries, nil
}

func (s *Store) SearchContacts(ctx context.Context, q string) ([]report.ContactBalance, error) {
	query := `
		SELECT
			c.name,
			COALESCE(SUM(CASE WHEN e.type = 'RECEITA' AND e.status IN ('PENDENTE', 'VENCIDO') THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.type = 'DESPESA' AND e.status IN ('PENDENTE', 'VENCIDO') THEN e.amount ELSE 0 END), 0)
		FROM contacts c
		LEFT JOIN entries e ON e.contact_id = c.id
		WHERE c.name ILIKE '%' || $1 || '%'
		GROUP BY c.name
		ORDER BY c.name ASC`

	rows, err := s.db.QueryContext(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("contact search: %w", err)
	}
	defer rows.Close()

	var balances []report.ContactBalance

	for rows.Next() {
		var b report.ContactBalance
		if err := rows.Scan(&b.Name, &b.Receivable, &b.Payable); err != nil {
			return nil, fmt.Errorf("scanning contact balance: %w", err)
		}

		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact balances: %w", err)
	}

	return balances, nil
}
