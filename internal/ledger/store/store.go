package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dfarias/fincontrol/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	e.id, e.description, e.amount, e.due_date, e.payment_date, e.type, e.status,
	e.group_id, e.installment_number, e.installment_total,
	e.category_id, e.contact_id, e.account_id, e.created_at
`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var typeStr, statusStr string

	var paymentDate sql.NullTime

	var groupID *uuid.UUID

	if err := s.Scan(
		&e.ID, &e.Description, &e.Amount, &e.DueDate, &paymentDate, &typeStr, &statusStr,
		&groupID, &e.InstallmentNumber, &e.InstallmentTotal,
		&e.CategoryID, &e.ContactID, &e.AccountID, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = ledger.Type(typeStr)
	e.Status = ledger.Status(statusStr)
	e.GroupID = groupID

	if paymentDate.Valid {
		e.PaymentDate = &paymentDate.Time
	}

	return &e, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries e WHERE e.id = $1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return entry, nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries e WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND e.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND e.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.due_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.due_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY e.due_date ASC, e.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status ledger.Status, paymentDate *time.Time) error {
	query := `
		UPDATE entries
		SET status = $1, payment_date = $2
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, status, paymentDate, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE entries
		SET status = $1
		WHERE status = $2 AND due_date < $3
	`

	res, err := s.db.ExecContext(ctx, query, ledger.StatusVencido, ledger.StatusPendente, asOf)
	if err != nil {
		return 0, fmt.Errorf("marking overdue: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking overdue: %w", err)
	}

	return affected, nil
}

// DeleteEntry removes the entry; attachment rows go with it via the
// ON DELETE CASCADE constraint. The attachments are read first and
// returned so the caller can unlink their files.
func (s *Store) DeleteEntry(ctx context.Context, id int64) ([]*ledger.Attachment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning delete tx: %w", err)
	}
	defer tx.Rollback()

	attachments, err := listAttachments(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("deleting entry: %w", err)
	}

	if affected == 0 {
		return nil, ledger.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}

	return attachments, nil
}

func (s *Store) AddAttachment(ctx context.Context, att *ledger.Attachment) error {
	query := `
		INSERT INTO attachments (entry_id, file_name, stored_path, uploaded_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, uploaded_at
	`

	err := s.db.QueryRowContext(ctx, query, att.EntryID, att.FileName, att.StoredPath).
		Scan(&att.ID, &att.UploadedAt)
	if err != nil {
		return fmt.Errorf("adding attachment: %w", err)
	}

	return nil
}

func (s *Store) ListAttachments(ctx context.Context, entryID int64) ([]*ledger.Attachment, error) {
	return listAttachments(ctx, s.db, entryID)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listAttachments(ctx context.Context, q querier, entryID int64) ([]*ledger.Attachment, error) {
	query := `
		SELECT id, entry_id, file_name, stored_path, uploaded_at
		FROM attachments
		WHERE entry_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`

	rows, err := q.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*ledger.Attachment

	for rows.Next() {
		var att ledger.Attachment
		if err := rows.Scan(&att.ID, &att.EntryID, &att.FileName, &att.StoredPath, &att.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}

		attachments = append(attachments, &att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachment rows: %w", err)
	}

	return attachments, nil
}

type batchTx struct {
	tx *sql.Tx
}

// BeginCreate opens the transaction that an installment group is
// written under. A crash between inserts rolls the whole group back.
func (s *Store) BeginCreate(ctx context.Context) (ledger.BatchTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning create tx: %w", err)
	}

	return &batchTx{tx: tx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

func (b *batchTx) CreateEntries(ctx context.Context, entries []*ledger.Entry) error {
	query := `
		INSERT INTO entries (
			description, amount, due_date, payment_date, type, status,
			group_id, installment_number, installment_total,
			category_id, contact_id, account_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	for _, e := range entries {
		err := b.tx.QueryRowContext(ctx, query,
			e.Description,
			e.Amount,
			e.DueDate,
			e.PaymentDate,
			e.Type,
			e.Status,
			e.GroupID,
			e.InstallmentNumber,
			e.InstallmentTotal,
			e.CategoryID,
			e.ContactID,
			e.AccountID,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating entry: %w", err)
		}
	}

	return nil
}
