package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfarias/fincontrol/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category

	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*catalog.Category, error) {
	query := `SELECT id, name, description FROM categories WHERE id = $1`

	var c catalog.Category

	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *catalog.Contact) error {
	query := `
		INSERT INTO contacts (name, document, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Document, c.Email, c.Phone).Scan(&c.ID); err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) ListContacts(ctx context.Context) ([]*catalog.Contact, error) {
	query := `SELECT id, name, document, email, phone FROM contacts ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*catalog.Contact

	for rows.Next() {
		var c catalog.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return contacts, nil
}

func (s *Store) GetContact(ctx context.Context, id int64) (*catalog.Contact, error) {
	query := `SELECT id, name, document, email, phone FROM contacts WHERE id = $1`

	var c catalog.Contact

	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *catalog.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (description, bank_name, opening_balance)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, a.Description, a.BankName, a.OpeningBalance).Scan(&a.ID); err != nil {
		return fmt.Errorf("creating bank account: %w", err)
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*catalog.BankAccount, error) {
	query := `SELECT id, description, bank_name, opening_balance FROM bank_accounts ORDER BY description ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*catalog.BankAccount

	for rows.Next() {
		var a catalog.BankAccount
		if err := rows.Scan(&a.ID, &a.Description, &a.BankName, &a.OpeningBalance); err != nil {
			return nil, fmt.Errorf("scanning bank account: %w", err)
		}

		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*catalog.BankAccount, error) {
	query := `SELECT id, description, bank_name, opening_balance FROM bank_accounts WHERE id = $1`

	var a catalog.BankAccount

	err := s.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Description, &a.BankName, &a.OpeningBalance)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting bank account: %w", err)
	}

	return &a, nil
}
