// Package catalog holds the flat reference entities ledger entries
// point at: categories, contacts and bank accounts.
package catalog

import "errors"

var (
	ErrNotFound     = errors.New("catalog record not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Category struct {
	ID          int64
	Name        string
	Description string
}

// Contact unifies customers and suppliers; one party can be both.
type Contact struct {
	ID       int64
	Name     string
	Document string // CPF or CNPJ, digits only
	Email    string
	Phone    string
}

type BankAccount struct {
	ID             int64
	Description    string
	BankName       string
	OpeningBalance int64 // cents
}
