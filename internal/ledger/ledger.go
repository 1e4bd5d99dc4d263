package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes receivables from payables.
type Type string

const (
	TypeReceita Type = "RECEITA"
	TypeDespesa Type = "DESPESA"
)

// Valid reports whether t is one of the two known entry types.
func (t Type) Valid() bool {
	return t == TypeReceita || t == TypeDespesa
}

// Status represents the lifecycle state of an entry.
type Status string

const (
	StatusPendente  Status = "PENDENTE"
	StatusPago      Status = "PAGO"
	StatusVencido   Status = "VENCIDO"
	StatusCancelado Status = "CANCELADO"
)

var (
	ErrNotFound          = errors.New("entry not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Entry is a single payable or receivable ledger entry. Entries created
// from one split request share a GroupID and number themselves
// InstallmentNumber/InstallmentTotal.
type Entry struct {
	ID                int64
	Description       string
	Amount            int64 // cents
	DueDate           time.Time
	PaymentDate       *time.Time // set only when status is PAGO
	Type              Type
	Status            Status
	GroupID           *uuid.UUID
	InstallmentNumber int
	InstallmentTotal  int
	CategoryID        int64
	ContactID         int64
	AccountID         int64
	CreatedAt         time.Time
}

// Attachment is a file linked to an entry. Attachment rows (and their
// files on disk) are removed together with the owning entry.
type Attachment struct {
	ID         int64
	EntryID    int64
	FileName   string
	StoredPath string
	UploadedAt time.Time
}
