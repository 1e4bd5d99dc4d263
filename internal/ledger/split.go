package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitParams describes a create request before it is turned into one
// or more entries.
type SplitParams struct {
	Description  string
	Amount       int64 // cents, total across all installments
	DueDate      time.Time
	Type         Type
	CategoryID   int64
	ContactID    int64
	AccountID    int64
	Split        bool
	Installments int
}

// Split expands the request into its installment entries. It is a pure
// function: no I/O, no clock reads.
//
// For n > 1 installments the base amount is Amount/n rounded half-up to
// whole cents; the rounding difference (at most n-1 cents either way)
// is folded into the first installment so the amounts always sum to
// Amount exactly. Due dates advance one calendar month per installment,
// clamping to the last day of shorter months (Jan 31 -> Feb 28/29 ->
// Mar 31, never Mar 2). Every entry starts PENDENTE with no payment
// date; flagging past-due entries is the overdue sweep's job.
func Split(p SplitParams) ([]*Entry, error) {
	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if p.Installments < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1", ErrInvalidInput)
	}

	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidInput, p.Type)
	}

	if !p.Split || p.Installments == 1 {
		return []*Entry{{
			Description:       p.Description,
			Amount:            p.Amount,
			DueDate:           p.DueDate,
			Type:              p.Type,
			Status:            StatusPendente,
			InstallmentNumber: 1,
			InstallmentTotal:  1,
			CategoryID:        p.CategoryID,
			ContactID:         p.ContactID,
			AccountID:         p.AccountID,
		}}, nil
	}

	groupID := uuid.New()
	n := int64(p.Installments)

	base := decimal.NewFromInt(p.Amount).
		DivRound(decimal.NewFromInt(n), 0).
		IntPart()
	remainder := p.Amount - base*n

	// Every installment must stay positive. The base can only hit zero,
	// or the first installment go non-positive, when the amount is too
	// small for the requested count; reject rather than emit zero or
	// negative obligations.
	if base <= 0 || base+remainder <= 0 {
		return nil, fmt.Errorf("%w: amount %d too small to split into %d installments", ErrInvalidInput, p.Amount, p.Installments)
	}

	entries := make([]*Entry, p.Installments)

	for i := 0; i < p.Installments; i++ {
		amount := base
		if i == 0 {
			amount += remainder
		}

		gid := groupID

		entries[i] = &Entry{
			Description:       fmt.Sprintf("%s (%d/%d)", p.Description, i+1, p.Installments),
			Amount:            amount,
			DueDate:           addMonths(p.DueDate, i),
			Type:              p.Type,
			Status:            StatusPendente,
			GroupID:           &gid,
			InstallmentNumber: i + 1,
			InstallmentTotal:  p.Installments,
			CategoryID:        p.CategoryID,
			ContactID:         p.ContactID,
			AccountID:         p.AccountID,
		}
	}

	return entries, nil
}

// addMonths advances t by the given number of calendar months, clamping
// the day to the last day of the target month. time.AddDate alone would
// normalize Jan 31 + 1 month into Mar 2/3.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	first = first.AddDate(0, months, 0)

	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
