// Package report computes the read-only dashboard aggregates over the
// ledger. All monetary figures are int64 cents and default to zero for
// empty result sets.
package report

import (
	"time"

	"github.com/dfarias/fincontrol/internal/ledger"
)

// Filter narrows aggregates to a due-date range. Nil bounds are open.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Summary is the dashboard headline: gross inflow minus outflow across
// every status, plus the open and overdue totals.
type Summary struct {
	NetBalance      int64
	TotalReceivable int64 // RECEITA + PENDENTE
	TotalPayable    int64 // DESPESA + PENDENTE
	TotalOverdue    int64 // VENCIDO, both types
}

type CategoryTotal struct {
	Category string
	Total    int64
}

// MonthlyTotal is one raw (month, type, sum) aggregation row.
type MonthlyTotal struct {
	Month string // YYYY-MM of the due date
	Type  ledger.Type
	Total int64
}

// MonthlyFlow is the folded per-month view with both directions always
// present.
type MonthlyFlow struct {
	Month   string
	Income  int64
	Expense int64
}

type RankingEntry struct {
	Name  string
	Total int64
}

// Ranking holds the two independent top-5 lists: contacts owing us the
// most and contacts we owe the most.
type Ranking struct {
	Debtors   []RankingEntry
	Creditors []RankingEntry
}

// ContactBalance is one contact search hit with its open receivable and
// payable totals (PENDENTE plus VENCIDO).
type ContactBalance struct {
	Name       string
	Receivable int64
	Payable    int64
}
