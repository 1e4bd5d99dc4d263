package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/dfarias/fincontrol/internal/ledger"
)

// rankingLimit caps both top lists.
const rankingLimit = 5

// minSearchLength gates contact search; shorter queries return empty
// without touching storage.
const minSearchLength = 2

type Repository interface {
	Summary(ctx context.Context, filter Filter) (*Summary, error)
	TotalsByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error)
	MonthlyTotals(ctx context.Context, filter Filter) ([]MonthlyTotal, error)
	TopDebtors(ctx context.Context, limit int) ([]RankingEntry, error)
	TopCreditors(ctx context.Context, limit int) ([]RankingEntry, error)
	SearchContacts(ctx context.Context, q string) ([]ContactBalance, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context, filter Filter) (*Summary, error) {
	summary, err := s.repo.Summary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("summary query: %w", err)
	}

	return summary, nil
}

func (s *Service) TotalsByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error) {
	totals, err := s.repo.TotalsByCategory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("category totals query: %w", err)
	}

	if totals == nil {
		totals = []CategoryTotal{}
	}

	return totals, nil
}

// MonthlyCashFlow folds the raw (month, type) rows into one record per
// month, zero-filling whichever direction a month is missing.
func (s *Service) MonthlyCashFlow(ctx context.Context, filter Filter) ([]MonthlyFlow, error) {
	rows, err := s.repo.MonthlyTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("monthly totals query: %w", err)
	}

	byMonth := make(map[string]*MonthlyFlow)

	for _, row := range rows {
		flow, ok := byMonth[row.Month]
		if !ok {
			flow = &MonthlyFlow{Month: row.Month}
			byMonth[row.Month] = flow
		}

		switch row.Type {
		case ledger.TypeReceita:
			flow.Income = row.Total
		default:
			flow.Expense = row.Total
		}
	}

	flows := make([]MonthlyFlow, 0, len(byMonth))
	for _, flow := range byMonth {
		flows = append(flows, *flow)
	}

	// YYYY-MM keys sort chronologically as strings.
	sort.Slice(flows, func(i, j int) bool { return flows[i].Month < flows[j].Month })

	return flows, nil
}

// Ranking runs both top-5 queries concurrently.
func (s *Service) Ranking(ctx context.Context) (*Ranking, error) {
	var ranking Ranking

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		debtors, err := s.repo.TopDebtors(ctx, rankingLimit)
		if err != nil {
			return fmt.Errorf("top debtors query: %w", err)
		}

		ranking.Debtors = debtors

		return nil
	})

	g.Go(func() error {
		creditors, err := s.repo.TopCreditors(ctx, rankingLimit)
		if err != nil {
			return fmt.Errorf("top creditors query: %w", err)
		}

		ranking.Creditors = creditors

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ranking.Debtors == nil {
		ranking.Debtors = []RankingEntry{}
	}

	if ranking.Creditors == nil {
		ranking.Creditors = []RankingEntry{}
	}

	return &ranking, nil
}

func (s *Service) SearchContacts(ctx context.Context, q string) ([]ContactBalance, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < minSearchLength {
		return []ContactBalance{}, nil
	}

	balances, err := s.repo.SearchContacts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("contact search query: %w", err)
	}

	if balances == nil {
		balances = []ContactBalance{}
	}

	return balances, nil
}
