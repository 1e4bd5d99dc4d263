package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfarias/fincontrol/internal/ledger"
)

// Hand-rolled fake repository; only the funcs a test sets are consulted.
type fakeRepo struct {
	summaryFunc      func(ctx context.Context, filter Filter) (*Summary, error)
	byCategoryFunc   func(ctx context.Context, filter Filter) ([]CategoryTotal, error)
	monthlyFunc      func(ctx context.Context, filter Filter) ([]MonthlyTotal, error)
	topDebtorsFunc   func(ctx context.Context, limit int) ([]RankingEntry, error)
	topCreditorsFunc func(ctx context.Context, limit int) ([]RankingEntry, error)
	searchFunc       func(ctx context.Context, q string) ([]ContactBalance, error)
	searchCalls      int
}

func (f *fakeRepo) Summary(ctx context.Context, filter Filter) (*Summary, error) {
	return f.summaryFunc(ctx, filter)
}

func (f *fakeRepo) TotalsByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error) {
	return f.byCategoryFunc(ctx, filter)
}

func (f *fakeRepo) MonthlyTotals(ctx context.Context, filter Filter) ([]MonthlyTotal, error) {
	return f.monthlyFunc(ctx, filter)
}

func (f *fakeRepo) TopDebtors(ctx context.Context, limit int) ([]RankingEntry, error) {
	return f.topDebtorsFunc(ctx, limit)
}

func (f *fakeRepo) TopCreditors(ctx context.Context, limit int) ([]RankingEntry, error) {
	return f.topCreditorsFunc(ctx, limit)
}

func (f *fakeRepo) SearchContacts(ctx context.Context, q string) ([]ContactBalance, error) {
	f.searchCalls++
	return f.searchFunc(ctx, q)
}

func TestService_Summary_ZeroDefaults(t *testing.T) {
	repo := &fakeRepo{
		summaryFunc: func(ctx context.Context, filter Filter) (*Summary, error) {
			return &Summary{}, nil
		},
	}

	svc := NewService(repo)

	got, err := svc.Summary(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.NetBalance)
	assert.Equal(t, int64(0), got.TotalReceivable)
	assert.Equal(t, int64(0), got.TotalPayable)
	assert.Equal(t, int64(0), got.TotalOverdue)
}

func TestService_Summary_QueryFailure(t *testing.T) {
	repo := &fakeRepo{
		summaryFunc: func(ctx context.Context, filter Filter) (*Summary, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewService(repo)

	got, err := svc.Summary(context.Background(), Filter{})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "summary query")
}

func TestService_TotalsByCategory_NilBecomesEmpty(t *testing.T) {
	repo := &fakeRepo{
		byCategoryFunc: func(ctx context.Context, filter Filter) ([]CategoryTotal, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)

	got, err := svc.TotalsByCategory(context.Background(), Filter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_MonthlyCashFlow(t *testing.T) {
	repo := &fakeRepo{
		monthlyFunc: func(ctx context.Context, filter Filter) ([]MonthlyTotal, error) {
			return []MonthlyTotal{
				{Month: "2025-02", Type: ledger.TypeDespesa, Total: 5000},
				{Month: "2025-01", Type: ledger.TypeReceita, Total: 10000},
				{Month: "2025-01", Type: ledger.TypeDespesa, Total: 4000},
				{Month: "2025-03", Type: ledger.TypeReceita, Total: 7500},
			}, nil
		},
	}

	svc := NewService(repo)

	flows, err := svc.MonthlyCashFlow(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, flows, 3)

	// Chronological order, missing direction zero-filled.
	assert.Equal(t, MonthlyFlow{Month: "2025-01", Income: 10000, Expense: 4000}, flows[0])
	assert.Equal(t, MonthlyFlow{Month: "2025-02", Income: 0, Expense: 5000}, flows[1])
	assert.Equal(t, MonthlyFlow{Month: "2025-03", Income: 7500, Expense: 0}, flows[2])
}

func TestService_MonthlyCashFlow_Empty(t *testing.T) {
	repo := &fakeRepo{
		monthlyFunc: func(ctx context.Context, filter Filter) ([]MonthlyTotal, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)

	flows, err := svc.MonthlyCashFlow(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, flows)
}

func TestService_Ranking(t *testing.T) {
	repo := &fakeRepo{
		topDebtorsFunc: func(ctx context.Context, limit int) ([]RankingEntry, error) {
			assert.Equal(t, 5, limit)
			return []RankingEntry{{Name: "Cliente A", Total: 90000}, {Name: "Cliente B", Total: 40000}}, nil
		},
		topCreditorsFunc: func(ctx context.Context, limit int) ([]RankingEntry, error) {
			assert.Equal(t, 5, limit)
			return nil, nil
		},
	}

	svc := NewService(repo)

	ranking, err := svc.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking.Debtors, 2)
	assert.Equal(t, "Cliente A", ranking.Debtors[0].Name)
	assert.NotNil(t, ranking.Creditors)
	assert.Empty(t, ranking.Creditors)
}

func TestService_Ranking_PropagatesFailure(t *testing.T) {
	repo := &fakeRepo{
		topDebtorsFunc: func(ctx context.Context, limit int) ([]RankingEntry, error) {
			return nil, errors.New("timeout")
		},
		topCreditorsFunc: func(ctx context.Context, limit int) ([]RankingEntry, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)

	ranking, err := svc.Ranking(context.Background())
	require.Error(t, err)
	assert.Nil(t, ranking)
	assert.Contains(t, err.Error(), "top debtors query")
}

func TestService_SearchContacts_LengthGate(t *testing.T) {
	repo := &fakeRepo{
		searchFunc: func(ctx context.Context, q string) ([]ContactBalance, error) {
			return []ContactBalance{{Name: "Fornecedor X", Payable: 1200}}, nil
		},
	}

	svc := NewService(repo)

	for _, q := range []string{"", "a", " a ", "  "} {
		got, err := svc.SearchContacts(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q should short-circuit", q)
	}

	assert.Zero(t, repo.searchCalls, "short queries must not reach storage")

	got, err := svc.SearchContacts(context.Background(), "fo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, int64(1200), got[0].Payable)
	assert.Equal(t, int64(0), got[0].Receivable)
}
