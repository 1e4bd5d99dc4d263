package ledger_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfarias/fincontrol/internal/ledger"
)

func splitParams(amount int64, installments int, due time.Time) ledger.SplitParams {
	return ledger.SplitParams{
		Description:  "Aluguel",
		Amount:       amount,
		DueDate:      due,
		Type:         ledger.TypeDespesa,
		CategoryID:   1,
		ContactID:    2,
		AccountID:    3,
		Split:        installments > 1,
		Installments: installments,
	}
}

func TestSplit_SingleEntry(t *testing.T) {
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	entries, err := ledger.Split(splitParams(10000, 1, due))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, int64(10000), e.Amount)
	assert.Equal(t, "Aluguel", e.Description)
	assert.Equal(t, 1, e.InstallmentNumber)
	assert.Equal(t, 1, e.InstallmentTotal)
	assert.Nil(t, e.GroupID)
	assert.Equal(t, ledger.StatusPendente, e.Status)
	assert.Nil(t, e.PaymentDate)
	assert.True(t, e.DueDate.Equal(due))
}

func TestSplit_SplitFlagOff(t *testing.T) {
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	params := splitParams(10000, 12, due)
	params.Split = false

	entries, err := ledger.Split(params)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10000), entries[0].Amount)
	assert.Nil(t, entries[0].GroupID)
}

func TestSplit_RemainderGoesToFirstInstallment(t *testing.T) {
	due := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	entries, err := ledger.Split(splitParams(10000, 3, due))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(3334), entries[0].Amount)
	assert.Equal(t, int64(3333), entries[1].Amount)
	assert.Equal(t, int64(3333), entries[2].Amount)
}

func TestSplit_SumInvariant(t *testing.T) {
	due := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	amounts := []int64{9999, 10000, 10001, 123456789, 1999999999}

	for _, amount := range amounts {
		for _, n := range []int{1, 2, 3, 7, 12, 31, 360, 999} {
			t.Run(fmt.Sprintf("%d_in_%d", amount, n), func(t *testing.T) {
				entries, err := ledger.Split(splitParams(amount, n, due))
				require.NoError(t, err)
				require.Len(t, entries, n)

				var sum int64
				for i, e := range entries {
					assert.Equal(t, i+1, e.InstallmentNumber)
					assert.Equal(t, n, e.InstallmentTotal)
					assert.Positive(t, e.Amount)
					sum += e.Amount
				}

				assert.Equal(t, amount, sum)
			})
		}
	}
}

func TestSplit_SharedGroupAndMetadata(t *testing.T) {
	due := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)

	entries, err := ledger.Split(splitParams(30000, 3, due))
	require.NoError(t, err)

	require.NotNil(t, entries[0].GroupID)
	group := *entries[0].GroupID

	for i, e := range entries {
		require.NotNil(t, e.GroupID)
		assert.Equal(t, group, *e.GroupID)
		assert.Equal(t, fmt.Sprintf("Aluguel (%d/3)", i+1), e.Description)
		assert.Equal(t, int64(1), e.CategoryID)
		assert.Equal(t, int64(2), e.ContactID)
		assert.Equal(t, int64(3), e.AccountID)
		assert.Equal(t, ledger.TypeDespesa, e.Type)
		assert.Equal(t, ledger.StatusPendente, e.Status)
	}
}

func TestSplit_FreshGroupPerCall(t *testing.T) {
	due := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)

	first, err := ledger.Split(splitParams(30000, 2, due))
	require.NoError(t, err)

	second, err := ledger.Split(splitParams(30000, 2, due))
	require.NoError(t, err)

	assert.NotEqual(t, *first[0].GroupID, *second[0].GroupID)
}

func TestSplit_MonthRollover(t *testing.T) {
	type testCase struct {
		name     string
		due      time.Time
		months   int
		wantDues []time.Time
	}

	tests := []testCase{
		{
			name:   "Jan31ClampsToFebAndBackToMar31",
			due:    time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 3,
			wantDues: []time.Time{
				time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "LeapFebruary",
			due:    time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 2,
			wantDues: []time.Time{
				time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "Day30Clamps",
			due:    time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC),
			months: 4,
			wantDues: []time.Time{
				time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "YearBoundary",
			due:    time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
			months: 3,
			wantDues: []time.Time{
				time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ledger.Split(splitParams(int64(tt.months)*10000, tt.months, tt.due))
			require.NoError(t, err)
			require.Len(t, entries, tt.months)

			for i, want := range tt.wantDues {
				assert.True(t, entries[i].DueDate.Equal(want),
					"installment %d: got %s, want %s", i+1, entries[i].DueDate, want)
			}
		})
	}
}

func TestSplit_InvalidInput(t *testing.T) {
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name   string
		mutate func(*ledger.SplitParams)
	}

	tests := []testCase{
		{name: "ZeroAmount", mutate: func(p *ledger.SplitParams) { p.Amount = 0 }},
		{name: "NegativeAmount", mutate: func(p *ledger.SplitParams) { p.Amount = -100 }},
		{name: "ZeroInstallments", mutate: func(p *ledger.SplitParams) { p.Installments = 0 }},
		{name: "NegativeInstallments", mutate: func(p *ledger.SplitParams) { p.Installments = -3 }},
		{name: "UnknownType", mutate: func(p *ledger.SplitParams) { p.Type = "TRANSFERENCIA" }},
		{
			name: "AmountTooSmallToSplit",
			mutate: func(p *ledger.SplitParams) {
				p.Amount = 2
				p.Installments = 3
			},
		},
		{
			name: "RoundingWouldTurnFirstInstallmentNegative",
			mutate: func(p *ledger.SplitParams) {
				// 15.00 over 999 parts rounds the base up to 2 cents,
				// leaving a remainder that would sink the first below zero.
				p.Amount = 1500
				p.Installments = 999
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := splitParams(10000, 2, due)
			tt.mutate(&params)

			entries, err := ledger.Split(params)
			assert.ErrorIs(t, err, ledger.ErrInvalidInput)
			assert.Nil(t, entries)
		})
	}
}
