package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfarias/fincontrol/internal/money"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "integer", input: "100", want: 10000},
		{name: "one decimal place", input: "100.5", want: 10050},
		{name: "two decimal places", input: "100.50", want: 10050},
		{name: "trailing zeros beyond two places", input: "1.100", want: 110},
		{name: "single cent", input: "0.01", want: 1},
		{name: "large amount", input: "19999999.99", want: 1999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseAmount(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: money.ErrInvalidAmount},
		{name: "not a number", input: "abc", wantErr: money.ErrInvalidAmount},
		{name: "three decimal places", input: "10.555", wantErr: money.ErrInvalidAmount},
		{name: "zero", input: "0", wantErr: money.ErrNonPositiveAmount},
		{name: "zero with decimals", input: "0.00", wantErr: money.ErrNonPositiveAmount},
		{name: "negative", input: "-10.50", wantErr: money.ErrNonPositiveAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := money.ParseAmount(tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecimal(t *testing.T) {
	assert.Equal(t, "100.5", money.Decimal(10050).String())
	assert.Equal(t, "0.01", money.Decimal(1).String())
	assert.Equal(t, "-33.33", money.Decimal(-3333).String())
}
