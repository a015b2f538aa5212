package rounding_test

import (
	"testing"

	"github.com/qaydhq/qayd_backend/internal/utils/rounding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfToEven(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		places int32
		want   string
	}{
		{"half down to even", "2.5", 0, "2"},
		{"half up to even", "3.5", 0, "4"},
		{"half at two places down", "10.125", 2, "10.12"},
		{"half at two places up", "10.135", 2, "10.14"},
		{"not a half rounds normally", "10.126", 2, "10.13"},
		{"below half rounds down", "10.124", 2, "10.12"},
		{"negative half to even", "-2.5", 0, "-2"},
		{"exact value unchanged", "12.50", 2, "12.5"},
		{"zero", "0", 2, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rounding.Round(decimal.RequireFromString(tc.input), tc.places)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"Round(%s, %d) = %s, want %s", tc.input, tc.places, got, tc.want)
		})
	}
}

func TestRoundAmountIsTwoPlaces(t *testing.T) {
	got := rounding.RoundAmount(decimal.RequireFromString("1.005"))
	// 1.005 is an exact half at the third place; even neighbour is 1.00.
	assert.True(t, got.Equal(decimal.RequireFromString("1")))

	got = rounding.RoundAmount(decimal.RequireFromString("1.015"))
	assert.True(t, got.Equal(decimal.RequireFromString("1.02")))
}

func TestRoundIsReproducible(t *testing.T) {
	v := decimal.RequireFromString("7.345")
	first := rounding.Round(v, 2)
	for i := 0; i < 100; i++ {
		assert.True(t, first.Equal(rounding.Round(v, 2)))
	}
}
