package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		tier    string
		wantErr error
	}{
		{name: "below minimum", amount: 99.99, tier: "", wantErr: ErrInvalidAmount},
		{name: "zero", amount: 0, tier: "", wantErr: ErrInvalidAmount},
		{name: "negative", amount: -500, tier: "", wantErr: ErrInvalidAmount},
		{name: "NaN", amount: math.NaN(), tier: "", wantErr: ErrInvalidAmount},
		{name: "positive infinity", amount: math.Inf(1), tier: "", wantErr: ErrInvalidAmount},
		{name: "exactly minimum no tier", amount: 100, tier: ""},
		{name: "large amount no tier", amount: 1_000_000, tier: ""},

		{name: "bronze lower bound", amount: 100, tier: "bronze"},
		{name: "bronze upper bound", amount: 499, tier: "bronze"},
		{name: "bronze overshoot", amount: 500, tier: "bronze", wantErr: ErrTierAmountMismatch},
		{name: "silver lower bound", amount: 500, tier: "silver"},
		{name: "silver mid", amount: 750, tier: "silver"},
		{name: "silver upper bound", amount: 999, tier: "silver"},
		{name: "silver undershoot", amount: 499, tier: "silver", wantErr: ErrTierAmountMismatch},
		{name: "gold lower bound", amount: 1000, tier: "gold"},
		{name: "gold upper bound", amount: 2499, tier: "gold"},
		{name: "gold overshoot", amount: 2500, tier: "gold", wantErr: ErrTierAmountMismatch},
		{name: "platinum lower bound", amount: 2500, tier: "platinum"},
		{name: "platinum open ended", amount: 100_000, tier: "platinum"},
		{name: "platinum undershoot", amount: 2499, tier: "platinum", wantErr: ErrTierAmountMismatch},

		{name: "uppercase tier name", amount: 750, tier: "SILVER"},
		{name: "unknown tier", amount: 750, tier: "diamond", wantErr: ErrTierAmountMismatch},
		{name: "below minimum trumps tier check", amount: 50, tier: "bronze", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount, tt.tier)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTierByName(t *testing.T) {
	tier, ok := TierByName("GOLD")
	require.True(t, ok)
	assert.Equal(t, "gold", tier.Name)
	assert.Equal(t, float64(1000), tier.MinAmount)
	assert.Equal(t, float64(2499), tier.MaxAmount)

	_, ok = TierByName("diamond")
	assert.False(t, ok)
}

func TestTiers_ReturnsCopy(t *testing.T) {
	got := Tiers()
	require.Len(t, got, 4)

	got[0].MinAmount = 1

	again := Tiers()
	assert.Equal(t, float64(100), again[0].MinAmount)
}
