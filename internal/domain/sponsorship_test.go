package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSponsorshipStatus_IsTerminal(t *testing.T) {
	assert.False(t, SponsorshipPending.IsTerminal())
	assert.True(t, SponsorshipCompleted.IsTerminal())
	assert.True(t, SponsorshipFailed.IsTerminal())
	assert.False(t, SponsorshipStatus("REFUNDED").IsTerminal())
}

func TestSponsorshipStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from SponsorshipStatus
		to   SponsorshipStatus
		want bool
	}{
		{name: "pending to completed", from: SponsorshipPending, to: SponsorshipCompleted, want: true},
		{name: "pending to failed", from: SponsorshipPending, to: SponsorshipFailed, want: true},
		{name: "pending to pending", from: SponsorshipPending, to: SponsorshipPending, want: false},
		{name: "completed is sticky", from: SponsorshipCompleted, to: SponsorshipFailed, want: false},
		{name: "failed is sticky", from: SponsorshipFailed, to: SponsorshipCompleted, want: false},
		{name: "completed to completed", from: SponsorshipCompleted, to: SponsorshipCompleted, want: false},
		{name: "pending to unknown", from: SponsorshipPending, to: SponsorshipStatus("REFUNDED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
