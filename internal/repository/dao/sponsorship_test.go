package dao

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func seedSponsorship(t *testing.T, d *SponsorshipDAO, status string) Sponsorship {
	t.Helper()

	sponsorship, err := d.Insert(context.Background(), Sponsorship{
		EventID:          1,
		SponsorProfileID: 1,
		UserID:           1,
		Amount:           750,
		Tier:             "silver",
		Status:           status,
	})
	require.NoError(t, err)

	return sponsorship
}

func TestSponsorshipDAO_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps PENDING row exactly once", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))
		sponsorship := seedSponsorship(t, d, "PENDING")

		won, err := d.UpdateStatus(ctx, sponsorship.ID, "PENDING", "COMPLETED")
		require.NoError(t, err)
		assert.True(t, won)

		// Second identical swap finds no PENDING row to claim.
		won, err = d.UpdateStatus(ctx, sponsorship.ID, "PENDING", "FAILED")
		require.NoError(t, err)
		assert.False(t, won)

		got, err := d.FindByID(ctx, sponsorship.ID)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", got.Status)
	})

	t.Run("missing row loses the swap", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))

		won, err := d.UpdateStatus(ctx, 404, "PENDING", "COMPLETED")
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("does not touch rows in another state", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))
		sponsorship := seedSponsorship(t, d, "FAILED")

		won, err := d.UpdateStatus(ctx, sponsorship.ID, "PENDING", "COMPLETED")
		require.NoError(t, err)
		assert.False(t, won)

		got, err := d.FindByID(ctx, sponsorship.ID)
		require.NoError(t, err)
		assert.Equal(t, "FAILED", got.Status)
	})
}

func TestSponsorshipDAO_InsertPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("second payment for the same sponsorship is rejected", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))
		sponsorship := seedSponsorship(t, d, "COMPLETED")

		_, err := d.InsertPayment(ctx, Payment{
			SponsorshipID: sponsorship.ID,
			Method:        "CARD",
			Amount:        750,
			ProviderRef:   "pi_first",
		})
		require.NoError(t, err)

		_, err = d.InsertPayment(ctx, Payment{
			SponsorshipID: sponsorship.ID,
			Method:        "CARD",
			Amount:        750,
			ProviderRef:   "pi_second",
		})
		assert.ErrorIs(t, err, ErrPaymentExists)

		got, err := d.FindPaymentBySponsorshipID(ctx, sponsorship.ID)
		require.NoError(t, err)
		assert.Equal(t, "pi_first", got.ProviderRef)
	})

	t.Run("payments for different sponsorships coexist", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))
		first := seedSponsorship(t, d, "COMPLETED")
		second := seedSponsorship(t, d, "COMPLETED")

		_, err := d.InsertPayment(ctx, Payment{SponsorshipID: first.ID, Method: "CARD", Amount: 750})
		require.NoError(t, err)

		_, err = d.InsertPayment(ctx, Payment{SponsorshipID: second.ID, Method: "CARD", Amount: 750})
		assert.NoError(t, err)
	})
}

func TestSponsorshipDAO_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("preloads the payment", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))
		sponsorship := seedSponsorship(t, d, "COMPLETED")

		_, err := d.InsertPayment(ctx, Payment{
			SponsorshipID: sponsorship.ID,
			Method:        "SANDBOX",
			Amount:        750,
		})
		require.NoError(t, err)

		got, err := d.FindByID(ctx, sponsorship.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Payment)
		assert.Equal(t, "SANDBOX", got.Payment.Method)
	})

	t.Run("not found", func(t *testing.T) {
		d := NewSponsorshipDAO(newTestDB(t))

		_, err := d.FindByID(ctx, 404)
		assert.ErrorIs(t, err, ErrSponsorshipNotFound)
	})
}

func TestSponsorshipDAO_SetCheckoutRef(t *testing.T) {
	d := NewSponsorshipDAO(newTestDB(t))
	sponsorship := seedSponsorship(t, d, "PENDING")

	err := d.SetCheckoutRef(context.Background(), sponsorship.ID, "cs_test_abc")
	require.NoError(t, err)

	got, err := d.FindByID(context.Background(), sponsorship.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", got.CheckoutRef)
}
