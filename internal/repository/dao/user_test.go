package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDAO_UpsertSponsorProfile(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(newTestDB(t))

	created, err := d.UpsertSponsorProfile(ctx, SponsorProfile{
		UserID:  7,
		Name:    "Acme Corp",
		Website: "https://acme.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", created.Name)

	// Second upsert for the same user overwrites in place instead of
	// creating a second profile.
	updated, err := d.UpsertSponsorProfile(ctx, SponsorProfile{
		UserID: 7,
		Name:   "Acme Corporation",
		Logo:   "https://acme.example.com/logo.png",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.Equal(t, "https://acme.example.com/logo.png", updated.Logo)

	got, err := d.FindSponsorProfileByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUserDAO_FindSponsorProfileByUserID_NotFound(t *testing.T) {
	d := NewUserDAO(newTestDB(t))

	_, err := d.FindSponsorProfileByUserID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSponsorProfileNotFound)
}

func TestUserDAO_FindByEmail(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(newTestDB(t))

	inserted, err := d.Insert(ctx, User{
		Email:    "sponsor@example.com",
		Password: "hashed",
		Name:     "Sponsor",
		Role:     "sponsor",
	})
	require.NoError(t, err)

	got, err := d.FindByEmail(ctx, "sponsor@example.com")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, got.ID)

	_, err = d.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
