package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGuestRepository(db)
	ctx := context.Background()

	guest := seedGuest(t, db, "周九")

	exists, err := repo.Exists(ctx, guest.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, guest.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)
}
