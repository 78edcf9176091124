package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/testhelpers"
)

func TestProfileUpdate(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := createUser(t, db)

	updated, err := svc.Update(ctx, user.ID, "New Name", "https://img/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "https://img/avatar.png", updated.AvatarURL)
	// email is the login identity, profile updates cannot change it
	assert.Equal(t, user.Email, updated.Email)

	// blank fields leave the stored values alone
	updated, err = svc.Update(ctx, user.ID, "  ", "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "https://img/avatar.png", updated.AvatarURL)
}

func TestProfileNotFound(t *testing.T) {
	svc := NewProfileService(testhelpers.OpenTestDB(t))

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(context.Background(), uuid.New(), "x", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
