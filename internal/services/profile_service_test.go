package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/testutil"
)

func TestProfileService_UpsertProfile(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "user@example.com")

	_, err := svc.GetProfile(ctx, actorFor(user))
	require.ErrorIs(t, err, ErrProfileNotFound)

	profile, err := svc.UpsertProfile(ctx, actorFor(user), "  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Ana", profile.DisplayName)

	again, err := svc.UpsertProfile(ctx, actorFor(user), "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.DisplayName)

	renamed, err := svc.UpsertProfile(ctx, actorFor(user), "Ana María")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", renamed.DisplayName)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileService_UpsertProfile_Validation(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))
	user := testutil.CreateUser(t, db, "user@example.com")

	for _, name := range []string{"", " A ", strings.Repeat("x", 101)} {
		_, err := svc.UpsertProfile(context.Background(), actorFor(user), name)
		require.ErrorIs(t, err, ErrInvalidDisplayName, "name %q", name)
	}

	_, err := svc.UpsertProfile(context.Background(), actorFor(user), strings.Repeat("é", 100))
	require.NoError(t, err)
}
