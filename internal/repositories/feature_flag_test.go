package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFlagRepository(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	repo := NewFeatureFlagRepository(rdb)

	t.Run("Unknown flag is disabled", func(t *testing.T) {
		enabled, err := repo.IsEnabled(ctx, "missing", "anonymous")
		assert.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("Global value", func(t *testing.T) {
		require.NoError(t, repo.SetFlag(ctx, "new-ui", true))
		enabled, err := repo.IsEnabled(ctx, "new-ui", "anonymous")
		assert.NoError(t, err)
		assert.True(t, enabled)

		require.NoError(t, repo.SetFlag(ctx, "new-ui", false))
		enabled, err = repo.IsEnabled(ctx, "new-ui", "anonymous")
		assert.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("Targeted subject wins", func(t *testing.T) {
		subject := uuid.NewString()
		require.NoError(t, repo.SetFlag(ctx, "dark_mode", false))
		require.NoError(t, repo.EnableFor(ctx, "dark_mode", subject))

		enabled, err := repo.IsEnabled(ctx, "dark_mode", subject)
		assert.NoError(t, err)
		assert.True(t, enabled)

		enabled, err = repo.IsEnabled(ctx, "dark_mode", "someone-else")
		assert.NoError(t, err)
		assert.False(t, enabled)

		require.NoError(t, repo.DisableFor(ctx, "dark_mode", subject))
		enabled, err = repo.IsEnabled(ctx, "dark_mode", subject)
		assert.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("Seed does not overwrite", func(t *testing.T) {
		require.NoError(t, repo.SetFlag(ctx, "export_csv", true))
		require.NoError(t, repo.SeedFlags(ctx, map[string]bool{"export_csv": false, "seeded": true}))

		enabled, err := repo.IsEnabled(ctx, "export_csv", "anonymous")
		assert.NoError(t, err)
		assert.True(t, enabled)

		enabled, err = repo.IsEnabled(ctx, "seeded", "anonymous")
		assert.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("Malformed value is an error", func(t *testing.T) {
		require.NoError(t, rdb.HSet(ctx, flagsKey, "broken", "maybe").Err())
		enabled, err := repo.IsEnabled(ctx, "broken", "anonymous")
		assert.Error(t, err)
		assert.False(t, enabled)
	})
}
