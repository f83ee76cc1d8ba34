package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := client
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]cachedRow) func() error {
		return func() error {
			calls++
			*dest = []cachedRow{{ID: 1, Name: "Back Squat"}}
			return nil
		}
	}

	var first []cachedRow
	err := Aside(ctx, LiftTypesKey, &first, LiftTypesTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, first, 1)

	// Second read comes from the cache, fetch is not called again.
	var second []cachedRow
	err = Aside(ctx, LiftTypesKey, &second, LiftTypesTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchError(t *testing.T) {
	setupMiniredis(t)

	var dest []cachedRow
	err := Aside(context.Background(), LeaderboardKey("latest:50"), &dest, LeaderboardTTL, func() error {
		return assert.AnError
	})
	assert.Error(t, err)

	// Errors are not cached.
	found, err := GetJSON(context.Background(), LeaderboardKey("latest:50"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_ReadErrorFallsThroughToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	// A corrupt cache entry fails the read; the source build still serves.
	key := LeaderboardKey("latest:50")
	require.NoError(t, mr.Set(key, "{not json"))

	var dest []cachedRow
	err := Aside(ctx, key, &dest, LeaderboardTTL, func() error {
		dest = []cachedRow{{ID: 1, Name: "Deadlift"}}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, dest, 1)

	// The bad entry was overwritten with the fresh build.
	var repaired []cachedRow
	found, err := GetJSON(ctx, key, &repaired)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, dest, repaired)
}

func TestGetJSON_NilClientDegrades(t *testing.T) {
	prev := client
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	var dest []cachedRow
	found, err := GetJSON(context.Background(), LiftTypesKey, &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(context.Background(), LiftTypesKey, dest, time.Minute))
}

func TestInvalidateLeaderboards(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, LeaderboardKey("latest:50"), []cachedRow{{ID: 1}}, time.Minute))
	require.NoError(t, SetJSON(ctx, LeaderboardKey("by-lift:3:50"), []cachedRow{{ID: 2}}, time.Minute))
	require.NoError(t, SetJSON(ctx, LiftTypesKey, []cachedRow{{ID: 3}}, time.Minute))

	InvalidateLeaderboards(ctx)

	assert.False(t, mr.Exists(LeaderboardKey("latest:50")))
	assert.False(t, mr.Exists(LeaderboardKey("by-lift:3:50")))
	assert.True(t, mr.Exists(LiftTypesKey))
}

func TestInvalidateProgress(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProgressKey(7, 3, "UTC"), []cachedRow{{ID: 1}}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProgressKey(7, 3, "America/New_York"), []cachedRow{{ID: 2}}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProgressKey(8, 3, "UTC"), []cachedRow{{ID: 3}}, time.Minute))

	InvalidateProgress(ctx, 7, 3)

	assert.False(t, mr.Exists(ProgressKey(7, 3, "UTC")))
	assert.False(t, mr.Exists(ProgressKey(7, 3, "America/New_York")))
	assert.True(t, mr.Exists(ProgressKey(8, 3, "UTC")))
}
