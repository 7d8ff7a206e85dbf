package sessionsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	store := NewMemoryStore()
	require.NoError(t, store.Revoke(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "expired", now.Add(-time.Minute)))

	revoked, _ := store.IsRevoked(ctx, "live")
	assert.True(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "expired")
	assert.False(t, revoked, "already expired tokens need no entry")
	revoked, _ = store.IsRevoked(ctx, "unknown")
	assert.False(t, revoked)

	// past expiry the entry is ignored, then purged on the next write
	now = now.Add(2 * time.Hour)
	revoked, _ = store.IsRevoked(ctx, "live")
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "other", now.Add(time.Hour)))
	assert.Len(t, store.revoked, 1)
}
