package store

import (
	"context"
	"testing"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	a := mustProvision(t, repo, 1, 0)
	b := mustProvision(t, repo, 2, 0)
	c := mustProvision(t, repo, 3, 0)
	mustProvision(t, repo, 4, 0)

	_, err := repo.CheckIn(ctx, a.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	// same day of the previous month
	_, err = repo.CheckIn(ctx, b.ID, now.AddDate(0, -1, 0))
	require.NoError(t, err)

	require.NoError(t, repo.AddTraffic(ctx, a.ID, 100, 0, now))
	require.NoError(t, repo.AddTraffic(ctx, b.ID, 100, 200, now))
	require.NoError(t, repo.AddTraffic(ctx, c.ID, 0, 500, now))

	require.NoError(t, repo.AppendNodeOnline(ctx, &model.NodeOnlineLog{NodeID: 1, OnlineUser: 4, LogTime: now.Unix() - 5}))

	stats, err := repo.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Accounts)
	assert.Equal(t, int64(1), stats.CheckedInToday)
	assert.Equal(t, int64(2), stats.NeverCheckedIn)
	assert.Equal(t, int64(1), stats.NeverUsed)
	assert.Equal(t, 4, stats.OnlineUsers)

	// a has no download and is left out
	require.Len(t, stats.TopTraffic, 2)
	assert.Equal(t, c.ID, stats.TopTraffic[0].Account.ID)
	assert.Equal(t, b.ID, stats.TopTraffic[1].Account.ID)
	assert.Equal(t, "0.00", stats.TopTraffic[0].UsedGB)
}

func TestStatsLegacyCheckIn(t *testing.T) {
	repo := newTestRepository(t)
	repo.settings.LegacyCheckInDayMatch = true
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	b := mustProvision(t, repo, 1, 0)
	_, err := repo.CheckIn(ctx, b.ID, now.AddDate(0, -1, 0))
	require.NoError(t, err)

	count, err := repo.CountCheckedInToday(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTopTrafficLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()
	for i := 1; i <= 12; i++ {
		acc := mustProvision(t, repo, uint(i), 0)
		require.NoError(t, repo.AddTraffic(ctx, acc.ID, 0, int64(i), now))
	}
	top, err := repo.TopTrafficAccounts(ctx, TopTrafficLimit)
	require.NoError(t, err)
	require.Len(t, top, TopTrafficLimit)
	assert.Equal(t, uint(12), top[0].Account.UserID)
	assert.Equal(t, uint(3), top[9].Account.UserID)
}

func TestEmptyStats(t *testing.T) {
	repo := newTestRepository(t)
	stats, err := repo.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.Accounts)
	assert.Zero(t, stats.OnlineUsers)
	assert.Empty(t, stats.TopTraffic)
}
