package store

import (
	"context"
	"testing"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendTraffic(t *testing.T, repo *Repository, nodeID int, userID uint, u, d int64, at time.Time) {
	t.Helper()
	require.NoError(t, repo.AppendTrafficLog(context.Background(), &model.TrafficLog{
		UserID:          userID,
		NodeID:          nodeID,
		UploadTraffic:   u,
		DownloadTraffic: d,
		Rate:            1,
		LogTime:         at.Unix(),
		LogDate:         at,
	}))
}

func TestTrafficSumsAreZeroWithoutLogs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	total, err := repo.NodeTrafficGB(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	total, err = repo.UserNodeTrafficGB(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	total, err = repo.UserNodeTrafficOnDayGB(ctx, 1, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestTrafficSums(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	appendTraffic(t, repo, 1, 1, 500000000, 500000000, day)
	appendTraffic(t, repo, 1, 1, 100000000, 0, day.AddDate(0, 0, 1))
	appendTraffic(t, repo, 1, 2, 0, 250000000, day)
	appendTraffic(t, repo, 2, 1, 7000000000, 0, day)

	total, err := repo.NodeTrafficGB(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.35, total)

	total, err = repo.UserNodeTrafficGB(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.1, total)

	total, err = repo.UserNodeTrafficOnDayGB(ctx, 1, 1, day)
	require.NoError(t, err)
	assert.Equal(t, 1.0, total)

	total, err = repo.UserNodeTrafficOnDayGB(ctx, 1, 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.1, total)

	total, err = repo.UserNodeTrafficOnDayGB(ctx, 1, 1, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestTrafficLogDefaults(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	entry := &model.TrafficLog{UserID: 1, NodeID: 1, UploadTraffic: 1024, DownloadTraffic: 512, Rate: 1}
	require.NoError(t, repo.AppendTrafficLog(ctx, entry))
	assert.Equal(t, "1.5KB", entry.Traffic)
	assert.False(t, entry.LogDate.IsZero())
	assert.Equal(t, time.UTC, entry.LogDate.Location())
}

func TestRoundGB(t *testing.T) {
	assert.Equal(t, 0.0, RoundGB(0))
	assert.Equal(t, 1.23, RoundGB(1234567890))
	assert.Equal(t, 0.01, RoundGB(5000000))
}
