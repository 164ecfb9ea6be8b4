package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNode(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	mustCreateNode(t, repo, 1, nil)

	dup := repo.Settings().NewNode(1)
	dup.Name = "again"
	dup.Server = "again.example.com"
	assert.True(t, errors.Is(repo.CreateNode(ctx, dup), ErrNodeExists))

	bad := repo.Settings().NewNode(2)
	bad.Name = "bad"
	bad.Server = "bad.example.com"
	bad.Level = 10
	assert.True(t, errors.Is(repo.CreateNode(ctx, bad), model.ErrInvalidNode))

	node, err := repo.GetNode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityShown, node.Show)
	assert.Equal(t, model.DefaultNodeGroup, node.Group)

	_, err = repo.GetNode(ctx, 2)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubscription(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	acc := mustProvision(t, repo, 1, 0)
	acc.Level = 1
	require.NoError(t, repo.UpdateAccount(ctx, acc))

	first := mustCreateNode(t, repo, 10, func(n *model.Node) { n.Name = "first" })
	mustCreateNode(t, repo, 11, func(n *model.Node) { n.Show = model.VisibilityHidden })
	mustCreateNode(t, repo, 12, func(n *model.Node) { n.Level = 2 })
	third := mustCreateNode(t, repo, 13, func(n *model.Node) {
		n.Name = "third"
		n.Level = 1
		n.CustomMethod = 1
	})

	sub, err := repo.Subscription(ctx, acc)
	require.NoError(t, err)
	assert.Equal(t, first.SSRLink(acc)+"\n"+third.SSRLink(acc)+"\n", sub)
	assert.Equal(t, 2, strings.Count(sub, "ssr://"))

	nodes, err := repo.ListNodes(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 4)
}

func TestSubscriptionEmpty(t *testing.T) {
	repo := newTestRepository(t)
	acc := mustProvision(t, repo, 1, 0)
	mustCreateNode(t, repo, 1, func(n *model.Node) { n.Level = 5 })
	sub, err := repo.Subscription(context.Background(), acc)
	require.NoError(t, err)
	assert.Empty(t, sub)
}

func TestLatestNodeLogs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.LatestNodeOnline(ctx, 1)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = repo.LatestNodeInfo(ctx, 1)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, repo.AppendNodeInfo(ctx, &model.NodeInfoLog{NodeID: 1, Uptime: 10, Load: "0.1 0.2 0.3", LogTime: 100}))
	require.NoError(t, repo.AppendNodeInfo(ctx, &model.NodeInfoLog{NodeID: 1, Uptime: 70, Load: "0.5 0.4 0.3", LogTime: 160}))
	info, err := repo.LatestNodeInfo(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.5 0.4 0.3", info.Load)
}

func TestTotalOnlineUsers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	entries := []model.NodeOnlineLog{
		{NodeID: 1, OnlineUser: 10, LogTime: now.Unix() - 50},
		{NodeID: 1, OnlineUser: 5, LogTime: now.Unix() - 10},
		{NodeID: 2, OnlineUser: 3, LogTime: now.Unix() - 30},
		{NodeID: 3, OnlineUser: 7, LogTime: now.Unix() - 80},
	}
	for i := range entries {
		require.NoError(t, repo.AppendNodeOnline(ctx, &entries[i]))
	}

	total, err := repo.TotalOnlineUsers(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 8, total)

	latest, err := repo.LatestNodeOnline(ctx, 3)
	require.NoError(t, err)
	assert.False(t, latest.IsOnline(now))

	total, err = repo.TotalOnlineUsers(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListLogs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, repo.DB().Create(&model.Log{Msg: msg, Level: 4, CreatedAt: time.Now().UTC()}).Error)
	}
	logs, err := repo.ListLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "c", logs[0].Msg)
	assert.Equal(t, "b", logs[1].Msg)
}
