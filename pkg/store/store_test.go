package store

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := New(db, model.DefaultSettings())
	require.NoError(t, repo.Migrate())
	return repo
}

func mustProvision(t *testing.T, repo *Repository, userID uint, port int) *model.Account {
	t.Helper()
	acc, err := repo.Provision(context.Background(), userID, port)
	require.NoError(t, err)
	return acc
}

func mustCreateNode(t *testing.T, repo *Repository, nodeID int, mutate func(*model.Node)) *model.Node {
	t.Helper()
	node := repo.Settings().NewNode(nodeID)
	node.Name = "node"
	node.Server = "node.example.com"
	if mutate != nil {
		mutate(node)
	}
	require.NoError(t, repo.CreateNode(context.Background(), node))
	return node
}
