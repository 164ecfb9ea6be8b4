package store

import (
	"context"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
)

func (r *Repository) AppendNodeInfo(ctx context.Context, entry *model.NodeInfoLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *Repository) AppendNodeOnline(ctx context.Context, entry *model.NodeOnlineLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *Repository) LatestNodeInfo(ctx context.Context, nodeID int) (*model.NodeInfoLog, error) {
	var entry model.NodeInfoLog
	err := r.db.WithContext(ctx).
		Where("node_id = ?", nodeID).
		Order("log_time DESC").
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (r *Repository) LatestNodeOnline(ctx context.Context, nodeID int) (*model.NodeOnlineLog, error) {
	var entry model.NodeOnlineLog
	err := r.db.WithContext(ctx).
		Where("node_id = ?", nodeID).
		Order("log_time DESC").
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// TotalOnlineUsers sums the newest snapshot of every node. Older snapshots of
// the same node are ignored, and stale ones count as zero, so only rows inside
// the online window are read.
func (r *Repository) TotalOnlineUsers(ctx context.Context, now time.Time) (int, error) {
	var fresh []model.NodeOnlineLog
	err := r.db.WithContext(ctx).
		Where("log_time >= ?", now.Add(-model.OnlineWindow).Unix()).
		Order("log_time DESC").
		Order("id DESC").
		Find(&fresh).Error
	if err != nil {
		return 0, err
	}
	seen := make(map[int]struct{}, len(fresh))
	total := 0
	for i := range fresh {
		if _, ok := seen[fresh[i].NodeID]; ok {
			continue
		}
		seen[fresh[i].NodeID] = struct{}{}
		total += fresh[i].EffectiveOnlineUsers(now)
	}
	return total, nil
}

func (r *Repository) ListLogs(ctx context.Context, limit int) ([]model.Log, error) {
	var logs []model.Log
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
