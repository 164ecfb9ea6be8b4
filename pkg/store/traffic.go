package store

import (
	"context"
	"math"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	"gorm.io/gorm"
)

func (r *Repository) AppendTrafficLog(ctx context.Context, entry *model.TrafficLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// NodeTrafficGB is the traffic logged on a node, in GB rounded to 2 places.
func (r *Repository) NodeTrafficGB(ctx context.Context, nodeID int) (float64, error) {
	return sumTrafficGB(r.trafficLogs(ctx).Where("node_id = ?", nodeID))
}

func (r *Repository) UserNodeTrafficGB(ctx context.Context, nodeID int, userID uint) (float64, error) {
	return sumTrafficGB(r.trafficLogs(ctx).Where("node_id = ? AND user_id = ?", nodeID, userID))
}

// UserNodeTrafficOnDayGB limits the sum to the calendar day of day, taken in
// day's location.
func (r *Repository) UserNodeTrafficOnDayGB(ctx context.Context, nodeID int, userID uint, day time.Time) (float64, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	return sumTrafficGB(r.trafficLogs(ctx).
		Where("node_id = ? AND user_id = ?", nodeID, userID).
		Where("log_date >= ? AND log_date < ?", start.UTC(), end.UTC()))
}

func (r *Repository) ListTrafficLogs(ctx context.Context, nodeID int, userID uint, limit int) ([]model.TrafficLog, error) {
	var logs []model.TrafficLog
	q := r.trafficLogs(ctx).Where("node_id = ?", nodeID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("log_time DESC").Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *Repository) trafficLogs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.TrafficLog{})
}

func sumTrafficGB(q *gorm.DB) (float64, error) {
	var total int64
	if err := q.Select("COALESCE(SUM(u + d), 0)").Row().Scan(&total); err != nil {
		return 0, err
	}
	return RoundGB(total), nil
}

func RoundGB(bytes int64) float64 {
	return math.Round(float64(bytes)/model.GB*100) / 100
}
