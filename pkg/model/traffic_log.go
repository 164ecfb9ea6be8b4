package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TrafficLog is one reporting interval of an account's traffic on a node.
// Rows are only ever appended.
type TrafficLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;index:idx_traffic_node_user,priority:2" json:"user_id"`
	NodeID          int       `gorm:"column:node_id;not null;index:idx_traffic_node_user,priority:1" json:"node_id"`
	UploadTraffic   int64     `gorm:"column:u;not null;default:0" json:"upload_traffic"`
	DownloadTraffic int64     `gorm:"column:d;not null;default:0" json:"download_traffic"`
	Rate            float64   `gorm:"column:rate;not null" json:"rate"`
	Traffic         string    `gorm:"column:traffic;type:varchar(32);not null" json:"traffic"`
	LogTime         int64     `gorm:"column:log_time;not null" json:"log_time"`
	LogDate         time.Time `gorm:"column:log_date;not null;index" json:"log_date"`
}

func (TrafficLog) TableName() string {
	return "user_traffic_log"
}

func (l *TrafficLog) BeforeCreate(tx *gorm.DB) error {
	if l.LogDate.IsZero() {
		l.LogDate = tx.NowFunc()
	}
	l.LogDate = l.LogDate.UTC()
	if l.Traffic == "" {
		l.Traffic = FormatTraffic(int64(float64(l.UploadTraffic+l.DownloadTraffic) * l.Rate))
	}
	return nil
}

func (l TrafficLog) String() string {
	return l.Traffic
}

// FormatTraffic renders a byte count the way the proxy process writes the
// traffic column, e.g. "512B", "1.5KB", "20.01MB".
func FormatTraffic(bytes int64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%dB", bytes)
	case bytes < unit*unit:
		return trimZeros(fmt.Sprintf("%.2f", float64(bytes)/unit)) + "KB"
	case bytes < unit*unit*unit:
		return trimZeros(fmt.Sprintf("%.2f", float64(bytes)/(unit*unit))) + "MB"
	default:
		return trimZeros(fmt.Sprintf("%.2f", float64(bytes)/(unit*unit*unit))) + "GB"
	}
}

func trimZeros(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
