package model

import (
	"fmt"
	"time"
)

// OnlineWindow is how long an online snapshot stays current.
const OnlineWindow = 75 * time.Second

type NodeInfoLog struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	NodeID  int     `gorm:"column:node_id;not null;index" json:"node_id"`
	Uptime  float64 `gorm:"column:uptime;not null" json:"uptime"`
	Load    string  `gorm:"column:load;type:varchar(32);not null" json:"load"`
	LogTime int64   `gorm:"column:log_time;not null" json:"log_time"`
}

func (NodeInfoLog) TableName() string {
	return "ss_node_info_log"
}

func (l NodeInfoLog) String() string {
	return fmt.Sprint(l.NodeID)
}

type NodeOnlineLog struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	NodeID     int   `gorm:"column:node_id;not null;index" json:"node_id"`
	OnlineUser int   `gorm:"column:online_user;not null" json:"online_user"`
	LogTime    int64 `gorm:"column:log_time;not null;index" json:"log_time"`
}

func (NodeOnlineLog) TableName() string {
	return "ss_node_online_log"
}

func (l NodeOnlineLog) String() string {
	return fmt.Sprintf("node: %d", l.NodeID)
}

func (l *NodeOnlineLog) IsOnline(now time.Time) bool {
	return now.Unix()-l.LogTime <= int64(OnlineWindow/time.Second)
}

// EffectiveOnlineUsers is zero for a stale snapshot.
func (l *NodeOnlineLog) EffectiveOnlineUsers(now time.Time) int {
	if !l.IsOnline(now) {
		return 0
	}
	return l.OnlineUser
}
