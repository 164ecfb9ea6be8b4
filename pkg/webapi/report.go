package webapi

import (
	"github.com/iyouport-org/sspanel/pkg/store"
)

// UserTraffic is one account's usage on the reporting node since the last report.
type UserTraffic struct {
	UserID   uint  `json:"user_id" binding:"required"`
	Upload   int64 `json:"u" binding:"gte=0"`
	Download int64 `json:"d" binding:"gte=0"`
}

type PostTrafficRequest struct {
	Data []UserTraffic `json:"data" binding:"required,dive"`
}

type PostNodeInfoRequest struct {
	Uptime float64 `json:"uptime" binding:"gte=0"`
	Load   string  `json:"load" binding:"required,max=32"`
}

type PostNodeOnlineRequest struct {
	OnlineUser int `json:"online_user" binding:"gte=0"`
}

type NodeTraffic struct {
	NodeID  int     `json:"node_id"`
	UserID  uint    `json:"user_id,omitempty"`
	Date    string  `json:"date,omitempty"`
	TotalGB float64 `json:"total_gb"`
}

type TopAccount struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	UsedGB string `json:"used_gb"`
}

type Stats struct {
	Accounts       int64        `json:"accounts"`
	CheckedInToday int64        `json:"checked_in_today"`
	NeverCheckedIn int64        `json:"never_checked_in"`
	NeverUsed      int64        `json:"never_used"`
	OnlineUsers    int          `json:"online_users"`
	TopTraffic     []TopAccount `json:"top_traffic"`
}

func GetStats(stats *store.Stats) Stats {
	ret := Stats{
		Accounts:       stats.Accounts,
		CheckedInToday: stats.CheckedInToday,
		NeverCheckedIn: stats.NeverCheckedIn,
		NeverUsed:      stats.NeverUsed,
		OnlineUsers:    stats.OnlineUsers,
		TopTraffic:     make([]TopAccount, len(stats.TopTraffic)),
	}
	for k, v := range stats.TopTraffic {
		ret.TopTraffic[k] = TopAccount{
			ID:     v.Account.ID,
			UserID: v.Account.UserID,
			UsedGB: v.UsedGB,
		}
	}
	return ret
}
