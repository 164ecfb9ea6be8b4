package model

import "github.com/iyouport-org/sspanel/pkg/link"

// Node is a proxy server endpoint. When CustomMethod is 1 the links built for
// an account carry the account's own method, protocol and obfs instead of the node's.
type Node struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	NodeID       int        `gorm:"column:node_id;uniqueIndex;not null" json:"node_id" validate:"gte=0"`
	Name         string     `gorm:"column:name;type:varchar(32);not null" json:"name" validate:"required,max=32"`
	Server       string     `gorm:"column:server;type:varchar(128);not null" json:"server" validate:"required,max=128"`
	Method       Method     `gorm:"column:method;type:varchar(32);not null" json:"method"`
	CustomMethod int        `gorm:"column:custom_method;not null" json:"custom_method" validate:"oneof=0 1"`
	TrafficRate  float64    `gorm:"column:traffic_rate;not null" json:"traffic_rate" validate:"gte=0"`
	Protocol     Protocol   `gorm:"column:protocol;type:varchar(32);not null" json:"protocol"`
	Obfs         Obfs       `gorm:"column:obfs;type:varchar(32);not null" json:"obfs"`
	Info         *string    `gorm:"column:info;type:varchar(1024)" json:"info,omitempty"`
	Status       NodeStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Level        int        `gorm:"column:level;not null" json:"level" validate:"gte=0,lte=9"`
	Show         Visibility `gorm:"column:show;type:varchar(32);not null" json:"show"`
	Group        string     `gorm:"column:group;type:varchar(32);not null" json:"group" validate:"max=32"`
}

func (Node) TableName() string {
	return "ss_node"
}

func (n *Node) Visible() bool {
	return n.Show == VisibilityShown
}

// VisibleTo reports whether the node shows up in the subscription of a.
func (n *Node) VisibleTo(a *Account) bool {
	return n.Visible() && n.Level >= 0 && uint(n.Level) <= a.Level
}

func (n *Node) settingsFor(a *Account) (Method, Protocol, Obfs) {
	if n.CustomMethod == 1 {
		return a.Method, a.Protocol, a.Obfs
	}
	return n.Method, n.Protocol, n.Obfs
}

func (n *Node) SS(a *Account) link.SS {
	method, _, _ := n.settingsFor(a)
	return link.SS{
		Method:   string(method),
		Password: a.Password,
		Server:   n.Server,
		Port:     a.Port,
	}
}

func (n *Node) SSR(a *Account) link.SSR {
	method, protocol, obfs := n.settingsFor(a)
	return link.SSR{
		Server:   n.Server,
		Port:     a.Port,
		Protocol: string(protocol),
		Method:   string(method),
		Obfs:     string(obfs),
		Password: a.Password,
		Remarks:  n.Name,
		Group:    n.Group,
	}
}

func (n *Node) SSLink(a *Account) string {
	return n.SS(a).String()
}

func (n *Node) SSRLink(a *Account) string {
	return n.SSR(a).String()
}
