package webapi

import "github.com/iyouport-org/sspanel/pkg/model"

type PostNodeRequest struct {
	NodeID       int      `json:"node_id" binding:"gte=0"`
	Name         string   `json:"name" binding:"required,max=32"`
	Server       string   `json:"server" binding:"required,max=128"`
	Method       string   `json:"method"`
	Protocol     string   `json:"protocol"`
	Obfs         string   `json:"obfs"`
	CustomMethod int      `json:"custom_method" binding:"oneof=0 1"`
	TrafficRate  *float64 `json:"traffic_rate" binding:"omitempty,gte=0"`
	Info         *string  `json:"info" binding:"omitempty,max=1024"`
	Status       string   `json:"status"`
	Level        int      `json:"level" binding:"gte=0,lte=9"`
	Hidden       bool     `json:"hidden"`
	Group        string   `json:"group" binding:"max=32"`
}

func (req *PostNodeRequest) Apply(node *model.Node) {
	node.Name = req.Name
	node.Server = req.Server
	if req.Method != "" {
		node.Method = model.Method(req.Method)
	}
	if req.Protocol != "" {
		node.Protocol = model.Protocol(req.Protocol)
	}
	if req.Obfs != "" {
		node.Obfs = model.Obfs(req.Obfs)
	}
	node.CustomMethod = req.CustomMethod
	if req.TrafficRate != nil {
		node.TrafficRate = *req.TrafficRate
	}
	node.Info = req.Info
	if req.Status != "" {
		node.Status = model.NodeStatus(req.Status)
	}
	node.Level = req.Level
	if req.Hidden {
		node.Show = model.VisibilityHidden
	}
	if req.Group != "" {
		node.Group = req.Group
	}
}

type Node struct {
	NodeID       int     `json:"node_id"`
	Name         string  `json:"name"`
	Server       string  `json:"server"`
	Method       string  `json:"method"`
	Protocol     string  `json:"protocol"`
	Obfs         string  `json:"obfs"`
	CustomMethod bool    `json:"custom_method"`
	TrafficRate  float64 `json:"traffic_rate"`
	Info         string  `json:"info,omitempty"`
	Status       string  `json:"status"`
	Level        int     `json:"level"`
	Group        string  `json:"group"`
}

func GetNode(node *model.Node) Node {
	ret := Node{
		NodeID:       node.NodeID,
		Name:         node.Name,
		Server:       node.Server,
		Method:       string(node.Method),
		Protocol:     string(node.Protocol),
		Obfs:         string(node.Obfs),
		CustomMethod: node.CustomMethod == 1,
		TrafficRate:  node.TrafficRate,
		Status:       string(node.Status),
		Level:        node.Level,
		Group:        node.Group,
	}
	if node.Info != nil {
		ret.Info = *node.Info
	}
	return ret
}

func GetNodes(nodes []model.Node) []Node {
	ret := make([]Node, len(nodes))
	for k := range nodes {
		ret[k] = GetNode(&nodes[k])
	}
	return ret
}

type NodeDetail struct {
	Node
	Online      bool    `json:"online"`
	OnlineUsers int     `json:"online_users"`
	Uptime      float64 `json:"uptime"`
	Load        string  `json:"load"`
	TrafficGB   float64 `json:"traffic_gb"`
}
