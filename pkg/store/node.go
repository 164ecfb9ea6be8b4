package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/iyouport-org/sspanel/pkg/model"
	log "github.com/sirupsen/logrus"
)

func (r *Repository) CreateNode(ctx context.Context, node *model.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Create(node).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %d", ErrNodeExists, node.NodeID)
	}
	if err != nil {
		log.WithField("node_id", node.NodeID).Error(err)
	}
	return err
}

func (r *Repository) UpdateNode(ctx context.Context, node *model.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Save(node).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %d", ErrNodeExists, node.NodeID)
	}
	return err
}

// GetNode looks a node up by its node id, not its primary key.
func (r *Repository) GetNode(ctx context.Context, nodeID int) (*model.Node, error) {
	var node model.Node
	if err := r.db.WithContext(ctx).Where("node_id = ?", nodeID).First(&node).Error; err != nil {
		return nil, notFound(err)
	}
	return &node, nil
}

func (r *Repository) ListNodes(ctx context.Context) ([]model.Node, error) {
	var nodes []model.Node
	err := r.db.WithContext(ctx).Order("id ASC").Find(&nodes).Error
	return nodes, err
}

// VisibleNodes returns the shown nodes a user of the given level may use.
func (r *Repository) VisibleNodes(ctx context.Context, level uint) ([]model.Node, error) {
	var nodes []model.Node
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"show": model.VisibilityShown}).
		Where("level <= ?", level).
		Order("id ASC").
		Find(&nodes).Error
	return nodes, err
}

// Subscription is one SSR link per visible node, each terminated by a newline.
func (r *Repository) Subscription(ctx context.Context, acc *model.Account) (string, error) {
	nodes, err := r.VisibleNodes(ctx, acc.Level)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := range nodes {
		sb.WriteString(nodes[i].SSRLink(acc))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
