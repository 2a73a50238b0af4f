package service

import (
	"context"

	"github.com/mkrogh/project-calculator/domain"
)

// EffectiveHours computes the rolled-up estimated hours for a node: a
// subtask contributes its stored value, every other level sums the
// effective hours of its direct children, and a childless inner node is 0.
// The fold is read-only and applies no rounding.
func (s *NodeService) EffectiveHours(ctx context.Context, level domain.Level, id int64) (float64, error) {
	node, err := s.repo.GetByID(ctx, level, id)
	if err != nil {
		return 0, err
	}
	return s.effectiveHours(ctx, node)
}

func (s *NodeService) effectiveHours(ctx context.Context, node *domain.Node) (float64, error) {
	if node.Level.IsLeaf() {
		return *node.EstimatedHours, nil
	}
	childLevel, _ := node.Level.Child()
	children, err := s.repo.GetByParentID(ctx, childLevel, node.ID)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range children {
		hours, err := s.effectiveHours(ctx, &children[i])
		if err != nil {
			return 0, err
		}
		sum += hours
	}
	return sum, nil
}
