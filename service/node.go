package service

import (
	"context"

	"github.com/mkrogh/project-calculator/domain"
)

// NodeService implements the CRUD operations over the hierarchy. Every
// write is validated first and gated on the structural checks in
// hierarchy.go, so no orphan can reach the repository.
type NodeService struct {
	repo domain.NodeRepository
}

func NewNodeService(repo domain.NodeRepository) *NodeService {
	return &NodeService{
		repo: repo,
	}
}

func (s *NodeService) Get(ctx context.Context, level domain.Level, id int64) (*domain.Node, error) {
	return s.repo.GetByID(ctx, level, id)
}

// List returns the children of parentID at the given level, ordered by id.
// For LevelProject it returns all projects.
func (s *NodeService) List(ctx context.Context, level domain.Level, parentID int64) ([]domain.Node, error) {
	if err := s.ValidateParentExists(ctx, level, parentID); err != nil {
		return nil, err
	}
	return s.repo.GetByParentID(ctx, level, parentID)
}

// Create validates the node, checks its parent exists, and inserts it. The
// assigned id is written back to node.ID.
func (s *NodeService) Create(ctx context.Context, node *domain.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}
	if err := s.ValidateParentExists(ctx, node.Level, node.ParentID); err != nil {
		return err
	}
	return s.repo.Insert(ctx, node)
}

// Update rewrites the node's fields, preserving its id and parent id. The
// node must belong to the parent named in node.ParentID.
func (s *NodeService) Update(ctx context.Context, node *domain.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}
	if node.Level != domain.LevelProject {
		if err := s.ValidateOwnership(ctx, node.Level, node.ID, node.ParentID); err != nil {
			return err
		}
	}
	found, err := s.repo.Update(ctx, node)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
