package service

import (
	"context"

	"github.com/mkrogh/project-calculator/domain"
)

// ValidateParentExists fails with ErrParentNotFound when the parent id does
// not exist one level above childLevel. Projects have no parent and always
// pass.
func (s *NodeService) ValidateParentExists(ctx context.Context, childLevel domain.Level, parentID int64) error {
	parentLevel, ok := childLevel.Parent()
	if !ok {
		return nil
	}
	exists, err := s.repo.Exists(ctx, parentLevel, parentID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrParentNotFound
	}
	return nil
}

// ValidateOwnership fails with ErrOwnershipMismatch when the child exists
// but belongs to a different parent than claimed, and with ErrNotFound when
// the child does not exist at all.
func (s *NodeService) ValidateOwnership(ctx context.Context, level domain.Level, id int64, claimedParentID int64) error {
	node, err := s.repo.GetByID(ctx, level, id)
	if err != nil {
		return err
	}
	if node.ParentID != claimedParentID {
		return domain.ErrOwnershipMismatch
	}
	return nil
}

// Delete removes the node and, through the store's referential cascade,
// every descendant. It reports whether the target row existed; false
// without error means a concurrent delete (or a bad id) already removed it.
// For scoped levels the node must belong to parentID.
func (s *NodeService) Delete(ctx context.Context, level domain.Level, id int64, parentID int64) (bool, error) {
	if level != domain.LevelProject {
		err := s.ValidateOwnership(ctx, level, id, parentID)
		if err == domain.ErrNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
	return s.repo.Delete(ctx, level, id)
}
