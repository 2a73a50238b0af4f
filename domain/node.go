package domain

import (
	"context"
	"strings"
	"unicode/utf8"
)

const (
	NameMaxLen        = 50
	DescriptionMaxLen = 200
)

// Node is one entity in the estimation hierarchy. The four levels share the
// same shape; EstimatedHours is carried by subtasks only, ParentID is zero
// for projects only.
type Node struct {
	ID             int64    `json:"id"`
	ParentID       int64    `json:"parent_id,omitempty"`
	Level          Level    `json:"-"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Deadline       *Date    `json:"deadline,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

// Validate checks the field constraints for the node's level.
func (n *Node) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return validationErrorf("name", "is required")
	}
	if utf8.RuneCountInString(n.Name) > NameMaxLen {
		return validationErrorf("name", "must be at most %d characters", NameMaxLen)
	}
	if utf8.RuneCountInString(n.Description) > DescriptionMaxLen {
		return validationErrorf("description", "must be at most %d characters", DescriptionMaxLen)
	}
	if n.Level != LevelProject && n.ParentID <= 0 {
		return validationErrorf("parent_id", "is required for a %s", n.Level)
	}
	if n.Level == LevelSubTask {
		if n.EstimatedHours == nil {
			return validationErrorf("estimated_hours", "is required")
		}
		if *n.EstimatedHours <= 0 {
			return validationErrorf("estimated_hours", "must be greater than zero")
		}
	}
	return nil
}

// NodeRepository is the persistence gateway for hierarchy nodes. Delete
// cascades to descendants through the store's referential integrity. Update
// and Delete report whether a row was affected; callers map false to
// ErrNotFound.
type NodeRepository interface {
	GetByID(ctx context.Context, level Level, id int64) (*Node, error)
	// GetByParentID lists children ordered by id ascending. For
	// LevelProject the parent id is ignored and all projects are returned.
	GetByParentID(ctx context.Context, level Level, parentID int64) ([]Node, error)
	Insert(ctx context.Context, node *Node) error
	Update(ctx context.Context, node *Node) (bool, error)
	Delete(ctx context.Context, level Level, id int64) (bool, error)
	Exists(ctx context.Context, level Level, id int64) (bool, error)
}
