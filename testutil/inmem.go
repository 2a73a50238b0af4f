package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/mkrogh/project-calculator/domain"
)

var levels = []domain.Level{
	domain.LevelProject,
	domain.LevelSubProject,
	domain.LevelTask,
	domain.LevelSubTask,
}

// InMemoryNodeRepository is a map-backed gateway with the same contract as
// the Postgres one: ids assigned on insert, affected-row booleans on
// update/delete, cascade on delete, children ordered by id.
type InMemoryNodeRepository struct {
	mu     sync.Mutex
	nextID int64
	nodes  map[domain.Level]map[int64]domain.Node
}

func NewInMemoryNodeRepository() *InMemoryNodeRepository {
	nodes := make(map[domain.Level]map[int64]domain.Node)
	for _, level := range levels {
		nodes[level] = make(map[int64]domain.Node)
	}
	return &InMemoryNodeRepository{nodes: nodes}
}

func (r *InMemoryNodeRepository) GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	node, ok := r.nodes[level][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &node, nil
}

func (r *InMemoryNodeRepository) GetByParentID(ctx context.Context, level domain.Level, parentID int64) ([]domain.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make([]domain.Node, 0)
	for _, node := range r.nodes[level] {
		if level == domain.LevelProject || node.ParentID == parentID {
			ret = append(ret, node)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret, nil
}

func (r *InMemoryNodeRepository) Insert(ctx context.Context, node *domain.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	node.ID = r.nextID
	r.nodes[node.Level][node.ID] = *node
	return nil
}

func (r *InMemoryNodeRepository) Update(ctx context.Context, node *domain.Node) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.nodes[node.Level][node.ID]
	if !ok {
		return false, nil
	}
	if node.Level != domain.LevelProject && stored.ParentID != node.ParentID {
		return false, nil
	}
	r.nodes[node.Level][node.ID] = *node
	return true, nil
}

func (r *InMemoryNodeRepository) Delete(ctx context.Context, level domain.Level, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[level][id]; !ok {
		return false, nil
	}
	r.cascade(level, id)
	return true, nil
}

func (r *InMemoryNodeRepository) cascade(level domain.Level, id int64) {
	delete(r.nodes[level], id)
	childLevel, ok := level.Child()
	if !ok {
		return
	}
	for childID, child := range r.nodes[childLevel] {
		if child.ParentID == id {
			r.cascade(childLevel, childID)
		}
	}
}

func (r *InMemoryNodeRepository) Exists(ctx context.Context, level domain.Level, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.nodes[level][id]
	return ok, nil
}

// CountAll returns the number of stored nodes across all levels.
func (r *InMemoryNodeRepository) CountAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, level := range levels {
		n += len(r.nodes[level])
	}
	return n
}
