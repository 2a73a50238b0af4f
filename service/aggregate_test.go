package service

import (
	"context"
	"testing"

	"github.com/mkrogh/project-calculator/domain"
	"github.com/mkrogh/project-calculator/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*NodeService, *testutil.InMemoryNodeRepository) {
	t.Helper()
	repo := testutil.NewInMemoryNodeRepository()
	return NewNodeService(repo), repo
}

func mustCreate(t *testing.T, svc *NodeService, node *domain.Node) *domain.Node {
	t.Helper()
	require.NoError(t, svc.Create(context.Background(), node))
	return node
}

// buildRenovation builds: Project "Renovation" -> SubProject "House A" ->
// Task "Remove floor" -> SubTasks "Tear up floor" (6.0) + "Sort materials"
// (2.0). Returns the created nodes top-down.
func buildRenovation(t *testing.T, svc *NodeService) (project, subProject, task *domain.Node) {
	t.Helper()
	deadline := domain.NewDate(2025, 12, 17)
	project = &domain.Node{Level: domain.LevelProject, Name: "Renovation", Deadline: &deadline}
	mustCreate(t, svc, project)
	subProject = mustCreate(t, svc, testutil.NewSubProject(project.ID, "House A"))
	task = mustCreate(t, svc, testutil.NewTask(subProject.ID, "Remove floor"))
	mustCreate(t, svc, testutil.NewSubTask(task.ID, "Tear up floor", 6.0))
	mustCreate(t, svc, testutil.NewSubTask(task.ID, "Sort materials", 2.0))
	return project, subProject, task
}

func TestEffectiveHours_RollsUpThroughAllLevels(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	project, subProject, task := buildRenovation(t, svc)

	hours, err := svc.EffectiveHours(ctx, domain.LevelTask, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)

	hours, err = svc.EffectiveHours(ctx, domain.LevelSubProject, subProject.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)

	hours, err = svc.EffectiveHours(ctx, domain.LevelProject, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)
}

func TestEffectiveHours_SecondBranchAddsUp(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	project, _, _ := buildRenovation(t, svc)

	houseB := mustCreate(t, svc, testutil.NewSubProject(project.ID, "House B"))
	facade := mustCreate(t, svc, testutil.NewTask(houseB.ID, "Clean facade"))
	mustCreate(t, svc, testutil.NewSubTask(facade.ID, "Pressure-wash", 4.5))

	hours, err := svc.EffectiveHours(ctx, domain.LevelProject, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, hours)

	hours, err = svc.EffectiveHours(ctx, domain.LevelSubProject, houseB.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, hours)
}

func TestEffectiveHours_SubTaskReturnsStoredValue(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	project := mustCreate(t, svc, testutil.NewProject("P"))
	sp := mustCreate(t, svc, testutil.NewSubProject(project.ID, "SP"))
	task := mustCreate(t, svc, testutil.NewTask(sp.ID, "T"))
	st := mustCreate(t, svc, testutil.NewSubTask(task.ID, "ST", 3.25))

	hours, err := svc.EffectiveHours(ctx, domain.LevelSubTask, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.25, hours)
}

func TestEffectiveHours_NoChildrenIsZero(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	project := mustCreate(t, svc, testutil.NewProject("Empty"))
	sp := mustCreate(t, svc, testutil.NewSubProject(project.ID, "Empty SP"))
	task := mustCreate(t, svc, testutil.NewTask(sp.ID, "Empty T"))

	for _, target := range []struct {
		level domain.Level
		id    int64
	}{
		{domain.LevelProject, project.ID},
		{domain.LevelSubProject, sp.ID},
		{domain.LevelTask, task.ID},
	} {
		hours, err := svc.EffectiveHours(ctx, target.level, target.id)
		require.NoError(t, err)
		assert.Equal(t, 0.0, hours, "level %s", target.level)
	}
}

// The total is the plain sum of all leaf hours regardless of how the tree
// branches.
func TestEffectiveHours_IndependentOfBranchingShape(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	project := mustCreate(t, svc, testutil.NewProject("Shape"))
	leafHours := []float64{0.5, 1.5, 2.0, 3.0, 4.25}
	want := 0.0
	for _, h := range leafHours {
		want += h
	}

	// Uneven shape: one subproject with two tasks, one with a single task.
	spA := mustCreate(t, svc, testutil.NewSubProject(project.ID, "A"))
	spB := mustCreate(t, svc, testutil.NewSubProject(project.ID, "B"))
	taskA1 := mustCreate(t, svc, testutil.NewTask(spA.ID, "A1"))
	taskA2 := mustCreate(t, svc, testutil.NewTask(spA.ID, "A2"))
	taskB1 := mustCreate(t, svc, testutil.NewTask(spB.ID, "B1"))
	mustCreate(t, svc, testutil.NewSubTask(taskA1.ID, "l0", leafHours[0]))
	mustCreate(t, svc, testutil.NewSubTask(taskA1.ID, "l1", leafHours[1]))
	mustCreate(t, svc, testutil.NewSubTask(taskA2.ID, "l2", leafHours[2]))
	mustCreate(t, svc, testutil.NewSubTask(taskB1.ID, "l3", leafHours[3]))
	mustCreate(t, svc, testutil.NewSubTask(taskB1.ID, "l4", leafHours[4]))

	hours, err := svc.EffectiveHours(ctx, domain.LevelProject, project.ID)
	require.NoError(t, err)
	assert.Equal(t, want, hours)
}

func TestEffectiveHours_UnknownNode(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.EffectiveHours(context.Background(), domain.LevelProject, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
