package domain

// Level identifies a node's position in the Project -> SubProject -> Task
// -> SubTask hierarchy.
type Level int

const (
	LevelProject Level = iota
	LevelSubProject
	LevelTask
	LevelSubTask
)

func (l Level) String() string {
	switch l {
	case LevelProject:
		return "project"
	case LevelSubProject:
		return "subproject"
	case LevelTask:
		return "task"
	case LevelSubTask:
		return "subtask"
	}
	return "unknown"
}

// Parent returns the level one step up. ok is false for LevelProject.
func (l Level) Parent() (Level, bool) {
	if l == LevelProject {
		return 0, false
	}
	return l - 1, true
}

// Child returns the level one step down. ok is false for LevelSubTask.
func (l Level) Child() (Level, bool) {
	if l == LevelSubTask {
		return 0, false
	}
	return l + 1, true
}

func (l Level) IsLeaf() bool {
	return l == LevelSubTask
}
