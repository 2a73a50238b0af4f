package testutil

import "github.com/mkrogh/project-calculator/domain"

func NewProject(name string) *domain.Node {
	return &domain.Node{
		Level: domain.LevelProject,
		Name:  name,
	}
}

func NewSubProject(projectID int64, name string) *domain.Node {
	return &domain.Node{
		Level:    domain.LevelSubProject,
		ParentID: projectID,
		Name:     name,
	}
}

func NewTask(subProjectID int64, name string) *domain.Node {
	return &domain.Node{
		Level:    domain.LevelTask,
		ParentID: subProjectID,
		Name:     name,
	}
}

func NewSubTask(taskID int64, name string, hours float64) *domain.Node {
	return &domain.Node{
		Level:          domain.LevelSubTask,
		ParentID:       taskID,
		Name:           name,
		EstimatedHours: &hours,
	}
}
