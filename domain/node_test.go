package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(h float64) *float64 {
	return &h
}

func TestValidate_Project(t *testing.T) {
	p := &Node{Level: LevelProject, Name: "Renovation"}
	assert.NoError(t, p.Validate())
}

func TestValidate_BlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		p := &Node{Level: LevelProject, Name: name}
		err := p.Validate()
		require.Error(t, err, "should reject name %q", name)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	}
}

func TestValidate_NameLength(t *testing.T) {
	p := &Node{Level: LevelProject, Name: strings.Repeat("a", NameMaxLen)}
	assert.NoError(t, p.Validate())

	p.Name = strings.Repeat("a", NameMaxLen+1)
	var ve *ValidationError
	require.ErrorAs(t, p.Validate(), &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestValidate_DescriptionLength(t *testing.T) {
	p := &Node{Level: LevelProject, Name: "x", Description: strings.Repeat("d", DescriptionMaxLen)}
	assert.NoError(t, p.Validate())

	p.Description = strings.Repeat("d", DescriptionMaxLen+1)
	var ve *ValidationError
	require.ErrorAs(t, p.Validate(), &ve)
	assert.Equal(t, "description", ve.Field)
}

func TestValidate_ParentRequired(t *testing.T) {
	for _, level := range []Level{LevelSubProject, LevelTask, LevelSubTask} {
		n := &Node{Level: level, Name: "x", EstimatedHours: hours(1)}
		var ve *ValidationError
		require.ErrorAs(t, n.Validate(), &ve, "level %s", level)
		assert.Equal(t, "parent_id", ve.Field)
	}
}

func TestValidate_SubTaskHours(t *testing.T) {
	st := &Node{Level: LevelSubTask, ParentID: 1, Name: "Tear up floor"}

	var ve *ValidationError
	require.ErrorAs(t, st.Validate(), &ve, "missing hours")
	assert.Equal(t, "estimated_hours", ve.Field)

	st.EstimatedHours = hours(0)
	require.ErrorAs(t, st.Validate(), &ve, "zero hours")
	assert.Equal(t, "estimated_hours", ve.Field)

	st.EstimatedHours = hours(-2.5)
	require.ErrorAs(t, st.Validate(), &ve, "negative hours")

	st.EstimatedHours = hours(6)
	assert.NoError(t, st.Validate())
}

func TestValidate_HoursNotRequiredAboveLeaf(t *testing.T) {
	for _, level := range []Level{LevelSubProject, LevelTask} {
		n := &Node{Level: level, ParentID: 1, Name: "x"}
		assert.NoError(t, n.Validate(), "level %s", level)
	}
}

func TestLevel_ParentChild(t *testing.T) {
	_, ok := LevelProject.Parent()
	assert.False(t, ok)
	_, ok = LevelSubTask.Child()
	assert.False(t, ok)

	parent, ok := LevelSubTask.Parent()
	require.True(t, ok)
	assert.Equal(t, LevelTask, parent)

	child, ok := LevelProject.Child()
	require.True(t, ok)
	assert.Equal(t, LevelSubProject, child)

	assert.True(t, LevelSubTask.IsLeaf())
	assert.False(t, LevelTask.IsLeaf())
}
