package utils

import (
	"testing"

	"learnpath/learning"
	courseModels "learnpath/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPublishedModulesOrdersAndFilters(t *testing.T) {
	f := newFixture(t)

	mods, err := LoadPublishedModules(f.db, f.course.ID)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "Basics", mods[0].Title)
	assert.Equal(t, "Types", mods[1].Title)
	require.Len(t, mods[0].Lessons, 2, "unpublished lessons are hidden")
	assert.Equal(t, "Intro", mods[0].Lessons[0].Title)
	assert.Equal(t, "Setup", mods[0].Lessons[1].Title)
}

func TestEnrollmentTreeCarriesCompletion(t *testing.T) {
	f := newFixture(t)
	_, err := ToggleLessonCompletion(f.db, &f.enrollment, f.lessons[1].ID)
	require.NoError(t, err)

	tree, done, err := EnrollmentTree(f.db, &f.enrollment)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.lessons[0].ID, f.lessons[1].ID, f.lessons[2].ID}, tree.Order())
	assert.Equal(t, []uint{f.lessons[1].ID}, done.IDs())

	view := tree.View(done)
	assert.False(t, view[0].Lessons[0].IsCompleted)
	assert.True(t, view[0].Lessons[1].IsCompleted)
	assert.Equal(t, learning.KindQuiz, view[1].Lessons[0].Kind)
}

func TestLessonDetailHidesAnswers(t *testing.T) {
	f := newFixture(t)

	var quiz courseModels.Lesson
	require.NoError(t, f.db.First(&quiz, f.lessons[2].ID).Error)
	d := LessonDetail(&quiz)
	require.Len(t, d.Questions, 2)
	assert.Equal(t, uint(100), d.Questions[0].ID)
	assert.Equal(t, []learning.QuizOption{{ID: 1000, Text: "4"}, {ID: 1001, Text: "5"}}, d.Questions[0].Options)
	assert.Empty(t, d.TextContent)

	text := LessonDetail(&f.lessons[1])
	assert.Equal(t, "install go", text.TextContent)
	assert.Empty(t, text.VideoURL)
	assert.Nil(t, text.Questions)
}
