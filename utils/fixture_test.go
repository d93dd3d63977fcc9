package utils

import (
	"testing"

	"learnpath/database"
	"learnpath/models"
	courseModels "learnpath/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	user       models.User
	course     courseModels.Course
	modules    []courseModels.Module
	lessons    []courseModels.Lesson // published lessons in display order
	enrollment courseModels.Enrollment
}

func quizQuestions() []courseModels.QuizQuestionDoc {
	return []courseModels.QuizQuestionDoc{
		{ID: 100, Prompt: "2+2?", Options: []courseModels.QuizOptionDoc{{ID: 1000, Text: "4", IsCorrect: true}, {ID: 1001, Text: "5"}}},
		{ID: 101, Prompt: "nil map write?", Options: []courseModels.QuizOptionDoc{{ID: 1010, Text: "panic", IsCorrect: true}, {ID: 1011, Text: "ok"}}},
	}
}

// newFixture seeds a course with two published modules (the second listed
// first by id but ordered after), an unpublished module and an unpublished lesson.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	f := &fixture{db: db}
	f.user = models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(&f.user).Error)
	f.course = courseModels.Course{Title: "Go Basics", Slug: "go-basics", IsPublished: true, Status: "ACTIVE"}
	require.NoError(t, db.Create(&f.course).Error)

	second := courseModels.Module{CourseID: f.course.ID, Title: "Types", OrderIndex: 2, IsPublished: true}
	first := courseModels.Module{CourseID: f.course.ID, Title: "Basics", OrderIndex: 1, IsPublished: true}
	hidden := courseModels.Module{CourseID: f.course.ID, Title: "Draft", OrderIndex: 3}
	for _, m := range []*courseModels.Module{&second, &first, &hidden} {
		require.NoError(t, db.Create(m).Error)
	}
	f.modules = []courseModels.Module{first, second}

	lessons := []courseModels.Lesson{
		{CourseID: f.course.ID, ModuleID: first.ID, Title: "Intro", Kind: courseModels.LessonVideo, VideoURL: "https://cdn/intro.mp4", DurationMinutes: 5, OrderIndex: 1, IsPublished: true},
		{CourseID: f.course.ID, ModuleID: first.ID, Title: "Setup", Kind: courseModels.LessonText, TextContent: "install go", OrderIndex: 2, IsPublished: true},
		{CourseID: f.course.ID, ModuleID: second.ID, Title: "Check", Kind: courseModels.LessonQuiz, Questions: datatypes.NewJSONType(quizQuestions()), OrderIndex: 1, IsPublished: true},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	f.lessons = lessons
	require.NoError(t, db.Create(&courseModels.Lesson{CourseID: f.course.ID, ModuleID: first.ID, Title: "WIP", Kind: courseModels.LessonText, OrderIndex: 3}).Error)
	require.NoError(t, db.Create(&courseModels.Lesson{CourseID: f.course.ID, ModuleID: hidden.ID, Title: "Hidden", Kind: courseModels.LessonText, IsPublished: true}).Error)

	f.enrollment = courseModels.Enrollment{UserID: f.user.ID, CourseID: f.course.ID, Status: courseModels.EnrollmentEnrolled}
	require.NoError(t, db.Create(&f.enrollment).Error)
	return f
}
