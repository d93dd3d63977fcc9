package utils

import (
	"learnpath/learning"
	courseModels "learnpath/models/course"

	"gorm.io/gorm"
)

// LoadPublishedModules returns the published modules of a course with their
// published lessons, both in display order.
func LoadPublishedModules(db *gorm.DB, courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := db.
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_deleted = ? AND is_published = ?", false, true).Order("order_index asc, id asc")
		}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc, id asc").
		Find(&modules).Error
	return modules, err
}

// CompletedLessons returns the lessons currently marked complete for an enrollment.
func CompletedLessons(db *gorm.DB, enrollmentID uint) (learning.CompletedSet, error) {
	var ids []uint
	err := db.Model(&courseModels.LessonCompletion{}).
		Where("enrollment_id = ? AND is_deleted = ?", enrollmentID, false).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	done := make(learning.CompletedSet, len(ids))
	for _, id := range ids {
		done.Set(id, true)
	}
	return done, nil
}

// ToLearningModules converts stored modules into the engine's tree shape with
// completion flags taken from done.
func ToLearningModules(modules []courseModels.Module, done learning.CompletedSet) []learning.Module {
	out := make([]learning.Module, len(modules))
	for i, m := range modules {
		lessons := make([]learning.Lesson, len(m.Lessons))
		for j, l := range m.Lessons {
			lessons[j] = learning.Lesson{
				ID:              l.ID,
				Title:           l.Title,
				Kind:            learning.Kind(l.Kind),
				DurationMinutes: l.DurationMinutes,
				IsCompleted:     done.Has(l.ID),
			}
		}
		out[i] = learning.Module{ID: m.ID, Title: m.Title, Lessons: lessons}
	}
	return out
}

// EnrollmentTree loads the published tree of the enrolled course together
// with the learner's completion set.
func EnrollmentTree(db *gorm.DB, enrollment *courseModels.Enrollment) (*learning.Tree, learning.CompletedSet, error) {
	modules, err := LoadPublishedModules(db, enrollment.CourseID)
	if err != nil {
		return nil, nil, err
	}
	done, err := CompletedLessons(db, enrollment.ID)
	if err != nil {
		return nil, nil, err
	}
	tree, err := learning.NewTree(ToLearningModules(modules, nil))
	if err != nil {
		return nil, nil, err
	}
	return tree, done, nil
}

// LessonDetail builds the learner-facing lesson payload. Correct answers are
// never included.
func LessonDetail(l *courseModels.Lesson) *learning.LessonDetail {
	d := &learning.LessonDetail{
		ID:              l.ID,
		ModuleID:        l.ModuleID,
		Title:           l.Title,
		Kind:            learning.Kind(l.Kind),
		DurationMinutes: l.DurationMinutes,
	}
	switch l.Kind {
	case courseModels.LessonVideo:
		d.VideoURL = l.VideoURL
	case courseModels.LessonText:
		d.TextContent = l.TextContent
	case courseModels.LessonQuiz:
		for _, q := range l.Questions.Data() {
			opts := make([]learning.QuizOption, len(q.Options))
			for i, o := range q.Options {
				opts[i] = learning.QuizOption{ID: o.ID, Text: o.Text}
			}
			d.Questions = append(d.Questions, learning.QuizQuestion{ID: q.ID, Prompt: q.Prompt, Options: opts})
		}
	}
	return d
}
