package utils

import (
	"errors"
	"fmt"
	"io"

	courseModels "learnpath/models/course"
	"learnpath/validators"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseDoc is the YAML shape of an importable course.
type CourseDoc struct {
	Title       string      `yaml:"title" validate:"required"`
	Slug        string      `yaml:"slug" validate:"required,slug"`
	Description string      `yaml:"description"`
	Author      string      `yaml:"author"`
	Published   bool        `yaml:"published"`
	Modules     []ModuleDoc `yaml:"modules" validate:"dive"`
}

type ModuleDoc struct {
	Title       string      `yaml:"title" validate:"required"`
	Description string      `yaml:"description"`
	Published   bool        `yaml:"published"`
	Lessons     []LessonDoc `yaml:"lessons" validate:"dive"`
}

type LessonDoc struct {
	Title           string                         `yaml:"title" validate:"required"`
	Kind            string                         `yaml:"kind" validate:"required,oneof=VIDEO TEXT QUIZ"`
	DurationMinutes int                            `yaml:"duration_minutes" validate:"gte=0"`
	VideoURL        string                         `yaml:"video_url" validate:"omitempty,url"`
	TextContent     string                         `yaml:"text_content"`
	Questions       []courseModels.QuizQuestionDoc `yaml:"questions"`
	Published       bool                           `yaml:"published"`
}

// ImportResult counts what ImportCourse wrote.
type ImportResult struct {
	CourseID       uint
	Created        bool
	ModulesWritten int
	LessonsWritten int
	ModulesRetired int
	LessonsRetired int
}

// ParseCourseDoc decodes and validates a YAML course.
func ParseCourseDoc(r io.Reader) (*CourseDoc, error) {
	var doc CourseDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if err := validators.Validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid course: %w", err)
	}
	if err := checkLessons(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkLessons enforces the content each lesson kind needs and that quiz
// questions are gradable.
func checkLessons(doc *CourseDoc) error {
	seen := make(map[uint]bool)
	for _, m := range doc.Modules {
		for _, l := range m.Lessons {
			switch {
			case l.Kind == courseModels.LessonVideo && l.VideoURL == "":
				return fmt.Errorf("lesson %q: video_url is required", l.Title)
			case l.Kind == courseModels.LessonText && l.TextContent == "":
				return fmt.Errorf("lesson %q: text_content is required", l.Title)
			case l.Kind == courseModels.LessonQuiz && len(l.Questions) == 0:
				return fmt.Errorf("lesson %q: a quiz needs questions", l.Title)
			}
			for _, q := range l.Questions {
				if q.ID == 0 || seen[q.ID] {
					return fmt.Errorf("lesson %q: question ids must be unique and non-zero", l.Title)
				}
				seen[q.ID] = true
				correct := 0
				for _, o := range q.Options {
					if o.ID == 0 {
						return fmt.Errorf("lesson %q question %d: option ids must be non-zero", l.Title, q.ID)
					}
					if o.IsCorrect {
						correct++
					}
				}
				if correct != 1 {
					return fmt.Errorf("lesson %q question %d: exactly one option must be correct", l.Title, q.ID)
				}
			}
		}
	}
	return nil
}

// ImportCourse upserts a course by slug. Modules and lessons are matched by
// position; rows past the end of the document are unpublished rather than
// deleted so existing completions keep pointing at real lessons.
func ImportCourse(db *gorm.DB, doc *CourseDoc) (ImportResult, error) {
	var res ImportResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModels.Course
		err := tx.Where("slug = ?", doc.Slug).First(&course).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			res.Created = true
		case err != nil:
			return err
		}
		course.Title = doc.Title
		course.Slug = doc.Slug
		course.Description = doc.Description
		course.Author = doc.Author
		course.IsPublished = doc.Published
		course.IsDeleted = false
		if doc.Published {
			course.Status = "ACTIVE"
		} else {
			course.Status = "DRAFT"
		}
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		res.CourseID = course.ID

		var modules []courseModels.Module
		if err := tx.Where("course_id = ?", course.ID).Order("order_index asc, id asc").Find(&modules).Error; err != nil {
			return err
		}
		for i, md := range doc.Modules {
			var m courseModels.Module
			if i < len(modules) {
				m = modules[i]
			}
			m.CourseID = course.ID
			m.Title = md.Title
			m.Description = md.Description
			m.OrderIndex = i + 1
			m.IsPublished = md.Published
			m.IsDeleted = false
			if err := tx.Save(&m).Error; err != nil {
				return err
			}
			res.ModulesWritten++

			written, retired, err := importLessons(tx, course.ID, m.ID, md.Lessons)
			if err != nil {
				return err
			}
			res.LessonsWritten += written
			res.LessonsRetired += retired
		}
		for _, m := range modules[min(len(doc.Modules), len(modules)):] {
			if err := tx.Model(&m).Update("is_published", false).Error; err != nil {
				return err
			}
			res.ModulesRetired++
		}
		return nil
	})
	return res, err
}

func importLessons(tx *gorm.DB, courseID, moduleID uint, docs []LessonDoc) (int, int, error) {
	var lessons []courseModels.Lesson
	if err := tx.Where("module_id = ?", moduleID).Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
		return 0, 0, err
	}
	for i, ld := range docs {
		var l courseModels.Lesson
		if i < len(lessons) {
			l = lessons[i]
		}
		l.CourseID = courseID
		l.ModuleID = moduleID
		l.Title = ld.Title
		l.Kind = ld.Kind
		l.DurationMinutes = ld.DurationMinutes
		l.VideoURL = ld.VideoURL
		l.TextContent = ld.TextContent
		l.Questions = datatypes.NewJSONType(ld.Questions)
		l.OrderIndex = i + 1
		l.IsPublished = ld.Published
		l.IsDeleted = false
		if err := tx.Save(&l).Error; err != nil {
			return 0, 0, err
		}
	}
	retired := 0
	for _, l := range lessons[min(len(docs), len(lessons)):] {
		if err := tx.Model(&l).Update("is_published", false).Error; err != nil {
			return 0, 0, err
		}
		retired++
	}
	return len(docs), retired, nil
}
