package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LessonVideo = "VIDEO"
	LessonText  = "TEXT"
	LessonQuiz  = "QUIZ"
)

// QuizOptionDoc is one answer option stored inside Lesson.Questions.
type QuizOptionDoc struct {
	ID        uint   `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
}

// QuizQuestionDoc is one single-choice question of a QUIZ lesson.
type QuizQuestionDoc struct {
	ID      uint            `json:"id" yaml:"id"`
	Prompt  string          `json:"prompt" yaml:"prompt"`
	Options []QuizOptionDoc `json:"options" yaml:"options"`
}

// Lesson is the atomic learning unit inside a module
type Lesson struct {
	gorm.Model
	CourseID        uint                                  `json:"course_id" gorm:"index;not null"`
	ModuleID        uint                                  `json:"module_id" gorm:"index;not null"`
	Title           string                                `json:"title"`
	Kind            string                                `json:"kind" gorm:"default:'TEXT'"` // VIDEO, TEXT, QUIZ
	DurationMinutes int                                   `json:"duration_minutes" gorm:"default:0"`
	TextContent     string                                `json:"text_content" gorm:"type:text"` // For TEXT type
	VideoURL        string                                `json:"video_url"`                     // For VIDEO type
	Questions       datatypes.JSONType[[]QuizQuestionDoc] `json:"questions"`                     // For QUIZ type
	OrderIndex      int                                   `json:"order_index" gorm:"default:0"`
	IsPublished     bool                                  `json:"is_published" gorm:"default:false"`
	IsDeleted       bool                                  `gorm:"default:false"`
}

// LessonCompletion records that a learner finished a lesson. Unmarking sets
// IsDeleted instead of removing the row.
type LessonCompletion struct {
	gorm.Model
	UserID       uint `json:"user_id" gorm:"index;not null"`
	CourseID     uint `json:"course_id" gorm:"index;not null"`
	EnrollmentID uint `json:"enrollment_id" gorm:"index;not null"`
	LessonID     uint `json:"lesson_id" gorm:"index;not null"`
	IsDeleted    bool `gorm:"default:false"`
}
