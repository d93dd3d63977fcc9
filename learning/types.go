// Package learning holds the client-side learning-progress engine: resuming a
// learner inside a course, tracking lesson completion against a remote source
// of truth, navigating the module/lesson hierarchy and holding quiz attempts.
package learning

import (
	"context"
	"errors"
)

// Kind is the lesson content type.
type Kind string

const (
	KindVideo Kind = "VIDEO"
	KindText  Kind = "TEXT"
	KindQuiz  Kind = "QUIZ"
)

var (
	// ErrNotFound is returned by a Remote when the enrollment or lesson does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoEnrollment means no course is loaded into the session.
	ErrNoEnrollment = errors.New("no enrollment loaded")
	// ErrUnknownLesson means the lesson id is not part of the loaded module tree.
	ErrUnknownLesson = errors.New("lesson not in course")
	// ErrDuplicateLesson means a lesson id appears in more than one module.
	ErrDuplicateLesson = errors.New("lesson listed in more than one module")
)

// Lesson is the summary of a lesson as it appears in the module tree. It
// carries no body content; see LessonDetail.
type Lesson struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Kind            Kind   `json:"kind"`
	DurationMinutes int    `json:"duration_minutes"`
	IsCompleted     bool   `json:"is_completed"`
}

// Module is a published chapter with its lessons in display order.
type Module struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Enrollment is a learner's registration for one course together with the
// published module tree at load time.
type Enrollment struct {
	ID                    uint     `json:"enrollment_id"`
	CourseID              uint     `json:"course_id"`
	CourseName            string   `json:"course_name"`
	CourseSlug            string   `json:"course_slug"`
	LastCompletedLessonID *uint    `json:"last_completed_lesson_id"`
	Modules               []Module `json:"modules"`
}

type QuizOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuizQuestion struct {
	ID      uint         `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []QuizOption `json:"options"`
}

// LessonDetail is the full lesson payload fetched when a lesson is displayed.
type LessonDetail struct {
	ID              uint           `json:"id"`
	ModuleID        uint           `json:"module_id"`
	Title           string         `json:"title"`
	Kind            Kind           `json:"kind"`
	DurationMinutes int            `json:"duration_minutes"`
	VideoURL        string         `json:"video_url,omitempty"`
	TextContent     string         `json:"text_content,omitempty"`
	Questions       []QuizQuestion `json:"questions,omitempty"`
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption uint `json:"selected_option_id"`
	CorrectOption  uint `json:"correct_option_id"`
	IsCorrect      bool `json:"is_correct"`
	WasAnswered    bool `json:"was_answered"`
}

// QuizResult is what the grading collaborator returns for a submitted attempt.
type QuizResult struct {
	AttemptNumber int              `json:"attempt_number"`
	Score         int              `json:"score"`
	MaxScore      int              `json:"max_score"`
	Questions     []QuestionResult `json:"questions"`
}

// Remote is the request/response surface the engine needs from the platform.
type Remote interface {
	FetchEnrollment(ctx context.Context, courseSlug string) (*Enrollment, error)
	FetchLessonDetail(ctx context.Context, moduleID, lessonID uint) (*LessonDetail, error)
	// MarkLessonCompleted is used for both marking and unmarking; the server
	// flips the stored state.
	MarkLessonCompleted(ctx context.Context, lessonID, enrollmentID uint) error
}

// QuizGrader is optionally implemented by a Remote that can grade quiz
// submissions.
type QuizGrader interface {
	SubmitQuiz(ctx context.Context, lessonID, enrollmentID uint, answers map[uint]uint) (*QuizResult, error)
}

// URLState is the shareable-URL surface: the lesson query parameter.
type URLState interface {
	Lesson() (uint, bool)
	SetLesson(lessonID uint)
}

// Notifier surfaces user-facing toasts.
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}
