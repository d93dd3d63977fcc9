package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID                uint       `json:"user_id" gorm:"index;not null"`
	CourseID              uint       `json:"course_id" gorm:"index;not null"`
	Status                string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress              float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedLessons      int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons          int        `json:"total_lessons" gorm:"default:0"`
	LastCompletedLessonID *uint      `json:"last_completed_lesson_id"`
	CompletedAt           *time.Time `json:"completed_at"`
	IsDeleted             bool       `gorm:"default:false"`
}
