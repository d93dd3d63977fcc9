package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt represents a learner's graded submission of a QUIZ lesson
type QuizAttempt struct {
	gorm.Model
	UserID        uint                              `json:"user_id" gorm:"index;not null"`
	EnrollmentID  uint                              `json:"enrollment_id" gorm:"index;not null"`
	LessonID      uint                              `json:"lesson_id" gorm:"index;not null"`
	Answers       datatypes.JSONType[map[uint]uint] `json:"answers"` // question id -> option id
	Score         int                               `json:"score"`
	MaxScore      int                               `json:"max_score"`
	IsCorrect     bool                              `json:"is_correct" gorm:"default:false"`
	AttemptNumber int                               `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool                              `gorm:"default:false"`
}
