package course

import "gorm.io/gorm"

// Module represents a chapter within a course. OrderIndex decides the
// sequence learners move through.
type Module struct {
	gorm.Model
	CourseID    uint     `json:"course_id" gorm:"index;not null"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	OrderIndex  int      `json:"order_index" gorm:"default:0"`
	IsPublished bool     `json:"is_published" gorm:"default:false"`
	IsDeleted   bool     `gorm:"default:false"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}
