package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnpath/learning"
	courseModels "learnpath/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ToggleLessonCompletion flips the completion of one lesson for an enrollment
// and keeps LastCompletedLessonID pointing at the most recent completion.
// It reports the new state.
func ToggleLessonCompletion(db *gorm.DB, enrollment *courseModels.Enrollment, lessonID uint) (bool, error) {
	var row courseModels.LessonCompletion
	err := db.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessonID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = courseModels.LessonCompletion{
			UserID:       enrollment.UserID,
			CourseID:     enrollment.CourseID,
			EnrollmentID: enrollment.ID,
			LessonID:     lessonID,
		}
		if err := db.Create(&row).Error; err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	default:
		row.IsDeleted = !row.IsDeleted
		if err := db.Save(&row).Error; err != nil {
			return false, err
		}
	}

	completed := !row.IsDeleted
	if completed {
		id := lessonID
		enrollment.LastCompletedLessonID = &id
	} else if enrollment.LastCompletedLessonID != nil && *enrollment.LastCompletedLessonID == lessonID {
		var latest courseModels.LessonCompletion
		err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
			Order("updated_at desc, id desc").First(&latest).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			enrollment.LastCompletedLessonID = nil
		case err != nil:
			return false, err
		default:
			id := latest.LessonID
			enrollment.LastCompletedLessonID = &id
		}
	}
	return completed, nil
}

// RefreshEnrollmentProgress recomputes counts, percentage and status of an
// enrollment from its completions and saves it. A certificate is issued the
// first time the course is complete; the new certificate is returned, nil
// otherwise.
func RefreshEnrollmentProgress(db *gorm.DB, enrollment *courseModels.Enrollment) (*courseModels.Certificate, error) {
	tree, done, err := EnrollmentTree(db, enrollment)
	if err != nil {
		return nil, fmt.Errorf("load tree for enrollment %d: %w", enrollment.ID, err)
	}

	completed := 0
	for _, m := range learning.ModuleBreakdown(tree, done) {
		completed += m.CompletedLessons
	}
	enrollment.TotalLessons = tree.Len()
	enrollment.CompletedLessons = completed
	enrollment.Progress = learning.Percent(tree, done)

	switch {
	case enrollment.TotalLessons > 0 && completed == enrollment.TotalLessons:
		enrollment.Status = courseModels.EnrollmentCompleted
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	case completed > 0:
		enrollment.Status = courseModels.EnrollmentInProgress
		enrollment.CompletedAt = nil
	default:
		enrollment.Status = courseModels.EnrollmentEnrolled
		enrollment.CompletedAt = nil
	}

	if err := db.Save(enrollment).Error; err != nil {
		return nil, fmt.Errorf("save enrollment %d: %w", enrollment.ID, err)
	}
	if enrollment.Status != courseModels.EnrollmentCompleted {
		return nil, nil
	}
	return issueCertificate(db, enrollment)
}

func issueCertificate(db *gorm.DB, enrollment *courseModels.Enrollment) (*courseModels.Certificate, error) {
	var existing courseModels.Certificate
	err := db.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cert := courseModels.Certificate{
		UserID:            enrollment.UserID,
		CourseID:          enrollment.CourseID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: CertificateNumber(),
		IssuedAt:          time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("issue certificate for enrollment %d: %w", enrollment.ID, err)
	}
	return &cert, nil
}

// CertificateNumber returns a new unique certificate number.
func CertificateNumber() string {
	return "LP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
