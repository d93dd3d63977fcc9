package controllers

import (
	"learnpath/database"
	"learnpath/logger"
	"learnpath/middleware"
	courseModels "learnpath/models/course"
	"learnpath/utils"
	courseValidator "learnpath/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLessonDetail returns the body of one lesson. Quiz answers are stripped.
func GetLessonDetail(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	moduleID := c.Locals("moduleID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND module_id = ? AND is_deleted = ? AND is_published = ?", lessonID, moduleID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrolled int64
	if err := db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, lesson.CourseID, false).Count(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}
	if enrolled == 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", utils.LessonDetail(&lesson))
}

// ToggleLessonComplete flips the completion state of a lesson and refreshes
// the enrollment's progress.
func ToggleLessonComplete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	lessonID := c.Locals("lessonID").(uint)
	reqData := c.Locals("validatedCompletion").(*courseValidator.CompletionRequest)

	enrollment, err := ownedEnrollment(c, user.ID, reqData.EnrollmentID)
	if enrollment == nil {
		return err
	}
	lesson, err := publishedLesson(c, enrollment.CourseID, lessonID)
	if lesson == nil {
		return err
	}

	var (
		completed bool
		cert      *courseModels.Certificate
	)
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		if completed, err = utils.ToggleLessonCompletion(tx, enrollment, lesson.ID); err != nil {
			return err
		}
		cert, err = utils.RefreshEnrollmentProgress(tx, enrollment)
		return err
	})
	if err != nil {
		logger.L().Error("toggle completion failed", "enrollment_id", enrollment.ID, "lesson_id", lesson.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update completion!", nil)
	}

	if cert != nil {
		var course courseModels.Course
		if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err == nil {
			utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completion updated!", fiber.Map{
		"lesson_id":                lesson.ID,
		"is_completed":             completed,
		"progress":                 enrollment.Progress,
		"status":                   enrollment.Status,
		"last_completed_lesson_id": enrollment.LastCompletedLessonID,
		"certificate":              cert,
	})
}
