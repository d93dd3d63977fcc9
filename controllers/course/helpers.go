package controllers

import (
	"errors"

	"learnpath/database"
	"learnpath/middleware"
	"learnpath/models"
	courseModels "learnpath/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentUser loads the authenticated user. On failure the response has
// already been written and the returned error must be passed through.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return &user, nil
}

// courseEnrollment resolves a published course by slug and the user's
// enrollment in it. Missing course or enrollment is a 404.
func courseEnrollment(c *fiber.Ctx, userID uint, slug string) (*courseModels.Course, *courseModels.Enrollment, error) {
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return nil, nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
		}
		return nil, nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}
	return &course, &enrollment, nil
}

// ownedEnrollment loads an enrollment by id that belongs to userID.
func ownedEnrollment(c *fiber.Ctx, userID, enrollmentID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}
	return &enrollment, nil
}

// publishedLesson loads a published lesson of a published module of courseID.
func publishedLesson(c *fiber.Ctx, courseID, lessonID uint) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	err := database.Database.Db.
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.id = ? AND lessons.course_id = ? AND lessons.is_deleted = ? AND lessons.is_published = ?", lessonID, courseID, false, true).
		Where("modules.is_deleted = ? AND modules.is_published = ? AND modules.deleted_at IS NULL", false, true).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}
	return &lesson, nil
}
