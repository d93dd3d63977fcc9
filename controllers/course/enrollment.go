package controllers

import (
	"errors"

	"learnpath/database"
	"learnpath/learning"
	"learnpath/logger"
	"learnpath/middleware"
	courseModels "learnpath/models/course"
	"learnpath/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the user in a published course. Enrolling twice
// returns the existing enrollment.
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course!", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentEnrolled,
	}

	// Save to database with transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		_, err := utils.RefreshEnrollmentProgress(tx, &enrollment)
		return err
	})
	if err != nil {
		logger.L().Error("enroll failed", "user_id", user.ID, "course", slug, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollmentTree returns the enrollment with the published module tree and
// per-lesson completion flags.
func GetEnrollmentTree(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	slug := c.Locals("courseSlug").(string)

	course, enrollment, err := courseEnrollment(c, user.ID, slug)
	if enrollment == nil {
		return err
	}

	tree, done, err := utils.EnrollmentTree(database.Database.Db, enrollment)
	if err != nil {
		logger.L().Error("load enrollment tree failed", "enrollment_id", enrollment.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", learning.Enrollment{
		ID:                    enrollment.ID,
		CourseID:              course.ID,
		CourseName:            course.Title,
		CourseSlug:            course.Slug,
		LastCompletedLessonID: enrollment.LastCompletedLessonID,
		Modules:               tree.View(done),
	})
}

// GetUserEnrollments lists the user's enrollments with their stored progress
func GetUserEnrollments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}

	type enrollmentRow struct {
		courseModels.Enrollment
		CourseName string `json:"course_name"`
		CourseSlug string `json:"course_slug"`
	}

	var rows []enrollmentRow
	err = database.Database.Db.Model(&courseModels.Enrollment{}).
		Select("enrollments.*, courses.title AS course_name, courses.slug AS course_slug").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ? AND enrollments.is_deleted = ? AND courses.is_deleted = ? AND courses.deleted_at IS NULL", user.ID, false, false).
		Order("enrollments.updated_at desc").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", rows)
}

// GetUserCertificates lists certificates issued to the user
func GetUserCertificates(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}
