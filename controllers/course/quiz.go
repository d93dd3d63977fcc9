package controllers

import (
	"learnpath/database"
	"learnpath/logger"
	"learnpath/middleware"
	courseModels "learnpath/models/course"
	"learnpath/utils"
	courseValidator "learnpath/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// SubmitQuiz grades a quiz attempt and stores it with its attempt number.
// Completion of the lesson is toggled separately by the client.
func SubmitQuiz(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	lessonID := c.Locals("lessonID").(uint)
	reqData := c.Locals("validatedQuiz").(*courseValidator.QuizSubmission)

	enrollment, err := ownedEnrollment(c, user.ID, reqData.EnrollmentID)
	if enrollment == nil {
		return err
	}
	lesson, err := publishedLesson(c, enrollment.CourseID, lessonID)
	if lesson == nil {
		return err
	}
	if lesson.Kind != courseModels.LessonQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a quiz!", nil)
	}

	answers := reqData.Answers
	if answers == nil {
		answers = map[uint]uint{}
	}
	result := utils.GradeQuiz(lesson.Questions.Data(), answers)

	// Get attempt number
	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("enrollment_id = ? AND lesson_id = ? AND is_deleted = ?", enrollment.ID, lesson.ID, false).Count(&attemptCount)
	result.AttemptNumber = int(attemptCount) + 1

	attempt := courseModels.QuizAttempt{
		UserID:        user.ID,
		EnrollmentID:  enrollment.ID,
		LessonID:      lesson.ID,
		Answers:       datatypes.NewJSONType(answers),
		Score:         result.Score,
		MaxScore:      result.MaxScore,
		IsCorrect:     result.MaxScore > 0 && result.Score == result.MaxScore,
		AttemptNumber: result.AttemptNumber,
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		logger.L().Error("store quiz attempt failed", "enrollment_id", enrollment.ID, "lesson_id", lesson.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", result)
}
