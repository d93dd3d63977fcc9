package courseValidator

import (
	"strconv"
	"strings"

	"learnpath/middleware"
	"learnpath/validators"

	"github.com/gofiber/fiber/v2"
)

// CompletionRequest is the body of the lesson completion toggle.
type CompletionRequest struct {
	EnrollmentID uint `json:"enrollment_id" validate:"required,gt=0"`
}

// QuizSubmission is the body of a quiz submission; answers map question id
// to the selected option id.
type QuizSubmission struct {
	EnrollmentID uint          `json:"enrollment_id" validate:"required,gt=0"`
	Answers      map[uint]uint `json:"answers" validate:"omitempty,dive,keys,gt=0,endkeys,gt=0"`
}

// parseID reads a positive id path parameter. On failure it returns the
// message to send back.
func parseID(c *fiber.Ctx, param, label string) (uint, string) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, label + " is required!"
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, "Invalid " + label + "!"
	}
	return uint(id), ""
}

// LearnCourse validates the :slug of the learner course routes
func LearnCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if err := validators.Validate.Var(slug, "required,max=160,slug"); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"slug": "Invalid course slug!"})
		}

		c.Locals("courseSlug", slug)
		return c.Next()
	}
}

// LessonDetail validates :module_id and :lesson_id
func LessonDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, msg := parseID(c, "module_id", "Module ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		lessonID, msg := parseID(c, "lesson_id", "Lesson ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// ToggleLessonComplete validates :lesson_id and the enrollment in the body
func ToggleLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, msg := parseID(c, "lesson_id", "Lesson ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(CompletionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validators.Struct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}

// SubmitQuiz validates :lesson_id and the submitted answers
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, msg := parseID(c, "lesson_id", "Lesson ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(QuizSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validators.Struct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
