package courseRoutes

import (
	controllers "learnpath/controllers/course"
	"learnpath/middleware"
	validators "learnpath/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupLearnRoutes sets up the learner-facing routes the learning client uses
func SetupLearnRoutes(app *fiber.App) {
	learnGroup := app.Group("/learn", middleware.JWTMiddleware)

	// Admin
	learnGroup.Post("/admin/progress/sync", middleware.RequireRole("ADMIN"), controllers.SyncProgress)

	// Lesson content and completion
	learnGroup.Get("/module/:module_id/lesson/:lesson_id", validators.LessonDetail(), controllers.GetLessonDetail)
	learnGroup.Post("/lesson/:lesson_id/complete", validators.ToggleLessonComplete(), controllers.ToggleLessonComplete)
	learnGroup.Post("/lesson/:lesson_id/quiz/submit", validators.SubmitQuiz(), controllers.SubmitQuiz)

	// Enrollment and progress
	learnGroup.Post("/:slug/enroll", validators.LearnCourse(), controllers.EnrollInCourse)
	learnGroup.Get("/:slug/enrollment", validators.LearnCourse(), controllers.GetEnrollmentTree)
	learnGroup.Get("/:slug/progress", validators.LearnCourse(), controllers.GetCourseProgress)

	// User enrollments and certificates
	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/enrollments", controllers.GetUserEnrollments)
	userGroup.Get("/certificates", controllers.GetUserCertificates)
}
