package controllers

import (
	"learnpath/database"
	"learnpath/learning"
	"learnpath/logger"
	"learnpath/middleware"
	"learnpath/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCourseProgress reports overall and per-module progress computed from the
// current published tree.
func GetCourseProgress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	slug := c.Locals("courseSlug").(string)

	_, enrollment, err := courseEnrollment(c, user.ID, slug)
	if enrollment == nil {
		return err
	}

	tree, done, err := utils.EnrollmentTree(database.Database.Db, enrollment)
	if err != nil {
		logger.L().Error("load enrollment tree failed", "enrollment_id", enrollment.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedIDs := make([]uint, 0, len(done))
	for _, id := range done.IDs() {
		if tree.Contains(id) {
			completedIDs = append(completedIDs, id)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"progress":        learning.Percent(tree, done),
		"completed_ids":   completedIDs,
		"module_progress": learning.ModuleBreakdown(tree, done),
	})
}

// SyncProgress recomputes every enrollment on demand
func SyncProgress(c *fiber.Ctx) error {
	n, err := utils.SyncEnrollmentProgress(database.Database.Db)
	if err != nil {
		logger.L().Error("progress sync failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync progress!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress synced!", fiber.Map{"enrollments": n})
}
