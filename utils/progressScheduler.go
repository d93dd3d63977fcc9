package utils

import (
	"learnpath/logger"
	courseModels "learnpath/models/course"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SyncEnrollmentProgress recomputes every active enrollment. It catches up
// enrollments whose course tree changed after their last completion. It
// returns how many enrollments were refreshed.
func SyncEnrollmentProgress(db *gorm.DB) (int, error) {
	var enrollments []courseModels.Enrollment
	refreshed := 0
	result := db.Where("is_deleted = ?", false).FindInBatches(&enrollments, 100, func(tx *gorm.DB, batch int) error {
		for i := range enrollments {
			cert, err := RefreshEnrollmentProgress(db, &enrollments[i])
			if err != nil {
				logger.L().Warn("progress sync failed", "enrollment_id", enrollments[i].ID, "error", err)
				continue
			}
			refreshed++
			if cert != nil {
				logger.L().Info("certificate issued by progress sync", "enrollment_id", enrollments[i].ID, "certificate", cert.CertificateNumber)
			}
		}
		return nil
	})
	return refreshed, result.Error
}

// InitializeProgressScheduler runs SyncEnrollmentProgress on spec. The caller
// owns the returned cron and stops it on shutdown.
func InitializeProgressScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	logger.L().Info("initializing progress scheduler", "spec", spec)

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := SyncEnrollmentProgress(db)
		if err != nil {
			logger.L().Error("progress sync aborted", "error", err)
			return
		}
		logger.L().Info("progress sync finished", "enrollments", n)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
