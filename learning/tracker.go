package learning

import (
	"context"
	"fmt"

	"learnpath/logger"
)

// Tracker owns lesson completion. Changes are applied locally first and
// rolled back, for that lesson only, when the remote call fails.
type Tracker struct {
	st     *courseState
	remote Remote
	notify Notifier
	log    *logger.Logger
}

func newTracker(st *courseState, remote Remote, notify Notifier, log *logger.Logger) *Tracker {
	return &Tracker{st: st, remote: remote, notify: notify, log: log}
}

// MarkComplete marks lessonID done. Already completed lessons are left alone
// and no request is sent.
func (t *Tracker) MarkComplete(ctx context.Context, lessonID uint) error {
	t.st.mu.Lock()
	enrollmentID, epoch, err := t.checkLocked(lessonID)
	if err != nil {
		t.st.mu.Unlock()
		return err
	}
	if t.st.done.Has(lessonID) {
		t.st.mu.Unlock()
		return nil
	}
	t.st.done.Set(lessonID, true)
	t.st.mu.Unlock()

	return t.commit(ctx, enrollmentID, epoch, lessonID, false, true)
}

// ToggleComplete flips lessonID and always sends the request, since
// unmarking is a legitimate action.
func (t *Tracker) ToggleComplete(ctx context.Context, lessonID uint) error {
	t.st.mu.Lock()
	enrollmentID, epoch, err := t.checkLocked(lessonID)
	if err != nil {
		t.st.mu.Unlock()
		return err
	}
	was := t.st.done.Has(lessonID)
	t.st.done.Set(lessonID, !was)
	t.st.mu.Unlock()

	return t.commit(ctx, enrollmentID, epoch, lessonID, was, !was)
}

// IsCompleted reports the current local state of lessonID.
func (t *Tracker) IsCompleted(lessonID uint) bool {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	return t.st.done.Has(lessonID)
}

// Completed returns the completed lesson ids in ascending order.
func (t *Tracker) Completed() []uint {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	return t.st.done.IDs()
}

func (t *Tracker) checkLocked(lessonID uint) (enrollmentID uint, epoch uint64, err error) {
	if t.st.enrollment == nil {
		return 0, 0, ErrNoEnrollment
	}
	if !t.st.tree.Contains(lessonID) {
		return 0, 0, fmt.Errorf("lesson %d: %w", lessonID, ErrUnknownLesson)
	}
	return t.st.enrollment.ID, t.st.epoch, nil
}

func (t *Tracker) commit(ctx context.Context, enrollmentID uint, epoch uint64, lessonID uint, before, after bool) error {
	err := t.remote.MarkLessonCompleted(ctx, lessonID, enrollmentID)
	if err == nil {
		if after {
			t.notify.Success("Lesson marked as completed")
		} else {
			t.notify.Success("Lesson marked as not completed")
		}
		return nil
	}

	t.st.mu.Lock()
	// The course may have been replaced while the request was in flight.
	if t.st.epoch == epoch {
		t.st.done.Set(lessonID, before)
	}
	t.st.mu.Unlock()

	t.log.Warn("completion update failed, rolled back",
		"enrollment_id", enrollmentID,
		"lesson_id", lessonID,
		"restored", before,
		"error", err,
	)
	t.notify.Failure("Could not update lesson progress", err)
	return fmt.Errorf("update completion of lesson %d: %w", lessonID, err)
}
