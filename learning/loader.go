package learning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"learnpath/logger"
)

// LessonView is what the content pane renders. While Loading is set the
// previous Lesson is still present and should be shown behind a loading
// indicator. NotFound means the pane must show an explicit not-found state.
type LessonView struct {
	RequestedID uint
	Lesson      *LessonDetail
	Loading     bool
	NotFound    bool
	Err         error
}

// Loader fetches full lesson content for the selected lesson and keeps the
// sidebar's expanded-module state.
type Loader struct {
	st     *courseState
	remote Remote
	log    *logger.Logger

	mu        sync.Mutex
	gen       uint64
	requested uint
	current   *LessonDetail
	loading   bool
	notFound  bool
	err       error
	expanded  map[uint]bool
}

func newLoader(st *courseState, remote Remote, log *logger.Logger) *Loader {
	return &Loader{st: st, remote: remote, log: log, expanded: make(map[uint]bool)}
}

// Select makes lessonID the current lesson and fetches its content. A
// response for a lesson that has since been superseded by another Select is
// dropped.
func (l *Loader) Select(ctx context.Context, lessonID uint) error {
	l.st.mu.Lock()
	moduleID, inTree := l.st.tree.ModuleOf(lessonID)
	l.st.mu.Unlock()

	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.requested = lessonID
	l.err = nil
	l.notFound = false
	if !inTree {
		l.current = nil
		l.loading = false
		l.notFound = true
		l.err = fmt.Errorf("lesson %d: %w", lessonID, ErrUnknownLesson)
		err := l.err
		l.mu.Unlock()
		return err
	}
	l.loading = true
	l.mu.Unlock()

	detail, err := l.remote.FetchLessonDetail(ctx, moduleID, lessonID)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		l.log.Debug("discarding superseded lesson response", "lesson_id", lessonID)
		return nil
	}
	l.loading = false
	if err != nil {
		l.current = nil
		l.notFound = true
		l.err = fmt.Errorf("fetch lesson %d: %w", lessonID, err)
		if !errors.Is(err, ErrNotFound) {
			l.log.Warn("lesson fetch failed", "lesson_id", lessonID, "module_id", moduleID, "error", err)
		}
		return l.err
	}
	l.current = detail
	return nil
}

// View returns the content pane state.
func (l *Loader) View() LessonView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LessonView{
		RequestedID: l.requested,
		Lesson:      l.current,
		Loading:     l.loading,
		NotFound:    l.notFound,
		Err:         l.err,
	}
}

// Current is the displayed lesson, nil when none is loaded or it was not found.
func (l *Loader) Current() *LessonDetail {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Requested is the most recently selected lesson id.
func (l *Loader) Requested() uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requested
}

// ToggleModule flips the expanded state of a sidebar module.
func (l *Loader) ToggleModule(moduleID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.expanded[moduleID] {
		delete(l.expanded, moduleID)
		return
	}
	l.expanded[moduleID] = true
}

func (l *Loader) Expand(moduleID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expanded[moduleID] = true
}

func (l *Loader) IsExpanded(moduleID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expanded[moduleID]
}

// Expanded lists expanded module ids in ascending order.
func (l *Loader) Expanded() []uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]uint, 0, len(l.expanded))
	for id := range l.expanded {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// reset drops the displayed lesson and sidebar state when the course changes.
func (l *Loader) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.requested = 0
	l.current = nil
	l.loading = false
	l.notFound = false
	l.err = nil
	l.expanded = make(map[uint]bool)
}
