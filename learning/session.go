package learning

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"learnpath/logger"
)

// ErrNoQuiz is returned by SubmitQuiz when no lesson is bound to the quiz state.
var ErrNoQuiz = errors.New("no quiz lesson selected")

// Session is one learner's visit to one course. It is created when the
// learner enters a course, passed to whatever renders it, and closed on exit.
type Session struct {
	Resolver *Resolver
	Tracker  *Tracker
	Loader   *Loader
	Quiz     *QuizAttempt

	st     *courseState
	remote Remote
	url    URLState
	notify Notifier
	log    *logger.Logger
}

type Option func(*Session)

// WithURL sets the shareable-URL surface used for the lesson query parameter.
func WithURL(u URLState) Option {
	return func(s *Session) { s.url = u }
}

func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notify = n }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(remote Remote, opts ...Option) *Session {
	s := &Session{remote: remote, st: newCourseState()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.L()
	}
	if s.notify == nil {
		s.notify = LogNotifier{Log: s.log}
	}
	s.Resolver = newResolver(s.st, remote, s.url, s.log)
	s.Tracker = newTracker(s.st, remote, s.notify, s.log)
	s.Loader = newLoader(s.st, remote, s.log)
	s.Quiz = NewQuizAttempt()
	return s
}

// Open loads the course for slug and shows its landing lesson. Opening the
// slug that is already open does nothing. A course with no lessons opens
// without error and leaves the content pane empty.
func (s *Session) Open(ctx context.Context, slug string) error {
	s.st.mu.Lock()
	same := s.Resolver.slug == slug && (s.Resolver.loaded || s.Resolver.inFlight)
	s.st.mu.Unlock()
	if same {
		return nil
	}

	s.Loader.reset()
	s.Quiz.Bind(0)

	var explicit uint
	if s.url != nil {
		if id, ok := s.url.Lesson(); ok {
			explicit = id
		}
	}
	if err := s.Resolver.Load(ctx, slug, explicit); err != nil {
		return err
	}

	res := s.Resolver.Resolution()
	if !res.Found() {
		return nil
	}
	if moduleID, ok := s.moduleOf(res.LessonID); ok {
		s.Loader.Expand(moduleID)
	}
	return s.Select(ctx, res.LessonID)
}

// Select shows lessonID. The quiz state is rebound before the fetch starts
// so answers never carry over between lessons.
func (s *Session) Select(ctx context.Context, lessonID uint) error {
	s.Quiz.Bind(lessonID)
	return s.Loader.Select(ctx, lessonID)
}

// Next marks the current non-quiz lesson complete and moves to the following
// lesson. Quiz lessons are completed on submission instead.
func (s *Session) Next(ctx context.Context) error {
	current := s.Loader.Requested()
	if current == 0 {
		return ErrNoEnrollment
	}
	tree, _ := s.st.snapshot()
	seq := Adjacent(tree, current)

	var g errgroup.Group
	if lesson, ok := tree.Lesson(current); ok && lesson.Kind != KindQuiz {
		g.Go(func() error { return s.Tracker.MarkComplete(ctx, current) })
	}
	if seq.HasNext {
		g.Go(func() error { return s.Select(ctx, seq.Next) })
	}
	return g.Wait()
}

// Previous moves to the preceding lesson without touching completion.
func (s *Session) Previous(ctx context.Context) error {
	current := s.Loader.Requested()
	if current == 0 {
		return ErrNoEnrollment
	}
	tree, _ := s.st.snapshot()
	seq := Adjacent(tree, current)
	if !seq.HasPrevious {
		return nil
	}
	return s.Select(ctx, seq.Previous)
}

// SubmitQuiz freezes the answers of the bound quiz, marks the lesson complete
// and, if the remote can grade, stores the graded result for review. A second
// submission returns the stored result without new requests.
func (s *Session) SubmitQuiz(ctx context.Context) (*QuizResult, error) {
	lessonID := s.Quiz.LessonID()
	if lessonID == 0 {
		return nil, ErrNoQuiz
	}
	attempt, ok := s.Quiz.Submit()
	if !ok {
		return s.Quiz.Result(), nil
	}
	answers := s.Quiz.Answers()

	var g errgroup.Group
	g.Go(func() error { return s.Tracker.MarkComplete(ctx, lessonID) })

	grader, canGrade := s.remote.(QuizGrader)
	enrollment, loaded := s.Resolver.Enrollment()
	if canGrade && loaded {
		g.Go(func() error {
			res, err := grader.SubmitQuiz(ctx, lessonID, enrollment.ID, answers)
			if err != nil {
				s.notify.Failure("Could not grade quiz", err)
				return fmt.Errorf("grade quiz for lesson %d: %w", lessonID, err)
			}
			s.Quiz.SetResult(attempt, res)
			return nil
		})
	}
	err := g.Wait()
	return s.Quiz.Result(), err
}

// Progress is the completion percentage of the loaded course.
func (s *Session) Progress() float64 {
	tree, done := s.st.snapshot()
	return Percent(tree, done)
}

func (s *Session) ModuleProgress() []ModuleProgress {
	tree, done := s.st.snapshot()
	return ModuleBreakdown(tree, done)
}

// Sequence returns the neighbours of the selected lesson.
func (s *Session) Sequence() Sequence {
	tree, _ := s.st.snapshot()
	return Adjacent(tree, s.Loader.Requested())
}

// Modules is the sidebar tree with completion flags.
func (s *Session) Modules() []Module {
	return s.Resolver.Modules()
}

// Close discards all course state. In-flight responses that settle after
// Close are ignored.
func (s *Session) Close() {
	s.st.mu.Lock()
	s.Resolver.gen++
	s.Resolver.slug = ""
	s.Resolver.loaded = false
	s.Resolver.inFlight = false
	s.Resolver.err = nil
	s.Resolver.resolution = Resolution{}
	s.st.reset()
	s.st.mu.Unlock()

	s.Loader.reset()
	s.Quiz.Bind(0)
}

func (s *Session) moduleOf(lessonID uint) (uint, bool) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.st.tree.ModuleOf(lessonID)
}
