package learning

import (
	"context"
	"fmt"

	"learnpath/logger"
)

// Rule records which resolution step picked the landing lesson.
type Rule int

const (
	RuleNone Rule = iota
	RuleExplicit
	RuleContinue
	RuleFirst
)

func (r Rule) String() string {
	switch r {
	case RuleExplicit:
		return "explicit"
	case RuleContinue:
		return "continue"
	case RuleFirst:
		return "first"
	default:
		return "none"
	}
}

// Resolution is the lesson a learner lands on when entering a course.
type Resolution struct {
	LessonID uint
	Rule     Rule
}

// Found reports whether there is a lesson to show at all.
func (r Resolution) Found() bool { return r.Rule != RuleNone }

// Autonomous is true when the lesson was chosen by the engine rather than
// requested by the caller; such choices are written back to the URL.
func (r Resolution) Autonomous() bool {
	return r.Rule == RuleContinue || r.Rule == RuleFirst
}

// Resolve picks the landing lesson. A non-zero explicit id is used verbatim
// even if it is not in the tree. Otherwise the learner continues after
// lastCompleted (staying inside its module), and failing that starts at the
// first lesson.
func Resolve(t *Tree, lastCompleted *uint, explicit uint) Resolution {
	if explicit != 0 {
		return Resolution{LessonID: explicit, Rule: RuleExplicit}
	}
	if lastCompleted != nil {
		if id, ok := t.ContinueAfter(*lastCompleted); ok {
			return Resolution{LessonID: id, Rule: RuleContinue}
		}
	}
	if id, ok := t.FirstLesson(); ok {
		return Resolution{LessonID: id, Rule: RuleFirst}
	}
	return Resolution{}
}

// Resolver loads the enrollment and module tree for a course slug and
// decides the landing lesson, once per slug.
type Resolver struct {
	st     *courseState
	remote Remote
	url    URLState
	log    *logger.Logger

	// guarded by st.mu
	slug       string
	gen        uint64
	loaded     bool
	inFlight   bool
	err        error
	resolution Resolution
}

func newResolver(st *courseState, remote Remote, url URLState, log *logger.Logger) *Resolver {
	return &Resolver{st: st, remote: remote, url: url, log: log}
}

// Load fetches the course for slug unless it is already loaded or loading.
// explicit is the lesson id requested by the caller, 0 for none. A new slug
// discards the previous tree before fetching.
func (r *Resolver) Load(ctx context.Context, slug string, explicit uint) error {
	r.st.mu.Lock()
	if slug == r.slug && (r.loaded || r.inFlight) {
		r.st.mu.Unlock()
		return nil
	}
	r.st.mu.Unlock()
	return r.fetch(ctx, slug, explicit)
}

// Reload refetches the current slug, typically after a load failure.
func (r *Resolver) Reload(ctx context.Context, explicit uint) error {
	r.st.mu.Lock()
	slug := r.slug
	r.st.mu.Unlock()
	if slug == "" {
		return ErrNoEnrollment
	}
	return r.fetch(ctx, slug, explicit)
}

func (r *Resolver) fetch(ctx context.Context, slug string, explicit uint) error {
	r.st.mu.Lock()
	r.gen++
	gen := r.gen
	r.slug = slug
	r.loaded = false
	r.inFlight = true
	r.err = nil
	r.resolution = Resolution{}
	r.st.reset()
	r.st.mu.Unlock()

	enrollment, err := r.remote.FetchEnrollment(ctx, slug)
	var tree *Tree
	if err == nil {
		tree, err = NewTree(enrollment.Modules)
	}

	r.st.mu.Lock()
	if gen != r.gen {
		r.st.mu.Unlock()
		r.log.Debug("discarding superseded enrollment response", "slug", slug)
		return nil
	}
	r.inFlight = false
	if err != nil {
		r.err = fmt.Errorf("load course %q: %w", slug, err)
		r.st.mu.Unlock()
		r.log.Warn("course load failed", "slug", slug, "error", err)
		return r.err
	}

	header := *enrollment
	header.Modules = nil
	r.st.enrollment = &header
	r.st.tree = tree
	r.st.done = CompletedFromModules(enrollment.Modules)
	r.loaded = true
	res := Resolve(tree, enrollment.LastCompletedLessonID, explicit)
	r.resolution = res
	r.st.mu.Unlock()

	r.log.Info("course loaded",
		"slug", slug,
		"enrollment_id", header.ID,
		"lessons", tree.Len(),
		"landing_lesson", res.LessonID,
		"rule", res.Rule.String(),
	)
	if res.Autonomous() && r.url != nil {
		r.url.SetLesson(res.LessonID)
	}
	return nil
}

// Resolution is the landing lesson of the last successful load.
func (r *Resolver) Resolution() Resolution {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.resolution
}

// Err is the last load error; nil once a load succeeds.
func (r *Resolver) Err() error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.err
}

func (r *Resolver) Loaded() bool {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.loaded
}

// Enrollment returns the loaded enrollment header (without modules).
func (r *Resolver) Enrollment() (Enrollment, bool) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.enrollment == nil {
		return Enrollment{}, false
	}
	return *r.st.enrollment, true
}

// Modules returns the module tree with completion projected in.
func (r *Resolver) Modules() []Module {
	tree, done := r.st.snapshot()
	return tree.View(done)
}
