package learning

import (
	"context"
	"sync"
)

type gate struct {
	started chan struct{}
	release chan struct{}
}

type fakeRemote struct {
	mu sync.Mutex

	enrollments map[string]*Enrollment
	enrollErr   error
	enrollGates map[string]*gate
	fetches     int

	details      map[uint]*LessonDetail
	detailErr    map[uint]error
	detailGates  map[uint]*gate
	detailCalls  []uint
	markErr      map[uint]error
	markGates    map[uint]*gate
	markCalls    []uint
	grade        *QuizResult
	gradeErr     error
	gradeAnswers map[uint]uint
	gradeCalls   int
	gradeGates   map[int]*gate
	gradeResults map[int]*QuizResult
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		enrollments: make(map[string]*Enrollment),
		enrollGates: make(map[string]*gate),
		details:     make(map[uint]*LessonDetail),
		detailErr:   make(map[uint]error),
		detailGates: make(map[uint]*gate),
		markErr:     make(map[uint]error),
		markGates:   make(map[uint]*gate),

		gradeGates:   make(map[int]*gate),
		gradeResults: make(map[int]*QuizResult),
	}
}

// blockDetail makes the next fetch of lessonID wait until release is closed.
func (f *fakeRemote) blockDetail(lessonID uint) *gate {
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.detailGates[lessonID] = g
	f.mu.Unlock()
	return g
}

func (f *fakeRemote) blockEnrollment(slug string) *gate {
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.enrollGates[slug] = g
	f.mu.Unlock()
	return g
}

// blockGrade makes the n-th grading call (0-based) wait and answer res.
func (f *fakeRemote) blockGrade(n int, res *QuizResult) *gate {
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.gradeGates[n] = g
	f.gradeResults[n] = res
	f.mu.Unlock()
	return g
}

func (f *fakeRemote) blockMark(lessonID uint) *gate {
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.markGates[lessonID] = g
	f.mu.Unlock()
	return g
}

func (f *fakeRemote) FetchEnrollment(ctx context.Context, slug string) (*Enrollment, error) {
	f.mu.Lock()
	f.fetches++
	g := f.enrollGates[slug]
	delete(f.enrollGates, slug)
	f.mu.Unlock()

	if g != nil {
		close(g.started)
		<-g.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enrollErr != nil {
		return nil, f.enrollErr
	}
	e, ok := f.enrollments[slug]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRemote) FetchLessonDetail(ctx context.Context, moduleID, lessonID uint) (*LessonDetail, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, lessonID)
	g := f.detailGates[lessonID]
	delete(f.detailGates, lessonID)
	f.mu.Unlock()

	if g != nil {
		close(g.started)
		<-g.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.detailErr[lessonID]; err != nil {
		return nil, err
	}
	d, ok := f.details[lessonID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRemote) MarkLessonCompleted(ctx context.Context, lessonID, enrollmentID uint) error {
	f.mu.Lock()
	f.markCalls = append(f.markCalls, lessonID)
	g := f.markGates[lessonID]
	delete(f.markGates, lessonID)
	f.mu.Unlock()

	if g != nil {
		close(g.started)
		<-g.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markErr[lessonID]
}

func (f *fakeRemote) SubmitQuiz(ctx context.Context, lessonID, enrollmentID uint, answers map[uint]uint) (*QuizResult, error) {
	f.mu.Lock()
	n := f.gradeCalls
	f.gradeCalls++
	f.gradeAnswers = answers
	g := f.gradeGates[n]
	f.mu.Unlock()

	if g != nil {
		close(g.started)
		<-g.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gradeErr != nil {
		return nil, f.gradeErr
	}
	if res, ok := f.gradeResults[n]; ok {
		return res, nil
	}
	return f.grade, nil
}

func (f *fakeRemote) marks() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint(nil), f.markCalls...)
}

func (f *fakeRemote) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordingNotifier) failureCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

type recordingURL struct {
	lesson uint
	writes []uint
}

func (u *recordingURL) Lesson() (uint, bool) { return u.lesson, u.lesson != 0 }

func (u *recordingURL) SetLesson(id uint) {
	u.lesson = id
	u.writes = append(u.writes, id)
}

// sampleModules is M1=[L1,L2], M2=[L3].
func sampleModules() []Module {
	return []Module{
		{ID: 10, Title: "Basics", Lessons: []Lesson{
			{ID: 1, Title: "Intro", Kind: KindVideo, DurationMinutes: 5},
			{ID: 2, Title: "Setup", Kind: KindText, DurationMinutes: 10},
		}},
		{ID: 20, Title: "Check", Lessons: []Lesson{
			{ID: 3, Title: "Quiz", Kind: KindQuiz, DurationMinutes: 15},
		}},
	}
}

func sampleEnrollment(last *uint, completed ...uint) *Enrollment {
	modules := sampleModules()
	done := make(map[uint]bool)
	for _, id := range completed {
		done[id] = true
	}
	for mi := range modules {
		for li := range modules[mi].Lessons {
			modules[mi].Lessons[li].IsCompleted = done[modules[mi].Lessons[li].ID]
		}
	}
	return &Enrollment{
		ID:                    7,
		CourseID:              3,
		CourseName:            "Go Basics",
		CourseSlug:            "go-basics",
		LastCompletedLessonID: last,
		Modules:               modules,
	}
}

func sampleDetails() map[uint]*LessonDetail {
	return map[uint]*LessonDetail{
		1: {ID: 1, ModuleID: 10, Title: "Intro", Kind: KindVideo, VideoURL: "https://cdn.example.com/intro.mp4"},
		2: {ID: 2, ModuleID: 10, Title: "Setup", Kind: KindText, TextContent: "Install Go."},
		3: {ID: 3, ModuleID: 20, Title: "Quiz", Kind: KindQuiz, Questions: []QuizQuestion{
			{ID: 100, Prompt: "Zero value of int?", Options: []QuizOption{{ID: 1000, Text: "0"}, {ID: 1001, Text: "nil"}}},
			{ID: 101, Prompt: "Keyword for goroutines?", Options: []QuizOption{{ID: 1010, Text: "go"}, {ID: 1011, Text: "async"}}},
		}},
	}
}

func uintPtr(v uint) *uint { return &v }
