package learning

import "sync"

// QuizAttempt is the in-memory answer sheet for the quiz currently on
// screen. Binding it to a different lesson wipes it.
type QuizAttempt struct {
	mu        sync.Mutex
	lessonID  uint
	answers   map[uint]uint
	submitted bool
	result    *QuizResult
	attempt   uint64
}

func NewQuizAttempt() *QuizAttempt {
	return &QuizAttempt{answers: make(map[uint]uint)}
}

// Bind scopes the attempt to lessonID. Any state held for another lesson is
// discarded; rebinding the same lesson keeps it.
func (q *QuizAttempt) Bind(lessonID uint) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.lessonID == lessonID {
		return
	}
	q.lessonID = lessonID
	q.clearLocked()
}

func (q *QuizAttempt) LessonID() uint {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lessonID
}

// SelectAnswer records optionID for questionID, replacing any earlier choice.
// It does nothing once the attempt has been submitted.
func (q *QuizAttempt) SelectAnswer(questionID, optionID uint) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitted {
		return false
	}
	q.answers[questionID] = optionID
	return true
}

// Selected returns the chosen option for questionID.
func (q *QuizAttempt) Selected(questionID uint) (uint, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	id, ok := q.answers[questionID]
	return id, ok
}

// Answers returns a copy of the answer sheet.
func (q *QuizAttempt) Answers() map[uint]uint {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make(map[uint]uint, len(q.answers))
	for k, v := range q.answers {
		out[k] = v
	}
	return out
}

// Submit freezes the answers and returns the attempt token that SetResult
// expects. It reports false if already submitted.
func (q *QuizAttempt) Submit() (uint64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitted {
		return 0, false
	}
	q.submitted = true
	return q.attempt, true
}

func (q *QuizAttempt) Submitted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.submitted
}

// Retake clears the sheet for a fresh attempt on the same lesson.
func (q *QuizAttempt) Retake() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clearLocked()
}

// SetResult stores the graded result of the submission that returned
// attempt. It is ignored if the sheet has since been rebound or retaken.
func (q *QuizAttempt) SetResult(attempt uint64, res *QuizResult) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if attempt != q.attempt || !q.submitted {
		return false
	}
	q.result = res
	return true
}

func (q *QuizAttempt) Result() *QuizResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// Results is the read-only review of a submitted attempt against the
// graded result. Before submission, or with no graded result, it is nil.
func (q *QuizAttempt) Results(detail *LessonDetail) []QuestionResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.submitted || q.result == nil || detail == nil {
		return nil
	}
	graded := make(map[uint]QuestionResult, len(q.result.Questions))
	for _, r := range q.result.Questions {
		graded[r.QuestionID] = r
	}
	out := make([]QuestionResult, 0, len(detail.Questions))
	for _, question := range detail.Questions {
		r := graded[question.ID]
		r.QuestionID = question.ID
		r.SelectedOption, r.WasAnswered = q.answers[question.ID]
		r.IsCorrect = r.WasAnswered && r.CorrectOption != 0 && r.SelectedOption == r.CorrectOption
		out = append(out, r)
	}
	return out
}

// Answered counts the questions of detail that have a selection.
func (q *QuizAttempt) Answered(detail *LessonDetail) int {
	if detail == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, question := range detail.Questions {
		if _, ok := q.answers[question.ID]; ok {
			n++
		}
	}
	return n
}

func (q *QuizAttempt) clearLocked() {
	q.attempt++
	q.answers = make(map[uint]uint)
	q.submitted = false
	q.result = nil
}
