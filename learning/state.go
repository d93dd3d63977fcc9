package learning

import "sync"

// courseState is the tree and completion set of the active course. It is
// written only by the Resolver (wholesale, on load) and the Tracker (one
// lesson at a time). Every read and write happens under mu.
type courseState struct {
	mu         sync.Mutex
	epoch      uint64 // bumped each time the tree is replaced
	enrollment *Enrollment
	tree       *Tree
	done       CompletedSet
}

func newCourseState() *courseState {
	return &courseState{done: make(CompletedSet)}
}

// reset must be called with mu held.
func (s *courseState) reset() {
	s.epoch++
	s.enrollment = nil
	s.tree = nil
	s.done = make(CompletedSet)
}

// snapshot returns the tree and a private copy of the completion set.
func (s *courseState) snapshot() (*Tree, CompletedSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree, s.done.Clone()
}
