package learning

import (
	"fmt"
	"sort"
)

type lessonNode struct {
	lesson   Lesson
	moduleID uint
	module   int // index into Tree.modules
	index    int // index within the module's lesson list
}

type moduleNode struct {
	id      uint
	title   string
	lessons []uint
}

// Tree is a loaded course tree held as a flat arena keyed by lesson id.
// Completion is not stored on the nodes; View projects it from a
// CompletedSet so the two can never disagree.
type Tree struct {
	modules []moduleNode
	lessons map[uint]*lessonNode
	order   []uint
}

// NewTree indexes modules in the order given. Lesson ids must be unique
// across the whole course.
func NewTree(modules []Module) (*Tree, error) {
	t := &Tree{
		modules: make([]moduleNode, 0, len(modules)),
		lessons: make(map[uint]*lessonNode),
	}
	for mi, m := range modules {
		node := moduleNode{id: m.ID, title: m.Title, lessons: make([]uint, 0, len(m.Lessons))}
		for li, l := range m.Lessons {
			if prev, ok := t.lessons[l.ID]; ok {
				return nil, fmt.Errorf("lesson %d in modules %d and %d: %w", l.ID, prev.moduleID, m.ID, ErrDuplicateLesson)
			}
			l.IsCompleted = false
			t.lessons[l.ID] = &lessonNode{lesson: l, moduleID: m.ID, module: mi, index: li}
			node.lessons = append(node.lessons, l.ID)
			t.order = append(t.order, l.ID)
		}
		t.modules = append(t.modules, node)
	}
	return t, nil
}

// Len is the number of lessons in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

func (t *Tree) Contains(lessonID uint) bool {
	if t == nil {
		return false
	}
	_, ok := t.lessons[lessonID]
	return ok
}

// Lesson returns the summary for lessonID with IsCompleted left false.
func (t *Tree) Lesson(lessonID uint) (Lesson, bool) {
	if t == nil {
		return Lesson{}, false
	}
	n, ok := t.lessons[lessonID]
	if !ok {
		return Lesson{}, false
	}
	return n.lesson, true
}

// ModuleOf returns the id of the module owning lessonID.
func (t *Tree) ModuleOf(lessonID uint) (uint, bool) {
	if t == nil {
		return 0, false
	}
	n, ok := t.lessons[lessonID]
	if !ok {
		return 0, false
	}
	return n.moduleID, true
}

// Order is the flattened lesson sequence: module order, then lesson order.
func (t *Tree) Order() []uint {
	if t == nil {
		return nil
	}
	out := make([]uint, len(t.order))
	copy(out, t.order)
	return out
}

// FirstLesson is the first lesson of the first module that has any.
func (t *Tree) FirstLesson() (uint, bool) {
	if t.Len() == 0 {
		return 0, false
	}
	return t.order[0], true
}

// ContinueAfter returns the lesson to resume at after lessonID was completed.
// It never crosses into the next module: the last lesson of a module
// resolves to itself.
func (t *Tree) ContinueAfter(lessonID uint) (uint, bool) {
	if t == nil {
		return 0, false
	}
	n, ok := t.lessons[lessonID]
	if !ok {
		return 0, false
	}
	siblings := t.modules[n.module].lessons
	if n.index+1 < len(siblings) {
		return siblings[n.index+1], true
	}
	return lessonID, true
}

// View renders the module tree with IsCompleted projected from done.
func (t *Tree) View(done CompletedSet) []Module {
	if t == nil {
		return nil
	}
	out := make([]Module, 0, len(t.modules))
	for _, m := range t.modules {
		mod := Module{ID: m.id, Title: m.title, Lessons: make([]Lesson, 0, len(m.lessons))}
		for _, id := range m.lessons {
			l := t.lessons[id].lesson
			l.IsCompleted = done.Has(id)
			mod.Lessons = append(mod.Lessons, l)
		}
		out = append(out, mod)
	}
	return out
}

// CompletedSet is the set of lesson ids the learner has finished.
type CompletedSet map[uint]struct{}

// CompletedFromModules derives the initial set from the isCompleted flags of
// a freshly fetched tree.
func CompletedFromModules(modules []Module) CompletedSet {
	done := make(CompletedSet)
	for _, m := range modules {
		for _, l := range m.Lessons {
			if l.IsCompleted {
				done[l.ID] = struct{}{}
			}
		}
	}
	return done
}

func (s CompletedSet) Has(lessonID uint) bool {
	_, ok := s[lessonID]
	return ok
}

// Set adds or removes lessonID and reports the previous membership.
func (s CompletedSet) Set(lessonID uint, completed bool) (was bool) {
	was = s.Has(lessonID)
	if completed {
		s[lessonID] = struct{}{}
	} else {
		delete(s, lessonID)
	}
	return was
}

func (s CompletedSet) Clone() CompletedSet {
	out := make(CompletedSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the members in ascending order.
func (s CompletedSet) IDs() []uint {
	out := make([]uint, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
