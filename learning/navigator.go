package learning

// Sequence holds the neighbours of the current lesson in the flattened
// course order. Previous and Next are only meaningful when the matching
// Has flag is set.
type Sequence struct {
	Previous    uint `json:"previous_lesson_id,omitempty"`
	Next        uint `json:"next_lesson_id,omitempty"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// Adjacent returns the lessons before and after current, crossing module
// boundaries. An unknown lesson yields the zero Sequence.
func Adjacent(t *Tree, current uint) Sequence {
	if t == nil {
		return Sequence{}
	}
	n, ok := t.lessons[current]
	if !ok {
		return Sequence{}
	}
	pos := flatIndex(t, n)

	var seq Sequence
	if pos > 0 {
		seq.Previous, seq.HasPrevious = t.order[pos-1], true
	}
	if pos+1 < len(t.order) {
		seq.Next, seq.HasNext = t.order[pos+1], true
	}
	return seq
}

func flatIndex(t *Tree, n *lessonNode) int {
	pos := n.index
	for i := 0; i < n.module; i++ {
		pos += len(t.modules[i].lessons)
	}
	return pos
}
