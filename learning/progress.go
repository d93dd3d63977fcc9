package learning

// Percent is the share of lessons in the tree that are in done, 0..100.
// Ids in done that are not part of the tree are ignored; an empty course is 0.
func Percent(t *Tree, done CompletedSet) float64 {
	total := t.Len()
	if total == 0 {
		return 0
	}
	return float64(countDone(t.order, done)) / float64(total) * 100
}

// ModuleProgress is the completion summary of a single module.
type ModuleProgress struct {
	ModuleID         uint    `json:"module_id"`
	ModuleName       string  `json:"module_name"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	Progress         float64 `json:"progress"`
}

// ModuleBreakdown reports per-module progress in module order.
func ModuleBreakdown(t *Tree, done CompletedSet) []ModuleProgress {
	if t == nil {
		return nil
	}
	out := make([]ModuleProgress, len(t.modules))
	for i, m := range t.modules {
		completed := countDone(m.lessons, done)
		progress := float64(0)
		if len(m.lessons) > 0 {
			progress = float64(completed) / float64(len(m.lessons)) * 100
		}
		out[i] = ModuleProgress{
			ModuleID:         m.id,
			ModuleName:       m.title,
			TotalLessons:     len(m.lessons),
			CompletedLessons: completed,
			Progress:         progress,
		}
	}
	return out
}

func countDone(ids []uint, done CompletedSet) int {
	n := 0
	for _, id := range ids {
		if done.Has(id) {
			n++
		}
	}
	return n
}
