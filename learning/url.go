package learning

import (
	"net/url"
	"strconv"
	"sync"
)

// LessonParam is the query parameter carrying the shareable lesson position.
const LessonParam = "lesson"

// QueryURL keeps the lesson position in a URL's query string. Writes replace
// the parameter in place, like a history replace, without touching the rest
// of the URL.
type QueryURL struct {
	mu  sync.Mutex
	url url.URL
}

func NewQueryURL(u *url.URL) *QueryURL {
	q := &QueryURL{}
	if u != nil {
		q.url = *u
	}
	return q
}

// ParseQueryURL is NewQueryURL for a raw URL string.
func ParseQueryURL(raw string) (*QueryURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return NewQueryURL(u), nil
}

// Lesson reads the lesson parameter. Missing, zero or malformed values count
// as absent.
func (q *QueryURL) Lesson() (uint, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	raw := q.url.Query().Get(LessonParam)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (q *QueryURL) SetLesson(lessonID uint) {
	q.mu.Lock()
	defer q.mu.Unlock()
	values := q.url.Query()
	values.Set(LessonParam, strconv.FormatUint(uint64(lessonID), 10))
	q.url.RawQuery = values.Encode()
}

func (q *QueryURL) String() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.url.String()
}
