package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnpath/learning"
)

func writeJSON(w http.ResponseWriter, code int, ok bool, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": ok, "message": msg, "data": data})
}

func TestFetchEnrollment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/learn/go-basics/enrollment", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, true, "ok", map[string]interface{}{
			"enrollment_id":            9,
			"course_id":                3,
			"course_name":              "Go Basics",
			"course_slug":              "go-basics",
			"last_completed_lesson_id": 1,
			"modules": []map[string]interface{}{
				{"id": 10, "title": "Basics", "lessons": []map[string]interface{}{
					{"id": 1, "title": "Intro", "kind": "VIDEO", "is_completed": true},
					{"id": 2, "title": "Setup", "kind": "TEXT"},
				}},
			},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL, "tok").FetchEnrollment(context.Background(), "go-basics")
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.ID)
	require.NotNil(t, got.LastCompletedLessonID)
	assert.Equal(t, uint(1), *got.LastCompletedLessonID)
	require.Len(t, got.Modules, 1)
	assert.True(t, got.Modules[0].Lessons[0].IsCompleted)
	assert.Equal(t, learning.KindText, got.Modules[0].Lessons[1].Kind)
}

func TestFetchEnrollmentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, false, "Not enrolled in this course!", nil)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").FetchEnrollment(context.Background(), "nope")
	require.ErrorIs(t, err, learning.ErrNotFound)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Not enrolled in this course!", statusErr.Message)
}

func TestFetchLessonDetailCollapsesConcurrentCalls(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		assert.Equal(t, "/learn/module/10/lesson/2", r.URL.Path)
		writeJSON(w, http.StatusOK, true, "ok", learning.LessonDetail{ID: 2, ModuleID: 10, Kind: learning.KindText, TextContent: "body"})
	}))
	defer srv.Close()
	api := New(srv.URL, "tok")

	var wg sync.WaitGroup
	results := make([]*learning.LessonDetail, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := api.FetchLessonDetail(context.Background(), 10, 2)
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	// give the goroutines time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	for _, d := range results {
		require.NotNil(t, d)
		assert.Equal(t, "body", d.TextContent)
	}
	results[0].TextContent = "changed"
	assert.Equal(t, "body", results[1].TextContent, "callers get independent copies")
}

func TestFetchLessonDetailSurvivesFirstCallerCancel(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		writeJSON(w, http.StatusOK, true, "ok", learning.LessonDetail{ID: 2, ModuleID: 10, Kind: learning.KindText, TextContent: "body"})
	}))
	defer srv.Close()
	api := New(srv.URL, "tok")

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := api.FetchLessonDetail(firstCtx, 10, 2)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan *learning.LessonDetail, 1)
	go func() {
		d, err := api.FetchLessonDetail(context.Background(), 10, 2)
		assert.NoError(t, err)
		second <- d
	}()
	// let the second caller join the in-flight call
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	d := <-second
	require.NotNil(t, d)
	assert.Equal(t, "body", d.TextContent)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestMarkLessonCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/learn/lesson/5/complete", r.URL.Path)
		var body map[string]uint
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, uint(9), body["enrollment_id"])
		writeJSON(w, http.StatusOK, true, "Lesson completion updated!", nil)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "tok").MarkLessonCompleted(context.Background(), 5, 9))
}

func TestMarkLessonCompletedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, false, "Failed to update completion!", nil)
	}))
	defer srv.Close()

	err := New(srv.URL, "tok").MarkLessonCompleted(context.Background(), 5, 9)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.HTTPStatusCode())
	assert.NotErrorIs(t, err, learning.ErrNotFound)
}

func TestSubmitQuiz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/learn/lesson/3/quiz/submit", r.URL.Path)
		var body struct {
			EnrollmentID uint            `json:"enrollment_id"`
			Answers      map[string]uint `json:"answers"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]uint{"100": 1000}, body.Answers)
		writeJSON(w, http.StatusOK, true, "Quiz submitted!", learning.QuizResult{
			AttemptNumber: 2, Score: 1, MaxScore: 1,
			Questions: []learning.QuestionResult{{QuestionID: 100, CorrectOption: 1000, SelectedOption: 1000, IsCorrect: true, WasAnswered: true}},
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL, "tok").SubmitQuiz(context.Background(), 3, 9, map[uint]uint{100: 1000})
	require.NoError(t, err)
	assert.Equal(t, 2, res.AttemptNumber)
	assert.True(t, res.Questions[0].IsCorrect)
}

func TestAPIImplementsEngineInterfaces(t *testing.T) {
	var _ learning.Remote = (*API)(nil)
	var _ learning.QuizGrader = (*API)(nil)
}
