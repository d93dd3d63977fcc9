package courseRoutes

import (
	"context"
	"net"
	"testing"

	"learnpath/client"
	"learnpath/database"
	"learnpath/learning"
	courseModels "learnpath/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionAgainstServer drives a learning session through the HTTP client
// against the real routes.
func TestSessionAgainstServer(t *testing.T) {
	env := newTestEnv(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.Shutdown() })

	u, err := learning.ParseQueryURL("https://learn.example.com/courses/go-basics")
	require.NoError(t, err)
	s := learning.NewSession(client.New("http://"+ln.Addr().String(), env.token), learning.WithURL(u))
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Open(ctx, "go-basics"))
	require.NotNil(t, s.Loader.Current())
	intro, setup, quiz := env.lessons[0].ID, env.lessons[1].ID, env.lessons[2].ID
	assert.Equal(t, intro, s.Loader.Current().ID)
	assert.Equal(t, learning.RuleFirst, s.Resolver.Resolution().Rule)
	id, ok := u.Lesson()
	require.True(t, ok)
	assert.Equal(t, intro, id)

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, setup, s.Loader.Current().ID)
	assert.True(t, s.Tracker.IsCompleted(intro))

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, quiz, s.Loader.Current().ID)
	require.Len(t, s.Loader.Current().Questions, 1)

	s.Quiz.SelectAnswer(100, 1000)
	res, err := s.SubmitQuiz(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Score)
	assert.InDelta(t, 100, s.Progress(), 0.001)

	var stored courseModels.Enrollment
	require.NoError(t, database.Database.Db.First(&stored, env.enrollment.ID).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, stored.Status)
	require.NotNil(t, stored.LastCompletedLessonID)
	assert.Equal(t, quiz, *stored.LastCompletedLessonID)

	// a fresh session resumes after the last completed lesson
	again := learning.NewSession(client.New("http://"+ln.Addr().String(), env.token))
	defer again.Close()
	require.NoError(t, again.Open(ctx, "go-basics"))
	assert.Equal(t, learning.RuleContinue, again.Resolver.Resolution().Rule)
	assert.Equal(t, quiz, again.Loader.Current().ID)
	assert.Equal(t, []uint{intro, setup, quiz}, again.Tracker.Completed())
}
