package utils

import (
	"testing"

	"learnpath/learning"

	"github.com/stretchr/testify/assert"
)

func TestGradeQuiz(t *testing.T) {
	res := GradeQuiz(quizQuestions(), map[uint]uint{100: 1000, 101: 1011})

	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 2, res.MaxScore)
	assert.Equal(t, []learning.QuestionResult{
		{QuestionID: 100, SelectedOption: 1000, CorrectOption: 1000, IsCorrect: true, WasAnswered: true},
		{QuestionID: 101, SelectedOption: 1011, CorrectOption: 1010, WasAnswered: true},
	}, res.Questions)
}

func TestGradeQuizUnanswered(t *testing.T) {
	res := GradeQuiz(quizQuestions(), map[uint]uint{999: 1})

	assert.Zero(t, res.Score)
	assert.False(t, res.Questions[0].WasAnswered)
	assert.Equal(t, uint(1000), res.Questions[0].CorrectOption)
}

func TestCertificateEmailBody(t *testing.T) {
	body := CertificateEmailBody("Ada", "Go Basics", "LP-1")
	assert.Contains(t, body, "Go Basics")
	assert.Contains(t, body, "LP-1")
}

func TestSendEmailDisabledWithoutKey(t *testing.T) {
	assert.ErrorIs(t, SendEmail("a@b.c", "A", "s", "b"), ErrEmailDisabled)
}
