package utils

import (
	"learnpath/learning"
	courseModels "learnpath/models/course"
)

// GradeQuiz scores single-choice answers (question id -> option id) against
// the stored questions. Unanswered questions score zero. The attempt number
// is left for the caller.
func GradeQuiz(questions []courseModels.QuizQuestionDoc, answers map[uint]uint) learning.QuizResult {
	res := learning.QuizResult{
		MaxScore:  len(questions),
		Questions: make([]learning.QuestionResult, len(questions)),
	}
	for i, q := range questions {
		r := learning.QuestionResult{QuestionID: q.ID}
		for _, o := range q.Options {
			if o.IsCorrect {
				r.CorrectOption = o.ID
				break
			}
		}
		if selected, ok := answers[q.ID]; ok {
			r.WasAnswered = true
			r.SelectedOption = selected
			r.IsCorrect = r.CorrectOption != 0 && selected == r.CorrectOption
		}
		if r.IsCorrect {
			res.Score++
		}
		res.Questions[i] = r
	}
	return res
}
