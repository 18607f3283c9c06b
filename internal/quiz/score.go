package quiz

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-aliyah/models"
)

// Score grades sub against q and renders feedback in lang.
//
// A single choice question scores when the one chosen option is correct; a
// multiple choice question scores only when the chosen set equals the
// correct set. Unanswered questions score zero. Unknown question or option
// ids fail the whole submission with an [AnswerError].
func Score(q *Quiz, sub models.QuizSubmission, lang string) (models.QuizResult, error) {
	for id := range sub.Answers {
		if !slices.ContainsFunc(q.Questions, func(question Question) bool { return question.ID == id }) {
			return models.QuizResult{}, &AnswerError{QuestionID: id, Err: ErrUnknownQuestion}
		}
	}

	result := models.QuizResult{
		Slug:     q.Slug,
		Total:    len(q.Questions),
		Feedback: make([]models.QuestionFeedback, 0, len(q.Questions)),
	}

	for i := range q.Questions {
		question := &q.Questions[i]

		chosen, err := normalizeChoice(question, sub.Answers[question.ID])
		if err != nil {
			return models.QuizResult{}, err
		}

		correctOptions := question.correctOptions()
		correct := len(chosen) > 0 && slices.Equal(chosen, sortedCopy(correctOptions))
		if correct {
			result.Score++
		}

		result.Feedback = append(result.Feedback, models.QuestionFeedback{
			QuestionID:     question.ID,
			Correct:        correct,
			Chosen:         chosen,
			CorrectOptions: correctOptions,
			Explanation:    question.Explanation.In(lang),
		})
	}

	if result.Total > 0 {
		result.Percentage = result.Score * 100 / result.Total
	}
	result.Passed = result.Percentage >= q.PassPercent

	return result, nil
}

// normalizeChoice validates the chosen ids and returns them sorted without
// duplicates.
func normalizeChoice(q *Question, ids []string) ([]string, error) {
	chosen := make([]string, 0, len(ids))
	for _, id := range ids {
		if !q.hasOption(id) {
			return nil, &AnswerError{QuestionID: q.ID, Err: fmt.Errorf("%w %q", ErrUnknownOption, id)}
		}
		if !slices.Contains(chosen, id) {
			chosen = append(chosen, id)
		}
	}

	if q.Kind == KindSingle && len(chosen) > 1 {
		return nil, &AnswerError{QuestionID: q.ID, Err: fmt.Errorf("%w: single choice question", ErrInvalidAnswer)}
	}

	slices.Sort(chosen)
	return chosen, nil
}

func sortedCopy(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
