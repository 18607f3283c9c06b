package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrInvalidQuiz     = errors.New("invalid quiz definition")
	ErrInvalidAnswer   = errors.New("invalid answer")
	ErrUnknownOption   = fmt.Errorf("%w: unknown option", ErrInvalidAnswer)
	ErrUnknownQuestion = fmt.Errorf("%w: unknown question", ErrInvalidAnswer)
)

// AnswerError names the question whose answer was rejected.
type AnswerError struct {
	QuestionID string
	Err        error
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("question %q: %v", e.QuestionID, e.Err)
}

func (e *AnswerError) Unwrap() error {
	return e.Err
}
