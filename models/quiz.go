package models

import "time"

// QuizSummary is a localized entry of GET /api/quizzes.
type QuizSummary struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
	PassPercent   int    `json:"passPercent"`
}

// QuizView is a localized quiz without the answers.
type QuizView struct {
	QuizSummary
	Questions []QuestionView `json:"questions"`
}

// QuestionView is one localized question without correctness flags.
type QuestionView struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Text     string       `json:"text"`
	Options  []OptionView `json:"options"`
	Multiple bool         `json:"multiple"`
}

// OptionView is one localized answer option.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizSubmission maps question ids to the chosen option ids.
type QuizSubmission struct {
	Answers map[string][]string `json:"answers"`
}

// QuizResult is the scored outcome of a submission.
type QuizResult struct {
	Slug       string             `json:"slug"`
	Score      int                `json:"score"`
	Total      int                `json:"total"`
	Percentage int                `json:"percentage"`
	Passed     bool               `json:"passed"`
	Feedback   []QuestionFeedback `json:"feedback"`
}

// QuestionFeedback explains the result of one question.
type QuestionFeedback struct {
	QuestionID     string   `json:"questionId"`
	Correct        bool     `json:"correct"`
	Chosen         []string `json:"chosen"`
	CorrectOptions []string `json:"correctOptions"`
	Explanation    string   `json:"explanation,omitempty"`
}

// QuizAttempt is a persisted result.
type QuizAttempt struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	QuizSlug   string    `json:"quizSlug"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Passed     bool      `json:"passed"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"createdAt"`
}
