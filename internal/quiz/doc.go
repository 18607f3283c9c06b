// Package quiz loads the bilingual quizzes embedded in the binary and scores
// submissions against them.
package quiz
