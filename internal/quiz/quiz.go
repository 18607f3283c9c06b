package quiz

import (
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
)

// Question kinds.
const (
	KindSingle   = "single"
	KindMultiple = "multiple"
)

// Localized holds one text per language.
type Localized map[string]string

// In returns the text in lang, or in the default language when missing.
func (l Localized) In(lang string) string {
	if s, ok := l[lang]; ok && s != "" {
		return s
	}
	return l[i18n.DefaultLanguage]
}

// Quiz is one quiz as defined in its YAML file.
type Quiz struct {
	Slug        string     `yaml:"slug"`
	Title       Localized  `yaml:"title"`
	Description Localized  `yaml:"description"`
	PassPercent int        `yaml:"pass_percent"`
	Questions   []Question `yaml:"questions"`
}

// Question is a single or multiple choice question.
type Question struct {
	ID          string    `yaml:"id"`
	Kind        string    `yaml:"kind"`
	Text        Localized `yaml:"text"`
	Options     []Option  `yaml:"options"`
	Explanation Localized `yaml:"explanation"`
}

// Option is an answer choice.
type Option struct {
	ID      string    `yaml:"id"`
	Text    Localized `yaml:"text"`
	Correct bool      `yaml:"correct"`
}

// Summary renders the list entry of q in lang.
func (q *Quiz) Summary(lang string) models.QuizSummary {
	return models.QuizSummary{
		Slug:          q.Slug,
		Title:         q.Title.In(lang),
		Description:   q.Description.In(lang),
		QuestionCount: len(q.Questions),
		PassPercent:   q.PassPercent,
	}
}

// View renders q in lang without revealing the correct options.
func (q *Quiz) View(lang string) models.QuizView {
	view := models.QuizView{
		QuizSummary: q.Summary(lang),
		Questions:   make([]models.QuestionView, 0, len(q.Questions)),
	}

	for _, question := range q.Questions {
		qv := models.QuestionView{
			ID:       question.ID,
			Kind:     question.Kind,
			Text:     question.Text.In(lang),
			Multiple: question.Kind == KindMultiple,
			Options:  make([]models.OptionView, 0, len(question.Options)),
		}
		for _, o := range question.Options {
			qv.Options = append(qv.Options, models.OptionView{ID: o.ID, Text: o.Text.In(lang)})
		}
		view.Questions = append(view.Questions, qv)
	}

	return view
}

func (q *Question) correctOptions() []string {
	var ids []string
	for _, o := range q.Options {
		if o.Correct {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

func (q *Question) hasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
