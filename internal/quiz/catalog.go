package quiz

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
	"gopkg.in/yaml.v3"
)

//go:embed quizzes/*.yaml
var embeddedQuizzes embed.FS

// Catalog is the read-only set of quizzes, ordered by slug.
type Catalog struct {
	quizzes []*Quiz
	bySlug  map[string]*Quiz
}

// Load reads the embedded quizzes.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embeddedQuizzes, "quizzes")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads and validates every *.yaml file at the root of fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}

	c := &Catalog{bySlug: make(map[string]*Quiz, len(files))}

	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}

		q := &Quiz{}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(q); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidQuiz, name, err)
		}

		if err := validateQuiz(q); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, dup := c.bySlug[q.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidQuiz, q.Slug)
		}

		c.bySlug[q.Slug] = q
		c.quizzes = append(c.quizzes, q)
	}

	slices.SortFunc(c.quizzes, func(a, b *Quiz) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	return c, nil
}

// List renders every quiz summary in lang.
func (c *Catalog) List(lang string) []models.QuizSummary {
	out := make([]models.QuizSummary, 0, len(c.quizzes))
	for _, q := range c.quizzes {
		out = append(out, q.Summary(lang))
	}
	return out
}

// Get returns the quiz with slug or [ErrQuizNotFound].
func (c *Catalog) Get(slug string) (*Quiz, error) {
	q, ok := c.bySlug[slug]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func validateQuiz(q *Quiz) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidQuiz, fmt.Sprintf(format, args...))
	}

	if q.Slug == "" {
		return invalid("slug is required")
	}
	if q.PassPercent < 0 || q.PassPercent > 100 {
		return invalid("pass_percent %d out of range", q.PassPercent)
	}
	if len(q.Questions) == 0 {
		return invalid("no questions")
	}
	if err := checkLocalized(q.Title, "title"); err != nil {
		return invalid("%v", err)
	}

	questionIDs := make(map[string]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" {
			return invalid("question without id")
		}
		if _, dup := questionIDs[question.ID]; dup {
			return invalid("duplicate question %q", question.ID)
		}
		questionIDs[question.ID] = struct{}{}

		if err := checkLocalized(question.Text, question.ID); err != nil {
			return invalid("%v", err)
		}
		if len(question.Options) < 2 {
			return invalid("question %q needs at least two options", question.ID)
		}

		optionIDs := make(map[string]struct{}, len(question.Options))
		for _, o := range question.Options {
			if _, dup := optionIDs[o.ID]; dup || o.ID == "" {
				return invalid("question %q has a missing or duplicate option id", question.ID)
			}
			optionIDs[o.ID] = struct{}{}
			if err := checkLocalized(o.Text, question.ID+"/"+o.ID); err != nil {
				return invalid("%v", err)
			}
		}

		correct := len(question.correctOptions())
		switch question.Kind {
		case KindSingle:
			if correct != 1 {
				return invalid("single choice question %q has %d correct options", question.ID, correct)
			}
		case KindMultiple:
			if correct == 0 {
				return invalid("multiple choice question %q has no correct option", question.ID)
			}
		default:
			return invalid("question %q has unknown kind %q", question.ID, question.Kind)
		}
	}

	return nil
}

func checkLocalized(l Localized, where string) error {
	for _, lang := range i18n.Supported {
		if strings.TrimSpace(l[lang]) == "" {
			return fmt.Errorf("%s: missing %q text", where, lang)
		}
	}
	return nil
}
