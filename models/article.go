package models

import "time"

// Article is one aggregated news item with its translations.
type Article struct {
	// ID is a random UUID assigned on ingestion.
	ID string `json:"id"`

	// Fingerprint identifies the item across runs and feeds; unique in
	// storage.
	Fingerprint string `json:"-"`

	FeedURL     string    `json:"feedUrl"`
	Link        string    `json:"link"`
	Language    string    `json:"language"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"-"`

	// Translations holds title and summary per target language.
	Translations map[string]Translation `json:"-"`
}

// Translation is a translated title and summary.
type Translation struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ArticleView is an article rendered in one language.
type ArticleView struct {
	ID          string    `json:"id"`
	Link        string    `json:"link"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Language    string    `json:"language"`
	Original    string    `json:"originalLanguage"`
	Translated  bool      `json:"translated"`
	PublishedAt time.Time `json:"publishedAt"`
}

// View renders a in lang, falling back to the original text.
func (a Article) View(lang string) ArticleView {
	v := ArticleView{
		ID:          a.ID,
		Link:        a.Link,
		Title:       a.Title,
		Summary:     a.Summary,
		Language:    a.Language,
		Original:    a.Language,
		PublishedAt: a.PublishedAt,
	}

	if lang == a.Language {
		return v
	}

	if tr, ok := a.Translations[lang]; ok && tr.Title != "" {
		v.Title = tr.Title
		v.Summary = tr.Summary
		v.Language = lang
		v.Translated = true
	}

	return v
}

// DigestReport summarizes one newsletter digest run.
type DigestReport struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	// GenericGreetings counts digests sent without a first name because it
	// could not be decrypted.
	GenericGreetings int `json:"genericGreetings"`
}
