package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Message tags.
const (
	TagWelcome = "welcome"
	TagContact = "contact"
	TagDigest  = "digest"
)

// Composer renders localized messages. It is safe for concurrent use.
type Composer struct {
	catalog   *i18n.Catalog
	templates *template.Template
}

// NewComposer parses the embedded templates.
func NewComposer(catalog *i18n.Catalog) (*Composer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}

	return &Composer{catalog: catalog, templates: tmpl}, nil
}

type page struct {
	Lang    string
	Dir     string
	Subject string
	Footer  string
}

func (c *Composer) page(lang, subject string) page {
	return page{
		Lang:    lang,
		Dir:     i18n.Direction(lang),
		Subject: subject,
		Footer:  c.catalog.T(lang, "email.footer"),
	}
}

// Welcome greets a newly registered user.
func (c *Composer) Welcome(lang, to, firstName string) (Message, error) {
	subject := c.catalog.T(lang, "email.welcome.subject")

	data := struct {
		page
		Greeting string
		Body     string
	}{
		page:     c.page(lang, subject),
		Greeting: c.catalog.T(lang, "email.welcome.greeting", "name", firstName),
		Body:     c.catalog.T(lang, "email.welcome.body"),
	}

	return c.render("welcome", Message{To: to, Subject: subject, Tag: TagWelcome}, data)
}

// Contact forwards a contact form submission to the support address. The
// message is rendered in the sender's language and replies go to the sender.
func (c *Composer) Contact(supportAddress string, msg models.ContactMessage) (Message, error) {
	lang := msg.Language
	subject := c.catalog.T(lang, "email.contact.subject", "name", msg.Name)

	data := struct {
		page
		Intro      string
		Name       string
		Email      string
		SenderLang string
		Message    string
	}{
		page:       c.page(lang, subject),
		Intro:      c.catalog.T(lang, "email.contact.intro"),
		Name:       msg.Name,
		Email:      msg.Email,
		SenderLang: lang,
		Message:    msg.Message,
	}

	return c.render("contact", Message{To: supportAddress, Subject: subject, Tag: TagContact, ReplyTo: msg.Email}, data)
}

// Digest lists articles for a newsletter subscriber. An empty firstName
// selects the generic greeting.
func (c *Composer) Digest(lang, to, firstName string, articles []models.ArticleView) (Message, error) {
	subject := c.catalog.T(lang, "email.digest.subject")

	greeting := c.catalog.T(lang, "email.digest.greeting_generic")
	if firstName != "" {
		greeting = c.catalog.T(lang, "email.digest.greeting", "name", firstName)
	}

	data := struct {
		page
		Greeting string
		Intro    string
		ReadMore string
		Articles []models.ArticleView
	}{
		page:     c.page(lang, subject),
		Greeting: greeting,
		Intro:    c.catalog.T(lang, "email.digest.intro"),
		ReadMore: c.catalog.T(lang, "email.digest.read_more"),
		Articles: articles,
	}

	return c.render("digest", Message{To: to, Subject: subject, Tag: TagDigest}, data)
}

func (c *Composer) render(name string, msg Message, data any) (Message, error) {
	var buf bytes.Buffer
	if err := c.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Message{}, fmt.Errorf("%w: %s: %w", ErrRenderTemplate, name, err)
	}

	msg.HTMLBody = buf.String()
	return msg, nil
}
