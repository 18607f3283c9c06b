package email

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()

	c, err := NewComposer(i18n.MustLoad())
	require.NoError(t, err)
	return c
}

func TestComposer_Welcome(t *testing.T) {
	c := newTestComposer(t)

	t.Run("spanish", func(t *testing.T) {
		msg, err := c.Welcome("es", "dana@example.com", "Dana")
		require.NoError(t, err)

		assert.Equal(t, "dana@example.com", msg.To)
		assert.Equal(t, TagWelcome, msg.Tag)
		assert.Equal(t, "Bienvenido/a a la comunidad de Aliá", msg.Subject)
		assert.Contains(t, msg.HTMLBody, `<html lang="es" dir="ltr">`)
		assert.Contains(t, msg.HTMLBody, "¡Hola, Dana!")
		assert.NoError(t, msg.Validate())
	})

	t.Run("hebrew is right to left", func(t *testing.T) {
		msg, err := c.Welcome("he", "noa@example.com", "נועה")
		require.NoError(t, err)

		assert.Contains(t, msg.HTMLBody, `<html lang="he" dir="rtl">`)
		assert.Contains(t, msg.HTMLBody, "שלום, נועה!")
		assert.Contains(t, msg.HTMLBody, "text-align: right")
	})

	t.Run("names are escaped", func(t *testing.T) {
		msg, err := c.Welcome("es", "x@example.com", "<script>alert(1)</script>")
		require.NoError(t, err)

		assert.NotContains(t, msg.HTMLBody, "<script>")
		assert.Contains(t, msg.HTMLBody, "&lt;script&gt;")
	})
}

func TestComposer_Contact(t *testing.T) {
	c := newTestComposer(t)

	msg, err := c.Contact("support@example.com", models.ContactMessage{
		Name:     "Ana",
		Email:    "ana@example.com",
		Message:  "¿Cuándo abre el ulpán?",
		Language: "es",
	})
	require.NoError(t, err)

	assert.Equal(t, "support@example.com", msg.To)
	assert.Equal(t, "ana@example.com", msg.ReplyTo)
	assert.Equal(t, TagContact, msg.Tag)
	assert.Equal(t, "Nuevo mensaje de contacto de Ana", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "¿Cuándo abre el ulpán?")
}

func TestComposer_Digest(t *testing.T) {
	c := newTestComposer(t)
	articles := []models.ArticleView{
		{Title: "Nuevo vuelo", Summary: "Resumen", Link: "https://example.org/a?x=1&y=2", PublishedAt: time.Now()},
		{Title: "Ulpán gratuito", Summary: "Otro", Link: "https://example.org/b"},
	}

	t.Run("personal greeting", func(t *testing.T) {
		msg, err := c.Digest("es", "dana@example.com", "Dana", articles)
		require.NoError(t, err)

		assert.Equal(t, TagDigest, msg.Tag)
		assert.Contains(t, msg.HTMLBody, "¡Hola, Dana!")
		assert.Contains(t, msg.HTMLBody, "Nuevo vuelo")
		assert.Contains(t, msg.HTMLBody, "Ulpán gratuito")
		assert.Contains(t, msg.HTMLBody, `href="https://example.org/a?x=1&amp;y=2"`)
		assert.Contains(t, msg.HTMLBody, "Leer más")
	})

	t.Run("generic greeting", func(t *testing.T) {
		msg, err := c.Digest("he", "noa@example.com", "", articles)
		require.NoError(t, err)

		assert.Contains(t, msg.HTMLBody, "<h1>שלום!</h1>")
		assert.Contains(t, msg.HTMLBody, "להמשך קריאה")
	})
}

func TestMessage_Validate(t *testing.T) {
	valid := Message{To: "a@b.co", Subject: "s", HTMLBody: "<p>b</p>"}
	assert.NoError(t, valid.Validate())

	for name, m := range map[string]Message{
		"no recipient": {Subject: "s", HTMLBody: "b"},
		"no subject":   {To: "a@b.co", HTMLBody: "b"},
		"no body":      {To: "a@b.co", Subject: "s"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, m.Validate(), ErrInvalidMessage)
		})
	}
}
