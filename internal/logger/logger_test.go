package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for line := range strings.Lines(buf.String()) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New("aliyah-server", &buf)

	l.Warn().Str("lang", "he").Msg("written")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "aliyah-server", e["role"])
	assert.Equal(t, "he", e["lang"])
	assert.Equal(t, "warn", e["level"])
	assert.Equal(t, "written", e["message"])
	assert.Contains(t, e, "time")
	assert.Contains(t, e["func"], "TestNew_Fields")
}

func TestNew_DebugByDefault(t *testing.T) {
	var buf bytes.Buffer
	New("r", &buf).Debug().Msg("visible")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	base := New("r", &buf)

	l, err := base.WithLevel("WARN")
	require.NoError(t, err)

	l.Info().Msg("dropped")
	l.Error().Msg("kept")
	base.Info().Msg("parent unaffected")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "kept", entries[0]["message"])
	assert.Equal(t, "parent unaffected", entries[1]["message"])

	same, err := base.WithLevel("")
	require.NoError(t, err)
	assert.Same(t, base, same)

	_, err = base.WithLevel("loud")
	assert.Error(t, err)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := New("r", &buf)
	parent.Logger = parent.With().Str("inherited", "yes").Logger()

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "news-ingester")
	})

	child.Info().Msg("child")
	parent.Info().Msg("parent")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "yes", entries[0]["inherited"])
	assert.Equal(t, "news-ingester", entries[0]["worker"])
	assert.NotContains(t, entries[1], "worker")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New("r", &buf)
	l.Logger = l.With().Str("trace_id", "abc").Logger()

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	req := httptest.NewRequest("GET", "/health", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "abc", e["trace_id"])
	}
}

func TestFromContext_NothingAttached(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info().Msg("nowhere") })
}

func TestMaskEmail(t *testing.T) {
	tests := map[string]string{
		"dana.levi@example.org": "d***@example.org",
		"a@b.co":                "a***@b.co",
		"not-an-email":          "***",
		"@example.org":          "***",
		"":                      "***",
	}

	for in, want := range tests {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}
