package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog resolves message keys per language. It is read-only after loading
// and safe for concurrent use.
type Catalog struct {
	messages map[string]map[string]any
	fallback string
}

// Load reads the embedded catalogs.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, DefaultLanguage)
}

// MustLoad is [Load] that panics; the embedded catalogs are part of the
// binary, so a failure is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads every "<lang>.yaml" file at the root of fsys. Each supported
// language must be present.
func LoadFS(fsys fs.FS, fallback string) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		messages: make(map[string]map[string]any, len(files)),
		fallback: fallback,
	}

	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}

		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, name, err)
		}

		c.messages[strings.TrimSuffix(path.Base(name), ".yaml")] = doc
	}

	for _, lang := range Supported {
		if _, ok := c.messages[lang]; !ok {
			return nil, fmt.Errorf("%w: missing %s.yaml", ErrInvalidCatalog, lang)
		}
	}

	return c, nil
}

// T returns the message for key in lang with %{name} placeholders replaced
// from args given as name, value pairs. Missing keys fall back to the default
// language and then to the key itself.
func (c *Catalog) T(lang, key string, args ...string) string {
	msg, ok := c.lookup(lang, key)
	if !ok {
		msg, ok = c.lookup(c.fallback, key)
	}
	if !ok {
		msg = key
	}

	return substitute(msg, args)
}

// Has reports whether key exists in lang without falling back.
func (c *Catalog) Has(lang, key string) bool {
	_, ok := c.lookup(lang, key)
	return ok
}

func (c *Catalog) lookup(lang, key string) (string, bool) {
	current, ok := c.messages[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := v.(string)
			return s, ok
		}
		if current, ok = v.(map[string]any); !ok {
			return "", false
		}
	}

	return "", false
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
