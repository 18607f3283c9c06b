package news

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxSummaryLen caps stored summaries, in runes.
const maxSummaryLen = 500

type rssFetcher struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator
	clock  clockwork.Clock
}

// NewFeedFetcher returns a [FeedFetcher] that downloads with client and
// parses RSS, Atom and JSON feeds.
func NewFeedFetcher(client *utils.HTTPClient, clock clockwork.Clock) FeedFetcher {
	return &rssFetcher{
		client: client,
		ids:    utils.NewUUIDGenerator(),
		clock:  clock,
	}
}

// Fetch implements [FeedFetcher].
func (f *rssFetcher) Fetch(ctx context.Context, feed config.FeedSource, limit int) ([]models.Article, error) {
	resp, err := f.client.R().SetContext(ctx).Get(feed.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFeed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFeed, resp.StatusCode())
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFeed, err)
	}

	now := f.clock.Now().UTC()
	items := slices.Clone(parsed.Items)
	slices.SortStableFunc(items, func(a, b *gofeed.Item) int {
		return publishedAt(b, now).Compare(publishedAt(a, now))
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		title := cleanText(item.Title)
		if title == "" {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		articles = append(articles, models.Article{
			ID:          f.ids.Generate(),
			Fingerprint: Fingerprint(item),
			FeedURL:     feed.URL,
			Link:        strings.TrimSpace(item.Link),
			Language:    feed.Language,
			Title:       title,
			Summary:     truncate(cleanText(summary), maxSummaryLen),
			PublishedAt: publishedAt(item, now),
		})
	}

	return articles, nil
}

// publishedAt falls back to the update time and then to now.
func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	default:
		return now
	}
}

// skippedElements never contribute text.
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
	atom.Object:   true,
}

// blockElements break words apart.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true, atom.Li: true,
	atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Figcaption: true, atom.Article: true, atom.Section: true,
}

// cleanText turns feed HTML into one line of plain text: only text nodes
// are kept and entities are decoded.
func cleanText(s string) string {
	if s == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	collectText(doc, &sb)

	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] {
			return
		}
		if blockElements[n.DataAtom] {
			sb.WriteByte(' ')
			defer sb.WriteByte(' ')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
