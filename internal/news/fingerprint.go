package news

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Fingerprint identifies a feed item across runs: the SHA-256 of its GUID,
// else of its link, else of its title.
func Fingerprint(item *gofeed.Item) string {
	key := strings.TrimSpace(item.GUID)
	if key == "" {
		key = strings.TrimSpace(item.Link)
	}
	if key == "" {
		key = strings.TrimSpace(item.Title)
	}

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
