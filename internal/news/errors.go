package news

import "errors"

var (
	ErrFetchFeed        = errors.New("failed to fetch feed")
	ErrParseFeed        = errors.New("failed to parse feed")
	ErrTranslate        = errors.New("translation failed")
	ErrTranslatorOpen   = errors.New("translation service unavailable")
	ErrCacheUnavailable = errors.New("translation cache unavailable")
)
