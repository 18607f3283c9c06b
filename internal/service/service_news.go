package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/models"
)

// Article page sizes.
const (
	DefaultNewsLimit = 20
	MaxNewsLimit     = 100
)

type newsService struct {
	articleRepository store.ArticleRepository
	logger            *logger.Logger
}

func NewNewsService(articleRepository store.ArticleRepository, logger *logger.Logger) NewsService {
	return &newsService{articleRepository: articleRepository, logger: logger}
}

// LatestNews renders the newest articles in lang. A limit outside
// 1..MaxNewsLimit is replaced by the nearest bound, zero by the default.
func (s *newsService) LatestNews(ctx context.Context, lang string, limit int) ([]models.ArticleView, error) {
	switch {
	case limit <= 0:
		limit = DefaultNewsLimit
	case limit > MaxNewsLimit:
		limit = MaxNewsLimit
	}

	articles, err := s.articleRepository.LatestArticles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading latest news: %w", err)
	}

	views := make([]models.ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, a.View(lang))
	}

	return views, nil
}
