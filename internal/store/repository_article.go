package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/models"
)

type articleRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewArticleRepository constructs an [ArticleRepository].
func NewArticleRepository(db *DB, logger *logger.Logger) ArticleRepository {
	logger.Debug().Msg("creating article repository")
	return &articleRepository{
		db:     db,
		logger: logger,
	}
}

// SaveArticles inserts the batch in one transaction. Articles whose
// fingerprint already exists are skipped together with their translations.
func (r *articleRepository) SaveArticles(ctx context.Context, articles []models.Article) (int, error) {
	log := logger.FromContext(ctx)

	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.SaveArticles").Msg("error beginning transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, a := range articles {
		ok, err := r.insertArticle(ctx, tx, a)
		if err != nil {
			log.Err(err).
				Str("func", "*articleRepository.SaveArticles").
				Str("article_id", a.ID).
				Msg("error inserting article")
			return 0, err
		}
		if ok {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*articleRepository.SaveArticles").Msg("error committing transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return inserted, nil
}

func (r *articleRepository) insertArticle(ctx context.Context, tx *sql.Tx, a models.Article) (bool, error) {
	query, args, err := buildInsertArticleQuery(r.db.builder, a)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		// fingerprint already stored
		return false, nil
	}

	for lang, tr := range a.Translations {
		query, args, err := buildInsertTranslationQuery(r.db.builder, a.ID, lang, tr)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return true, nil
}

func (r *articleRepository) KnownFingerprints(ctx context.Context, fingerprints []string) (map[string]struct{}, error) {
	log := logger.FromContext(ctx)

	known := make(map[string]struct{})
	if len(fingerprints) == 0 {
		return known, nil
	}

	query, args, err := buildKnownFingerprintsQuery(r.db.builder, fingerprints)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.KnownFingerprints").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.KnownFingerprints").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		known[fp] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return known, nil
}

// LatestArticles returns the newest articles with all their translations.
func (r *articleRepository) LatestArticles(ctx context.Context, limit int) ([]models.Article, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLatestArticlesQuery(r.db.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.LatestArticles").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.LatestArticles").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0)
	index := make(map[string]int)
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Fingerprint, &a.FeedURL, &a.Link, &a.Language, &a.Title, &a.Summary, &a.PublishedAt, &a.CreatedAt); err != nil {
			log.Err(err).Str("func", "*articleRepository.LatestArticles").Msg("error scanning article")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		a.Translations = make(map[string]models.Translation)
		index[a.ID] = len(articles)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(articles) == 0 {
		return articles, nil
	}

	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	if err := r.attachTranslations(ctx, articles, index, ids); err != nil {
		log.Err(err).Str("func", "*articleRepository.LatestArticles").Msg("error loading translations")
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) attachTranslations(ctx context.Context, articles []models.Article, index map[string]int, ids []string) error {
	query, args, err := buildTranslationsQuery(r.db.builder, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID, lang string
		var tr models.Translation
		if err := rows.Scan(&articleID, &lang, &tr.Title, &tr.Summary); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[articleID]; ok {
			articles[i].Translations[lang] = tr
		}
	}

	return rows.Err()
}
