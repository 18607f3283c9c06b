package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/models"
)

const (
	usersTable          = "users"
	profilesTable       = "user_profiles"
	quizAttemptsTable   = "quiz_attempts"
	articlesTable       = "news_articles"
	translationsTable   = "news_article_translations"
	defaultListLimit    = 50
	maxListLimit        = 500
	profileUserIDCol    = "user_id"
	profileUpdatedAtCol = "updated_at"
)

var userColumns = []string{"user_id", "email", "password_hash", "language", "created_at"}

// profileColumn binds one profile document key to its column.
type profileColumn struct {
	key      string
	column   string
	writable bool
}

// profileColumns is the complete profile table layout. Sensitive fields only
// exist in their encrypted form.
var profileColumns = []profileColumn{
	{key: models.ProfileKeyUserID, column: profileUserIDCol},
	{key: "firstNameEncrypted", column: "first_name_encrypted", writable: true},
	{key: "lastNameEncrypted", column: "last_name_encrypted", writable: true},
	{key: "phoneEncrypted", column: "phone_encrypted", writable: true},
	{key: "birthDateEncrypted", column: "birth_date_encrypted", writable: true},
	{key: "cityEncrypted", column: "city_encrypted", writable: true},
	{key: models.ProfileKeyHebrewLevel, column: "hebrew_level", writable: true},
	{key: models.ProfileKeyAliyahStatus, column: "aliyah_status", writable: true},
	{key: models.ProfileKeyNewsletter, column: "newsletter", writable: true},
	{key: models.ProfileKeyCreatedAt, column: "created_at"},
	{key: models.ProfileKeyUpdatedAt, column: profileUpdatedAtCol},
}

func init() {
	// every encrypted key of the field table must have a column
	for _, p := range crypto.ProfileFields.Pairs() {
		if _, ok := profileColumnByKey(p.Encrypted); !ok {
			panic(fmt.Sprintf("store: no column for %q", p.Encrypted))
		}
	}
}

func profileColumnByKey(key string) (profileColumn, bool) {
	for _, c := range profileColumns {
		if c.key == key {
			return c, true
		}
	}
	return profileColumn{}, false
}

func profileColumnNames() []string {
	names := make([]string, len(profileColumns))
	for i, c := range profileColumns {
		names[i] = c.column
	}
	return names
}

// profileSetMap converts a document into column values. userId is ignored;
// it addresses the row rather than updating it.
func profileSetMap(doc models.ProfileDocument) (map[string]any, error) {
	set := make(map[string]any, len(doc))

	for key, value := range doc {
		if key == models.ProfileKeyUserID {
			continue
		}
		if crypto.ProfileFields.IsPlain(key) {
			return nil, fmt.Errorf("%w: %s", ErrPlaintextProfileField, key)
		}

		col, ok := profileColumnByKey(key)
		if !ok || !col.writable {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfileField, key)
		}
		set[col.column] = value
	}

	return set, nil
}

func clampLimit(limit int) uint64 {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return uint64(limit)
}

// ── users ────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(qb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return qb.Insert(usersTable).
		Columns("email", "password_hash", "language").
		Values(user.Email, user.PasswordHash, user.Language).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

func buildFindUserByEmailQuery(qb sq.StatementBuilderType, email string) (string, []any, error) {
	return qb.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildFindUsersByIDsQuery(qb sq.StatementBuilderType, userIDs []int64) (string, []any, error) {
	return qb.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userIDs}).
		OrderBy("user_id").
		ToSql()
}

func buildDeleteUserQuery(qb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return qb.Delete(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── profiles ─────────────────────────────────────────────────────────────────

func buildCreateProfileQuery(qb sq.StatementBuilderType, userID int64, set map[string]any) (string, []any, error) {
	values := make(map[string]any, len(set)+1)
	for k, v := range set {
		values[k] = v
	}
	values[profileUserIDCol] = userID

	return qb.Insert(profilesTable).
		SetMap(values).
		ToSql()
}

func buildUpdateProfileQuery(qb sq.StatementBuilderType, userID int64, set map[string]any) (string, []any, error) {
	return qb.Update(profilesTable).
		SetMap(set).
		Set(profileUpdatedAtCol, sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{profileUserIDCol: userID}).
		ToSql()
}

func buildFindProfileQuery(qb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return qb.Select(profileColumnNames()...).
		From(profilesTable).
		Where(sq.Eq{profileUserIDCol: userID}).
		ToSql()
}

func buildListProfilesQuery(qb sq.StatementBuilderType, filter models.ProfileFilter) (string, []any, error) {
	q := qb.Select(profileColumnNames()...).
		From(profilesTable).
		OrderBy(profileUserIDCol)

	if len(filter.UserIDs) > 0 {
		q = q.Where(sq.Eq{profileUserIDCol: filter.UserIDs})
	}
	if filter.NewsletterOnly {
		q = q.Where(sq.Eq{"newsletter": true})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	return q.ToSql()
}

// ── quiz attempts ────────────────────────────────────────────────────────────

var quizAttemptColumns = []string{"id", "user_id", "quiz_slug", "score", "total", "percentage", "passed", "language", "created_at"}

func buildSaveAttemptQuery(qb sq.StatementBuilderType, a models.QuizAttempt) (string, []any, error) {
	return qb.Insert(quizAttemptsTable).
		Columns("user_id", "quiz_slug", "score", "total", "percentage", "passed", "language").
		Values(a.UserID, a.QuizSlug, a.Score, a.Total, a.Percentage, a.Passed, a.Language).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildListAttemptsQuery(qb sq.StatementBuilderType, userID int64, limit int) (string, []any, error) {
	return qb.Select(quizAttemptColumns...).
		From(quizAttemptsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(clampLimit(limit)).
		ToSql()
}

// ── news ─────────────────────────────────────────────────────────────────────

var articleColumns = []string{"id", "fingerprint", "feed_url", "link", "language", "title", "summary", "published_at", "created_at"}

func buildInsertArticleQuery(qb sq.StatementBuilderType, a models.Article) (string, []any, error) {
	return qb.Insert(articlesTable).
		Columns("id", "fingerprint", "feed_url", "link", "language", "title", "summary", "published_at").
		Values(a.ID, a.Fingerprint, a.FeedURL, a.Link, a.Language, a.Title, a.Summary, a.PublishedAt).
		Suffix("ON CONFLICT (fingerprint) DO NOTHING").
		ToSql()
}

func buildInsertTranslationQuery(qb sq.StatementBuilderType, articleID, lang string, tr models.Translation) (string, []any, error) {
	return qb.Insert(translationsTable).
		Columns("article_id", "language", "title", "summary").
		Values(articleID, lang, tr.Title, tr.Summary).
		ToSql()
}

func buildKnownFingerprintsQuery(qb sq.StatementBuilderType, fingerprints []string) (string, []any, error) {
	return qb.Select("fingerprint").
		From(articlesTable).
		Where(sq.Eq{"fingerprint": fingerprints}).
		ToSql()
}

func buildLatestArticlesQuery(qb sq.StatementBuilderType, limit int) (string, []any, error) {
	return qb.Select(articleColumns...).
		From(articlesTable).
		OrderBy("published_at DESC", "created_at DESC").
		Limit(clampLimit(limit)).
		ToSql()
}

func buildTranslationsQuery(qb sq.StatementBuilderType, articleIDs []string) (string, []any, error) {
	return qb.Select("article_id", "language", "title", "summary").
		From(translationsTable).
		Where(sq.Eq{"article_id": articleIDs}).
		ToSql()
}
