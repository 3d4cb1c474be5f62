package repository

import (
	"database/sql"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// HasSeen reports whether the article's natural key is already known, matching
// by (source, url) with a fallback to (source, external_id).
func (r *ArticleRepository) HasSeen(article model.RawArticle) (bool, error) {
	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM raw_articles
		WHERE source = $1 AND (url = $2 OR external_id = $3)
		LIMIT 1
	`, article.Source, article.URL, article.ExternalID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// MarkSeen inserts articles with status new. Conflicts on (source, url) resolve
// to a no-op, so concurrent duplicate inserts neither fail nor double-count.
func (r *ArticleRepository) MarkSeen(articles []model.RawArticle) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range articles {
		a := &articles[i]
		updatedAt := a.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = a.PublishedAt
		}
		_, err := tx.Exec(`
			INSERT INTO raw_articles(external_id, source, url, title, published_at, updated_at, tickers, channels, body, source_tier, status)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (source, url) DO NOTHING
		`, a.ExternalID, a.Source, a.URL, a.Title, a.PublishedAt, updatedAt,
			pq.Array(a.Tickers), pq.Array(a.Channels), a.Body, a.SourceTier, model.StatusNew)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MarkStatus transitions status for a set of articles by natural key. Unknown
// articles are silently ignored.
func (r *ArticleRepository) MarkStatus(articles []model.RawArticle, status string) error {
	for _, a := range articles {
		_, err := r.db.Exec(`
			UPDATE raw_articles SET status = $1
			WHERE source = $2 AND (url = $3 OR external_id = $4)
		`, status, a.Source, a.URL, a.ExternalID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ArticleRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE raw_articles SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

// FetchUnprocessed claims up to limit articles still awaiting Stage 1, newest
// publish time first.
func (r *ArticleRepository) FetchUnprocessed(limit int) ([]model.RawArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, external_id, source, url, title, published_at, updated_at, tickers, channels, body, source_tier, status, fetched_at
		FROM raw_articles
		WHERE status = $1
		ORDER BY published_at DESC
		LIMIT $2
	`, model.StatusNew, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

// FetchRelevant claims up to limit Stage-1-relevant articles that have no Stage 2
// extraction yet. Articles already marked failed stay out of the claim set.
func (r *ArticleRepository) FetchRelevant(limit int) ([]model.RawArticle, error) {
	rows, err := r.db.Query(`
		SELECT ra.id, ra.external_id, ra.source, ra.url, ra.title, ra.published_at, ra.updated_at, ra.tickers, ra.channels, ra.body, ra.source_tier, ra.status, ra.fetched_at
		FROM raw_articles ra
		JOIN stage1_results s1 ON s1.raw_article_id = ra.id AND s1.is_relevant
		LEFT JOIN stage2_extractions s2 ON s2.raw_article_id = ra.id
		WHERE s2.raw_article_id IS NULL AND ra.status <> $1
		ORDER BY ra.published_at DESC
		LIMIT $2
	`, model.StatusFailed, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]model.RawArticle, error) {
	var articles []model.RawArticle
	for rows.Next() {
		var a model.RawArticle
		err := rows.Scan(&a.ID, &a.ExternalID, &a.Source, &a.URL, &a.Title, &a.PublishedAt, &a.UpdatedAt,
			pq.Array(&a.Tickers), pq.Array(&a.Channels), &a.Body, &a.SourceTier, &a.Status, &a.FetchedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// SaveStage1Result upserts the relevance verdict, 1:1 with the article.
func (r *ArticleRepository) SaveStage1Result(articleID int64, result *model.Stage1Result) error {
	_, err := r.db.Exec(`
		INSERT INTO stage1_results(raw_article_id, is_relevant, relevance_reason, carrier_mentions, is_cost_related, source_tier, confidence)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (raw_article_id) DO UPDATE SET
			is_relevant = EXCLUDED.is_relevant,
			relevance_reason = EXCLUDED.relevance_reason,
			carrier_mentions = EXCLUDED.carrier_mentions,
			is_cost_related = EXCLUDED.is_cost_related,
			source_tier = EXCLUDED.source_tier,
			confidence = EXCLUDED.confidence,
			updated_at = now()
	`, articleID, result.IsRelevant, result.RelevanceReason, pq.Array(result.CarrierMentions),
		result.IsCostRelated, result.SourceTier, result.Confidence)

	return err
}

// ListRelevant returns Stage-1-relevant articles for the read API, newest first.
func (r *ArticleRepository) ListRelevant(limit int) ([]model.RelevantArticle, error) {
	rows, err := r.db.Query(`
		SELECT ra.id, ra.title, ra.url, s1.relevance_reason, s1.confidence, s1.carrier_mentions, ra.published_at
		FROM stage1_results s1
		JOIN raw_articles ra ON ra.id = s1.raw_article_id
		WHERE s1.is_relevant
		ORDER BY ra.published_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.RelevantArticle
	for rows.Next() {
		var a model.RelevantArticle
		err := rows.Scan(&a.RawArticleID, &a.Title, &a.URL, &a.RelevanceReason, &a.Confidence,
			pq.Array(&a.CarrierMentions), &a.PublishedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) CountByStatus(status string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM raw_articles WHERE status = $1
	`, status).Scan(&total)
	return total, err
}
