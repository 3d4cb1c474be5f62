package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/consolidate"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/lib/pq"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// SaveExtraction upserts the raw Stage 2 extraction, 1:1 with the article.
func (r *EventRepository) SaveExtraction(articleID int64, extraction *model.Stage2Extraction) error {
	payload, err := json.Marshal(extraction)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO stage2_extractions(raw_article_id, extraction, normalized_signature)
		VALUES($1, $2, $3)
		ON CONFLICT (raw_article_id) DO UPDATE SET
			extraction = EXCLUDED.extraction,
			normalized_signature = EXCLUDED.normalized_signature,
			updated_at = now()
	`, articleID, payload, extraction.NormalizedEventSignature)

	return err
}

// UpsertCanonical applies the canonical upsert protocol. The event row is locked
// by signature before the read-modify-write so two runners racing on the same
// signature serialize instead of dropping the loser's levers. On an existing
// event only the merged lever set and last_updated_at change; descriptive
// scalars stay as first recorded.
func (r *EventRepository) UpsertCanonical(event *model.CanonicalEvent, source model.CanonicalEventSource) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := r.insertOrMerge(tx, event)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO canonical_event_sources(canonical_event_id, raw_article_id, source_url, source_name, source_tier, publication_date, used_for_levers)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (canonical_event_id, raw_article_id) DO NOTHING
	`, id, source.RawArticleID, source.SourceURL, source.SourceName, source.SourceTier,
		source.PublicationDate, source.UsedForLevers)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *EventRepository) insertOrMerge(tx *sql.Tx, event *model.CanonicalEvent) (int64, error) {
	id, existing, err := lockBySignature(tx, event.NormalizedSignature)

	if err == sql.ErrNoRows {
		id, err = insertCanonical(tx, event)
		if err != sql.ErrNoRows {
			return id, err
		}
		// Lost the insert race to a concurrent runner; lock its row and merge.
		id, existing, err = lockBySignature(tx, event.NormalizedSignature)
	}
	if err != nil {
		return 0, err
	}

	merged, err := json.Marshal(consolidate.MergeLevers(existing, event.Levers))
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`
		UPDATE canonical_events SET levers = $1, last_updated_at = now() WHERE id = $2
	`, merged, id)

	return id, err
}

func lockBySignature(tx *sql.Tx, sig string) (int64, []model.Lever, error) {
	var id int64
	var leversJSON []byte
	err := tx.QueryRow(`
		SELECT id, levers FROM canonical_events WHERE normalized_signature = $1 FOR UPDATE
	`, sig).Scan(&id, &leversJSON)
	if err != nil {
		return 0, nil, err
	}

	var levers []model.Lever
	if err := json.Unmarshal(leversJSON, &levers); err != nil {
		return 0, nil, err
	}
	return id, levers, nil
}

// insertCanonical returns sql.ErrNoRows when another transaction inserted the
// signature first.
func insertCanonical(tx *sql.Tx, event *model.CanonicalEvent) (int64, error) {
	levers, err := json.Marshal(event.Levers)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(`
		INSERT INTO canonical_events(event_id, normalized_signature, carrier, event_type, primary_component, short_description, announcement_date, effective_date, geographic_scope, countries, levers, confidence_overall)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (normalized_signature) DO NOTHING
		RETURNING id
	`, event.EventID, event.NormalizedSignature, event.Carrier, event.EventType, event.PrimaryComponent,
		event.ShortDescription, event.AnnouncementDate, event.EffectiveDate, event.GeographicScope,
		pq.Array(event.Countries), levers, event.ConfidenceOverall).Scan(&id)

	return id, err
}

// ListCanonical returns canonical events newest-updated-first, optionally
// filtered to those updated since the given time, with source URLs flattened.
func (r *EventRepository) ListCanonical(limit int, since *time.Time) ([]model.CanonicalListItem, error) {
	query := `
		SELECT ce.id, ce.event_id, ce.normalized_signature, ce.carrier, ce.event_type, ce.primary_component,
			ce.short_description, ce.announcement_date, ce.effective_date, ce.geographic_scope, ce.countries,
			ce.levers, ce.confidence_overall, ce.created_at, ce.last_updated_at,
			ARRAY_REMOVE(ARRAY_AGG(ces.source_url), NULL)
		FROM canonical_events ce
		LEFT JOIN canonical_event_sources ces ON ces.canonical_event_id = ce.id
	`
	args := []interface{}{limit}
	if since != nil {
		query += ` WHERE ce.last_updated_at >= $2`
		args = append(args, *since)
	}
	query += `
		GROUP BY ce.id
		ORDER BY ce.last_updated_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CanonicalListItem
	for rows.Next() {
		var item model.CanonicalListItem
		var leversJSON []byte
		err := rows.Scan(&item.ID, &item.EventID, &item.NormalizedSignature, &item.Carrier, &item.EventType,
			&item.PrimaryComponent, &item.ShortDescription, &item.AnnouncementDate, &item.EffectiveDate,
			&item.GeographicScope, pq.Array(&item.Countries), &leversJSON, &item.ConfidenceOverall,
			&item.CreatedAt, &item.LastUpdatedAt, pq.Array(&item.SourceURLs))
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(leversJSON, &item.Levers); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ListExtractions returns recent Stage 2 extractions joined to their articles.
func (r *EventRepository) ListExtractions(limit int) ([]model.ExtractionListItem, error) {
	rows, err := r.db.Query(`
		SELECT s2.raw_article_id, ra.title, ra.url, s2.extraction, s2.normalized_signature, s2.updated_at
		FROM stage2_extractions s2
		JOIN raw_articles ra ON ra.id = s2.raw_article_id
		ORDER BY s2.updated_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ExtractionListItem
	for rows.Next() {
		var item model.ExtractionListItem
		var payload []byte
		err := rows.Scan(&item.RawArticleID, &item.Title, &item.URL, &payload,
			&item.NormalizedSignature, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &item.Extraction); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *EventRepository) Ping() error {
	var one int
	return r.db.QueryRow(`SELECT 1`).Scan(&one)
}
