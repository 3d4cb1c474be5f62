package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/gin-gonic/gin"
)

type EventStore interface {
	ListCanonical(limit int, since *time.Time) ([]model.CanonicalListItem, error)
	ListExtractions(limit int) ([]model.ExtractionListItem, error)
	Ping() error
}

type RelevantStore interface {
	ListRelevant(limit int) ([]model.RelevantArticle, error)
}

type EventHandler struct {
	events   EventStore
	articles RelevantStore
}

func NewEventHandler(events EventStore, articles RelevantStore) *EventHandler {
	return &EventHandler{events: events, articles: articles}
}

func (h *EventHandler) GetCanonical(c *gin.Context) {
	limit := getQueryLimit(c)

	since, err := getQuerySince(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since parameter"})
		return
	}

	events, err := h.events.ListCanonical(limit, since)
	if err != nil {
		slog.Error("error fetching canonical events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var eventRes []CanonicalEventResponse
	for _, e := range events {
		eventRes = append(eventRes, CanonicalEventResponse{
			EventID:             e.EventID,
			NormalizedSignature: e.NormalizedSignature,
			Carrier:             string(e.Carrier),
			EventType:           string(e.EventType),
			PrimaryComponent:    string(e.PrimaryComponent),
			ShortDescription:    e.ShortDescription,
			AnnouncementDate:    e.AnnouncementDate,
			EffectiveDate:       e.EffectiveDate,
			GeographicScope:     string(e.GeographicScope),
			Countries:           e.Countries,
			Levers:              e.Levers,
			ConfidenceOverall:   e.ConfidenceOverall,
			SourceURLs:          e.SourceURLs,
			CreatedAt:           e.CreatedAt.Format(time.RFC3339),
			LastUpdatedAt:       e.LastUpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, CanonicalFeedResponse{
		Events: eventRes,
		Limit:  limit,
	})
}

func (h *EventHandler) GetExtractions(c *gin.Context) {
	limit := getQueryLimit(c)

	extractions, err := h.events.ListExtractions(limit)
	if err != nil {
		slog.Error("error fetching extractions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var extractionRes []ExtractionResponse
	for _, e := range extractions {
		extractionRes = append(extractionRes, ExtractionResponse{
			RawArticleID:        e.RawArticleID,
			Title:               e.Title,
			URL:                 e.URL,
			NormalizedSignature: e.NormalizedSignature,
			Extraction:          e.Extraction,
			UpdatedAt:           e.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, ExtractionFeedResponse{
		Extractions: extractionRes,
		Limit:       limit,
	})
}

func (h *EventHandler) GetRelevant(c *gin.Context) {
	limit := getQueryLimit(c)

	articles, err := h.articles.ListRelevant(limit)
	if err != nil {
		slog.Error("error fetching relevant articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var articleRes []RelevantArticleResponse
	for _, a := range articles {
		mentions := make([]string, 0, len(a.CarrierMentions))
		for _, m := range a.CarrierMentions {
			mentions = append(mentions, string(m))
		}

		articleRes = append(articleRes, RelevantArticleResponse{
			RawArticleID:    a.RawArticleID,
			Title:           a.Title,
			URL:             a.URL,
			RelevanceReason: a.RelevanceReason,
			Confidence:      a.Confidence,
			CarrierMentions: mentions,
			PublishedAt:     a.PublishedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, RelevantFeedResponse{
		Articles: articleRes,
		Limit:    limit,
	})
}

func (h *EventHandler) GetHealth(c *gin.Context) {
	if err := h.events.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramLimit := c.Query(name)

	if paramLimit == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramLimit)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramLimit, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

// getQuerySince accepts either a date (2026-01-15) or a full RFC 3339 timestamp.
func getQuerySince(c *gin.Context) (*time.Time, error) {
	raw := c.Query("since")
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		slog.Warn("invalid since parameter", "value", raw, "error", err)
		return nil, err
	}

	return &t, nil
}
