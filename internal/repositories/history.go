package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Decision values recorded in review history.
const (
	DecisionKept      = "kept"
	DecisionDiscarded = "discarded"
)

// HistoryEntry is one finalized review decision.
type HistoryEntry struct {
	ID           int64
	VideoID      string
	Title        string
	Decision     string
	CategoryID   string
	PublishedURL string
	DecidedAt    time.Time
}

// HistoryRepository appends finalized review decisions to the local log.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// RecordDecision appends one decision. Implements tasks.DecisionRecorder.
func (r *HistoryRepository) RecordDecision(videoID, title, decision, categoryID, publishedURL string) error {
	if decision != DecisionKept && decision != DecisionDiscarded {
		return fmt.Errorf("unknown decision %q", decision)
	}

	_, err := r.db.Exec(
		`INSERT INTO review_history (video_id, title, decision, category_id, published_url, decided_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		videoID, title, decision, nullable(categoryID), nullable(publishedURL), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// Recent returns up to limit decisions, newest first.
func (r *HistoryRepository) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, video_id, title, decision, category_id, published_url, decided_at
		 FROM review_history ORDER BY decided_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var title, category, published sql.NullString
		if err := rows.Scan(&e.ID, &e.VideoID, &title, &e.Decision, &category, &published, &e.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Title = title.String
		e.CategoryID = category.String
		e.PublishedURL = published.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts returns totals per decision for the status summary.
func (r *HistoryRepository) Counts() (kept, discarded int, err error) {
	rows, err := r.db.Query(`SELECT decision, COUNT(*) FROM review_history GROUP BY decision`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var decision string
		var count int
		if err := rows.Scan(&decision, &count); err != nil {
			return 0, 0, fmt.Errorf("failed to scan count: %w", err)
		}
		switch decision {
		case DecisionKept:
			kept = count
		case DecisionDiscarded:
			discarded = count
		}
	}
	return kept, discarded, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
