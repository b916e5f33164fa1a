package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveAnalysis stores one analysis report and returns its ID.
func (db *DB) SaveAnalysis(ctx context.Context, userID uuid.UUID, breakdown, ai []byte, warning, modelUsed string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analysis_reports (user_id, breakdown, ai, warning, model_used)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, breakdown, ai, warning, modelUsed,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves one report by ID. Returns nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisReport, error) {
	var r AnalysisReport
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, breakdown, ai, COALESCE(warning, ''), COALESCE(model_used, ''), created_at
		 FROM analysis_reports WHERE id = $1`, id,
	).Scan(&r.ID, &r.UserID, &r.Breakdown, &r.AI, &r.Warning, &r.ModelUsed, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &r, nil
}

// ListAnalysesByUser returns a user's reports, newest first.
func (db *DB) ListAnalysesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AnalysisReport, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, breakdown, ai, COALESCE(warning, ''), COALESCE(model_used, ''), created_at
		 FROM analysis_reports WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var reports []AnalysisReport
	for rows.Next() {
		var r AnalysisReport
		if err := rows.Scan(&r.ID, &r.UserID, &r.Breakdown, &r.AI, &r.Warning, &r.ModelUsed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
