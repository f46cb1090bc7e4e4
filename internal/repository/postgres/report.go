package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anuragkar/scambait/internal/domain"
)

// ReportRepository implements domain.ReportArchive
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Record inserts one terminal report outcome.
func (r *ReportRepository) Record(ctx context.Context, report *domain.Report, outcome domain.DeliveryOutcome) error {
	intelligence, err := json.Marshal(report.ExtractedIntelligence)
	if err != nil {
		return fmt.Errorf("failed to marshal intelligence: %w", err)
	}

	query := `
		INSERT INTO honeypot_reports (id, session_id, scam_detected, message_count, intelligence, agent_notes, outcome, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		uuid.New(),
		report.SessionID,
		report.ScamDetected,
		report.TotalMessagesExchanged,
		intelligence,
		report.AgentNotes,
		string(outcome.Status),
		outcome.Attempts,
	)
	if err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}
	return nil
}

// List returns the most recent archived reports.
func (r *ReportRepository) List(ctx context.Context, limit int) ([]domain.ArchivedReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, session_id, scam_detected, message_count, intelligence, agent_notes, outcome, attempts, created_at
		FROM honeypot_reports
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.ArchivedReport
	for rows.Next() {
		var (
			rep          domain.ArchivedReport
			intelligence []byte
			outcome      string
		)
		if err := rows.Scan(
			&rep.ID,
			&rep.SessionID,
			&rep.ScamDetected,
			&rep.MessageCount,
			&intelligence,
			&rep.AgentNotes,
			&outcome,
			&rep.Attempts,
			&rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if err := json.Unmarshal(intelligence, &rep.Intelligence); err != nil {
			return nil, fmt.Errorf("failed to unmarshal intelligence: %w", err)
		}
		rep.Outcome = domain.DeliveryStatus(outcome)
		reports = append(reports, rep)
	}
	return reports, nil
}
