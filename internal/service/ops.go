package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anuragkar/scambait/internal/domain"
)

// ErrArchiveDisabled is returned by report listing when no archive backend
// is configured.
var ErrArchiveDisabled = errors.New("report archive is not configured")

// OpsService handles the operator surface: live session inspection and the
// delivered-report archive.
type OpsService struct {
	store   domain.SessionStore
	archive domain.ReportArchive
}

// NewOpsService creates a new ops service. archive may be nil when report
// archiving is disabled.
func NewOpsService(store domain.SessionStore, archive domain.ReportArchive) *OpsService {
	return &OpsService{store: store, archive: archive}
}

// ListSessions returns the ids of all live sessions.
func (s *OpsService) ListSessions(ctx context.Context) ([]string, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// GetSession retrieves one live session with its full transcript and
// captured intelligence.
func (s *OpsService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return session, nil
}

// DeleteSession removes a session so a new engagement can start under the
// same id. Deleting an absent session is not an error.
func (s *OpsService) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// ListReports returns the most recently archived final reports.
func (s *OpsService) ListReports(ctx context.Context, limit int) ([]domain.ArchivedReport, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	reports, err := s.archive.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
