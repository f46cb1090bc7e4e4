package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anuragkar/scambait/internal/api/response"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/llm"
	"github.com/anuragkar/scambait/internal/service"
)

const defaultReportLimit = 50

// OpsHandler handles the operator endpoints
type OpsHandler struct {
	ops       *service.OpsService
	llmRouter *llm.Router
}

// NewOpsHandler creates a new ops handler
func NewOpsHandler(ops *service.OpsService, llmRouter *llm.Router) *OpsHandler {
	return &OpsHandler{ops: ops, llmRouter: llmRouter}
}

// ListSessions returns the ids of live sessions
func (h *OpsHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := h.ops.ListSessions(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list sessions")
		return
	}

	response.OK(w, map[string]any{
		"sessions": ids,
		"count":    len(ids),
	})
}

// GetSession returns one live session with transcript and intelligence
func (h *OpsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	session, err := h.ops.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "Session not found")
			return
		}
		response.InternalError(w, "failed to load session")
		return
	}

	response.OK(w, session)
}

// DeleteSession removes a live session
func (h *OpsHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	if err := h.ops.DeleteSession(r.Context(), id); err != nil {
		response.InternalError(w, "failed to delete session")
		return
	}

	response.NoContent(w)
}

// ListReports returns the most recently archived final reports
func (h *OpsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.ops.ListReports(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrArchiveDisabled) {
			response.NotFound(w, "Report archive is not configured")
			return
		}
		response.InternalError(w, "failed to list reports")
		return
	}

	response.OK(w, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// ListProviders returns the registered LLM providers
func (h *OpsHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"providers":        h.llmRouter.GetProvidersInfo(),
		"default_provider": h.llmRouter.DefaultProvider(),
	})
}
