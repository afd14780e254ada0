package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// CohortHandler serves the cohort list and detail endpoints
type CohortHandler struct {
	repo               interfaces.Repository
	partialDetailLimit int
}

// NewCohortHandler creates a new CohortHandler
func NewCohortHandler(repo interfaces.Repository, partialDetailLimit int) *CohortHandler {
	return &CohortHandler{
		repo:               repo,
		partialDetailLimit: partialDetailLimit,
	}
}

// HandleList handles GET /cohorts/list/
func (h *CohortHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cohorts, err := h.repo.ListCohorts(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to list cohorts", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, model.NewErrorEnvelope("failed to list cohorts"))
		return
	}
	if cohorts == nil {
		cohorts = []*model.Cohort{}
	}

	writeJSON(w, r, http.StatusOK, &model.ListResponse{Cohorts: cohorts})
}

// HandleDetail handles GET /cohorts/detail/{id}. Only the first members
// are returned unless full_detail=true is given.
func (h *CohortHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	id, err := types.ParseCohortID(chi.URLParam(r, "id"))
	if err != nil {
		logger.Debug("Invalid cohort ID", "error", err)
		http.NotFound(w, r)
		return
	}

	limit := h.partialDetailLimit
	if r.URL.Query().Get("full_detail") == "true" {
		limit = 0
	}

	users, err := h.repo.ListWikiUsers(ctx, id, limit)
	if err != nil {
		if errors.Is(err, model.ErrCohortNotFound) {
			// Reported in the body with 200 so the dashboard shows the message
			writeJSON(w, r, http.StatusOK, model.NewErrorEnvelope("could not retrieve this cohort"))
			return
		}
		logger.Error("Failed to list wiki users", "error", err, "cohort_id", id)
		writeJSON(w, r, http.StatusInternalServerError, model.NewErrorEnvelope("failed to retrieve cohort detail"))
		return
	}

	writeJSON(w, r, http.StatusOK, &model.DetailResponse{WikiUsers: users})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
