package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/dto"
	"github.com/octobees/visibility-score/internal/repository"
)

// HistoryHandler serves the recent analyses listing. A nil repository
// means persistence is not configured.
type HistoryHandler struct {
	repo repository.AnalysesRepository
}

func NewHistoryHandler(repo repository.AnalysesRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// Recent handles GET /api/analyses/recent.
func (h *HistoryHandler) Recent(c echo.Context) error {
	if h.repo == nil {
		return Error(c, http.StatusNotImplemented, "analysis history is not configured")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Error(c, http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	rows, err := h.repo.Recent(c.Request().Context(), limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "could not list analyses")
	}

	out := make([]dto.AnalysisRecord, 0, len(rows))
	for _, a := range rows {
		rec := dto.AnalysisRecord{
			ID:           a.ID.String(),
			BusinessName: a.BusinessName,
			Path:         a.Path,
			GBPScore:     a.GBPScore,
			SiteScore:    a.SiteScore,
			FinalScore:   a.FinalScore,
			CreatedAt:    a.CreatedAt,
		}
		if a.PlaceID != nil {
			rec.PlaceID = *a.PlaceID
		}
		out = append(out, rec)
	}

	return Success(c, http.StatusOK, "", map[string]any{"analyses": out})
}
