package handlers

import (
	"cfb-trends-go/interfaces"
	"cfb-trends-go/logging"
	"cfb-trends-go/middleware"
	"cfb-trends-go/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TrendsHandler serves trends reports
type TrendsHandler struct {
	trends        interfaces.TrendsService
	currentSeason int
	logger        *logging.Logger
}

// NewTrendsHandler creates a trends handler; requests without a year use currentSeason
func NewTrendsHandler(trends interfaces.TrendsService, currentSeason int) *TrendsHandler {
	return &TrendsHandler{
		trends:        trends,
		currentSeason: currentSeason,
		logger:        logging.WithPrefix("TrendsHandler"),
	}
}

// GetTrends handles GET /trends?year=&conference=
func (h *TrendsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	season, conference, err := h.parseQuery(r)
	if err != nil {
		middleware.WriteError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.trends.GetTrends(r.Context(), season, conference)
	if err != nil {
		h.writeServiceError(w, r, start, err)
		return
	}

	middleware.WriteJSON(w, r, start, http.StatusOK, result)
}

// Refresh handles POST /trends/refresh?year=&conference=
func (h *TrendsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	season, conference, err := h.parseQuery(r)
	if err != nil {
		middleware.WriteError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.trends.Refresh(r.Context(), season, conference)
	if err != nil {
		h.writeServiceError(w, r, start, err)
		return
	}

	h.logger.Infof("Refreshed season %d conference=%q on request", season, conference)
	middleware.WriteJSON(w, r, start, http.StatusOK, result)
}

func (h *TrendsHandler) parseQuery(r *http.Request) (int, string, error) {
	query := r.URL.Query()

	season := h.currentSeason
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, "", fmt.Errorf("invalid year %q", raw)
		}
		season = parsed
	}

	return season, strings.TrimSpace(query.Get("conference")), nil
}

func (h *TrendsHandler) writeServiceError(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSeason):
		middleware.WriteError(w, r, start, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUpstreamStatus):
		h.logger.Errorf("Upstream failure: %v", err)
		middleware.WriteError(w, r, start, http.StatusBadGateway, "upstream data source unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		middleware.WriteError(w, r, start, http.StatusGatewayTimeout, "timed out loading season data")
	default:
		h.logger.Errorf("Failed to build trends: %v", err)
		middleware.WriteError(w, r, start, http.StatusInternalServerError, "failed to build trends")
	}
}
