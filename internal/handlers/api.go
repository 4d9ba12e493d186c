package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"superstore-dashboard/internal/dataset"
	"superstore-dashboard/internal/engine"
	"superstore-dashboard/internal/errors"
	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	ds      *dataset.Dataset
	metrics models.Metrics
	logger  *slog.Logger
}

func NewAPIHandlers(ds *dataset.Dataset, metrics models.Metrics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		ds:      ds,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleMetrics serves the global KPIs. They are computed once over the
// unfiltered dataset and never change for the life of the process.
func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.metrics, map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleCharts recomputes all ten chart aggregations for the requested
// filter selection. An empty match is a valid response with empty rows.
func (h *APIHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	_, span := observability.StartSpan(r.Context(), "engine.query")
	results := engine.Query(h.ds, sel)
	span.SetTag("filtered", "dynamic")
	span.Finish()

	errors.WriteSuccess(w, map[string]any{
		"selection": sel,
		"charts":    results,
	})
}

// HandleFilters serves the distinct filterable values so the dashboard
// can populate its dropdowns.
func (h *APIHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, map[string]any{
		"categories": h.ds.Categories(),
		"regions":    h.ds.Regions(),
		"years":      h.ds.Years(),
	}, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"records":   fmt.Sprintf("%d", h.ds.Len()),
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.ds.Stats())
}
