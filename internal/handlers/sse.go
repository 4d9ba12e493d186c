package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"superstore-dashboard/internal/dataset"
	"superstore-dashboard/internal/engine"
	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
)

var topProductsTemplate = template.Must(template.New("topProducts").Parse(`
<div id="top-products-content">
<table class="modern-table">
<thead><tr><th>Product</th><th>Sales</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{index .Keys 0}}</td>
<td><strong>${{printf "%.2f" (index .Values 0)}}</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	ds      *dataset.Dataset
	metrics models.Metrics
	logger  *slog.Logger
}

func NewSSEHandlers(ds *dataset.Dataset, metrics models.Metrics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		ds:      ds,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleCharts is the reactive path: every filter change on the page
// hits this endpoint, which recomputes all ten charts for the selection
// and patches them into the client as one signal set. The client owns
// debouncing and discarding of stale responses; this handler keeps no
// state between invocations.
func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	sel, err := parseSelection(r)
	if err != nil {
		h.logger.Warn("invalid filter selection",
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
		sse.PatchElements(`<div id="charts-status">Invalid filter selection</div>`)
		return
	}

	_, span := observability.StartSpan(r.Context(), "engine.query")
	results := engine.Query(h.ds, sel)
	span.Finish()

	signals, err := json.Marshal(map[string]any{
		"chartsData": results,
	})
	if err != nil {
		h.logger.Error("marshal charts data", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if top, ok := engine.Find(results, engine.ChartTopProducts); ok {
		html, err := renderTopProducts(top)
		if err != nil {
			h.logger.Error("render top products table", "error", err)
			return
		}
		sse.PatchElements(html)
	}

	sse.PatchElements(`<div id="charts-status">Charts updated</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func renderTopProducts(result models.ChartResult) (string, error) {
	var buf strings.Builder
	err := topProductsTemplate.Execute(&buf, result)
	return buf.String(), err
}
