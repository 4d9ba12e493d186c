package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/dataset"
	"superstore-dashboard/internal/models"
)

func testDataset() *dataset.Dataset {
	return dataset.New([]models.Record{
		{
			OrderID: "O1", CustomerID: "C1", Segment: "Consumer",
			Region: "East", Category: "Furniture", SubCategory: "Chairs",
			ProductName: "Desk Chair", Sales: 100,
			Year: 2020, Month: "January", Quarter: 1, WeekDay: "Monday",
		},
		{
			OrderID: "O2", CustomerID: "C2", Segment: "Corporate",
			Region: "West", Category: "Furniture", SubCategory: "Tables",
			ProductName: "Dining Table", Sales: 50,
			Year: 2020, Month: "February", Quarter: 1, WeekDay: "Tuesday",
		},
		{
			OrderID: "O3", CustomerID: "C1", Segment: "Consumer",
			Region: "East", Category: "Office Supplies", SubCategory: "Paper",
			ProductName: "Copy Paper", Sales: 30,
			Year: 2021, Month: "January", Quarter: 1, WeekDay: "Friday",
		},
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAPIHandlers() *APIHandlers {
	ds := testDataset()
	return NewAPIHandlers(ds, dataset.ComputeMetrics(ds.Records()), testLogger())
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleMetrics(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	h.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, cacheControl, rec.Header().Get("Cache-Control"))

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var metrics models.Metrics
	require.NoError(t, json.Unmarshal(env.Data, &metrics))
	assert.Equal(t, 180.0, metrics.TotalSales)
	assert.Equal(t, 3, metrics.TotalOrders)
	assert.Equal(t, 2, metrics.UniqueCustomers)
	assert.InDelta(t, 60.0, metrics.AvgOrderValue, 1e-9)
}

func TestHandleCharts_Filtered(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts?categories=Furniture&year=2020", nil)
	h.HandleCharts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var payload struct {
		Selection models.FilterSelection `json:"selection"`
		Charts    []models.ChartResult   `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))

	assert.Equal(t, []string{"Furniture"}, payload.Selection.Categories)
	assert.Equal(t, 2020, payload.Selection.Year)
	require.Len(t, payload.Charts, 10)

	// Both Furniture line items from 2020 survive the filter.
	assert.Equal(t, "monthly_sales_trend", payload.Charts[0].Name)
	var total float64
	for _, row := range payload.Charts[0].Rows {
		total += row.Values[0]
	}
	assert.Equal(t, 150.0, total)
}

func TestHandleCharts_EmptyMatchIsNotAnError(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts?year=1999", nil)
	h.HandleCharts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var payload struct {
		Charts []models.ChartResult `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Len(t, payload.Charts, 10)
	for _, chart := range payload.Charts {
		assert.Emptyf(t, chart.Rows, "chart %s", chart.Name)
	}
}

func TestHandleCharts_InvalidYear(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts?year=abc", nil)
	h.HandleCharts(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "year")
}

func TestHandleFilters(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	h.HandleFilters(rec, httptest.NewRequest(http.MethodGet, "/api/filters", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var payload struct {
		Categories []string `json:"categories"`
		Regions    []string `json:"regions"`
		Years      []int    `json:"years"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, []string{"Furniture", "Office Supplies"}, payload.Categories)
	assert.Equal(t, []string{"East", "West"}, payload.Regions)
	assert.Equal(t, []int{2020, 2021}, payload.Years)
}

func TestHandleHealth(t *testing.T) {
	h := newAPIHandlers()

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "3", payload["records"])
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.FilterSelection
	}{
		{
			name:  "empty",
			query: "",
			want:  models.FilterSelection{},
		},
		{
			name:  "repeated parameters",
			query: "categories=Furniture&categories=Technology",
			want:  models.FilterSelection{Categories: []string{"Furniture", "Technology"}},
		},
		{
			name:  "comma separated",
			query: "regions=East,West",
			want:  models.FilterSelection{Regions: []string{"East", "West"}},
		},
		{
			name:  "mixed with whitespace and empties",
			query: "categories=Furniture,%20,&categories=%20Technology%20",
			want:  models.FilterSelection{Categories: []string{"Furniture", "Technology"}},
		},
		{
			name:  "year",
			query: "year=2021",
			want:  models.FilterSelection{Year: 2021},
		},
		{
			name:  "blank year means no filter",
			query: "year=%20",
			want:  models.FilterSelection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/charts?"+tt.query, nil)

			sel, err := parseSelection(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel)
		})
	}
}

func TestParseSelection_BadYear(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/charts?year=twenty", nil)

	_, err := parseSelection(req)
	require.Error(t, err)
}
