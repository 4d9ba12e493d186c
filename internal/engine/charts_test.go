package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/models"
)

func viewOf(n int) []uint32 {
	view := make([]uint32, n)
	for i := range view {
		view[i] = uint32(i)
	}
	return view
}

func TestTopProducts_LimitAndAscendingOrder(t *testing.T) {
	// 12 products with distinct totals 10, 20, ..., 120.
	records := make([]models.Record, 12)
	for i := range records {
		records[i] = models.Record{
			ProductName: fmt.Sprintf("Product %02d", i),
			Sales:       float64((i + 1) * 10),
		}
	}

	result := topProducts(records, viewOf(len(records)))

	require.Len(t, result.Rows, 10)

	// Ascending for display, so the last row is the biggest seller and
	// the first kept row still beats both excluded products (10, 20).
	assert.Equal(t, []float64{30}, result.Rows[0].Values)
	assert.Equal(t, []float64{120}, result.Rows[9].Values)
	for i := 1; i < len(result.Rows); i++ {
		assert.LessOrEqual(t, result.Rows[i-1].Values[0], result.Rows[i].Values[0])
	}
}

func TestTopProducts_TiesBrokenByInputOrder(t *testing.T) {
	records := []models.Record{
		{ProductName: "First Seen", Sales: 50},
		{ProductName: "Second Seen", Sales: 50},
		{ProductName: "Loser", Sales: 1},
	}

	result := topProducts(records, viewOf(len(records)))

	require.Len(t, result.Rows, 3)
	// Ascending, with the tie keeping input order.
	assert.Equal(t, []string{"Loser"}, result.Rows[0].Keys)
	assert.Equal(t, []string{"First Seen"}, result.Rows[1].Keys)
	assert.Equal(t, []string{"Second Seen"}, result.Rows[2].Keys)
}

func TestTopProducts_TieAtTheCut(t *testing.T) {
	// Eleven products tied at 50: only ten survive, the earliest ten by
	// input order.
	records := make([]models.Record, 11)
	for i := range records {
		records[i] = models.Record{
			ProductName: fmt.Sprintf("Product %02d", i),
			Sales:       50,
		}
	}

	result := topProducts(records, viewOf(len(records)))

	require.Len(t, result.Rows, 10)
	for i, row := range result.Rows {
		assert.Equal(t, fmt.Sprintf("Product %02d", i), row.Keys[0])
	}
}

func TestTopProducts_AggregatesAcrossLineItems(t *testing.T) {
	records := []models.Record{
		{ProductName: "Stapler", Sales: 10},
		{ProductName: "Binder", Sales: 25},
		{ProductName: "Stapler", Sales: 20},
	}

	result := topProducts(records, viewOf(len(records)))

	require.Len(t, result.Rows, 2)
	assert.Equal(t, []string{"Binder"}, result.Rows[0].Keys)
	assert.Equal(t, []float64{25}, result.Rows[0].Values)
	assert.Equal(t, []string{"Stapler"}, result.Rows[1].Keys)
	assert.Equal(t, []float64{30}, result.Rows[1].Values)
}

func TestCategorySalesTrend_MonthThenCategory(t *testing.T) {
	records := []models.Record{
		{Category: "Technology", Month: "February", Sales: 5},
		{Category: "Furniture", Month: "February", Sales: 4},
		{Category: "Technology", Month: "January", Sales: 3},
	}

	result := categorySalesTrend(records, viewOf(len(records)))

	require.Len(t, result.Rows, 3)
	assert.Equal(t, []string{"January", "Technology"}, result.Rows[0].Keys)
	assert.Equal(t, []string{"February", "Furniture"}, result.Rows[1].Keys)
	assert.Equal(t, []string{"February", "Technology"}, result.Rows[2].Keys)
}

func TestBuilders_EmptyViewProducesEmptyRows(t *testing.T) {
	records := []models.Record{
		{OrderID: "O1", CustomerID: "C1", Category: "Furniture", Sales: 10},
	}

	for _, build := range builders {
		result := build(records, nil)
		assert.NotNil(t, result.Rows)
		assert.Emptyf(t, result.Rows, "chart %s", result.Name)
	}
}
