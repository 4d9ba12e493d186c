package engine

import (
	"golang.org/x/sync/errgroup"

	"superstore-dashboard/internal/dataset"
	"superstore-dashboard/internal/models"
)

// Chart names, in the fixed order Query returns them.
const (
	ChartMonthlySalesTrend    = "monthly_sales_trend"
	ChartSalesByCategory      = "sales_by_category"
	ChartSalesByRegion        = "sales_by_region"
	ChartSalesBySegment       = "sales_by_segment"
	ChartCustomerSegmentation = "customer_segmentation"
	ChartCustomersByRegion    = "customers_by_region"
	ChartOrderPatterns        = "order_patterns"
	ChartSalesBySubcategory   = "sales_by_subcategory"
	ChartTopProducts          = "top_10_products"
	ChartCategorySalesTrend   = "category_sales_trend"
)

type builder func(records []models.Record, view []uint32) models.ChartResult

var builders = []builder{
	monthlySalesTrend,
	salesByCategory,
	salesByRegion,
	salesBySegment,
	customerSegmentation,
	customersByRegion,
	orderPatterns,
	salesBySubcategory,
	topProducts,
	categorySalesTrend,
}

// Query computes the ten chart aggregations for a filter selection.
// It is a pure function of (dataset, selection): deterministic,
// idempotent, and free of hidden state. The base dataset is never
// mutated, so concurrent queries need no locking. An empty filtered
// view produces ten empty results, never an error.
//
// The aggregations are independent of each other and run one goroutine
// each; the result order is fixed regardless.
func Query(ds *dataset.Dataset, sel models.FilterSelection) []models.ChartResult {
	view := ds.Filter(sel)
	records := ds.Records()

	results := make([]models.ChartResult, len(builders))

	var g errgroup.Group
	for i, build := range builders {
		g.Go(func() error {
			results[i] = build(records, view)
			return nil
		})
	}
	g.Wait() // builders never error

	return results
}

// Find returns the named result from a Query output.
func Find(results []models.ChartResult, name string) (models.ChartResult, bool) {
	for _, r := range results {
		if r.Name == name {
			return r, true
		}
	}
	return models.ChartResult{}, false
}
