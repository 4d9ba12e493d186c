package dataset

import "superstore-dashboard/internal/models"

// ComputeMetrics calculates the global KPIs over the full, unfiltered
// dataset. AvgOrderValue is deliberately the mean of Sales per row
// rather than per distinct order; one order can span several line
// items, and the dashboard has always reported the per-row mean.
func ComputeMetrics(records []models.Record) models.Metrics {
	orders := make(map[string]struct{})
	customers := make(map[string]struct{})

	var totalSales float64
	for i := range records {
		totalSales += records[i].Sales
		orders[records[i].OrderID] = struct{}{}
		customers[records[i].CustomerID] = struct{}{}
	}

	var avg float64
	if len(records) > 0 {
		avg = totalSales / float64(len(records))
	}

	return models.Metrics{
		TotalSales:      totalSales,
		TotalOrders:     len(orders),
		AvgOrderValue:   avg,
		UniqueCustomers: len(customers),
	}
}
