package models

import "time"

// Record is one Superstore order line item plus the calendar fields
// derived during preparation. Records are immutable once loaded.
type Record struct {
	OrderID     string
	OrderDate   time.Time
	ShipDate    time.Time
	CustomerID  string
	Segment     string
	Region      string
	Category    string
	SubCategory string
	ProductName string
	Sales       float64

	// Derived from OrderDate / ShipDate.
	Year         int
	Month        string
	Quarter      int
	WeekDay      string
	ShippingDays int
}

// Metrics are the global KPIs computed once over the unfiltered dataset.
// AvgOrderValue is the mean of Sales per row, not per distinct order.
type Metrics struct {
	TotalSales      float64 `json:"total_sales"`
	TotalOrders     int     `json:"total_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	UniqueCustomers int     `json:"unique_customers"`
}

// FilterSelection narrows which records participate in aggregation.
// Empty slices and a zero Year mean "no filter" for that field.
// Values within a field are OR-combined; fields are AND-combined.
type FilterSelection struct {
	Categories []string `json:"categories,omitempty"`
	Regions    []string `json:"regions,omitempty"`
	Year       int      `json:"year,omitempty"`
}

// IsEmpty reports whether the selection applies no filtering at all.
func (s FilterSelection) IsEmpty() bool {
	return len(s.Categories) == 0 && len(s.Regions) == 0 && s.Year == 0
}

// ChartRow is one group of a chart aggregation: its grouping key values
// and its numeric measures, positionally matching the parent result's
// KeyColumns and ValueColumns.
type ChartRow struct {
	Keys   []string  `json:"keys"`
	Values []float64 `json:"values"`
}

// ChartResult is a named aggregate table consumed by the presentation
// layer. Results share no state with each other or with the dataset.
type ChartResult struct {
	Name         string     `json:"name"`
	KeyColumns   []string   `json:"key_columns"`
	ValueColumns []string   `json:"value_columns"`
	Rows         []ChartRow `json:"rows"`
}
