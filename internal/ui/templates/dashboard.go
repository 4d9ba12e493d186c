package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"superstore-dashboard/internal/models"
)

// DashboardData is everything the page needs at render time: the global
// KPIs and the distinct values for the filter controls. Chart content
// arrives later over SSE.
type DashboardData struct {
	Metrics    models.Metrics
	Categories []string
	Regions    []string
	Years      []int
}

// chartPanels maps page element IDs to chart names and titles, in page
// order. The top-products panel ID matches the HTML patch the SSE
// handler sends; the rest are fed from the chartsData signal.
var chartPanels = []struct {
	ID    string
	Chart string
	Title string
}{
	{"monthly-trend", "monthly_sales_trend", "Monthly Sales Trend"},
	{"category-sales", "sales_by_category", "Sales by Category"},
	{"region-sales", "sales_by_region", "Sales by Region"},
	{"segment-sales", "sales_by_segment", "Sales by Segment"},
	{"customer-segments", "customer_segmentation", "Customer Segmentation"},
	{"customer-regions", "customers_by_region", "Customers by Region"},
	{"order-patterns", "order_patterns", "Order Patterns"},
	{"subcategory-sales", "sales_by_subcategory", "Sales by Sub-Category"},
	{"top-products", "top_10_products", "Top 10 Products"},
	{"category-trends", "category_sales_trend", "Category Sales Trends"},
}

const chartsURL = `/sse/charts?categories='+$categories+'&regions='+$regions+'&year='+$year`

// Dashboard renders the single-page dashboard. Filter changes trigger a
// datastar GET against the SSE endpoint, which patches fresh chart data
// back into the page.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := message.NewPrinter(language.English)

		defaultYear := 0
		if len(data.Years) > 0 {
			defaultYear = data.Years[len(data.Years)-1]
		}

		write := func(format string, args ...any) error {
			_, err := fmt.Fprintf(w, format, args...)
			return err
		}

		if err := write(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Superstore Sales Analytics</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
</head>
<body data-signals="{categories:'',regions:'',year:'%d'}" data-on-load="@get('`+chartsURL+`')">
<h1>Superstore Sales Analytics</h1>
`, defaultYear); err != nil {
			return err
		}

		if err := write(`<section class="kpi-cards">
<div class="kpi-card"><h4>Total Sales</h4><h2>%s</h2></div>
<div class="kpi-card"><h4>Total Orders</h4><h2>%s</h2></div>
<div class="kpi-card"><h4>Avg Order Value</h4><h2>%s</h2></div>
<div class="kpi-card"><h4>Unique Customers</h4><h2>%s</h2></div>
</section>
`,
			p.Sprintf("$%.2f", data.Metrics.TotalSales),
			p.Sprintf("%d", data.Metrics.TotalOrders),
			p.Sprintf("$%.2f", data.Metrics.AvgOrderValue),
			p.Sprintf("%d", data.Metrics.UniqueCustomers),
		); err != nil {
			return err
		}

		if err := write(`<section class="filters">
<label>Category
<select multiple data-bind-categories data-on-change="@get('` + chartsURL + `')">
`); err != nil {
			return err
		}
		for _, c := range data.Categories {
			if err := write("<option value=\"%s\">%s</option>\n", templ.EscapeString(c), templ.EscapeString(c)); err != nil {
				return err
			}
		}
		if err := write(`</select>
</label>
<label>Region
<select multiple data-bind-regions data-on-change="@get('` + chartsURL + `')">
`); err != nil {
			return err
		}
		for _, r := range data.Regions {
			if err := write("<option value=\"%s\">%s</option>\n", templ.EscapeString(r), templ.EscapeString(r)); err != nil {
				return err
			}
		}
		if err := write(`</select>
</label>
<label>Year
<select data-bind-year data-on-change="@get('` + chartsURL + `')">
<option value="">All</option>
`); err != nil {
			return err
		}
		for _, y := range data.Years {
			selected := ""
			if y == defaultYear {
				selected = " selected"
			}
			if err := write("<option value=\"%d\"%s>%d</option>\n", y, selected, y); err != nil {
				return err
			}
		}
		if err := write(`</select>
</label>
</section>
<div id="charts-status"></div>
<section class="charts">
`); err != nil {
			return err
		}

		for _, panel := range chartPanels {
			if err := write(`<div class="chart-panel"><h3>%s</h3><div id="%s-content" data-chart="%s"></div></div>
`, templ.EscapeString(panel.Title), panel.ID, panel.Chart); err != nil {
				return err
			}
		}

		return write(`</section>
</body>
</html>
`)
	})
}
