package engine

import (
	"sort"

	"superstore-dashboard/internal/models"
)

// Display ordering for calendar axes. Month names are grouped by name,
// not by position, so ordering is only a display concern; it is fixed
// here to keep Query output deterministic.
var monthOrder = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// ISO ordering: Monday first.
var weekdayOrder = map[string]int{
	"Monday": 1, "Tuesday": 2, "Wednesday": 3, "Thursday": 4,
	"Friday": 5, "Saturday": 6, "Sunday": 7,
}

const topProductsLimit = 10

// groupSum accumulates sum(Sales) per key over the filtered view.
func groupSum(records []models.Record, view []uint32, key func(*models.Record) string) map[string]float64 {
	groups := make(map[string]float64)
	for _, i := range view {
		groups[key(&records[i])] += records[i].Sales
	}
	return groups
}

// singleKeySum builds a one-key, sum(Sales) chart with rows ordered by
// the given key comparator.
func singleKeySum(name, keyColumn string, groups map[string]float64, less func(a, b string) bool) models.ChartResult {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	rows := make([]models.ChartRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.ChartRow{Keys: []string{k}, Values: []float64{groups[k]}})
	}

	return models.ChartResult{
		Name:         name,
		KeyColumns:   []string{keyColumn},
		ValueColumns: []string{"sales"},
		Rows:         rows,
	}
}

func alphabetical(a, b string) bool { return a < b }

func byMonth(a, b string) bool { return monthOrder[a] < monthOrder[b] }

func monthlySalesTrend(records []models.Record, view []uint32) models.ChartResult {
	groups := groupSum(records, view, func(r *models.Record) string { return r.Month })
	return singleKeySum(ChartMonthlySalesTrend, "month", groups, byMonth)
}

func salesByCategory(records []models.Record, view []uint32) models.ChartResult {
	groups := groupSum(records, view, func(r *models.Record) string { return r.Category })
	return singleKeySum(ChartSalesByCategory, "category", groups, alphabetical)
}

func salesByRegion(records []models.Record, view []uint32) models.ChartResult {
	groups := groupSum(records, view, func(r *models.Record) string { return r.Region })
	return singleKeySum(ChartSalesByRegion, "region", groups, alphabetical)
}

func salesBySegment(records []models.Record, view []uint32) models.ChartResult {
	groups := groupSum(records, view, func(r *models.Record) string { return r.Segment })
	return singleKeySum(ChartSalesBySegment, "segment", groups, alphabetical)
}

// customerSegmentation carries two measures per customer: total sales
// and order-line count.
func customerSegmentation(records []models.Record, view []uint32) models.ChartResult {
	type agg struct {
		sales  float64
		orders int
	}
	groups := make(map[string]*agg)
	for _, i := range view {
		a := groups[records[i].CustomerID]
		if a == nil {
			a = &agg{}
			groups[records[i].CustomerID] = a
		}
		a.sales += records[i].Sales
		a.orders++
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.ChartRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.ChartRow{
			Keys:   []string{k},
			Values: []float64{groups[k].sales, float64(groups[k].orders)},
		})
	}

	return models.ChartResult{
		Name:         ChartCustomerSegmentation,
		KeyColumns:   []string{"customer_id"},
		ValueColumns: []string{"sales", "orders"},
		Rows:         rows,
	}
}

func customersByRegion(records []models.Record, view []uint32) models.ChartResult {
	customers := make(map[string]map[string]struct{})
	for _, i := range view {
		set := customers[records[i].Region]
		if set == nil {
			set = make(map[string]struct{})
			customers[records[i].Region] = set
		}
		set[records[i].CustomerID] = struct{}{}
	}

	regions := make([]string, 0, len(customers))
	for r := range customers {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	rows := make([]models.ChartRow, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, models.ChartRow{Keys: []string{r}, Values: []float64{float64(len(customers[r]))}})
	}

	return models.ChartResult{
		Name:         ChartCustomersByRegion,
		KeyColumns:   []string{"region"},
		ValueColumns: []string{"customers"},
		Rows:         rows,
	}
}

type pairKey struct {
	a, b string
}

// pairSum accumulates sum(Sales) per two-dimensional key.
func pairSum(records []models.Record, view []uint32, key func(*models.Record) pairKey) map[pairKey]float64 {
	groups := make(map[pairKey]float64)
	for _, i := range view {
		groups[key(&records[i])] += records[i].Sales
	}
	return groups
}

func pairRows(groups map[pairKey]float64, less func(x, y pairKey) bool) []models.ChartRow {
	keys := make([]pairKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	rows := make([]models.ChartRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.ChartRow{Keys: []string{k.a, k.b}, Values: []float64{groups[k]}})
	}
	return rows
}

// orderPatterns is the weekday x month heat map. Pairs absent from the
// view are omitted; consumers treat them as zero.
func orderPatterns(records []models.Record, view []uint32) models.ChartResult {
	groups := pairSum(records, view, func(r *models.Record) pairKey {
		return pairKey{a: r.WeekDay, b: r.Month}
	})

	rows := pairRows(groups, func(x, y pairKey) bool {
		if weekdayOrder[x.a] != weekdayOrder[y.a] {
			return weekdayOrder[x.a] < weekdayOrder[y.a]
		}
		return monthOrder[x.b] < monthOrder[y.b]
	})

	return models.ChartResult{
		Name:         ChartOrderPatterns,
		KeyColumns:   []string{"weekday", "month"},
		ValueColumns: []string{"sales"},
		Rows:         rows,
	}
}

// salesBySubcategory is hierarchical: category is the parent key.
func salesBySubcategory(records []models.Record, view []uint32) models.ChartResult {
	groups := pairSum(records, view, func(r *models.Record) pairKey {
		return pairKey{a: r.Category, b: r.SubCategory}
	})

	rows := pairRows(groups, func(x, y pairKey) bool {
		if x.a != y.a {
			return x.a < y.a
		}
		return x.b < y.b
	})

	return models.ChartResult{
		Name:         ChartSalesBySubcategory,
		KeyColumns:   []string{"category", "sub_category"},
		ValueColumns: []string{"sales"},
		Rows:         rows,
	}
}

// topProducts takes the 10 largest products by sum(Sales), ties broken
// by first appearance in input order, and returns them re-sorted
// ascending for the horizontal bar display.
func topProducts(records []models.Record, view []uint32) models.ChartResult {
	type agg struct {
		name  string
		sales float64
		seen  int
	}
	groups := make(map[string]*agg)
	for pos, i := range view {
		a := groups[records[i].ProductName]
		if a == nil {
			a = &agg{name: records[i].ProductName, seen: pos}
			groups[records[i].ProductName] = a
		}
		a.sales += records[i].Sales
	}

	list := make([]*agg, 0, len(groups))
	for _, a := range groups {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].sales != list[j].sales {
			return list[i].sales > list[j].sales
		}
		return list[i].seen < list[j].seen
	})
	if len(list) > topProductsLimit {
		list = list[:topProductsLimit]
	}
	// Stable keeps first-seen order among equal measures.
	sort.SliceStable(list, func(i, j int) bool { return list[i].sales < list[j].sales })

	rows := make([]models.ChartRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, models.ChartRow{Keys: []string{a.name}, Values: []float64{a.sales}})
	}

	return models.ChartResult{
		Name:         ChartTopProducts,
		KeyColumns:   []string{"product_name"},
		ValueColumns: []string{"sales"},
		Rows:         rows,
	}
}

// categorySalesTrend produces one (month, category) row per pair; the
// presentation layer splits it into one series per category.
func categorySalesTrend(records []models.Record, view []uint32) models.ChartResult {
	groups := pairSum(records, view, func(r *models.Record) pairKey {
		return pairKey{a: r.Month, b: r.Category}
	})

	rows := pairRows(groups, func(x, y pairKey) bool {
		if monthOrder[x.a] != monthOrder[y.a] {
			return monthOrder[x.a] < monthOrder[y.a]
		}
		return x.b < y.b
	})

	return models.ChartResult{
		Name:         ChartCategorySalesTrend,
		KeyColumns:   []string{"month", "category"},
		ValueColumns: []string{"sales"},
		Rows:         rows,
	}
}
