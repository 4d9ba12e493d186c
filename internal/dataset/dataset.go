package dataset

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"superstore-dashboard/internal/models"
)

// Dataset is the prepared, immutable record collection plus bitmap
// indexes over the filterable dimensions. It is built once at startup
// and shared read-only across concurrent queries; nothing mutates it
// after New returns.
type Dataset struct {
	records []models.Record

	byCategory map[string]*roaring.Bitmap
	byRegion   map[string]*roaring.Bitmap
	byYear     map[int]*roaring.Bitmap
	all        *roaring.Bitmap
}

// New indexes the prepared records into a Dataset.
func New(records []models.Record) *Dataset {
	d := &Dataset{
		records:    records,
		byCategory: make(map[string]*roaring.Bitmap),
		byRegion:   make(map[string]*roaring.Bitmap),
		byYear:     make(map[int]*roaring.Bitmap),
		all:        roaring.New(),
	}

	for i := range records {
		idx := uint32(i)
		d.all.Add(idx)
		addTo(d.byCategory, records[i].Category, idx)
		addTo(d.byRegion, records[i].Region, idx)

		bm := d.byYear[records[i].Year]
		if bm == nil {
			bm = roaring.New()
			d.byYear[records[i].Year] = bm
		}
		bm.Add(idx)
	}

	return d
}

func addTo(index map[string]*roaring.Bitmap, key string, idx uint32) {
	bm := index[key]
	if bm == nil {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(idx)
}

// Records returns the underlying record slice. Callers must treat it as
// read-only.
func (d *Dataset) Records() []models.Record {
	return d.records
}

// Len returns the number of records in the base dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Filter resolves a selection to the ascending indexes of matching
// records. Values within a field are OR-combined, fields are
// AND-combined, and an empty field applies no constraint. Selecting a
// value absent from the data yields an empty view, not an error. The
// base dataset is never touched.
func (d *Dataset) Filter(sel models.FilterSelection) []uint32 {
	if sel.IsEmpty() {
		return d.all.ToArray()
	}

	out := d.all.Clone()

	if len(sel.Categories) > 0 {
		out.And(union(d.byCategory, sel.Categories))
	}
	if len(sel.Regions) > 0 {
		out.And(union(d.byRegion, sel.Regions))
	}
	if sel.Year != 0 {
		if bm := d.byYear[sel.Year]; bm != nil {
			out.And(bm)
		} else {
			return nil
		}
	}

	return out.ToArray()
}

func union(index map[string]*roaring.Bitmap, values []string) *roaring.Bitmap {
	bitmaps := make([]*roaring.Bitmap, 0, len(values))
	for _, v := range values {
		if bm := index[v]; bm != nil {
			bitmaps = append(bitmaps, bm)
		}
	}
	return roaring.FastOr(bitmaps...)
}

// Categories returns the distinct category values, sorted. Used to
// populate the dashboard filter controls.
func (d *Dataset) Categories() []string {
	return sortedStringKeys(d.byCategory)
}

// Regions returns the distinct region values, sorted.
func (d *Dataset) Regions() []string {
	return sortedStringKeys(d.byRegion)
}

// Years returns the distinct order years, ascending.
func (d *Dataset) Years() []int {
	years := make([]int, 0, len(d.byYear))
	for y := range d.byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortedStringKeys(index map[string]*roaring.Bitmap) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats summarizes the dataset for the admin endpoint.
func (d *Dataset) Stats() map[string]any {
	return map[string]any{
		"record_count": len(d.records),
		"categories":   len(d.byCategory),
		"regions":      len(d.byRegion),
		"years":        len(d.byYear),
	}
}
