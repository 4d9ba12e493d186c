package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"superstore-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10

	// Order Date / Ship Date come as day/month/year.
	dateLayout = "02/01/2006"
)

// Column names after snake_casing the CSV header. The stock Superstore
// export carries more columns (Row ID, Ship Mode, City, ...); anything
// not listed here is ignored.
var requiredColumns = []string{
	"order_id",
	"order_date",
	"ship_date",
	"customer_id",
	"segment",
	"region",
	"category",
	"sub_category",
	"product_name",
	"sales",
}

// Load reads the CSV at path and runs the full preparation step:
// parse, derive calendar fields, build filter indexes, compute KPIs.
// A missing/unreadable file or bad header yields a *LoadError; any row
// that fails format parsing yields a *ParseError and the whole load
// fails. The returned Dataset is immutable and safe to share.
func Load(ctx context.Context, path string) (*Dataset, models.Metrics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, models.Metrics{}, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	records, err := Read(ctx, file)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
			return nil, models.Metrics{}, le
		}
		return nil, models.Metrics{}, err
	}

	return New(records), ComputeMetrics(records), nil
}

// Read parses CSV content into prepared records, preserving input
// order. Rows are parsed in batches fanned out over a bounded worker
// group; each worker writes to its own slot so ordering never depends
// on scheduling.
func Read(ctx context.Context, r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var records []models.Record
	batch := make([][]string, 0, batchSize)
	line := 1 // header was line 1

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		parsed, err := parseBatch(ctx, batch, cols, line-len(batch)+1)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		batch = batch[:0]
		return nil
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("read row: %w", err)}
		}
		line++
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &LoadError{Err: fmt.Errorf("no records found")}
	}
	return records, nil
}

type columnIndex map[string]int

func mapColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, h := range header {
		cols[toSnakeCase(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

// toSnakeCase converts "Sub-Category" → "sub_category".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func parseBatch(ctx context.Context, batch [][]string, cols columnIndex, firstLine int) ([]models.Record, error) {
	out := make([]models.Record, len(batch))

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for i, row := range batch {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := parseRecord(row, cols, firstLine+i)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseRecord(row []string, cols columnIndex, line int) (models.Record, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[cols[name]])
	}

	orderDate, err := time.Parse(dateLayout, field("order_date"))
	if err != nil {
		return models.Record{}, &ParseError{Line: line, Field: "order_date", Value: field("order_date"), Err: err}
	}

	shipDate, err := time.Parse(dateLayout, field("ship_date"))
	if err != nil {
		return models.Record{}, &ParseError{Line: line, Field: "ship_date", Value: field("ship_date"), Err: err}
	}

	sales, err := strconv.ParseFloat(field("sales"), 64)
	if err != nil {
		return models.Record{}, &ParseError{Line: line, Field: "sales", Value: field("sales"), Err: err}
	}

	rec := models.Record{
		OrderID:     field("order_id"),
		OrderDate:   orderDate,
		ShipDate:    shipDate,
		CustomerID:  field("customer_id"),
		Segment:     field("segment"),
		Region:      field("region"),
		Category:    field("category"),
		SubCategory: field("sub_category"),
		ProductName: field("product_name"),
		Sales:       sales,
	}
	derive(&rec)
	return rec, nil
}

// derive fills the calendar fields and shipping duration. ShippingDays
// may be negative when the source data is inconsistent; that is a
// signal, not an error.
func derive(rec *models.Record) {
	rec.Year = rec.OrderDate.Year()
	rec.Month = rec.OrderDate.Month().String()
	rec.Quarter = (int(rec.OrderDate.Month()) + 2) / 3
	rec.WeekDay = rec.OrderDate.Weekday().String()
	rec.ShippingDays = int(rec.ShipDate.Sub(rec.OrderDate).Hours() / 24)
}
