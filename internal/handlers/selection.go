package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"superstore-dashboard/internal/errors"
	"superstore-dashboard/internal/models"
)

// parseSelection reads a FilterSelection from query parameters.
// Multi-select fields accept repeated parameters and comma-separated
// lists interchangeably; a missing or empty parameter means no filter.
// A non-integer year is a validation error; a year that simply matches
// nothing is a valid (empty) selection.
func parseSelection(r *http.Request) (models.FilterSelection, error) {
	q := r.URL.Query()

	sel := models.FilterSelection{
		Categories: splitMulti(q["categories"]),
		Regions:    splitMulti(q["regions"]),
	}

	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return models.FilterSelection{}, errors.ValidationWrap(err, "year must be an integer")
		}
		sel.Year = year
	}

	return sel, nil
}

func splitMulti(params []string) []string {
	var out []string
	for _, p := range params {
		for _, v := range strings.Split(p, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
