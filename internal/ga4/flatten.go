package ga4

import (
	"strconv"
	"strings"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"

	"analytics-gateway/internal/model"
)

// Page is one flattened runReport response.
type Page struct {
	Rows             []model.FlattenedRow
	DimensionHeaders []string
	MetricHeaders    []string
	RowCount         int
}

// Flatten pairs header names positionally with each row's values. When a row
// has more or fewer values than headers, pairing stops at the shorter list.
func Flatten(resp *analyticsdata.RunReportResponse) Page {
	page := Page{
		Rows:             []model.FlattenedRow{},
		DimensionHeaders: []string{},
		MetricHeaders:    []string{},
	}
	if resp == nil {
		return page
	}

	for _, h := range resp.DimensionHeaders {
		if h != nil {
			page.DimensionHeaders = append(page.DimensionHeaders, h.Name)
		}
	}
	for _, h := range resp.MetricHeaders {
		if h != nil {
			page.MetricHeaders = append(page.MetricHeaders, h.Name)
		}
	}

	for _, row := range resp.Rows {
		flat := make(model.FlattenedRow, len(page.DimensionHeaders)+len(page.MetricHeaders))
		if row != nil {
			for i, v := range row.DimensionValues {
				if i >= len(page.DimensionHeaders) {
					break
				}
				flat[page.DimensionHeaders[i]] = dimensionValue(v)
			}
			for i, v := range row.MetricValues {
				if i >= len(page.MetricHeaders) {
					break
				}
				flat[page.MetricHeaders[i]] = CoerceMetric(metricValue(v))
			}
		}
		page.Rows = append(page.Rows, flat)
	}

	page.RowCount = len(page.Rows)
	return page
}

// CoerceMetric converts a metric string to float64 when it contains a decimal
// point, to int64 otherwise, and returns it unchanged when parsing fails.
func CoerceMetric(v string) any {
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}

func dimensionValue(v *analyticsdata.DimensionValue) string {
	if v == nil {
		return ""
	}
	return v.Value
}

func metricValue(v *analyticsdata.MetricValue) string {
	if v == nil {
		return ""
	}
	return v.Value
}
