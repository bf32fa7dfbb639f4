package model

import "time"

// ReportQuery describes a GA4 report request. Zero dates mean "not supplied".
type ReportQuery struct {
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
	Metrics    []string
	Dimensions []string
	EventName  string
	// PageSize is the per-request limit, not a cap on the total rows.
	PageSize int
}

// FlattenedRow maps a dimension or metric header name to its value.
// Metric values are int64 or float64 when numeric, dimensions stay strings.
type FlattenedRow map[string]any

// ReportResult holds every row drained from all pages of a report.
type ReportResult struct {
	Rows             []FlattenedRow `json:"rows"`
	RowCount         int            `json:"row_count"`
	DimensionHeaders []string       `json:"dimension_headers"`
	MetricHeaders    []string       `json:"metric_headers"`
	Pages            int            `json:"-"`
}

// DateRange is the resolved calendar range of a report, ISO 8601 dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportMetadata accompanies a report in the success envelope.
type ReportMetadata struct {
	PropertyID string    `json:"property_id"`
	DateRange  DateRange `json:"date_range"`
}
