package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"analytics-gateway/internal/ga4"
	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/metrics"
	"analytics-gateway/internal/model"
	"analytics-gateway/internal/oauth"
)

const (
	// MaxPageSize is the largest per-request limit the Data API accepts.
	MaxPageSize = 250000

	sourceGA4 = "ga4"
)

// DefaultMetrics is used when a report request names no metric.
var DefaultMetrics = []string{"activeUsers"}

// ReportRunner runs one report for one set of credentials.
type ReportRunner interface {
	RunReport(ctx context.Context, query model.ReportQuery) (model.ReportResult, error)
}

// AnalyticsConfig carries the outbound settings shared by every request.
type AnalyticsConfig struct {
	// TokenClient is used for the refresh-token grant; its Timeout bounds it.
	TokenClient *http.Client
	Report      ga4.Config
}

// AnalyticsService runs GA4 reports on behalf of a caller's credentials.
type AnalyticsService interface {
	RunReport(ctx context.Context, creds oauth.Credentials, query model.ReportQuery) (model.APIResponse, error)
}

type analyticsService struct {
	cfg       AnalyticsConfig
	worker    AuditWorker
	metrics   *metrics.Collector
	logger    *slog.Logger
	now       func() time.Time
	newRunner func(creds oauth.Credentials) ReportRunner
}

// NewAnalyticsService constructs an AnalyticsService. worker and collector
// may be no-ops; a nil logger falls back to slog.Default.
func NewAnalyticsService(cfg AnalyticsConfig, worker AuditWorker, collector *metrics.Collector, logger *slog.Logger) AnalyticsService {
	if worker == nil {
		worker = NewNopAuditWorker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &analyticsService{
		cfg:     cfg,
		worker:  worker,
		metrics: collector,
		logger:  logger,
		now:     time.Now,
	}
	s.newRunner = s.defaultRunner
	return s
}

// defaultRunner scopes a token provider and a fetcher to one request.
func (s *analyticsService) defaultRunner(creds oauth.Credentials) ReportRunner {
	tokens := oauth.NewTokenProvider(creds, s.cfg.TokenClient)
	return ga4.NewReportFetcher(tokens, s.cfg.Report)
}

// RunReport validates query, drains every report page and wraps the rows in
// the success envelope together with the resolved date range.
func (s *analyticsService) RunReport(ctx context.Context, creds oauth.Credentials, query model.ReportQuery) (model.APIResponse, error) {
	query, err := s.normalize(query)
	if err != nil {
		return model.APIResponse{}, err
	}

	requestID := RequestIDFrom(ctx)
	logger := s.logger.With(
		logging.Operation("ga4_run_report"),
		logging.Property(query.PropertyID),
		logging.RequestID(requestID),
	)

	started := time.Now()
	result, err := s.newRunner(creds).RunReport(ctx, query)
	took := time.Since(started)

	record := model.FetchRecord{
		ID:         uuid.New(),
		RequestID:  requestID,
		Source:     sourceGA4,
		PropertyID: query.PropertyID,
		StartDate:  ga4.FormatDate(query.StartDate),
		EndDate:    ga4.FormatDate(query.EndDate),
		Metrics:    query.Metrics,
		Dimensions: query.Dimensions,
		Pages:      result.Pages,
		RowCount:   result.RowCount,
		Duration:   took,
		Status:     model.FetchStatusSuccess,
		Timestamp:  s.now().UTC(),
	}

	if err != nil {
		outcome := metrics.OutcomeError
		var tokenErr *oauth.TokenExchangeError
		if errors.As(err, &tokenErr) {
			outcome = metrics.OutcomeTokenError
		}
		s.metrics.ObserveReport(outcome, 0, 0, took)

		record.Status = model.FetchStatusError
		record.Error = err.Error()
		s.worker.Enqueue(record)

		logger.Warn("report fetch failed", slog.Duration(logging.KeyDuration, took), logging.Err(err))
		return model.APIResponse{}, err
	}

	s.metrics.ObserveReport(metrics.OutcomeSuccess, result.RowCount, result.Pages, took)
	s.worker.Enqueue(record)

	logger.Info("report fetched",
		slog.Int("rows", result.RowCount),
		slog.Int("pages", result.Pages),
		slog.Duration(logging.KeyDuration, took))

	return model.APIResponse{
		Success: true,
		Data:    result,
		Metadata: model.ReportMetadata{
			PropertyID: query.PropertyID,
			DateRange: model.DateRange{
				Start: record.StartDate,
				End:   record.EndDate,
			},
		},
	}, nil
}

// normalize applies defaults, resolves missing dates and rejects invalid input.
func (s *analyticsService) normalize(query model.ReportQuery) (model.ReportQuery, error) {
	query.PropertyID = strings.TrimSpace(query.PropertyID)
	if query.PropertyID == "" {
		return query, &ValidationError{Message: "property_id is required"}
	}
	if !isDigits(query.PropertyID) {
		return query, &ValidationError{Message: "property_id must be numeric"}
	}

	if query.PageSize < 0 || query.PageSize > MaxPageSize {
		return query, &ValidationError{Message: fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize)}
	}

	if len(query.Metrics) == 0 {
		query.Metrics = append([]string(nil), DefaultMetrics...)
	}
	for _, name := range query.Metrics {
		if strings.TrimSpace(name) == "" {
			return query, &ValidationError{Message: "metric names must not be empty"}
		}
	}
	for _, name := range query.Dimensions {
		if strings.TrimSpace(name) == "" {
			return query, &ValidationError{Message: "dimension names must not be empty"}
		}
	}

	query = ga4.ResolveDates(query, s.now())
	if query.StartDate.After(query.EndDate) {
		return query, &ValidationError{Message: "start_date must not be after end_date"}
	}
	return query, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
