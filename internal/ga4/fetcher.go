package ga4

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"

	"analytics-gateway/internal/model"
)

const (
	DefaultBaseURL     = "https://analyticsdata.googleapis.com/"
	DefaultPageSize    = 10000
	DefaultPageTimeout = 30 * time.Second

	dateLayout     = "2006-01-02"
	eventNameField = "eventName"
)

// AccessTokenProvider supplies the bearer token sent with every page request.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context, forceRefresh bool) (string, error)
}

// Config controls where and how report pages are requested.
type Config struct {
	BaseURL string
	// Transport is the shared outbound connection pool; nil uses http.DefaultTransport.
	Transport       http.RoundTripper
	PageTimeout     time.Duration
	DefaultPageSize int
}

// ReportFetcher runs paginated GA4 reports for one request scope.
type ReportFetcher struct {
	tokens AccessTokenProvider
	cfg    Config
	now    func() time.Time
}

// NewReportFetcher builds a fetcher authenticated by tokens.
func NewReportFetcher(tokens AccessTokenProvider, cfg Config) *ReportFetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = DefaultPageTimeout
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultPageSize
	}
	return &ReportFetcher{tokens: tokens, cfg: cfg, now: time.Now}
}

// ResolveDates fills each missing date bound of query, independently, with
// the calendar day before now in now's location.
func ResolveDates(query model.ReportQuery, now time.Time) model.ReportQuery {
	y, m, d := now.AddDate(0, 0, -1).Date()
	yesterday := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if query.StartDate.IsZero() {
		query.StartDate = yesterday
	}
	if query.EndDate.IsZero() {
		query.EndDate = yesterday
	}
	return query
}

// FormatDate renders t as an ISO 8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// RunReport drains every page of query and returns all rows.
func (f *ReportFetcher) RunReport(ctx context.Context, query model.ReportQuery) (model.ReportResult, error) {
	query = ResolveDates(query, f.now())
	body := buildRequest(query)

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = f.cfg.DefaultPageSize
	}

	src := &tokenSource{ctx: ctx, tokens: f.tokens}
	svc, err := analyticsdata.NewService(ctx,
		option.WithHTTPClient(&http.Client{
			Transport: &oauth2.Transport{Source: src, Base: f.cfg.Transport},
			Timeout:   f.cfg.PageTimeout,
		}),
		option.WithEndpoint(f.cfg.BaseURL),
	)
	if err != nil {
		return model.ReportResult{}, newReportFetchError(query.PropertyID, 0, 0, err)
	}

	property := "properties/" + query.PropertyID
	result := model.ReportResult{Rows: []model.FlattenedRow{}}
	var offset int64

	for {
		req := *body
		req.Limit = int64(pageSize)
		req.Offset = offset
		req.ForceSendFields = []string{"Limit", "Offset"}

		result.Pages++
		resp, err := svc.Properties.RunReport(property, &req).Context(ctx).Do()
		if err != nil {
			if src.err != nil {
				return model.ReportResult{}, src.err
			}
			return model.ReportResult{}, newReportFetchError(query.PropertyID, result.Pages, offset, err)
		}

		page := Flatten(resp)
		// Headers are assumed stable across pages and are taken from the first one.
		if result.Pages == 1 {
			result.DimensionHeaders = page.DimensionHeaders
			result.MetricHeaders = page.MetricHeaders
		}
		result.Rows = append(result.Rows, page.Rows...)
		offset += int64(page.RowCount)

		if page.RowCount == 0 || offset >= resp.RowCount {
			break
		}
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

func buildRequest(query model.ReportQuery) *analyticsdata.RunReportRequest {
	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: FormatDate(query.StartDate),
			EndDate:   FormatDate(query.EndDate),
		}},
	}
	for _, name := range query.Metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: name})
	}
	for _, name := range query.Dimensions {
		req.Dimensions = append(req.Dimensions, &analyticsdata.Dimension{Name: name})
	}
	if query.EventName != "" {
		req.DimensionFilter = &analyticsdata.FilterExpression{
			Filter: &analyticsdata.Filter{
				FieldName: eventNameField,
				StringFilter: &analyticsdata.StringFilter{
					MatchType:     "EXACT",
					Value:         query.EventName,
					CaseSensitive: false,
				},
			},
		}
	}
	return req
}

// tokenSource feeds provider tokens to oauth2.Transport, remembering a token
// failure so it is not mistaken for a reporting API failure.
type tokenSource struct {
	ctx    context.Context
	tokens AccessTokenProvider
	err    error
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.tokens.AccessToken(s.ctx, false)
	if err != nil {
		s.err = err
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
