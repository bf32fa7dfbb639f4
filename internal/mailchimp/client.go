package mailchimp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	maxCount      = 1000
	listFields    = "lists.name,lists.stats.member_count"
	reportsFields = "reports.id,reports.campaign_title,reports.list_id,reports.send_time,reports.emails_sent," +
		"reports.opens.opens_total,reports.opens.open_rate,reports.clicks.clicks_total,reports.clicks.click_rate"
)

// Client calls the Mailchimp Marketing API v3 with an API key.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

// New creates a Client. baseURL may be empty, in which case it is derived
// from the data center suffix of apiKey ("<key>-us21").
func New(httpClient *http.Client, apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("mailchimp: api key is required")
	}
	if baseURL == "" {
		dc, err := DataCenter(apiKey)
		if err != nil {
			return nil, err
		}
		baseURL = "https://" + dc + ".api.mailchimp.com/3.0/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, apiKey: apiKey, baseURL: baseURL}, nil
}

// DataCenter extracts the data center from an API key.
func DataCenter(apiKey string) (string, error) {
	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return "", errors.New("mailchimp: api key has no data center suffix")
	}
	return apiKey[idx+1:], nil
}

// Lists returns every audience with its member count.
func (c *Client) Lists(ctx context.Context) ([]List, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(maxCount))
	params.Set("fields", listFields)

	var resp listsResponse
	if err := c.get(ctx, "lists", params, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// Reports returns campaign reports filtered by status ("sent" by default).
func (c *Client) Reports(ctx context.Context, status string, count int) ([]Report, error) {
	if status == "" {
		status = "sent"
	}
	if count <= 0 || count > maxCount {
		count = maxCount
	}
	params := url.Values{}
	params.Set("status", status)
	params.Set("count", strconv.Itoa(count))
	params.Set("fields", reportsFields)

	var resp reportsResponse
	if err := c.get(ctx, "reports", params, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth("anystring", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Detail: extractErrorDetail(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// extractErrorDetail reads the problem+json detail Mailchimp returns on errors.
func extractErrorDetail(body []byte) string {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &problem) != nil {
		return string(body)
	}
	if problem.Detail != "" {
		return problem.Detail
	}
	if problem.Title != "" {
		return problem.Title
	}
	return string(body)
}
