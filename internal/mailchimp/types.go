package mailchimp

import "fmt"

// List is an audience as returned by GET /lists.
type List struct {
	Name  string    `json:"name"`
	Stats ListStats `json:"stats"`
}

// ListStats carries the subset of list statistics the gateway requests.
type ListStats struct {
	MemberCount int `json:"member_count"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

// Report is a campaign report as returned by GET /reports.
type Report struct {
	ID            string  `json:"id"`
	CampaignTitle *string `json:"campaign_title"`
	ListID        *string `json:"list_id"`
	SendTime      *string `json:"send_time"`
	EmailsSent    *int    `json:"emails_sent"`
	Opens         *Opens  `json:"opens"`
	Clicks        *Clicks `json:"clicks"`
}

// Opens holds open statistics of a campaign report.
type Opens struct {
	OpensTotal *int     `json:"opens_total"`
	OpenRate   *float64 `json:"open_rate"`
}

// Clicks holds click statistics of a campaign report.
type Clicks struct {
	ClicksTotal *int     `json:"clicks_total"`
	ClickRate   *float64 `json:"click_rate"`
}

type reportsResponse struct {
	Reports []Report `json:"reports"`
}

// APIError represents a non-2xx Mailchimp response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailchimp: HTTP %d: %s", e.StatusCode, e.Detail)
}
