package model

// MailchimpAudience is a single audience (list) with its member count.
type MailchimpAudience struct {
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

// MailchimpAudienceResponse lists audiences and the sum of their members.
type MailchimpAudienceResponse struct {
	TotalSubscribers int                 `json:"total_subscribers"`
	Audiences        []MailchimpAudience `json:"audiences"`
}

// MailchimpCampaignSummary holds the headline figures of a sent campaign.
type MailchimpCampaignSummary struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	ListID      *string  `json:"list_id"`
	SendTime    *string  `json:"send_time"`
	EmailsSent  *int     `json:"emails_sent"`
	OpenRate    *float64 `json:"open_rate"`
	OpensTotal  *int     `json:"opens_total"`
	ClickRate   *float64 `json:"click_rate"`
	ClicksTotal *int     `json:"clicks_total"`
}
