package service

import (
	"context"
	"log/slog"

	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/mailchimp"
	"analytics-gateway/internal/metrics"
	"analytics-gateway/internal/model"
)

const (
	campaignStatusSent = "sent"
	campaignCount      = 1000
)

// MailchimpAPI is the subset of the Mailchimp client used by the service.
type MailchimpAPI interface {
	Lists(ctx context.Context) ([]mailchimp.List, error)
	Reports(ctx context.Context, status string, count int) ([]mailchimp.Report, error)
}

// MailchimpService exposes audience and campaign figures.
type MailchimpService interface {
	Audiences(ctx context.Context) (model.MailchimpAudienceResponse, error)
	CampaignSummaries(ctx context.Context) ([]model.MailchimpCampaignSummary, error)
}

type mailchimpService struct {
	client  MailchimpAPI
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewMailchimpService constructs a MailchimpService. A nil client means no
// API key is configured and every call fails with a ConfigurationError.
func NewMailchimpService(client MailchimpAPI, collector *metrics.Collector, logger *slog.Logger) MailchimpService {
	if logger == nil {
		logger = slog.Default()
	}
	return &mailchimpService{
		client:  client,
		metrics: collector,
		logger:  logger.With(logging.Upstream(metrics.UpstreamMailchimp)),
	}
}

// Audiences lists every audience and sums their member counts.
func (s *mailchimpService) Audiences(ctx context.Context) (model.MailchimpAudienceResponse, error) {
	if s.client == nil {
		return model.MailchimpAudienceResponse{}, errMailchimpNotConfigured()
	}

	lists, err := s.client.Lists(ctx)
	if err != nil {
		return model.MailchimpAudienceResponse{}, s.upstreamFailure(ctx, "mailchimp_audiences", err)
	}
	s.metrics.ObserveUpstream(metrics.UpstreamMailchimp, metrics.OutcomeSuccess)

	resp := model.MailchimpAudienceResponse{Audiences: make([]model.MailchimpAudience, 0, len(lists))}
	for _, list := range lists {
		resp.TotalSubscribers += list.Stats.MemberCount
		resp.Audiences = append(resp.Audiences, model.MailchimpAudience{
			Name:        list.Name,
			MemberCount: list.Stats.MemberCount,
		})
	}
	return resp, nil
}

// CampaignSummaries returns the headline figures of sent campaigns.
func (s *mailchimpService) CampaignSummaries(ctx context.Context) ([]model.MailchimpCampaignSummary, error) {
	if s.client == nil {
		return nil, errMailchimpNotConfigured()
	}

	reports, err := s.client.Reports(ctx, campaignStatusSent, campaignCount)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "mailchimp_campaigns", err)
	}
	s.metrics.ObserveUpstream(metrics.UpstreamMailchimp, metrics.OutcomeSuccess)

	summaries := make([]model.MailchimpCampaignSummary, 0, len(reports))
	for _, r := range reports {
		summary := model.MailchimpCampaignSummary{
			ID:         r.ID,
			Name:       r.CampaignTitle,
			ListID:     r.ListID,
			SendTime:   r.SendTime,
			EmailsSent: r.EmailsSent,
		}
		if r.Opens != nil {
			summary.OpenRate = r.Opens.OpenRate
			summary.OpensTotal = r.Opens.OpensTotal
		}
		if r.Clicks != nil {
			summary.ClickRate = r.Clicks.ClickRate
			summary.ClicksTotal = r.Clicks.ClicksTotal
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *mailchimpService) upstreamFailure(ctx context.Context, op string, err error) error {
	s.metrics.ObserveUpstream(metrics.UpstreamMailchimp, metrics.OutcomeError)
	s.logger.Warn("mailchimp call failed",
		logging.Operation(op),
		logging.RequestID(RequestIDFrom(ctx)),
		logging.Err(err))
	return &UpstreamError{Upstream: metrics.UpstreamMailchimp, Err: err}
}

func errMailchimpNotConfigured() error {
	return &ConfigurationError{Message: "MAILCHIMP_API_KEY is not configured"}
}
