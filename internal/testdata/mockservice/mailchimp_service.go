package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"analytics-gateway/internal/model"
	"analytics-gateway/internal/service"
)

// MailchimpService mocks service.MailchimpService.
type MailchimpService struct {
	mock.Mock
}

var _ service.MailchimpService = &MailchimpService{}

func (m *MailchimpService) Audiences(ctx context.Context) (model.MailchimpAudienceResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.MailchimpAudienceResponse), args.Error(1)
}

func (m *MailchimpService) CampaignSummaries(ctx context.Context) ([]model.MailchimpCampaignSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]model.MailchimpCampaignSummary)
	return summaries, args.Error(1)
}
