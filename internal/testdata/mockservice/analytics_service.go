package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"analytics-gateway/internal/model"
	"analytics-gateway/internal/oauth"
	"analytics-gateway/internal/service"
)

// AnalyticsService mocks service.AnalyticsService.
type AnalyticsService struct {
	mock.Mock
}

var _ service.AnalyticsService = &AnalyticsService{}

func (m *AnalyticsService) RunReport(ctx context.Context, creds oauth.Credentials, query model.ReportQuery) (model.APIResponse, error) {
	args := m.Called(ctx, creds, query)
	return args.Get(0).(model.APIResponse), args.Error(1)
}
