package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"analytics-gateway/internal/mailchimp"
	"analytics-gateway/internal/metrics"
)

type mockMailchimpAPI struct {
	mock.Mock
}

func (m *mockMailchimpAPI) Lists(ctx context.Context) ([]mailchimp.List, error) {
	args := m.Called(ctx)
	lists, _ := args.Get(0).([]mailchimp.List)
	return lists, args.Error(1)
}

func (m *mockMailchimpAPI) Reports(ctx context.Context, status string, count int) ([]mailchimp.Report, error) {
	args := m.Called(ctx, status, count)
	reports, _ := args.Get(0).([]mailchimp.Report)
	return reports, args.Error(1)
}

type MailchimpServiceTestSuite struct {
	suite.Suite

	api     *mockMailchimpAPI
	service MailchimpService
}

func TestMailchimpServiceSuite(t *testing.T) {
	suite.Run(t, new(MailchimpServiceTestSuite))
}

func (s *MailchimpServiceTestSuite) SetupTest() {
	s.api = &mockMailchimpAPI{}
	s.service = NewMailchimpService(s.api, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *MailchimpServiceTestSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

func (s *MailchimpServiceTestSuite) TestAudiences_SumsMemberCounts() {
	s.api.On("Lists", mock.Anything).Return([]mailchimp.List{
		{Name: "Newsletter", Stats: mailchimp.ListStats{MemberCount: 120}},
		{Name: "Customers", Stats: mailchimp.ListStats{MemberCount: 30}},
		{Name: "Empty"},
	}, nil).Once()

	resp, err := s.service.Audiences(context.Background())

	s.Require().NoError(err)
	s.Equal(150, resp.TotalSubscribers)
	s.Len(resp.Audiences, 3)
	s.Equal("Customers", resp.Audiences[1].Name)
	s.Equal(30, resp.Audiences[1].MemberCount)
	s.Equal(0, resp.Audiences[2].MemberCount)
}

func (s *MailchimpServiceTestSuite) TestAudiences_NoListsIsEmptyNotNil() {
	s.api.On("Lists", mock.Anything).Return(nil, nil).Once()

	resp, err := s.service.Audiences(context.Background())

	s.Require().NoError(err)
	s.NotNil(resp.Audiences)
	s.Zero(resp.TotalSubscribers)
}

func (s *MailchimpServiceTestSuite) TestAudiences_UpstreamError() {
	apiErr := &mailchimp.APIError{StatusCode: 401, Detail: "API Key Invalid"}
	s.api.On("Lists", mock.Anything).Return(nil, apiErr).Once()

	_, err := s.service.Audiences(context.Background())

	var upstreamErr *UpstreamError
	s.Require().ErrorAs(err, &upstreamErr)
	s.Equal("mailchimp", upstreamErr.Upstream)
	s.ErrorIs(err, apiErr)
}

func (s *MailchimpServiceTestSuite) TestCampaignSummaries_MapsReports() {
	title, listID, sent := "Spring sale", "list-1", "2025-03-01T10:00:00+00:00"
	emails, opens, clicks := 1000, 420, 37
	openRate, clickRate := 0.42, 0.037

	s.api.On("Reports", mock.Anything, "sent", 1000).Return([]mailchimp.Report{
		{
			ID:            "c1",
			CampaignTitle: &title,
			ListID:        &listID,
			SendTime:      &sent,
			EmailsSent:    &emails,
			Opens:         &mailchimp.Opens{OpensTotal: &opens, OpenRate: &openRate},
			Clicks:        &mailchimp.Clicks{ClicksTotal: &clicks, ClickRate: &clickRate},
		},
		{ID: "c2"},
	}, nil).Once()

	summaries, err := s.service.CampaignSummaries(context.Background())

	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal("c1", summaries[0].ID)
	s.Equal(&title, summaries[0].Name)
	s.Equal(&openRate, summaries[0].OpenRate)
	s.Equal(&clicks, summaries[0].ClicksTotal)
	s.Nil(summaries[1].Name)
	s.Nil(summaries[1].OpenRate)
	s.Nil(summaries[1].ClicksTotal)
}

func (s *MailchimpServiceTestSuite) TestCampaignSummaries_UpstreamError() {
	s.api.On("Reports", mock.Anything, "sent", 1000).Return(nil, errors.New("connection reset")).Once()

	_, err := s.service.CampaignSummaries(context.Background())

	s.IsType(&UpstreamError{}, err)
	s.EqualError(err, "mailchimp request failed: connection reset")
}

func (s *MailchimpServiceTestSuite) TestNotConfigured() {
	svc := NewMailchimpService(nil, nil, nil)

	_, err := svc.Audiences(context.Background())
	s.IsType(&ConfigurationError{}, err)

	_, err = svc.CampaignSummaries(context.Background())
	s.IsType(&ConfigurationError{}, err)
	s.EqualError(err, "MAILCHIMP_API_KEY is not configured")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestIDFrom(ctx); got != "abc" {
		t.Fatalf("RequestIDFrom = %q, want abc", got)
	}
	if got := RequestIDFrom(context.Background()); got != "" {
		t.Fatalf("RequestIDFrom on empty context = %q", got)
	}
}
