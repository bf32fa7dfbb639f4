package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"analytics-gateway/internal/model"
	"analytics-gateway/internal/testdata/mockclickhouse"
)

type FetchRepositoryTestSuite struct {
	suite.Suite

	repository *fetchRepository
	connMock   *mockclickhouse.Conn
	batchMock  *mockclickhouse.Batch
}

func TestFetchRepository(t *testing.T) {
	suite.Run(t, new(FetchRepositoryTestSuite))
}

func (s *FetchRepositoryTestSuite) SetupTest() {
	s.connMock = &mockclickhouse.Conn{}
	s.batchMock = &mockclickhouse.Batch{}
	s.repository = &fetchRepository{conn: s.connMock}
}

func (s *FetchRepositoryTestSuite) TearDownTest() {
	s.connMock.AssertExpectations(s.T())
	s.batchMock.AssertExpectations(s.T())
}

func (s *FetchRepositoryTestSuite) records() []model.FetchRecord {
	ts := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return []model.FetchRecord{
		{
			ID:         uuid.MustParse("7f1c3c52-45a8-4d3c-9c1f-0b8f2d5c1a11"),
			RequestID:  "req-1",
			Source:     "ga4",
			PropertyID: "123",
			StartDate:  "2024-12-31",
			EndDate:    "2024-12-31",
			Metrics:    []string{"activeUsers"},
			Pages:      2,
			RowCount:   15000,
			Duration:   1500 * time.Millisecond,
			Status:     model.FetchStatusSuccess,
			Timestamp:  ts,
		},
		{
			ID:         uuid.MustParse("0d7b9f7e-8f0a-4b6e-b0f4-5d6b9f4f2e22"),
			RequestID:  "req-2",
			Source:     "ga4",
			PropertyID: "456",
			Metrics:    []string{"sessions"},
			Dimensions: []string{"country"},
			Pages:      1,
			Status:     model.FetchStatusError,
			Error:      "GA4 API request failed: boom",
			Timestamp:  ts,
		},
	}
}

func (s *FetchRepositoryTestSuite) TestCreateBatch_EmptySlice_NoOp() {
	ctx := context.Background()

	s.NoError(s.repository.CreateBatch(ctx, nil))
	s.NoError(s.repository.CreateBatch(ctx, []model.FetchRecord{}))

	s.connMock.AssertNotCalled(s.T(), "PrepareBatch", mock.Anything, insertFetchQuery)
}

func (s *FetchRepositoryTestSuite) TestCreateBatch_PrepareBatchError() {
	expectedErr := errors.New("prepare batch error")
	s.connMock.On("PrepareBatch", mock.Anything, insertFetchQuery).Return(nil, expectedErr).Once()

	err := s.repository.CreateBatch(context.Background(), s.records())

	s.ErrorIs(err, expectedErr)
	s.ErrorContains(err, "prepare batch")
	s.batchMock.AssertNotCalled(s.T(), "Send")
}

func (s *FetchRepositoryTestSuite) TestCreateBatch_AppendErrorAborts() {
	records := s.records()
	expectedErr := errors.New("append error")

	s.connMock.On("PrepareBatch", mock.Anything, insertFetchQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append", fetchRow(records[0])...).Return(expectedErr).Once()
	s.batchMock.On("Abort").Return(nil).Once()

	err := s.repository.CreateBatch(context.Background(), records)

	s.ErrorIs(err, expectedErr)
	s.ErrorContains(err, "append batch")
	s.batchMock.AssertNotCalled(s.T(), "Send")
}

func (s *FetchRepositoryTestSuite) TestCreateBatch_SendError() {
	records := s.records()
	expectedErr := errors.New("send error")

	s.connMock.On("PrepareBatch", mock.Anything, insertFetchQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append", fetchRow(records[0])...).Return(nil).Once()
	s.batchMock.On("Append", fetchRow(records[1])...).Return(nil).Once()
	s.batchMock.On("Send").Return(expectedErr).Once()

	err := s.repository.CreateBatch(context.Background(), records)

	s.ErrorIs(err, expectedErr)
	s.ErrorContains(err, "send batch")
}

func (s *FetchRepositoryTestSuite) TestCreateBatch_Success() {
	records := s.records()

	s.connMock.On("PrepareBatch", mock.Anything, insertFetchQuery).Return(s.batchMock, nil).Once()
	s.batchMock.On("Append", fetchRow(records[0])...).Return(nil).Once()
	s.batchMock.On("Append", fetchRow(records[1])...).Return(nil).Once()
	s.batchMock.On("Send").Return(nil).Once()

	s.NoError(s.repository.CreateBatch(context.Background(), records))
}

func (s *FetchRepositoryTestSuite) TestFetchRow_Columns() {
	row := fetchRow(s.records()[0])

	s.Len(row, 14)
	s.Equal([]string{}, row[7], "nil dimensions are sent as an empty array")
	s.Equal(uint32(2), row[8])
	s.Equal(uint64(15000), row[9])
	s.Equal(uint64(1500), row[10])
}
