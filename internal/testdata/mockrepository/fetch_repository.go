package mockrepository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"analytics-gateway/internal/model"
	"analytics-gateway/internal/repository"
)

// Repository mocks repository.FetchRepository.
type Repository struct {
	mock.Mock
}

var _ repository.FetchRepository = &Repository{}

func (m *Repository) CreateBatch(ctx context.Context, records []model.FetchRecord) error {
	return m.Called(ctx, records).Error(0)
}
