package mockworker

import (
	"github.com/stretchr/testify/mock"

	"analytics-gateway/internal/model"
)

// Worker mocks service.AuditWorker.
type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(record model.FetchRecord) {
	m.Called(record)
}

func (m *Worker) Shutdown() {
	m.Called()
}
