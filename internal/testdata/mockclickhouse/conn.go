package mockclickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

// Conn mocks a ClickHouse connection.
type Conn struct {
	mock.Mock
}

var _ clickhouse.Conn = &Conn{}

func (m *Conn) Exec(ctx context.Context, query string, args ...any) error {
	callArgs := append([]any{ctx, query}, args...)
	return m.Called(callArgs...).Error(0)
}

func (m *Conn) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	args := m.Called(ctx, query)
	if batch, ok := args.Get(0).(driver.Batch); ok {
		return batch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Conn) AsyncInsert(ctx context.Context, query string, wait bool) error {
	return m.Called(ctx, query, wait).Error(0)
}

func (m *Conn) Close() error {
	return m.Called().Error(0)
}

func (m *Conn) Contributors() []string {
	return m.Called().Get(0).([]string)
}

func (m *Conn) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Conn) ServerVersion() (*driver.ServerVersion, error) {
	args := m.Called()
	version, _ := args.Get(0).(*driver.ServerVersion)
	return version, args.Error(1)
}

func (m *Conn) Select(ctx context.Context, dest any, query string, args ...any) error {
	return m.Called(ctx, dest, query, args).Error(0)
}

func (m *Conn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	callArgs := m.Called(ctx, query, args)
	rows, _ := callArgs.Get(0).(driver.Rows)
	return rows, callArgs.Error(1)
}

func (m *Conn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	row, _ := m.Called(ctx, query, args).Get(0).(driver.Row)
	return row
}

func (m *Conn) Stats() driver.Stats {
	return m.Called().Get(0).(driver.Stats)
}
