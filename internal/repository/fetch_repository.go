package repository

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"analytics-gateway/internal/model"
)

// FetchRepository stores the audit trail of report fetches.
type FetchRepository interface {
	// CreateBatch inserts multiple records in one ClickHouse batch.
	CreateBatch(ctx context.Context, records []model.FetchRecord) error
}

type fetchRepository struct {
	conn clickhouse.Conn
}

// NewFetchRepository creates a FetchRepository backed by ClickHouse.
func NewFetchRepository(conn clickhouse.Conn) FetchRepository {
	return &fetchRepository{conn: conn}
}

const insertFetchQuery = `INSERT INTO report_fetches (id, request_id, source, property_id, start_date, end_date, metrics, dimensions, pages, row_count, duration_ms, status, error, ts)`

func (r *fetchRepository) CreateBatch(ctx context.Context, records []model.FetchRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertFetchQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, rec := range records {
		if err := batch.Append(fetchRow(rec)...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func fetchRow(rec model.FetchRecord) []any {
	return []any{
		rec.ID,
		rec.RequestID,
		rec.Source,
		rec.PropertyID,
		rec.StartDate,
		rec.EndDate,
		emptyIfNil(rec.Metrics),
		emptyIfNil(rec.Dimensions),
		uint32(rec.Pages),
		uint64(rec.RowCount),
		uint64(rec.Duration.Milliseconds()),
		rec.Status,
		rec.Error,
		rec.Timestamp.UTC(),
	}
}

// emptyIfNil keeps ClickHouse Array columns from receiving nil.
func emptyIfNil(vals []string) []string {
	if vals == nil {
		return []string{}
	}
	return vals
}
