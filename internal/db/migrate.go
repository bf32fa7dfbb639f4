package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS report_fetches
(
	id          UUID,
	request_id  String,
	source      LowCardinality(String),
	property_id String,
	start_date  String,
	end_date    String,
	metrics     Array(String),
	dimensions  Array(String),
	pages       UInt32,
	row_count   UInt64,
	duration_ms UInt64,
	status      LowCardinality(String),
	error       String,
	ts          DateTime64(3, 'UTC')
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(ts)
ORDER BY (source, property_id, ts)
TTL toDateTime(ts) + INTERVAL 90 DAY;
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
