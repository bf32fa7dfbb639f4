package model

import (
	"time"

	"github.com/google/uuid"
)

// Fetch statuses recorded in the audit log.
const (
	FetchStatusSuccess = "success"
	FetchStatusError   = "error"
)

// FetchRecord describes one gateway report fetch. It never carries report
// rows or credentials.
type FetchRecord struct {
	ID         uuid.UUID
	RequestID  string
	Source     string
	PropertyID string
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
	Pages      int
	RowCount   int
	Duration   time.Duration
	Status     string
	Error      string
	Timestamp  time.Time
}
