package ga4

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ReportFetchError reports a failed runReport call on any page.
type ReportFetchError struct {
	PropertyID string
	Page       int
	Offset     int64
	// StatusCode is the reporting API's HTTP status, 0 on transport failures.
	StatusCode int
	Err        error
}

func (e *ReportFetchError) Error() string {
	return fmt.Sprintf("GA4 API request failed: %v", e.Err)
}

func (e *ReportFetchError) Unwrap() error {
	return e.Err
}

func newReportFetchError(propertyID string, page int, offset int64, err error) *ReportFetchError {
	fetchErr := &ReportFetchError{
		PropertyID: propertyID,
		Page:       page,
		Offset:     offset,
		Err:        err,
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		fetchErr.StatusCode = apiErr.Code
	}
	return fetchErr
}
