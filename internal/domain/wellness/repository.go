package wellness

import (
	"context"
	"time"
)

// ReportRepository is the report store query surface. The store caps the
// size of the employee-id membership predicate; callers chunk larger sets
// and merge (the hierarchy service owns that batching).
type ReportRepository interface {
	// ListRecentByEmployees returns reports for the given employees in the
	// company created at or after since. The id slice must not exceed the
	// store's batch limit; ErrBatchTooLarge otherwise.
	ListRecentByEmployees(ctx context.Context, companyID string, employeeIDs []string, since time.Time) ([]Report, error)
	// BatchLimit reports the store's maximum id-set size per query.
	BatchLimit() int
}
