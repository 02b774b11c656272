package directory

import "context"

// DirectoryRepository is the query surface the hierarchy core needs from the
// user store: equality lookups only, no search.
type DirectoryRepository interface {
	// GetByID returns the user or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (User, error)
	// ListActiveByManager returns all active users whose ManagerID equals
	// managerID, in store enumeration order. Unknown managers yield an
	// empty slice, not an error.
	ListActiveByManager(ctx context.Context, managerID string) ([]User, error)
	// ListActiveByCompany returns all active users in the company.
	ListActiveByCompany(ctx context.Context, companyID string) ([]User, error)

	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, companyID string, email string) (bool, error)

	// UpdateManager rewrites the authoritative pointer and the recomputed
	// reporting chain in one statement.
	UpdateManager(ctx context.Context, id string, managerID *string, reportingChain []string) error
	// AddDirectReport and RemoveDirectReport maintain the denormalized
	// direct-report cache on a manager row.
	AddDirectReport(ctx context.Context, managerID string, employeeID string) error
	RemoveDirectReport(ctx context.Context, managerID string, employeeID string) error
}
