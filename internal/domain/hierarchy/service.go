package hierarchy

import (
	"context"

	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
)

// HierarchyService is the org-hierarchy and access-control core. Every
// operation is request-scoped and read-only against the stores; store
// failures propagate as errors and never yield partial results.
type HierarchyService interface {
	// BuildHierarchy resolves the bounded-depth reporting tree under a
	// manager. Unknown managers yield an empty tree, not an error.
	BuildHierarchy(ctx context.Context, managerID string, maxDepth int) ([]HierarchyNode, error)

	// AllSubordinates computes the transitive closure of everyone below
	// managerID, any depth, excluding the manager. Cycle-safe.
	AllSubordinates(ctx context.Context, managerID string) ([]directory.User, error)

	// CanAccess decides whether viewer may see target's wellness data.
	// A false result is a normal denial; errors are store failures only.
	CanAccess(ctx context.Context, viewerID string, targetID string) (bool, error)

	// PermissionsForUser loads the viewer and derives their capability set.
	PermissionsForUser(ctx context.Context, userID string) (ManagerPermissions, error)

	// FilteredReports returns every report the viewer is authorized to
	// see within the window, newest first.
	FilteredReports(ctx context.Context, viewerID string, companyID string, windowDays int) ([]wellness.Report, error)

	// TeamStatsFor rolls up the last 30 days of reports across a
	// manager's whole subtree. An empty team yields zero stats.
	TeamStatsFor(ctx context.Context, managerID string) (TeamStats, error)

	// Analytics computes company-wide per-team, per-department and
	// per-tier rollups for a viewer with analytics access.
	Analytics(ctx context.Context, viewerID string, companyID string) (Analytics, error)
}
