package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/hierarchy"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
)

const (
	defaultMaxDepth         = 3
	defaultRecentWindowDays = 30
)

// Options carries the traversal and windowing tunables.
type Options struct {
	MaxDepth         int
	RecentWindowDays int
}

type HierarchyServiceImpl struct {
	users   directory.DirectoryRepository
	reports wellness.ReportRepository
	opts    Options
	logger  *slog.Logger
}

func NewHierarchyService(users directory.DirectoryRepository, reports wellness.ReportRepository, opts Options) hierarchy.HierarchyService {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = defaultMaxDepth
	}
	if opts.RecentWindowDays < 1 {
		opts.RecentWindowDays = defaultRecentWindowDays
	}
	return &HierarchyServiceImpl{
		users:   users,
		reports: reports,
		opts:    opts,
		logger:  slog.Default(),
	}
}

// BuildHierarchy resolves the reporting tree under managerID. Depth is
// clamped to the configured maximum; an unknown manager yields an empty
// tree. Result order follows store enumeration order.
func (s *HierarchyServiceImpl) BuildHierarchy(ctx context.Context, managerID string, maxDepth int) ([]hierarchy.HierarchyNode, error) {
	if maxDepth < 1 || maxDepth > s.opts.MaxDepth {
		maxDepth = s.opts.MaxDepth
	}

	visited := map[string]bool{managerID: true}
	return s.buildSubtree(ctx, managerID, 0, maxDepth, visited)
}

func (s *HierarchyServiceImpl) buildSubtree(ctx context.Context, managerID string, depth, maxDepth int, visited map[string]bool) ([]hierarchy.HierarchyNode, error) {
	if depth >= maxDepth {
		return []hierarchy.HierarchyNode{}, nil
	}

	reports, err := s.users.ListActiveByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list direct reports of %s: %w", managerID, err)
	}

	nodes := make([]hierarchy.HierarchyNode, 0, len(reports))
	for _, u := range reports {
		children := []hierarchy.HierarchyNode{}
		if visited[u.ID] {
			// Malformed graph: this user was already expanded as a
			// manager further up. Surface it and stop descending.
			s.logger.Warn("hierarchy cycle guard triggered",
				slog.String("user_id", u.ID),
				slog.String("manager_id", managerID))
		} else {
			visited[u.ID] = true
			children, err = s.buildSubtree(ctx, u.ID, depth+1, maxDepth, visited)
			if err != nil {
				return nil, err
			}
		}

		nodes = append(nodes, hierarchy.HierarchyNode{
			User:       directory.ToUserResponse(u),
			Children:   children,
			Level:      depth,
			IsExpanded: depth < 2,
		})
	}

	return nodes, nil
}

// AllSubordinates walks the manager graph breadth-first and returns the
// transitive closure below managerID, excluding the manager. A visited set
// keeps malformed (cyclic) graphs from re-expanding a node; store failures
// abort the whole resolution rather than returning a partial team.
func (s *HierarchyServiceImpl) AllSubordinates(ctx context.Context, managerID string) ([]directory.User, error) {
	visited := map[string]bool{managerID: true}
	seen := map[string]bool{}
	var result []directory.User

	queue := []string{managerID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		subs, err := s.users.ListActiveByManager(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("resolve subordinates of %s: %w", current, err)
		}

		for _, sub := range subs {
			if sub.ID == managerID {
				continue
			}
			if !seen[sub.ID] {
				seen[sub.ID] = true
				result = append(result, sub)
			}
			// Only descend where the cache says there is a subtree.
			if len(sub.DirectReports) == 0 {
				continue
			}
			if visited[sub.ID] {
				s.logger.Warn("subordinate walk cycle guard triggered",
					slog.String("user_id", sub.ID),
					slog.String("root_manager_id", managerID))
				continue
			}
			visited[sub.ID] = true
			queue = append(queue, sub.ID)
		}
	}

	return result, nil
}

// CanAccess decides whether viewer may see target's wellness data. Missing
// or inactive records fail closed; only store failures return an error.
// Rule order is a deliberate precedence policy.
func (s *HierarchyServiceImpl) CanAccess(ctx context.Context, viewerID string, targetID string) (bool, error) {
	// Rule 1: self-access needs no lookups.
	if viewerID == targetID {
		return true, nil
	}

	viewer, err := s.users.GetByID(ctx, viewerID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load viewer %s: %w", viewerID, err)
	}

	target, err := s.users.GetByID(ctx, targetID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load target %s: %w", targetID, err)
	}

	if !viewer.IsActive || !target.IsActive {
		return false, nil
	}

	// Rule 2: HR, admin and employer see the whole company.
	if viewer.IsCompanyWideViewer() {
		return true, nil
	}

	// Rule 3: direct manager, derived from the authoritative pointer.
	if target.ManagerID != nil && *target.ManagerID == viewerID {
		return true, nil
	}

	// Rule 4: skip-level ancestor.
	if viewer.SkipLevelAccess && target.InReportingChain(viewerID) {
		return true, nil
	}

	// Rule 5: department head within the same department.
	if viewer.IsDepartmentHead &&
		viewer.Department != nil && target.Department != nil &&
		*viewer.Department == *target.Department {
		return true, nil
	}

	return false, nil
}

// PermissionsForUser loads the user and derives their capability set.
func (s *HierarchyServiceImpl) PermissionsForUser(ctx context.Context, userID string) (hierarchy.ManagerPermissions, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return hierarchy.ManagerPermissions{}, hierarchy.ErrViewerNotFound
	}
	if err != nil {
		return hierarchy.ManagerPermissions{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	return hierarchy.PermissionsFor(u), nil
}

// FilteredReports resolves the employee-id set the viewer may see, pulls
// their reports inside the window, and returns them newest first.
func (s *HierarchyServiceImpl) FilteredReports(ctx context.Context, viewerID string, companyID string, windowDays int) ([]wellness.Report, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return nil, hierarchy.ErrViewerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load viewer %s: %w", viewerID, err)
	}

	perms := hierarchy.PermissionsFor(viewer)

	var accessible []string
	switch {
	case viewer.IsCompanyWideViewer():
		employees, err := s.users.ListActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("list company %s: %w", companyID, err)
		}
		accessible = make([]string, 0, len(employees))
		for _, e := range employees {
			accessible = append(accessible, e.ID)
		}
	case viewer.IsManager() && perms.CanViewTeamReports:
		subs, err := s.AllSubordinates(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		accessible = make([]string, 0, len(subs)+1)
		accessible = append(accessible, viewerID)
		for _, sub := range subs {
			accessible = append(accessible, sub.ID)
		}
	default:
		accessible = []string{viewerID}
	}

	if windowDays < 1 {
		windowDays = s.opts.RecentWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	reports, err := s.fetchReports(ctx, companyID, accessible, since)
	if err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	return reports, nil
}

// fetchReports chunks the id set by the store's batch limit and merges the
// results. Any batch failure aborts the whole fetch: a silently partial
// report set would under-report risk downstream.
func (s *HierarchyServiceImpl) fetchReports(ctx context.Context, companyID string, employeeIDs []string, since time.Time) ([]wellness.Report, error) {
	limit := s.reports.BatchLimit()
	if limit < 1 {
		limit = 1
	}

	merged := make([]wellness.Report, 0)
	for start := 0; start < len(employeeIDs); start += limit {
		end := min(start+limit, len(employeeIDs))
		batch, err := s.reports.ListRecentByEmployees(ctx, companyID, employeeIDs[start:end], since)
		if err != nil {
			return nil, fmt.Errorf("query reports: %w", err)
		}
		merged = append(merged, batch...)
	}

	return merged, nil
}
