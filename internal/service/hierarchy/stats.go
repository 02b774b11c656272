package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/hierarchy"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
	"golang.org/x/sync/errgroup"
)

// TeamStatsFor rolls up the manager's whole subtree over the recent window.
// A manager with no subordinates gets zero-valued stats, never an error.
func (s *HierarchyServiceImpl) TeamStatsFor(ctx context.Context, managerID string) (hierarchy.TeamStats, error) {
	manager, err := s.users.GetByID(ctx, managerID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return hierarchy.TeamStats{}, hierarchy.ErrManagerNotFound
	}
	if err != nil {
		return hierarchy.TeamStats{}, fmt.Errorf("load manager %s: %w", managerID, err)
	}

	return s.teamStats(ctx, manager)
}

func (s *HierarchyServiceImpl) teamStats(ctx context.Context, manager directory.User) (hierarchy.TeamStats, error) {
	direct, err := s.users.ListActiveByManager(ctx, manager.ID)
	if err != nil {
		return hierarchy.TeamStats{}, fmt.Errorf("list direct reports of %s: %w", manager.ID, err)
	}

	subs, err := s.AllSubordinates(ctx, manager.ID)
	if err != nil {
		return hierarchy.TeamStats{}, err
	}

	stats := hierarchy.TeamStats{
		TeamSize:          len(subs),
		DirectReportCount: len(direct),
		TotalSubordinates: len(subs),
		TeamDepartments:   []string{},
	}
	if len(subs) == 0 {
		return stats, nil
	}

	ids := make([]string, 0, len(subs))
	departments := map[string]bool{}
	for _, sub := range subs {
		ids = append(ids, sub.ID)
		if sub.Department != nil && *sub.Department != "" {
			departments[*sub.Department] = true
		}
	}
	for dept := range departments {
		stats.TeamDepartments = append(stats.TeamDepartments, dept)
	}
	sort.Strings(stats.TeamDepartments)

	since := time.Now().AddDate(0, 0, -s.opts.RecentWindowDays)
	reports, err := s.fetchReports(ctx, manager.CompanyID, ids, since)
	if err != nil {
		return hierarchy.TeamStats{}, err
	}

	var wellnessSum int
	for _, r := range reports {
		wellnessSum += r.OverallWellness
		if r.RiskLevel == wellness.RiskHigh {
			stats.HighRiskMembers++
		}
	}
	stats.RecentReports = len(reports)
	stats.AvgTeamWellness = roundedMean(wellnessSum, len(reports))

	return stats, nil
}

// Analytics computes the company-wide rollup: per-team wellness for every
// acting manager, plus recent reports bucketed by department and by
// seniority tier. The team leg and the report fetch run in parallel and the
// whole operation fails fast on any store error.
func (s *HierarchyServiceImpl) Analytics(ctx context.Context, viewerID string, companyID string) (hierarchy.Analytics, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return hierarchy.Analytics{}, hierarchy.ErrViewerNotFound
	}
	if err != nil {
		return hierarchy.Analytics{}, fmt.Errorf("load viewer %s: %w", viewerID, err)
	}
	if !hierarchy.PermissionsFor(viewer).CanAccessAnalytics {
		return hierarchy.Analytics{}, hierarchy.ErrAnalyticsDenied
	}

	employees, err := s.users.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return hierarchy.Analytics{}, fmt.Errorf("list company %s: %w", companyID, err)
	}

	since := time.Now().AddDate(0, 0, -s.opts.RecentWindowDays)

	var (
		teams   []hierarchy.TeamWellness
		reports []wellness.Report
	)

	g, gCtx := errgroup.WithContext(ctx)

	// Per-team wellness for every acting manager.
	g.Go(func() error {
		for _, e := range employees {
			if !e.IsManager() {
				continue
			}
			stats, err := s.teamStats(gCtx, e)
			if err != nil {
				return err
			}
			teams = append(teams, hierarchy.TeamWellness{
				ManagerID:       e.ID,
				ManagerName:     e.FullName,
				TeamSize:        stats.TeamSize,
				AvgWellness:     stats.AvgTeamWellness,
				HighRiskMembers: stats.HighRiskMembers,
			})
		}
		return nil
	})

	// All recent reports for the department and tier buckets.
	g.Go(func() error {
		ids := make([]string, 0, len(employees))
		for _, e := range employees {
			ids = append(ids, e.ID)
		}
		var err error
		reports, err = s.fetchReports(gCtx, companyID, ids, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return hierarchy.Analytics{}, err
	}

	wellnessByEmployee := map[string][]int{}
	for _, r := range reports {
		wellnessByEmployee[r.EmployeeID] = append(wellnessByEmployee[r.EmployeeID], r.OverallWellness)
	}

	return hierarchy.Analytics{
		Teams:       teams,
		Departments: departmentBuckets(employees, wellnessByEmployee),
		Levels:      levelBuckets(employees, wellnessByEmployee),
		Trend:       trendBuckets(reports),
	}, nil
}

// departmentBuckets groups employees by department and averages the recent
// wellness scores inside each group. Employees without a department and
// empty buckets are omitted.
func departmentBuckets(employees []directory.User, wellnessByEmployee map[string][]int) []hierarchy.DepartmentStats {
	type bucket struct {
		count int
		sum   int
		n     int
	}
	buckets := map[string]*bucket{}

	for _, e := range employees {
		if e.Department == nil || *e.Department == "" {
			continue
		}
		b := buckets[*e.Department]
		if b == nil {
			b = &bucket{}
			buckets[*e.Department] = b
		}
		b.count++
		for _, w := range wellnessByEmployee[e.ID] {
			b.sum += w
			b.n++
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]hierarchy.DepartmentStats, 0, len(names))
	for _, name := range names {
		b := buckets[name]
		stats = append(stats, hierarchy.DepartmentStats{
			Department:    name,
			EmployeeCount: b.count,
			AvgWellness:   roundedMean(b.sum, b.n),
		})
	}
	return stats
}

// levelBuckets groups employees by seniority tier in taxonomy order,
// omitting tiers with no employees.
func levelBuckets(employees []directory.User, wellnessByEmployee map[string][]int) []hierarchy.LevelStats {
	type bucket struct {
		count int
		sum   int
		n     int
	}
	buckets := map[hierarchy.Tier]*bucket{}

	for _, e := range employees {
		tier := hierarchy.TierForLevel(e.HierarchyLevel)
		b := buckets[tier]
		if b == nil {
			b = &bucket{}
			buckets[tier] = b
		}
		b.count++
		for _, w := range wellnessByEmployee[e.ID] {
			b.sum += w
			b.n++
		}
	}

	stats := make([]hierarchy.LevelStats, 0, len(buckets))
	for _, tier := range hierarchy.Tiers {
		b := buckets[tier]
		if b == nil {
			continue
		}
		stats = append(stats, hierarchy.LevelStats{
			Level:         int(tier),
			Label:         tier.Label(),
			EmployeeCount: b.count,
			AvgWellness:   roundedMean(b.sum, b.n),
		})
	}
	return stats
}

// trendBuckets buckets reports by calendar day (UTC) and averages each
// day's wellness, oldest day first. Days with no reports are omitted.
func trendBuckets(reports []wellness.Report) []hierarchy.TrendPoint {
	type bucket struct {
		sum int
		n   int
	}
	buckets := map[string]*bucket{}

	for _, r := range reports {
		day := r.CreatedAt.UTC().Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += r.OverallWellness
		b.n++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]hierarchy.TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		points = append(points, hierarchy.TrendPoint{
			Date:        day,
			AvgWellness: roundedMean(b.sum, b.n),
			ReportCount: b.n,
		})
	}
	return points
}

// roundedMean is sum/count rounded to one decimal; an empty set averages
// to 0 so display code always gets a number.
func roundedMean(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
