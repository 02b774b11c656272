package hierarchy

import (
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
)

// HierarchyNode wraps a directory user with its recursively built subtree.
// Rebuilt on every query, never persisted.
type HierarchyNode struct {
	User     directory.UserResponse `json:"user"`
	Children []HierarchyNode        `json:"children"`
	// Level is the depth from the query root, 0 = direct report.
	Level int `json:"level"`
	// IsExpanded is a presentation hint: the first two levels render open.
	IsExpanded bool `json:"is_expanded"`
}

// TeamStats is the rollup for a single manager's team.
type TeamStats struct {
	TeamSize          int      `json:"team_size"`
	DirectReportCount int      `json:"direct_report_count"`
	TotalSubordinates int      `json:"total_subordinate_count"`
	AvgTeamWellness   float64  `json:"avg_team_wellness"`
	HighRiskMembers   int      `json:"high_risk_team_members"`
	TeamDepartments   []string `json:"team_departments"`
	RecentReports     int      `json:"recent_reports_count"`
}

// ManagerPermissions is the capability set derived from a user record.
type ManagerPermissions struct {
	CanViewDirectReports    bool `json:"can_view_direct_reports"`
	CanViewTeamReports      bool `json:"can_view_team_reports"`
	CanApproveLeaves        bool `json:"can_approve_leaves"`
	CanManageTeamMembers    bool `json:"can_manage_team_members"`
	CanViewSubordinateTeams bool `json:"can_view_subordinate_teams"`
	CanAccessAnalytics      bool `json:"can_access_analytics"`
	// HierarchyAccessLevel is how many levels down visibility extends:
	// 1 for the direct team, 2 with skip-level access.
	HierarchyAccessLevel int `json:"hierarchy_access_level"`
}

// TeamWellness is one manager's entry in the company-wide analytics.
type TeamWellness struct {
	ManagerID       string  `json:"manager_id"`
	ManagerName     string  `json:"manager_name"`
	TeamSize        int     `json:"team_size"`
	AvgWellness     float64 `json:"avg_wellness"`
	HighRiskMembers int     `json:"high_risk_members"`
}

// DepartmentStats buckets recent reports by the employee's department.
type DepartmentStats struct {
	Department    string  `json:"department"`
	EmployeeCount int     `json:"employee_count"`
	AvgWellness   float64 `json:"avg_wellness"`
}

// LevelStats buckets recent reports by seniority tier.
type LevelStats struct {
	Level         int     `json:"level"`
	Label         string  `json:"label"`
	EmployeeCount int     `json:"employee_count"`
	AvgWellness   float64 `json:"avg_wellness"`
}

// TrendPoint is one day of the company-wide wellness trend.
type TrendPoint struct {
	Date        string  `json:"date"`
	AvgWellness float64 `json:"avg_wellness"`
	ReportCount int     `json:"report_count"`
}

// Analytics is the company-wide rollup consumed by employer dashboards.
type Analytics struct {
	Teams       []TeamWellness    `json:"teams"`
	Departments []DepartmentStats `json:"departments"`
	Levels      []LevelStats      `json:"levels"`
	Trend       []TrendPoint      `json:"trend"`
}

// ReportResponse is the outbound shape for a wellness report.
type ReportResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	CompanyID       string  `json:"company_id"`
	CreatedAt       string  `json:"created_at"`
	OverallWellness int     `json:"overall_wellness"`
	MoodRating      int     `json:"mood_rating"`
	StressLevel     int     `json:"stress_level"`
	EnergyLevel     int     `json:"energy_level"`
	RiskLevel       string  `json:"risk_level"`
	AIAnalysis      *string `json:"ai_analysis,omitempty"`
}

// ToReportResponse maps a report entity to its response shape.
func ToReportResponse(r wellness.Report) ReportResponse {
	return ReportResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		CompanyID:       r.CompanyID,
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		OverallWellness: r.OverallWellness,
		MoodRating:      r.MoodRating,
		StressLevel:     r.StressLevel,
		EnergyLevel:     r.EnergyLevel,
		RiskLevel:       string(r.RiskLevel),
		AIAnalysis:      r.AIAnalysis,
	}
}
