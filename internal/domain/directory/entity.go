package directory

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee, sees own data only
	RoleManager  Role = "manager"  // Has direct reports
	RoleHR       Role = "hr"       // Company-wide visibility
	RoleAdmin    Role = "admin"    // Company-wide visibility
	RoleEmployer Role = "employer" // Company owner, company-wide visibility
)

// User is a directory record: identity plus its position in the manager
// graph. ManagerID is the authoritative hierarchy pointer; DirectReports and
// ReportingChain are denormalized caches maintained by the directory service
// and may lag behind ManagerID, so access decisions are always derived from
// ManagerID where possible.
type User struct {
	ID        string
	CompanyID string
	Email     string
	FullName  string
	Role      Role

	ManagerID *string
	// DirectReports caches the ids of users whose ManagerID points here.
	DirectReports []string
	// ReportingChain caches ancestor manager ids, root-most first, ending
	// with the immediate manager.
	ReportingChain []string
	// HierarchyLevel is a seniority tier, 0 = most senior, independent of
	// the manager graph shape.
	HierarchyLevel int
	Department     *string

	IsDepartmentHead   bool
	CanViewTeamReports bool
	CanApproveLeaves   bool
	CanManageEmployees bool
	SkipLevelAccess    bool
	IsActive           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasManagerialRole checks if the role alone grants managerial standing.
func (u *User) HasManagerialRole() bool {
	switch u.Role {
	case RoleManager, RoleHR, RoleAdmin, RoleEmployer:
		return true
	}
	return false
}

// IsManager is the single manager predicate used everywhere: the manager
// role, or anyone the cache says has reports.
func (u *User) IsManager() bool {
	return u.Role == RoleManager || len(u.DirectReports) > 0
}

// IsCompanyWideViewer checks if the role overrides hierarchy-based
// visibility for the whole company.
func (u *User) IsCompanyWideViewer() bool {
	switch u.Role {
	case RoleHR, RoleAdmin, RoleEmployer:
		return true
	}
	return false
}

// InReportingChain reports whether managerID appears among this user's
// cached ancestors.
func (u *User) InReportingChain(managerID string) bool {
	for _, id := range u.ReportingChain {
		if id == managerID {
			return true
		}
	}
	return false
}

// ValidRole checks a role string against the known set.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleEmployer:
		return true
	}
	return false
}
