package directory

import "context"

// CreateUserRequest is the inbound shape for provisioning a directory record.
type CreateUserRequest struct {
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Role               Role    `json:"role"`
	ManagerID          *string `json:"manager_id"`
	HierarchyLevel     int     `json:"hierarchy_level"`
	Department         *string `json:"department"`
	IsDepartmentHead   bool    `json:"is_department_head"`
	CanViewTeamReports bool    `json:"can_view_team_reports"`
	CanApproveLeaves   bool    `json:"can_approve_leaves"`
	CanManageEmployees bool    `json:"can_manage_employees"`
	SkipLevelAccess    bool    `json:"skip_level_access"`
}

// ChangeManagerRequest moves an employee under a new manager; a nil
// ManagerID detaches them from the hierarchy.
type ChangeManagerRequest struct {
	ManagerID *string `json:"manager_id"`
}

// UserResponse is the outbound shape for a directory record.
type UserResponse struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"company_id"`
	Email              string   `json:"email"`
	FullName           string   `json:"full_name"`
	Role               Role     `json:"role"`
	ManagerID          *string  `json:"manager_id"`
	DirectReports      []string `json:"direct_reports"`
	ReportingChain     []string `json:"reporting_chain"`
	HierarchyLevel     int      `json:"hierarchy_level"`
	Department         *string  `json:"department"`
	IsDepartmentHead   bool     `json:"is_department_head"`
	SkipLevelAccess    bool     `json:"skip_level_access"`
	CanViewTeamReports bool     `json:"can_view_team_reports"`
	IsActive           bool     `json:"is_active"`
}

// ToUserResponse maps a User entity to its response shape.
func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		CompanyID:          u.CompanyID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		ManagerID:          u.ManagerID,
		DirectReports:      u.DirectReports,
		ReportingChain:     u.ReportingChain,
		HierarchyLevel:     u.HierarchyLevel,
		Department:         u.Department,
		IsDepartmentHead:   u.IsDepartmentHead,
		SkipLevelAccess:    u.SkipLevelAccess,
		CanViewTeamReports: u.CanViewTeamReports,
		IsActive:           u.IsActive,
	}
}

// DirectoryService maintains directory records and the denormalized
// hierarchy caches that hang off them.
type DirectoryService interface {
	CreateUser(ctx context.Context, companyID string, req CreateUserRequest) (User, error)
	// ChangeManager re-points an employee's ManagerID, recomputes their
	// reporting chain, and fixes up both managers' direct-report caches.
	ChangeManager(ctx context.Context, employeeID string, newManagerID *string) (User, error)
}
