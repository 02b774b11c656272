package hierarchy

import "github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"

// analyticsLevelCeiling is the deepest hierarchy level that still gets
// analytics access (director and above).
const analyticsLevelCeiling = 3

// PermissionsFor derives the capability set from a user record. Pure
// function of the record: no I/O, deterministic, safe to call anywhere.
func PermissionsFor(u directory.User) ManagerPermissions {
	accessLevel := 1
	if u.SkipLevelAccess {
		accessLevel = 2
	}

	return ManagerPermissions{
		CanViewDirectReports:    u.HasManagerialRole(),
		CanViewTeamReports:      u.CanViewTeamReports,
		CanApproveLeaves:        u.CanApproveLeaves,
		CanManageTeamMembers:    u.CanManageEmployees,
		CanViewSubordinateTeams: u.SkipLevelAccess,
		CanAccessAnalytics:      u.HierarchyLevel <= analyticsLevelCeiling || u.Role == directory.RoleHR,
		HierarchyAccessLevel:    accessLevel,
	}
}
