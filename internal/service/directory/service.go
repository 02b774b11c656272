package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
)

type DirectoryServiceImpl struct {
	users directory.DirectoryRepository
}

func NewDirectoryService(users directory.DirectoryRepository) directory.DirectoryService {
	return &DirectoryServiceImpl{users: users}
}

// CreateUser provisions a directory record, computing the reporting chain
// from the manager at creation time and attaching the new user to the
// manager's direct-report cache.
func (s *DirectoryServiceImpl) CreateUser(ctx context.Context, companyID string, req directory.CreateUserRequest) (directory.User, error) {
	if !directory.ValidRole(req.Role) {
		return directory.User{}, directory.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, companyID, email)
	if err != nil {
		return directory.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return directory.User{}, directory.ErrEmailExists
	}

	var chain []string
	if req.ManagerID != nil {
		manager, err := s.loadManager(ctx, companyID, *req.ManagerID)
		if err != nil {
			return directory.User{}, err
		}
		chain = append(append([]string{}, manager.ReportingChain...), manager.ID)
	}

	newUser := directory.User{
		ID:                 uuid.NewString(),
		CompanyID:          companyID,
		Email:              email,
		FullName:           req.FullName,
		Role:               req.Role,
		ManagerID:          req.ManagerID,
		DirectReports:      []string{},
		ReportingChain:     chain,
		HierarchyLevel:     req.HierarchyLevel,
		Department:         req.Department,
		IsDepartmentHead:   req.IsDepartmentHead,
		CanViewTeamReports: req.CanViewTeamReports,
		CanApproveLeaves:   req.CanApproveLeaves,
		CanManageEmployees: req.CanManageEmployees,
		SkipLevelAccess:    req.SkipLevelAccess,
		IsActive:           true,
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		return directory.User{}, fmt.Errorf("create user: %w", err)
	}

	if req.ManagerID != nil {
		if err := s.users.AddDirectReport(ctx, *req.ManagerID, created.ID); err != nil {
			return directory.User{}, fmt.Errorf("attach to manager cache: %w", err)
		}
	}

	return created, nil
}

// ChangeManager re-points the employee under a new manager (nil detaches
// them). The three steps run in sequence without a surrounding transaction:
// ManagerID plus the recomputed chain land first, then the cache fix-ups.
// A crash in between leaves the caches stale, which every read path
// tolerates because ManagerID stays authoritative.
func (s *DirectoryServiceImpl) ChangeManager(ctx context.Context, employeeID string, newManagerID *string) (directory.User, error) {
	emp, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return directory.User{}, err
	}

	var chain []string
	if newManagerID != nil {
		if *newManagerID == employeeID {
			return directory.User{}, directory.ErrSelfManager
		}
		manager, err := s.loadManager(ctx, emp.CompanyID, *newManagerID)
		if err != nil {
			return directory.User{}, err
		}
		// The new manager must not sit below the employee, or the
		// graph would close on itself.
		if manager.InReportingChain(employeeID) {
			return directory.User{}, directory.ErrReportingCycle
		}
		chain = append(append([]string{}, manager.ReportingChain...), manager.ID)
	}

	// Step 1: authoritative pointer and recomputed chain.
	if err := s.users.UpdateManager(ctx, employeeID, newManagerID, chain); err != nil {
		return directory.User{}, fmt.Errorf("update manager pointer: %w", err)
	}

	// Step 2: detach from the old manager's cache.
	if emp.ManagerID != nil {
		if err := s.users.RemoveDirectReport(ctx, *emp.ManagerID, employeeID); err != nil {
			return directory.User{}, fmt.Errorf("detach from old manager: %w", err)
		}
	}

	// Step 3: attach to the new manager's cache.
	if newManagerID != nil {
		if err := s.users.AddDirectReport(ctx, *newManagerID, employeeID); err != nil {
			return directory.User{}, fmt.Errorf("attach to new manager: %w", err)
		}
	}

	return s.users.GetByID(ctx, employeeID)
}

func (s *DirectoryServiceImpl) loadManager(ctx context.Context, companyID string, managerID string) (directory.User, error) {
	manager, err := s.users.GetByID(ctx, managerID)
	if errors.Is(err, directory.ErrUserNotFound) {
		return directory.User{}, directory.ErrManagerNotFound
	}
	if err != nil {
		return directory.User{}, fmt.Errorf("load manager %s: %w", managerID, err)
	}
	if !manager.IsActive {
		return directory.User{}, directory.ErrManagerInactive
	}
	if manager.CompanyID != companyID {
		return directory.User{}, directory.ErrCrossCompany
	}
	return manager, nil
}
