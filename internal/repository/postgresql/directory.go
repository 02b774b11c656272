package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/database"
)

const userColumns = `id, company_id, email, full_name, role, manager_id,
	direct_reports, reporting_chain, hierarchy_level, department,
	is_department_head, can_view_team_reports, can_approve_leaves,
	can_manage_employees, skip_level_access, is_active, created_at, updated_at`

type directoryRepositoryImpl struct {
	db database.Querier
}

func NewDirectoryRepository(db database.Querier) directory.DirectoryRepository {
	return &directoryRepositoryImpl{db: db}
}

// GetByID implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) GetByID(ctx context.Context, id string) (directory.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return directory.User{}, directory.ErrUserNotFound
	}
	if err != nil {
		return directory.User{}, err
	}
	return u, nil
}

// ListActiveByManager implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) ListActiveByManager(ctx context.Context, managerID string) ([]directory.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE manager_id = $1 AND is_active = true`

	rows, err := r.db.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListActiveByCompany implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) ListActiveByCompany(ctx context.Context, companyID string) ([]directory.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND is_active = true`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Create implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) Create(ctx context.Context, newUser directory.User) (directory.User, error) {
	query := `
		INSERT INTO users (
			id, company_id, email, full_name, role, manager_id,
			direct_reports, reporting_chain, hierarchy_level, department,
			is_department_head, can_view_team_reports, can_approve_leaves,
			can_manage_employees, skip_level_access, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, NOW(), NOW()
		)
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query,
		newUser.ID,
		newUser.CompanyID,
		newUser.Email,
		newUser.FullName,
		newUser.Role,
		newUser.ManagerID,
		newUser.DirectReports,
		newUser.ReportingChain,
		newUser.HierarchyLevel,
		newUser.Department,
		newUser.IsDepartmentHead,
		newUser.CanViewTeamReports,
		newUser.CanApproveLeaves,
		newUser.CanManageEmployees,
		newUser.SkipLevelAccess,
		newUser.IsActive,
	))
}

// ExistsByEmail implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) ExistsByEmail(ctx context.Context, companyID string, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE company_id = $1 AND email = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, companyID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateManager implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) UpdateManager(ctx context.Context, id string, managerID *string, reportingChain []string) error {
	query := `
		UPDATE users
		SET manager_id = $1, reporting_chain = $2, updated_at = NOW()
		WHERE id = $3
	`

	if reportingChain == nil {
		reportingChain = []string{}
	}

	tag, err := r.db.Exec(ctx, query, managerID, reportingChain, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return directory.ErrUserNotFound
	}
	return nil
}

// AddDirectReport implements directory.DirectoryRepository. Idempotent:
// re-adding an id already in the cache is a no-op.
func (r *directoryRepositoryImpl) AddDirectReport(ctx context.Context, managerID string, employeeID string) error {
	query := `
		UPDATE users
		SET direct_reports = array_append(direct_reports, $1), updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(direct_reports))
	`

	_, err := r.db.Exec(ctx, query, employeeID, managerID)
	if err != nil {
		return fmt.Errorf("add direct report: %w", err)
	}
	return nil
}

// RemoveDirectReport implements directory.DirectoryRepository.
func (r *directoryRepositoryImpl) RemoveDirectReport(ctx context.Context, managerID string, employeeID string) error {
	query := `
		UPDATE users
		SET direct_reports = array_remove(direct_reports, $1), updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, employeeID, managerID)
	if err != nil {
		return fmt.Errorf("remove direct report: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (directory.User, error) {
	var u directory.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Email,
		&u.FullName,
		&u.Role,
		&u.ManagerID,
		&u.DirectReports,
		&u.ReportingChain,
		&u.HierarchyLevel,
		&u.Department,
		&u.IsDepartmentHead,
		&u.CanViewTeamReports,
		&u.CanApproveLeaves,
		&u.CanManageEmployees,
		&u.SkipLevelAccess,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return directory.User{}, err
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]directory.User, error) {
	var users []directory.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
