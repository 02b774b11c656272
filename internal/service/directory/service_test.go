package directory

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
)

var errStoreDown = errors.New("store unavailable")

// fakeDirectory records mutations in order so tests can assert the
// maintenance sequencing.
type fakeDirectory struct {
	users   map[string]directory.User
	calls   []string
	failGet bool
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (directory.User, error) {
	if f.failGet {
		return directory.User{}, errStoreDown
	}
	u, ok := f.users[id]
	if !ok {
		return directory.User{}, directory.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeDirectory) ListActiveByManager(_ context.Context, managerID string) ([]directory.User, error) {
	var result []directory.User
	for _, u := range f.users {
		if u.IsActive && u.ManagerID != nil && *u.ManagerID == managerID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeDirectory) ListActiveByCompany(_ context.Context, companyID string) ([]directory.User, error) {
	var result []directory.User
	for _, u := range f.users {
		if u.IsActive && u.CompanyID == companyID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeDirectory) Create(_ context.Context, newUser directory.User) (directory.User, error) {
	f.calls = append(f.calls, "create:"+newUser.Email)
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeDirectory) ExistsByEmail(_ context.Context, companyID string, email string) (bool, error) {
	for _, u := range f.users {
		if u.CompanyID == companyID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) UpdateManager(_ context.Context, id string, managerID *string, reportingChain []string) error {
	f.calls = append(f.calls, "update:"+id)
	u, ok := f.users[id]
	if !ok {
		return directory.ErrUserNotFound
	}
	u.ManagerID = managerID
	u.ReportingChain = reportingChain
	f.users[id] = u
	return nil
}

func (f *fakeDirectory) AddDirectReport(_ context.Context, managerID string, employeeID string) error {
	f.calls = append(f.calls, "attach:"+managerID)
	u, ok := f.users[managerID]
	if !ok {
		return directory.ErrUserNotFound
	}
	u.DirectReports = append(u.DirectReports, employeeID)
	f.users[managerID] = u
	return nil
}

func (f *fakeDirectory) RemoveDirectReport(_ context.Context, managerID string, employeeID string) error {
	f.calls = append(f.calls, "detach:"+managerID)
	u, ok := f.users[managerID]
	if !ok {
		return directory.ErrUserNotFound
	}
	var kept []string
	for _, id := range u.DirectReports {
		if id != employeeID {
			kept = append(kept, id)
		}
	}
	u.DirectReports = kept
	f.users[managerID] = u
	return nil
}

func strPtr(s string) *string { return &s }

func activeUser(id string, managerID *string, chain []string) directory.User {
	return directory.User{
		ID:             id,
		CompanyID:      "acme",
		Email:          id + "@acme.test",
		FullName:       id,
		Role:           directory.RoleEmployee,
		ManagerID:      managerID,
		ReportingChain: chain,
		IsActive:       true,
	}
}

func TestCreateUser_ComputesReportingChain(t *testing.T) {
	t.Parallel()
	top := activeUser("top", nil, nil)
	mid := activeUser("mid", strPtr("top"), []string{"top"})
	fake := &fakeDirectory{users: map[string]directory.User{"top": top, "mid": mid}}
	svc := NewDirectoryService(fake)

	created, err := svc.CreateUser(context.Background(), "acme", directory.CreateUserRequest{
		Email:     "new@acme.test",
		FullName:  "New Person",
		Role:      directory.RoleEmployee,
		ManagerID: strPtr("mid"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"top", "mid"}, created.ReportingChain)
	assert.True(t, created.IsActive)

	// The new user landed in the manager's direct-report cache.
	assert.Contains(t, fake.users["mid"].DirectReports, created.ID)
}

func TestCreateUser_RejectsInvalidRole(t *testing.T) {
	t.Parallel()
	fake := &fakeDirectory{users: map[string]directory.User{}}
	svc := NewDirectoryService(fake)

	_, err := svc.CreateUser(context.Background(), "acme", directory.CreateUserRequest{
		Email: "x@acme.test",
		Role:  directory.Role("ceo"),
	})
	assert.ErrorIs(t, err, directory.ErrInvalidRole)
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	t.Parallel()
	existing := activeUser("u1", nil, nil)
	existing.Email = "taken@acme.test"
	fake := &fakeDirectory{users: map[string]directory.User{"u1": existing}}
	svc := NewDirectoryService(fake)

	_, err := svc.CreateUser(context.Background(), "acme", directory.CreateUserRequest{
		Email: "Taken@acme.test",
		Role:  directory.RoleEmployee,
	})
	assert.ErrorIs(t, err, directory.ErrEmailExists)
}

func TestChangeManager_ThreeStepSequence(t *testing.T) {
	t.Parallel()
	oldMgr := activeUser("old", nil, nil)
	oldMgr.DirectReports = []string{"emp"}
	newMgr := activeUser("new", nil, nil)
	emp := activeUser("emp", strPtr("old"), []string{"old"})

	fake := &fakeDirectory{users: map[string]directory.User{
		"old": oldMgr, "new": newMgr, "emp": emp,
	}}
	svc := NewDirectoryService(fake)

	updated, err := svc.ChangeManager(context.Background(), "emp", strPtr("new"))
	require.NoError(t, err)

	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, "new", *updated.ManagerID)
	assert.Equal(t, []string{"new"}, updated.ReportingChain)

	// Pointer first, then detach, then attach.
	assert.Equal(t, []string{"update:emp", "detach:old", "attach:new"}, fake.calls)
	assert.NotContains(t, fake.users["old"].DirectReports, "emp")
	assert.Contains(t, fake.users["new"].DirectReports, "emp")
}

func TestChangeManager_DetachOnly(t *testing.T) {
	t.Parallel()
	mgr := activeUser("mgr", nil, nil)
	mgr.DirectReports = []string{"emp"}
	emp := activeUser("emp", strPtr("mgr"), []string{"mgr"})

	fake := &fakeDirectory{users: map[string]directory.User{"mgr": mgr, "emp": emp}}
	svc := NewDirectoryService(fake)

	updated, err := svc.ChangeManager(context.Background(), "emp", nil)
	require.NoError(t, err)

	assert.Nil(t, updated.ManagerID)
	assert.Empty(t, updated.ReportingChain)
	assert.Equal(t, []string{"update:emp", "detach:mgr"}, fake.calls)
}

func TestChangeManager_RejectsSelf(t *testing.T) {
	t.Parallel()
	emp := activeUser("emp", nil, nil)
	fake := &fakeDirectory{users: map[string]directory.User{"emp": emp}}
	svc := NewDirectoryService(fake)

	_, err := svc.ChangeManager(context.Background(), "emp", strPtr("emp"))
	assert.ErrorIs(t, err, directory.ErrSelfManager)
	assert.Empty(t, fake.calls, "nothing written on rejection")
}

func TestChangeManager_RejectsCycle(t *testing.T) {
	t.Parallel()
	top := activeUser("top", nil, nil)
	sub := activeUser("sub", strPtr("top"), []string{"top"})
	fake := &fakeDirectory{users: map[string]directory.User{"top": top, "sub": sub}}
	svc := NewDirectoryService(fake)

	// top may not report to its own subordinate.
	_, err := svc.ChangeManager(context.Background(), "top", strPtr("sub"))
	assert.ErrorIs(t, err, directory.ErrReportingCycle)
}

func TestChangeManager_RejectsCrossCompanyManager(t *testing.T) {
	t.Parallel()
	emp := activeUser("emp", nil, nil)
	foreign := activeUser("foreign", nil, nil)
	foreign.CompanyID = "other-co"
	fake := &fakeDirectory{users: map[string]directory.User{"emp": emp, "foreign": foreign}}
	svc := NewDirectoryService(fake)

	_, err := svc.ChangeManager(context.Background(), "emp", strPtr("foreign"))
	assert.ErrorIs(t, err, directory.ErrCrossCompany)
}

func TestChangeManager_RejectsInactiveManager(t *testing.T) {
	t.Parallel()
	emp := activeUser("emp", nil, nil)
	gone := activeUser("gone", nil, nil)
	gone.IsActive = false
	fake := &fakeDirectory{users: map[string]directory.User{"emp": emp, "gone": gone}}
	svc := NewDirectoryService(fake)

	_, err := svc.ChangeManager(context.Background(), "emp", strPtr("gone"))
	assert.ErrorIs(t, err, directory.ErrManagerInactive)
}

func TestChangeManager_UnknownEmployee(t *testing.T) {
	t.Parallel()
	fake := &fakeDirectory{users: map[string]directory.User{}}
	svc := NewDirectoryService(fake)

	_, err := svc.ChangeManager(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, directory.ErrUserNotFound)
}
