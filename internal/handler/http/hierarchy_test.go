package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/hierarchy"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
	handler "github.com/wellmind-hq/wellness-backend-go/internal/handler/http"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/jwt"
)

// fakeHierarchyService records the manager id each call resolved to so
// tests can assert the query-parameter handling.
type fakeHierarchyService struct {
	lastManagerID string
	allowAccess   bool
}

func (f *fakeHierarchyService) BuildHierarchy(_ context.Context, managerID string, _ int) ([]hierarchy.HierarchyNode, error) {
	f.lastManagerID = managerID
	return []hierarchy.HierarchyNode{}, nil
}

func (f *fakeHierarchyService) AllSubordinates(_ context.Context, managerID string) ([]directory.User, error) {
	f.lastManagerID = managerID
	return []directory.User{{ID: "sub-1", CompanyID: "acme", IsActive: true}}, nil
}

func (f *fakeHierarchyService) CanAccess(_ context.Context, _ string, _ string) (bool, error) {
	return f.allowAccess, nil
}

func (f *fakeHierarchyService) PermissionsForUser(_ context.Context, _ string) (hierarchy.ManagerPermissions, error) {
	return hierarchy.ManagerPermissions{CanViewTeamReports: true}, nil
}

func (f *fakeHierarchyService) FilteredReports(_ context.Context, viewerID string, _ string, _ int) ([]wellness.Report, error) {
	return []wellness.Report{{
		ID:         "r1",
		EmployeeID: viewerID,
		CompanyID:  "acme",
		CreatedAt:  time.Now(),
		RiskLevel:  wellness.RiskLow,
	}}, nil
}

func (f *fakeHierarchyService) TeamStatsFor(_ context.Context, managerID string) (hierarchy.TeamStats, error) {
	f.lastManagerID = managerID
	return hierarchy.TeamStats{
		TeamSize:          2,
		DirectReportCount: 2,
		TotalSubordinates: 2,
		AvgTeamWellness:   6.5,
		TeamDepartments:   []string{"Engineering"},
	}, nil
}

func (f *fakeHierarchyService) Analytics(_ context.Context, _ string, _ string) (hierarchy.Analytics, error) {
	return hierarchy.Analytics{}, nil
}

type fakeDirectoryService struct{}

func (fakeDirectoryService) CreateUser(_ context.Context, companyID string, req directory.CreateUserRequest) (directory.User, error) {
	return directory.User{
		ID:        "new-id",
		CompanyID: companyID,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  true,
	}, nil
}

func (fakeDirectoryService) ChangeManager(_ context.Context, employeeID string, newManagerID *string) (directory.User, error) {
	return directory.User{ID: employeeID, ManagerID: newManagerID, IsActive: true}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, svc *fakeHierarchyService) (*httptest.Server, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m")
	router := handler.NewRouter(jwtService,
		handler.NewHierarchyHandler(svc),
		handler.NewDirectoryHandler(fakeDirectoryService{}))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, jwtService
}

func authedRequest(t *testing.T, method, url string, body []byte, jwtService jwt.Service, userID string, role directory.Role) *http.Request {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(userID, "acme", role)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	srv, _ := newTestServer(t, &fakeHierarchyService{})

	resp, err := http.Get(srv.URL + "/api/v1/reports")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RejectsNonAccessToken(t *testing.T) {
	srv, jwtService := newTestServer(t, &fakeHierarchyService{})

	// A verifiable token of the wrong type must not pass.
	_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id":    "u1",
		"company_id": "acme",
		"role":       "employee",
		"type":       "refresh",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/reports", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetReports_OK(t *testing.T) {
	srv, jwtService := newTestServer(t, &fakeHierarchyService{})

	req := authedRequest(t, http.MethodGet, srv.URL+"/api/v1/reports", nil, jwtService, "u1", directory.RoleEmployee)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)

	var reports []hierarchy.ReportResponse
	require.NoError(t, json.Unmarshal(env.Data, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "u1", reports[0].EmployeeID)
}

func TestGetHierarchy_RequiresManagerialRole(t *testing.T) {
	srv, jwtService := newTestServer(t, &fakeHierarchyService{})

	req := authedRequest(t, http.MethodGet, srv.URL+"/api/v1/hierarchy", nil, jwtService, "u1", directory.RoleEmployee)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetTeamStats_OK(t *testing.T) {
	svc := &fakeHierarchyService{}
	srv, jwtService := newTestServer(t, svc)

	req := authedRequest(t, http.MethodGet, srv.URL+"/api/v1/team/stats", nil, jwtService, "mgr", directory.RoleManager)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mgr", svc.lastManagerID)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var stats hierarchy.TeamStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.TeamSize)
	assert.InDelta(t, 6.5, stats.AvgTeamWellness, 0.001)
}

func TestGetTeamStats_ForeignTeamNeedsCompanyWideRole(t *testing.T) {
	svc := &fakeHierarchyService{}
	srv, jwtService := newTestServer(t, svc)

	// A manager may not query another manager's team.
	req := authedRequest(t, http.MethodGet, srv.URL+"/api/v1/team/stats?manager_id=other", nil, jwtService, "mgr", directory.RoleManager)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// HR may.
	req = authedRequest(t, http.MethodGet, srv.URL+"/api/v1/team/stats?manager_id=other", nil, jwtService, "hr-1", directory.RoleHR)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "other", svc.lastManagerID)
}

func TestCheckAccess(t *testing.T) {
	srv, jwtService := newTestServer(t, &fakeHierarchyService{allowAccess: true})

	req := authedRequest(t, http.MethodGet, srv.URL+"/api/v1/access/target-1", nil, jwtService, "u1", directory.RoleEmployee)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var verdict map[string]bool
	require.NoError(t, json.Unmarshal(env.Data, &verdict))
	assert.True(t, verdict["allowed"])
}

func TestCreateEmployee_RequiresCompanyWideRole(t *testing.T) {
	srv, jwtService := newTestServer(t, &fakeHierarchyService{})
	body := []byte(`{"email":"new@acme.test","full_name":"New Person","role":"employee"}`)

	req := authedRequest(t, http.MethodPost, srv.URL+"/api/v1/employees", body, jwtService, "mgr", directory.RoleManager)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = authedRequest(t, http.MethodPost, srv.URL+"/api/v1/employees", body, jwtService, "hr-1", directory.RoleHR)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var created directory.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "acme", created.CompanyID)
	assert.Equal(t, "new@acme.test", created.Email)
}
