package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/hierarchy"
	"github.com/wellmind-hq/wellness-backend-go/internal/handler/http/response"
)

type HierarchyHandler interface {
	// GetHierarchy returns the bounded-depth reporting tree
	GetHierarchy(w http.ResponseWriter, r *http.Request)
	// GetSubordinates returns the full transitive team
	GetSubordinates(w http.ResponseWriter, r *http.Request)
	// GetTeamStats returns the 30-day team rollup
	GetTeamStats(w http.ResponseWriter, r *http.Request)
	// GetReports returns the viewer's accessible wellness reports
	GetReports(w http.ResponseWriter, r *http.Request)
	// GetAnalytics returns company-wide hierarchy analytics
	GetAnalytics(w http.ResponseWriter, r *http.Request)
	// GetMyPermissions returns the viewer's derived capability set
	GetMyPermissions(w http.ResponseWriter, r *http.Request)
	// CheckAccess reports whether the viewer may see a target's data
	CheckAccess(w http.ResponseWriter, r *http.Request)
}

type hierarchyHandlerImpl struct {
	hierarchyService hierarchy.HierarchyService
}

func NewHierarchyHandler(hierarchyService hierarchy.HierarchyService) HierarchyHandler {
	return &hierarchyHandlerImpl{hierarchyService: hierarchyService}
}

// GetHierarchy handles GET /hierarchy
func (h *hierarchyHandlerImpl) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	managerID, ok := h.resolveManagerID(w, r, ident)
	if !ok {
		return
	}

	depth := 0 // clamped to the configured maximum by the service
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "depth must be an integer", nil)
			return
		}
	}

	tree, err := h.hierarchyService.BuildHierarchy(r.Context(), managerID, depth)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tree)
}

// GetSubordinates handles GET /team/subordinates
func (h *hierarchyHandlerImpl) GetSubordinates(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	managerID, ok := h.resolveManagerID(w, r, ident)
	if !ok {
		return
	}

	subs, err := h.hierarchyService.AllSubordinates(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]directory.UserResponse, 0, len(subs))
	for _, sub := range subs {
		result = append(result, directory.ToUserResponse(sub))
	}

	response.Success(w, result)
}

// GetTeamStats handles GET /team/stats
func (h *hierarchyHandlerImpl) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	managerID, ok := h.resolveManagerID(w, r, ident)
	if !ok {
		return
	}

	stats, err := h.hierarchyService.TeamStatsFor(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetReports handles GET /reports
func (h *hierarchyHandlerImpl) GetReports(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	windowDays := 0 // service falls back to the configured window
	if raw := r.URL.Query().Get("window_days"); raw != "" {
		windowDays, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "window_days must be an integer", nil)
			return
		}
	}

	reports, err := h.hierarchyService.FilteredReports(r.Context(), ident.UserID, ident.CompanyID, windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]hierarchy.ReportResponse, 0, len(reports))
	for _, rep := range reports {
		result = append(result, hierarchy.ToReportResponse(rep))
	}

	response.Success(w, result)
}

// GetAnalytics handles GET /analytics/hierarchy
func (h *hierarchyHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	analytics, err := h.hierarchyService.Analytics(r.Context(), ident.UserID, ident.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, analytics)
}

// GetMyPermissions handles GET /permissions/my
func (h *hierarchyHandlerImpl) GetMyPermissions(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	perms, err := h.hierarchyService.PermissionsForUser(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, perms)
}

// CheckAccess handles GET /access/{targetID}
func (h *hierarchyHandlerImpl) CheckAccess(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	targetID := chi.URLParam(r, "targetID")
	if targetID == "" {
		response.BadRequest(w, "targetID is required", nil)
		return
	}

	allowed, err := h.hierarchyService.CanAccess(r.Context(), ident.UserID, targetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"allowed": allowed})
}

// resolveManagerID reads the optional manager_id query parameter. Viewers
// may always query their own team; querying someone else's requires a
// company-wide role.
func (h *hierarchyHandlerImpl) resolveManagerID(w http.ResponseWriter, r *http.Request, ident identity) (string, bool) {
	managerID := r.URL.Query().Get("manager_id")
	if managerID == "" || managerID == ident.UserID {
		return ident.UserID, true
	}

	u := directory.User{Role: ident.Role}
	if !u.IsCompanyWideViewer() {
		response.Forbidden(w, "Cannot query another manager's team")
		return "", false
	}
	return managerID, true
}
