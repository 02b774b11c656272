package response

import (
	"errors"
	"net/http"

	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/hierarchy"
)

// HandleError maps domain errors to HTTP responses. Store failures fall
// through to 500 so clients can retry; legitimate empty results never reach
// this path.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Directory domain errors
	case errors.Is(err, directory.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, directory.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, directory.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, directory.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, directory.ErrManagerInactive):
		BadRequest(w, "Manager is inactive", nil)
	case errors.Is(err, directory.ErrCrossCompany):
		BadRequest(w, "Manager belongs to a different company", nil)
	case errors.Is(err, directory.ErrSelfManager):
		BadRequest(w, "User cannot report to themselves", nil)
	case errors.Is(err, directory.ErrReportingCycle):
		Conflict(w, "Assignment would create a reporting cycle")
	case errors.Is(err, directory.ErrUnauthorized):
		Forbidden(w, "Not authorized to manage employees")

	// Hierarchy domain errors
	case errors.Is(err, hierarchy.ErrViewerNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, hierarchy.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, hierarchy.ErrAnalyticsDenied):
		Forbidden(w, "Analytics access requires director level or HR role")
	case errors.Is(err, hierarchy.ErrReportsViewDenied):
		Forbidden(w, "Not authorized to view these reports")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
