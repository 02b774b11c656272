package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/handler/http/response"
)

type DirectoryHandler interface {
	// CreateUser provisions a directory record
	CreateUser(w http.ResponseWriter, r *http.Request)
	// ChangeManager moves an employee under a new manager
	ChangeManager(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	directoryService directory.DirectoryService
}

func NewDirectoryHandler(directoryService directory.DirectoryService) DirectoryHandler {
	return &directoryHandlerImpl{directoryService: directoryService}
}

// CreateUser handles POST /employees
func (h *directoryHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	ident, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req directory.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.directoryService.CreateUser(r.Context(), ident.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", directory.ToUserResponse(created))
}

// ChangeManager handles PUT /employees/{id}/manager
func (h *directoryHandlerImpl) ChangeManager(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "employee id is required", nil)
		return
	}

	var req directory.ChangeManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.directoryService.ChangeManager(r.Context(), employeeID, req.ManagerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager updated", directory.ToUserResponse(updated))
}
