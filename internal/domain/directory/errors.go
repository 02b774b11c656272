package directory

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailExists        = errors.New("email already registered in this company")
	ErrInvalidRole        = errors.New("invalid role")
	ErrManagerNotFound    = errors.New("manager not found")
	ErrManagerInactive    = errors.New("manager is inactive")
	ErrCrossCompany       = errors.New("manager belongs to a different company")
	ErrSelfManager        = errors.New("user cannot report to themselves")
	ErrReportingCycle     = errors.New("assignment would create a reporting cycle")
	ErrUnauthorized       = errors.New("unauthorized to manage employees")
)
