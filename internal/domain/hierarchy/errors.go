package hierarchy

import "errors"

var (
	ErrViewerNotFound    = errors.New("viewer not found")
	ErrManagerNotFound   = errors.New("manager not found")
	ErrAnalyticsDenied   = errors.New("analytics access requires director level or HR role")
	ErrReportsViewDenied = errors.New("not authorized to view these reports")
)
