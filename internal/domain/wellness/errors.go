package wellness

import "errors"

var (
	ErrReportNotFound = errors.New("wellness report not found")
	ErrBatchTooLarge  = errors.New("employee id batch exceeds the store limit")
)
