package forecast

import "errors"

var (
	ErrInvalidHorizon = errors.New("the forecast horizon must be between 0 and 36 months")
	ErrInvalidHistory = errors.New("the history window must be between 0 and 36 months")
	ErrInvalidRange   = errors.New("the end of the report range must not be before its start")
	ErrInvalidYear    = errors.New("the year must be between 1900 and 9999")
)
