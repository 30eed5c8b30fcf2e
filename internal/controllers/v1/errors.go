package v1

import (
	"errors"
	"net/http"

	"github.com/kommunalcrm/treasury/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the organization query parameter must be set"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errOrganizationParameter = errors.New("the organization query parameter must be set")
	errYearParameter         = errors.New("the year query parameter must be set")
	errRangeParameters       = errors.New("the from and to query parameters must be set")
	errUnknownExport         = errors.New("the export must be one of 'forecast', 'variance', 'report', 'transactions', 'levies' or 'budgets'")
)

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Budget errors
var (
	errCloneYears = errors.New("the fromYear and toYear must differ")
)
