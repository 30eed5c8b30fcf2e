package v1

import (
	"time"

	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/types"
)

// ForecastDefaults are the projection settings used when a request does not set them.
type ForecastDefaults struct {
	Horizon       int
	HistoryMonths int
}

// options returns the projection options for the query.
func (d ForecastDefaults) options(q ForecastQuery) forecast.Options {
	opts := forecast.Options{
		Now:           time.Now().In(time.UTC),
		Horizon:       d.Horizon,
		HistoryMonths: d.HistoryMonths,
	}

	if !q.Month.IsZero() {
		opts.Now = q.Month.Start()
	}

	if q.Horizon != nil {
		opts.Horizon = *q.Horizon
	}

	if q.HistoryMonths != nil {
		opts.HistoryMonths = *q.HistoryMonths
	}

	return opts
}

type ForecastQuery struct {
	QueryOrganization
	Horizon       *int        `form:"horizon" example:"6"`                          // Number of months to project, 0 to 36
	HistoryMonths *int        `form:"history" example:"6"`                          // Number of historical months in the series
	Month         types.Month `form:"month" swaggertype:"string" example:"2026-06"` // The current month. Defaults to the month of the request
}

type ForecastResponse struct {
	Error *string          `json:"error" example:"the organization query parameter must be set"` // The error, if any occurred
	Data  *forecast.Result `json:"data"`                                                         // The forecast and the variances of all budgets
}

type VarianceResponse struct {
	Error *string             `json:"error" example:"the organization query parameter must be set"` // The error, if any occurred
	Data  []forecast.Variance `json:"data"`                                                         // Variance of every budget of the organization
}

type PlanQuery struct {
	QueryOrganization
	Year int `form:"year" example:"2026"` // Year of the plan
}

type PlanResponse struct {
	Error *string              `json:"error" example:"the year query parameter must be set"` // The error, if any occurred
	Data  *forecast.AnnualPlan `json:"data"`                                                 // The plan-vs-actual table of the year
}

type ReportQuery struct {
	QueryOrganization
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" example:"2026-01-01"` // First day of the report, inclusive
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" example:"2026-06-30"`   // Last day of the report, inclusive
}

type ReportResponse struct {
	Error *string          `json:"error" example:"the from and to query parameters must be set"` // The error, if any occurred
	Data  *forecast.Report `json:"data"`                                                         // The income and expense report
}

type URIExport struct {
	Export string `uri:"export" binding:"required" example:"forecast"` // Name of the export
}

// ExportQuery contains the parameters of all exports. Every export
// only uses the parameters it needs.
type ExportQuery struct {
	ForecastQuery
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" example:"2026-01-01"` // First day of the report export, inclusive
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" example:"2026-06-30"`   // Last day of the report export, inclusive
}
