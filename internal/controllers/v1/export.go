package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/export"
	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/rs/zerolog/log"
)

// exporters build the table of an export from the snapshot and the query.
var exporters = map[string]func(forecast.Snapshot, ExportQuery) (export.Table, error){
	"forecast": func(s forecast.Snapshot, q ExportQuery) (export.Table, error) {
		f, err := forecast.Run(s, forecastDefaults.options(q.ForecastQuery))
		if err != nil {
			return export.Table{}, err
		}
		return export.Forecast(f.Forecast), nil
	},
	"variance": func(s forecast.Snapshot, _ ExportQuery) (export.Table, error) {
		return export.Variances(forecast.AnalyzeAll(s)), nil
	},
	"report": func(s forecast.Snapshot, q ExportQuery) (export.Table, error) {
		if q.From.IsZero() || q.To.IsZero() {
			return export.Table{}, errRangeParameters
		}

		r, err := forecast.BuildReport(s, q.From, q.To)
		if err != nil {
			return export.Table{}, err
		}
		return export.Report(r), nil
	},
	"transactions": func(s forecast.Snapshot, _ ExportQuery) (export.Table, error) {
		return export.Transactions(s.Transactions), nil
	},
	"levies": func(s forecast.Snapshot, _ ExportQuery) (export.Table, error) {
		return export.Levies(s.Levies), nil
	},
	"budgets": func(s forecast.Snapshot, _ ExportQuery) (export.Table, error) {
		return export.Budgets(s.Budgets), nil
	},
}

// RegisterExportRoutes registers the routes for CSV exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:export", OptionsExport)
	r.GET("/:export", GetExport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Param			export	path	string	true	"Name of the export"
// @Router			/v1/export/{export} [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Exports data of the organization as semicolon separated CSV with German number formatting
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		400				{object}	httpError
// @Failure		404				{object}	httpError
// @Failure		500				{object}	httpError
// @Param			export			path		string	true	"Name of the export"	Enums(forecast, variance, report, transactions, levies, budgets)
// @Param			organization	query		string	true	"Name of the organization"
// @Param			horizon			query		int		false	"Forecast only: number of months to project"
// @Param			history			query		int		false	"Forecast only: number of historical months"
// @Param			month			query		string	false	"Forecast only: the current month in YYYY-MM format"
// @Param			from			query		string	false	"Report only: first day in YYYY-MM-DD format"
// @Param			to				query		string	false	"Report only: last day in YYYY-MM-DD format"
// @Router			/v1/export/{export} [get]
func GetExport(c *gin.Context) {
	var uri URIExport
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	build, ok := exporters[uri.Export]
	if !ok {
		c.JSON(http.StatusNotFound, httpError{
			Error: errUnknownExport.Error(),
		})
		return
	}

	var query ExportQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidQueryString.Error(),
		})
		return
	}

	snapshot, err := loadSnapshot(c, query.Organization)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	table, err := build(snapshot, query)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var buf bytes.Buffer
	err = export.Write(&buf, table)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", uri.Export, time.Now().In(time.UTC).Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
