package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
)

var forecastDefaults = ForecastDefaults{
	Horizon:       forecast.DefaultHorizon,
	HistoryMonths: forecast.DefaultHistoryMonths,
}

// RegisterForecastRoutes registers the routes for the forecast with
// the RouterGroup that is passed. The defaults are used for requests
// that do not set horizon or history.
func RegisterForecastRoutes(r *gin.RouterGroup, defaults ForecastDefaults) {
	forecastDefaults = defaults

	{
		r.OPTIONS("", OptionsForecast)
		r.GET("", GetForecast)
	}
}

// RegisterVarianceRoutes registers the routes for the variance analysis with
// the RouterGroup that is passed.
func RegisterVarianceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsVariance)
	r.GET("", GetVariance)
}

// RegisterPlanRoutes registers the routes for annual plans with
// the RouterGroup that is passed.
func RegisterPlanRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPlans)
	r.GET("", GetPlan)
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReports)
	r.GET("", GetReport)
}

// loadSnapshot reads all records of the organization.
func loadSnapshot(c *gin.Context, organization string) (forecast.Snapshot, error) {
	if organization == "" {
		return forecast.Snapshot{}, errOrganizationParameter
	}

	return forecast.Load(c.Request.Context(), models.NewStore(models.DB), organization)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/forecast [options]
func OptionsForecast(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get forecast
// @Description	Projects the balance of the organization for the next months. Projected months use the budget shares of the month if there are any and the trailing twelve month averages otherwise. Income overrides replace the income averages.
// @Tags			Forecast
// @Produce		json
// @Success		200				{object}	ForecastResponse
// @Failure		400				{object}	ForecastResponse
// @Failure		500				{object}	ForecastResponse
// @Param			organization	query		string	true	"Name of the organization"
// @Param			horizon			query		int		false	"Number of months to project, 0 to 36"
// @Param			history			query		int		false	"Number of historical months in the series, 0 to 36"
// @Param			month			query		string	false	"The current month in YYYY-MM format. Defaults to the month of the request"
// @Router			/v1/forecast [get]
func GetForecast(c *gin.Context) {
	var query ForecastQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ForecastResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := loadSnapshot(c, query.Organization)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ForecastResponse{
			Error: &e,
		})
		return
	}

	result, err := forecast.Run(snapshot, forecastDefaults.options(query))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ForecastResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{Data: &result})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/variance [options]
func OptionsVariance(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get variance
// @Description	Compares the actual amount of every budget of the organization with its planned amount
// @Tags			Forecast
// @Produce		json
// @Success		200				{object}	VarianceResponse
// @Failure		400				{object}	VarianceResponse
// @Failure		500				{object}	VarianceResponse
// @Param			organization	query		string	true	"Name of the organization"
// @Router			/v1/variance [get]
func GetVariance(c *gin.Context) {
	var query QueryOrganization
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, VarianceResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := loadSnapshot(c, query.Organization)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VarianceResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, VarianceResponse{Data: forecast.AnalyzeAll(snapshot)})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/plans [options]
func OptionsPlans(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get annual plan
// @Description	Returns the plan-vs-actual table of a year. The plan of every expense category is taken from the budgets, then the overrides, then the history.
// @Tags			Forecast
// @Produce		json
// @Success		200				{object}	PlanResponse
// @Failure		400				{object}	PlanResponse
// @Failure		500				{object}	PlanResponse
// @Param			organization	query		string	true	"Name of the organization"
// @Param			year			query		int		true	"Year of the plan"
// @Router			/v1/plans [get]
func GetPlan(c *gin.Context) {
	var query PlanQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{
			Error: &e,
		})
		return
	}

	if query.Year == 0 {
		e := errYearParameter.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := loadSnapshot(c, query.Organization)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &e,
		})
		return
	}

	plan, err := forecast.PlanYear(snapshot, query.Year)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, PlanResponse{Data: &plan})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/reports [options]
func OptionsReports(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get report
// @Description	Returns the actual income and expenses of the organization per month and category for a date range
// @Tags			Forecast
// @Produce		json
// @Success		200				{object}	ReportResponse
// @Failure		400				{object}	ReportResponse
// @Failure		500				{object}	ReportResponse
// @Param			organization	query		string	true	"Name of the organization"
// @Param			from			query		string	true	"First day of the report in YYYY-MM-DD format"
// @Param			to				query		string	true	"Last day of the report in YYYY-MM-DD format"
// @Router			/v1/reports [get]
func GetReport(c *gin.Context) {
	var query ReportQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{
			Error: &e,
		})
		return
	}

	if query.From.IsZero() || query.To.IsZero() {
		e := errRangeParameters.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := loadSnapshot(c, query.Organization)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	report, err := forecast.BuildReport(snapshot, query.From, query.To)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{Data: &report})
}
