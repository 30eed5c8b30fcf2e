package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/kommunalcrm/treasury/internal/controllers/v1"
	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/kommunalcrm/treasury/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestOrganization creates the records of an organization that
// all calculated endpoints are tested with.
func createTestOrganization(t *testing.T) {
	_ = createTestTransaction(t, v1.TransactionEditable{
		Kind:     models.KindIncome,
		Category: models.CategoryMembershipFee,
		Amount:   decimal.NewFromInt(1200),
		Date:     time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Status:   models.TransactionStatusPaid,
	})

	_ = createTestTransaction(t, v1.TransactionEditable{
		Kind:        models.KindExpense,
		Category:    models.CategoryRent,
		Amount:      decimal.NewFromInt(450),
		Date:        time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		Description: "Miete Mai",
	})

	// Undated transactions are never part of any calculation
	_ = createTestTransaction(t, v1.TransactionEditable{
		Kind:     models.KindExpense,
		Category: models.CategoryRent,
		Amount:   decimal.NewFromInt(10000),
	})

	_ = createTestBudget(t, v1.BudgetEditable{
		Name:     "Miete 2026",
		Category: models.CategoryRent,
		Amount:   decimal.NewFromInt(1200),
	})

	_ = createTestLevy(t, v1.LevyEditable{
		Contact:     "Erika Mustermann",
		PeriodMonth: types.NewMonth(2026, 1),
		GrossIncome: decimal.NewFromInt(1500),
		LevyRate:    decimal.NewFromInt(10),
		Status:      models.LevyStatusPaid,
	})

	_ = createTestOverride(t, v1.OverrideEditable{
		Category: models.CategoryIT,
		Monthly:  decimal.NewFromInt(30),
	})
}

func (suite *TestSuiteStandard) TestForecast() {
	createTestOrganization(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/forecast?organization=OV+Musterstadt&month=2026-06&horizon=3&history=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ForecastResponse
	test.DecodeResponse(suite.T(), &r, &response)

	f := response.Data.Forecast
	suite.Require().Len(f.Series, 5)
	suite.Assert().Equal("2026-05", f.Series[0].Month.String())
	suite.Assert().Equal("2026-09", f.Series[4].Month.String())
	suite.Assert().False(f.Series[1].IsProjected)
	suite.Assert().True(f.Series[2].IsProjected)
	suite.Assert().True(decimal.NewFromInt(750).Equal(f.CurrentBalance), "current balance is %s", f.CurrentBalance)
	suite.Assert().True(decimal.NewFromInt(150).Equal(f.AverageLevy), "average levy is %s", f.AverageLevy)

	suite.Require().Len(response.Data.Variances, 1)
	suite.Assert().Equal("Miete 2026", response.Data.Variances[0].Name)
}

// TestForecastDefaults verifies that the configured defaults are used
// when the request does not set horizon and history.
func (suite *TestSuiteStandard) TestForecastDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/forecast?organization=KV+Beispielkreis", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ForecastResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Forecast.Series, forecast.DefaultHistoryMonths+forecast.DefaultHorizon)
	suite.Assert().Equal(forecast.StatusGood, response.Data.Forecast.Status)
	suite.Assert().Empty(response.Data.Variances)
}

func (suite *TestSuiteStandard) TestForecastFails() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"No organization", "horizon=3", "the organization query parameter must be set"},
		{"Horizon too large", "organization=OV+Musterstadt&horizon=40", forecast.ErrInvalidHorizon.Error()},
		{"Negative history", "organization=OV+Musterstadt&history=-1", forecast.ErrInvalidHistory.Error()},
		{"Unparseable horizon", "organization=OV+Musterstadt&horizon=sechs", httputil.ErrInvalidQueryString.Error()},
		{"Unparseable month", "organization=OV+Musterstadt&month=Juni", httputil.ErrInvalidQueryString.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/forecast?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ForecastResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestForecastDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/forecast?organization=OV+Musterstadt", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestVariance() {
	createTestOrganization(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/variance?organization=OV+Musterstadt", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.VarianceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	v := response.Data[0]
	suite.Assert().True(decimal.NewFromInt(450).Equal(v.Actual), "actual is %s", v.Actual)
	suite.Assert().True(decimal.NewFromInt(-750).Equal(v.Variance), "variance is %s", v.Variance)
	suite.Assert().Equal(forecast.ClassificationUnderBudget, v.Classification)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/variance", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPlan() {
	createTestOrganization(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/plans?organization=OV+Musterstadt&year=2026", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)

	plan := response.Data
	suite.Assert().Equal(2026, plan.Year)
	suite.Require().Len(plan.Expenses, 2)
	suite.Assert().Equal(models.CategoryRent, plan.Expenses[0].Category)
	suite.Assert().True(decimal.NewFromInt(1200).Equal(plan.Expenses[0].Plan.Annual))
	suite.Assert().Equal(models.CategoryIT, plan.Expenses[1].Category)
	suite.Assert().Equal(forecast.SourceOverride, plan.Expenses[1].Plan.Source)
	suite.Assert().True(decimal.NewFromInt(360).Equal(plan.Expenses[1].Plan.Annual))
	suite.Assert().True(decimal.NewFromInt(150).Equal(plan.Income.LevyPaid))
	suite.Assert().True(decimal.NewFromInt(1200).Equal(plan.Income.MembershipFeesActual))
}

func (suite *TestSuiteStandard) TestPlanFails() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"No year", "organization=OV+Musterstadt", "the year query parameter must be set"},
		{"No organization", "year=2026", "the organization query parameter must be set"},
		{"Year out of range", "organization=OV+Musterstadt&year=123", forecast.ErrInvalidYear.Error()},
		{"Unparseable year", "organization=OV+Musterstadt&year=zweitausend", httputil.ErrInvalidQueryString.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/plans?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.PlanResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestReport() {
	createTestOrganization(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports?organization=OV+Musterstadt&from=2026-01-01&to=2026-05-31", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	report := response.Data
	suite.Assert().Len(report.Months, 5)
	suite.Assert().True(decimal.NewFromInt(1200).Equal(report.TotalIncome))
	suite.Assert().True(decimal.NewFromInt(450).Equal(report.TotalExpense))
	suite.Assert().True(decimal.NewFromInt(750).Equal(report.Balance))
	suite.Assert().True(decimal.NewFromInt(150).Equal(report.LeviesPaid))

	// The edge months only contain transactions within the range
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports?organization=OV+Musterstadt&from=2026-05-12&to=2026-06-30", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Months, 2)
	suite.Assert().True(response.Data.TotalIncome.IsZero())
	suite.Assert().True(decimal.NewFromInt(450).Equal(response.Data.Months[0].Expense))
}

func (suite *TestSuiteStandard) TestReportFails() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"No range", "organization=OV+Musterstadt", "the from and to query parameters must be set"},
		{"No end", "organization=OV+Musterstadt&from=2026-01-01", "the from and to query parameters must be set"},
		{"End before start", "organization=OV+Musterstadt&from=2026-02-01&to=2026-01-31", forecast.ErrInvalidRange.Error()},
		{"Unparseable date", "organization=OV+Musterstadt&from=01.01.2026&to=2026-01-31", httputil.ErrInvalidQueryString.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/reports?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ReportResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}
