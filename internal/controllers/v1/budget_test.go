package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/kommunalcrm/treasury/internal/controllers/v1"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestBudget creates a test budget via the v1 API.
func createTestBudget(t *testing.T, budget v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if budget.Organization == "" {
		budget.Organization = "OV Musterstadt"
	}

	if budget.Kind == "" {
		budget.Kind = models.KindExpense
	}

	if budget.Category == "" {
		budget.Category = models.CategoryOther
	}

	if budget.PeriodStart.IsZero() {
		budget.PeriodStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	if budget.PeriodEnd.IsZero() {
		budget.PeriodEnd = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.BudgetEditable{budget}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var br v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &br)

	return br.Data[0]
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Miete 2026",
		Category:    models.CategoryRent,
		Amount:      decimal.NewFromInt(5400),
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	suite.Assert().Nil(budget.Error)
	suite.Assert().Equal(6, budget.Data.Months)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/budgets/%s", budget.Data.ID), budget.Data.Links.Self)
	suite.Assert().Equal("http://example.com/v1/variance?organization=OV+Musterstadt", budget.Data.Links.Variance)
	suite.Assert().Equal("http://example.com/v1/forecast?organization=OV+Musterstadt", budget.Data.Links.Forecast)
	suite.Assert().Equal("http://example.com/v1/budgets/clone", budget.Data.Links.Clone)
}

func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	tests := []struct {
		name   string
		budget v1.BudgetEditable
		err    error
	}{
		{
			"End before start",
			v1.BudgetEditable{PeriodStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), PeriodEnd: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)},
			models.ErrBudgetPeriodInvalid,
		},
		{
			"Category of other kind",
			v1.BudgetEditable{Kind: models.KindIncome, Category: models.CategoryIT},
			models.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestBudget(t, tt.budget, http.StatusBadRequest)
			assert.Equal(t, tt.err.Error(), *r.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsOptions() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Name: "Options"})

	r := test.Request(suite.T(), http.MethodOptions, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Miete 2025",
		Notes:       "Geschäftsstelle",
		Category:    models.CategoryRent,
		Amount:      decimal.NewFromInt(5400),
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Name:     "Miete 2026",
		Notes:    "Geschäftsstelle",
		Category: models.CategoryRent,
		Amount:   decimal.NewFromInt(5600),
	})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Kommunalwahl",
		Category:    models.CategoryElectionCampaigning,
		Amount:      decimal.NewFromInt(3000),
		PeriodStart: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Organization: "KV Beispielkreis",
		Name:         "Beiträge",
		Kind:         models.KindIncome,
		Category:     models.CategoryMembershipFee,
		Amount:       decimal.NewFromInt(12000),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Organization", "organization=OV+Musterstadt", 3},
		{"Kind", "kind=income", 1},
		{"Category", "category=raummiete", 2},
		{"Name", "name=Kommunalwahl", 1},
		{"Empty name", "name=", 0},
		{"Year 2025", "year=2025", 1},
		{"Year 2026", "year=2026", 3},
		{"Year 2027", "year=2027", 1},
		{"Year without budgets", "year=2030", 0},
		{"Search notes", "search=stelle", 2},
		{"Search name", "search=wahl", 1},
		{"Offset", "offset=1", 3},
		{"Limit", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.BudgetListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:     "EDV",
		Category: models.CategoryIT,
		Amount:   decimal.NewFromInt(600),
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"amount":    720,
		"periodEnd": time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(decimal.NewFromInt(720).Equal(response.Data.Amount))
	suite.Assert().Equal(3, response.Data.Months)
	suite.Assert().Equal("EDV", response.Data.Name)

	r = test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, `{ "periodEnd": "2025-12-31T00:00:00Z" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Name: "Material"})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsClone() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Miete 2025",
		Category:    models.CategoryRent,
		Amount:      decimal.NewFromInt(5400),
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Beiträge",
		Kind:        models.KindIncome,
		Category:    models.CategoryMembershipFee,
		Amount:      decimal.NewFromInt(1200),
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets/clone", v1.BudgetClone{
		Organization: "OV Musterstadt",
		FromYear:     2025,
		ToYear:       2026,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)

	for _, b := range response.Data {
		suite.Assert().Equal(2026, b.Data.PeriodStart.Year())
		suite.Assert().Equal(2026, b.Data.PeriodEnd.Year())
	}

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?name=Miete+2026", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().True(decimal.NewFromInt(5400).Equal(list.Data[0].Amount))
}

func (suite *TestSuiteStandard) TestBudgetsCloneFails() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Miete 2026"})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Same year", v1.BudgetClone{Organization: "OV Musterstadt", FromYear: 2026, ToYear: 2026}, http.StatusBadRequest, "the fromYear and toYear must differ"},
		{"No budgets", v1.BudgetClone{Organization: "OV Musterstadt", FromYear: 2024, ToYear: 2025}, http.StatusBadRequest, models.ErrNoBudgetsToClone.Error()},
		{"Other organization", v1.BudgetClone{Organization: "KV Beispielkreis", FromYear: 2026, ToYear: 2027}, http.StatusBadRequest, models.ErrNoBudgetsToClone.Error()},
		{"Year out of range", `{ "organization": "OV Musterstadt", "fromYear": 2026, "toYear": 12027 }`, http.StatusBadRequest, "ToYear must not be greater than 9999"},
		{"Missing organization", `{ "fromYear": 2026, "toYear": 2027 }`, http.StatusBadRequest, "Organization is required"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets/clone", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}
