package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/kommunalcrm/treasury/internal/controllers/v1"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestTransaction creates a test transaction via the v1 API.
func createTestTransaction(t *testing.T, transaction v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if transaction.Organization == "" {
		transaction.Organization = "OV Musterstadt"
	}

	if transaction.Kind == "" {
		transaction.Kind = models.KindExpense
	}

	if transaction.Category == "" {
		transaction.Category = models.CategoryOther
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.TransactionEditable{transaction}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var tr v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &tr)

	return tr.Data[0]
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
		err         error
	}{
		{
			"Expense",
			v1.TransactionEditable{Kind: models.KindExpense, Category: models.CategoryRent, Amount: decimal.NewFromInt(450), Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
			http.StatusCreated,
			nil,
		},
		{
			"Income without date",
			v1.TransactionEditable{Kind: models.KindIncome, Category: models.CategoryDonation, Amount: decimal.NewFromInt(50)},
			http.StatusCreated,
			nil,
		},
		{
			"Correction with negative amount",
			v1.TransactionEditable{Kind: models.KindIncome, Category: models.CategoryDonation, Amount: decimal.NewFromInt(-50), Correction: true},
			http.StatusCreated,
			nil,
		},
		{
			"Negative amount",
			v1.TransactionEditable{Kind: models.KindExpense, Category: models.CategoryRent, Amount: decimal.NewFromInt(-50)},
			http.StatusBadRequest,
			models.ErrAmountNegative,
		},
		{
			"Category of other kind",
			v1.TransactionEditable{Kind: models.KindExpense, Category: models.CategoryDonation, Amount: decimal.NewFromInt(50)},
			http.StatusBadRequest,
			models.ErrInvalidCategory,
		},
		{
			"Invalid status",
			v1.TransactionEditable{Kind: models.KindExpense, Category: models.CategoryIT, Status: "storniert"},
			http.StatusBadRequest,
			models.ErrTransactionStatusInvalid,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestTransaction(t, tt.transaction, tt.status)

			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), *r.Error)
				return
			}

			assert.Nil(t, r.Error)
			assert.True(t, tt.transaction.Amount.Equal(r.Data.Amount))
			assert.Equal(t, models.TransactionStatusPlanned, r.Data.Status, "status must default to planned")
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/transactions/%s", r.Data.ID), r.Data.Links.Self)
		})
	}
}

// TestTransactionsCreateMultiple verifies that the response code is the highest
// response code of all transactions.
func (suite *TestSuiteStandard) TestTransactionsCreateMultiple() {
	body := []v1.TransactionEditable{
		{Organization: "OV Musterstadt", Kind: models.KindIncome, Category: models.CategoryMembershipFee, Amount: decimal.NewFromInt(120)},
		{Organization: "OV Musterstadt", Kind: models.KindIncome, Category: models.CategoryRent, Amount: decimal.NewFromInt(120)},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var tr v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &tr)

	suite.Require().Len(tr.Data, 2)
	suite.Assert().Nil(tr.Data[0].Error)
	suite.Assert().Equal("Mitgliedsbeitrag", tr.Data[0].Data.CategoryLabel)
	suite.Assert().Equal(models.ErrInvalidCategory.Error(), *tr.Data[1].Error)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalidBody() {
	tests := []struct {
		name string
		body any
		err  error
	}{
		{"Empty body", "", httputil.ErrRequestBodyEmpty},
		{"Broken JSON", `[{ "organization": "OV Musterstadt", }]`, httputil.ErrInvalidBody},
		{"Missing organization", `[{ "kind": "income", "category": "spende" }]`, httputil.ErrInvalidBody},
		{"Unknown kind", `[{ "organization": "OV Musterstadt", "kind": "transfer", "category": "sonstiges" }]`, httputil.ErrInvalidBody},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var tr v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &tr)
			assert.Contains(t, *tr.Error, tt.err.Error())
		})
	}
}

// TestTransactionsOptions verifies that the HTTP OPTIONS response for /v1/transactions/{id} is correct.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name     string        // Name for the test
		status   int           // Expected HTTP status
		id       string        // String to use as ID. Ignored when pathFunc is non-nil
		pathFunc func() string // Function returning the path
	}{
		{
			"Does not exist",
			http.StatusNotFound,
			uuid.New().String(),
			nil,
		},
		{
			"Invalid UUID",
			http.StatusBadRequest,
			"NotParseableAsUUID",
			nil,
		},
		{
			"Success",
			http.StatusNoContent,
			"",
			func() string {
				return createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromFloat(31)}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestTransactionsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch, ""},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

// TestTransactionsGet verifies that transactions are sorted newest first.
func (suite *TestSuiteStandard) TestTransactionsGet() {
	t1 := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromFloat(17.23),
		Date:   time.Date(2026, 1, 10, 10, 11, 12, 0, time.UTC),
	})

	t2 := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromFloat(23.42),
		Date:   time.Date(2026, 1, 10, 11, 12, 13, 0, time.UTC),
	})

	t3 := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromFloat(44.04),
		Date:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal(t2.Data.ID, response.Data[0].ID)
	suite.Assert().Equal(t1.Data.ID, response.Data[1].ID)
	suite.Assert().Equal(t3.Data.ID, response.Data[2].ID)

	suite.Assert().Equal(int64(3), response.Pagination.Total)
	suite.Assert().Equal(50, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:        models.KindExpense,
		Category:    "lotterie",
		Description: "Tombola",
	}, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrInvalidCategory.Error(), *transaction.Error)

	transaction = createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:        models.KindExpense,
		Category:    models.CategoryElectionCampaigning,
		Amount:      decimal.NewFromInt(99),
		Description: "Plakate",
	})

	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Plakate", response.Data.Description)
	suite.Assert().Equal("Wahlkampf", response.Data.CategoryLabel)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(strings.HasPrefix(*response.Error, models.ErrResourceNotFound.Error()))
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Organization: "OV Musterstadt",
		Kind:         models.KindIncome,
		Category:     models.CategoryMembershipFee,
		Amount:       decimal.NewFromInt(120),
		Date:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Counterpart:  "Max Mustermann",
		Status:       models.TransactionStatusPaid,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Organization: "OV Musterstadt",
		Kind:         models.KindExpense,
		Category:     models.CategoryRent,
		Amount:       decimal.NewFromInt(450),
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Miete März",
		Counterpart:  "Stadtwerke Musterstadt",
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Organization: "KV Beispielkreis",
		Kind:         models.KindExpense,
		Category:     models.CategoryRent,
		Amount:       decimal.NewFromInt(800),
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Miete März",
		Correction:   true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Organization", "organization=OV+Musterstadt", 2},
		{"Other organization", "organization=KV+Beispielkreis", 1},
		{"Kind", "kind=expense", 2},
		{"Category", "category=mitgliedsbeitrag", 1},
		{"Status", "status=bezahlt", 1},
		{"Correction", "correction=true", 1},
		{"No correction", "correction=false", 2},
		{"From date", "fromDate=2026-02-15T00:00:00Z", 2},
		{"Until date", "untilDate=2026-02-15T00:00:00Z", 1},
		{"Search description", "search=miete", 2},
		{"Search counterpart", "search=Stadtwerke", 1},
		{"Search and organization", "search=miete&organization=KV+Beispielkreis", 1},
		{"Offset", "offset=2", 1},
		{"Limit", "limit=1", 1},
		{"Limit 0", "limit=0", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.TransactionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidQuery() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?offset=-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsUpdate verifies that only the submitted fields are updated.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:        models.KindExpense,
		Category:    models.CategoryMaterial,
		Amount:      decimal.NewFromInt(30),
		Description: "Flyer",
		Date:        time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount": "35.50",
		"status": models.TransactionStatusPaid,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(decimal.RequireFromString("35.5").Equal(response.Data.Amount))
	suite.Assert().Equal(models.TransactionStatusPaid, response.Data.Status)
	suite.Assert().Equal("Flyer", response.Data.Description)
	suite.Assert().Equal(transaction.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:     models.KindExpense,
		Category: models.CategoryMaterial,
		Amount:   decimal.NewFromInt(30),
	})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Invalid category", transaction.Data.Links.Self, `{ "category": "spende" }`, http.StatusBadRequest},
		{"Negative amount", transaction.Data.Links.Self, `{ "amount": -10 }`, http.StatusBadRequest},
		{"Broken JSON", transaction.Data.Links.Self, `{ "amount": 10 `, http.StatusBadRequest},
		{"Invalid UUID", "http://example.com/v1/transactions/not-a-uuid", `{}`, http.StatusBadRequest},
		{"Does not exist", fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), `{}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(12)})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
