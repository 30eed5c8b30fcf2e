package v1_test

import (
	"net/http"
	"testing"

	"github.com/kommunalcrm/treasury/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budgets", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budgets/clone", "OPTIONS, POST"},
		{"http://example.com/v1/levies", "OPTIONS, GET, POST"},
		{"http://example.com/v1/overrides", "OPTIONS, GET, POST"},
		{"http://example.com/v1/forecast", "OPTIONS, GET"},
		{"http://example.com/v1/variance", "OPTIONS, GET"},
		{"http://example.com/v1/plans", "OPTIONS, GET"},
		{"http://example.com/v1/reports", "OPTIONS, GET"},
		{"http://example.com/v1/export/forecast", "OPTIONS, GET"},
		{"http://example.com/v1/import", "OPTIONS, GET"},
		{"http://example.com/v1/import/bank-csv", "OPTIONS, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}

func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "http://example.com/v1/forecast"},
		{http.MethodDelete, "http://example.com/v1/transactions"},
		{http.MethodPatch, "http://example.com/v1/reports"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusMethodNotAllowed)
		})
	}
}
