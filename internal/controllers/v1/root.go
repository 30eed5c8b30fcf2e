package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`           // URL of Budget collection endpoint
	Levies       string `json:"levies" example:"https://example.com/api/v1/levies"`             // URL of Mandate Levy collection endpoint
	Overrides    string `json:"overrides" example:"https://example.com/api/v1/overrides"`       // URL of Plan Override collection endpoint
	Forecast     string `json:"forecast" example:"https://example.com/api/v1/forecast"`         // URL of the Forecast endpoint
	Variance     string `json:"variance" example:"https://example.com/api/v1/variance"`         // URL of the Variance endpoint
	Plans        string `json:"plans" example:"https://example.com/api/v1/plans"`               // URL of the annual Plan endpoint
	Reports      string `json:"reports" example:"https://example.com/api/v1/reports"`           // URL of the Report endpoint
	Export       string `json:"export" example:"https://example.com/api/v1/export"`             // URL of the CSV Export endpoints
	Import       string `json:"import" example:"https://example.com/api/v1/import"`             // URL of the bank statement Import endpoints
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Transactions: url + "/v1/transactions",
			Budgets:      url + "/v1/budgets",
			Levies:       url + "/v1/levies",
			Overrides:    url + "/v1/overrides",
			Forecast:     url + "/v1/forecast",
			Variance:     url + "/v1/variance",
			Plans:        url + "/v1/plans",
			Reports:      url + "/v1/reports",
			Export:       url + "/v1/export",
			Import:       url + "/v1/import",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
