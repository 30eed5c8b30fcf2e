package v1

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Organization string          `json:"organization" example:"OV Musterstadt" binding:"required"` // Name of the organization the budget belongs to
	Name         string          `json:"name" example:"Miete 2026" default:""`                     // Name of the budget
	Notes        string          `json:"notes" example:"Geschäftsstelle" default:""`               // A longer description of the budget
	Kind         models.Kind     `json:"kind" example:"expense" binding:"required,oneof=income expense"`
	Category     models.Category `json:"category" example:"raummiete" binding:"required"` // Category of the budget. Must be valid for the kind

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"5400" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The planned total for the period

	PeriodStart time.Time `json:"periodStart" example:"2026-01-01T00:00:00Z" binding:"required"` // First day of the budget period
	PeriodEnd   time.Time `json:"periodEnd" example:"2026-12-31T00:00:00Z" binding:"required"`   // Last day of the budget period
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Organization: editable.Organization,
		Name:         editable.Name,
		Notes:        editable.Notes,
		Kind:         editable.Kind,
		Category:     editable.Category,
		Amount:       editable.Amount,
		PeriodStart:  editable.PeriodStart,
		PeriodEnd:    editable.PeriodEnd,
	}
}

func newBudgetEditable(model models.Budget) BudgetEditable {
	return BudgetEditable{
		Organization: model.Organization,
		Name:         model.Name,
		Notes:        model.Notes,
		Kind:         model.Kind,
		Category:     model.Category,
		Amount:       model.Amount,
		PeriodStart:  model.PeriodStart,
		PeriodEnd:    model.PeriodEnd,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget itself
	Variance string `json:"variance" example:"https://example.com/api/v1/variance?organization=OV+Musterstadt"`     // Variance analysis of all budgets of the organization
	Forecast string `json:"forecast" example:"https://example.com/api/v1/forecast?organization=OV+Musterstadt"`     // Forecast for the organization
	Clone    string `json:"clone" example:"https://example.com/api/v1/budgets/clone"`                               // Endpoint to copy budgets to another year
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Months int         `json:"months" example:"12"` // Number of calendar months the amount is distributed over
	Links  BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	organization := url.QueryEscape(model.Organization)
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel:   model.DefaultModel,
		BudgetEditable: newBudgetEditable(model),
		Months:         len(model.Months()),
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Variance: fmt.Sprintf("%s/v1/variance?organization=%s", url, organization),
			Forecast: fmt.Sprintf("%s/v1/forecast?organization=%s", url, organization),
			Clone:    fmt.Sprintf("%s/v1/budgets/clone", url),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created Budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The Budget data, if creation was successful
}

type BudgetQueryFilter struct {
	Organization string          `form:"organization"`               // Name of the organization
	Name         string          `form:"name" filterField:"false"`   // By name
	Kind         models.Kind     `form:"kind"`                       // Kind of the budget
	Category     models.Category `form:"category"`                   // Category of the budget
	Year         int             `form:"year" filterField:"false"`   // Budgets whose period intersects this year
	Search       string          `form:"search" filterField:"false"` // By string in name or notes
	Offset       uint            `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit        int             `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return BudgetEditable{
		Organization: f.Organization,
		Kind:         f.Kind,
		Category:     f.Category,
	}.model()
}

// BudgetClone is the request body to copy the budgets of a year to another year.
type BudgetClone struct {
	Organization string `json:"organization" example:"OV Musterstadt" binding:"required"`     // Name of the organization
	FromYear     int    `json:"fromYear" example:"2025" binding:"required,min=1900,max=9999"` // Budgets starting in this year are copied
	ToYear       int    `json:"toYear" example:"2026" binding:"required,min=1900,max=9999"`   // Year the copies are created for
}
