package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

type OverrideEditable struct {
	Organization string          `json:"organization" example:"OV Musterstadt" binding:"required"` // Name of the organization
	Kind         models.Kind     `json:"kind" example:"expense" binding:"required,oneof=income expense"`
	Category     models.Category `json:"category" example:"raummiete" binding:"required"` // Category of the override. Must be valid for the kind
	Monthly      decimal.Decimal `json:"monthly" example:"450" minimum:"0"`               // Manually planned monthly amount. Zero is a valid plan
}

// model returns the database resource for the API representation of the editable fields
func (editable OverrideEditable) model() models.PlanOverride {
	return models.PlanOverride{
		Organization: editable.Organization,
		Kind:         editable.Kind,
		Category:     editable.Category,
		Monthly:      editable.Monthly,
	}
}

func newOverrideEditable(model models.PlanOverride) OverrideEditable {
	return OverrideEditable{
		Organization: model.Organization,
		Kind:         model.Kind,
		Category:     model.Category,
		Monthly:      model.Monthly,
	}
}

type OverrideLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/overrides/1f4a2c0e-3b7d-4c55-9d0e-6a8f7b2e1c3d"` // The override itself
}

// Override is the representation of a PlanOverride in API v1.
type Override struct {
	models.DefaultModel
	OverrideEditable
	Annual      decimal.Decimal `json:"annual" example:"5400"`      // The monthly amount for a full year
	IsFixedCost bool            `json:"isFixedCost" example:"true"` // Is the category a fixed cost?
	Links       OverrideLinks   `json:"links"`
}

// newOverride returns the API v1 representation of the resource
func newOverride(c *gin.Context, model models.PlanOverride) Override {
	url := c.GetString(string(models.DBContextURL))

	return Override{
		DefaultModel:     model.DefaultModel,
		OverrideEditable: newOverrideEditable(model),
		Annual:           model.Monthly.Mul(decimal.NewFromInt(12)),
		IsFixedCost:      model.Kind == models.KindExpense && model.Category.IsFixedCost(),
		Links: OverrideLinks{
			Self: fmt.Sprintf("%s/v1/overrides/%s", url, model.ID),
		},
	}
}

type OverrideListResponse struct {
	Data       []Override  `json:"data"`                                                          // List of plan overrides
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type OverrideCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []OverrideResponse `json:"data"`                                                          // List of created plan overrides
}

func (o *OverrideCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OverrideResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type OverrideResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this override
	Data  *Override `json:"data"`                                                          // The override data, if creation was successful
}

type OverrideQueryFilter struct {
	Organization string          `form:"organization"`               // Name of the organization
	Kind         models.Kind     `form:"kind"`                       // Kind of the override
	Category     models.Category `form:"category"`                   // Category of the override
	Offset       uint            `form:"offset" filterField:"false"` // The offset of the first override returned. Defaults to 0.
	Limit        int             `form:"limit" filterField:"false"`  // Maximum number of overrides to return. Defaults to 50.
}

func (f OverrideQueryFilter) model() models.PlanOverride {
	return OverrideEditable{
		Organization: f.Organization,
		Kind:         f.Kind,
		Category:     f.Category,
	}.model()
}
