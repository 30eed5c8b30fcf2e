package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
)

type LevyEditable struct {
	Organization string            `json:"organization" example:"OV Musterstadt" binding:"required"`     // Name of the organization the levy is paid to
	Contact      string            `json:"contact" example:"Erika Mustermann" default:""`                // Name of the mandate holder
	MandateType  string            `json:"mandateType" example:"Stadtrat" default:""`                    // Type of the mandate
	MandateBody  string            `json:"mandateBody" example:"Stadtrat Musterstadt" default:""`        // The body the mandate is held in
	PeriodMonth  types.Month       `json:"periodMonth" swaggertype:"string" example:"2026-02"`           // The month the levy is due for
	GrossIncome  decimal.Decimal   `json:"grossIncome" example:"1500" minimum:"0"`                       // Gross mandate income of the month
	LevyRate     decimal.Decimal   `json:"levyRate" example:"10" minimum:"0" maximum:"100"`              // Levy rate in percent of the gross income
	Deductions   decimal.Decimal   `json:"deductions" example:"0" minimum:"0"`                           // Amount deducted from the levy
	Status       models.LevyStatus `json:"status" example:"offen" enums:"offen,bezahlt"`                 // Payment status. Defaults to "offen"
	Notes        string            `json:"notes" example:"Überweisung erfolgt quartalsweise" default:""` // Notes on the levy
}

// model returns the database resource for the API representation of the editable fields
func (editable LevyEditable) model() models.MandateLevy {
	return models.MandateLevy{
		Organization: editable.Organization,
		Contact:      editable.Contact,
		MandateType:  editable.MandateType,
		MandateBody:  editable.MandateBody,
		PeriodMonth:  editable.PeriodMonth,
		GrossIncome:  editable.GrossIncome,
		LevyRate:     editable.LevyRate,
		Deductions:   editable.Deductions,
		Status:       editable.Status,
		Notes:        editable.Notes,
	}
}

func newLevyEditable(model models.MandateLevy) LevyEditable {
	return LevyEditable{
		Organization: model.Organization,
		Contact:      model.Contact,
		MandateType:  model.MandateType,
		MandateBody:  model.MandateBody,
		PeriodMonth:  model.PeriodMonth,
		GrossIncome:  model.GrossIncome,
		LevyRate:     model.LevyRate,
		Deductions:   model.Deductions,
		Status:       model.Status,
		Notes:        model.Notes,
	}
}

type LevyLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/levies/3b1ea324-d438-4419-882a-2fc91d71772f"` // The levy itself
}

// Levy is the representation of a MandateLevy in API v1.
type Levy struct {
	models.DefaultModel
	LevyEditable
	FinalLevy decimal.Decimal `json:"finalLevy" example:"150"` // max(0, gross income * rate / 100 - deductions), rounded to cents
	Links     LevyLinks       `json:"links"`
}

// newLevy returns the API v1 representation of the resource
func newLevy(c *gin.Context, model models.MandateLevy) Levy {
	url := c.GetString(string(models.DBContextURL))

	return Levy{
		DefaultModel: model.DefaultModel,
		LevyEditable: newLevyEditable(model),
		FinalLevy:    model.FinalLevy,
		Links: LevyLinks{
			Self: fmt.Sprintf("%s/v1/levies/%s", url, model.ID),
		},
	}
}

type LevyListResponse struct {
	Data       []Levy      `json:"data"`                                                          // List of mandate levies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LevyCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []LevyResponse `json:"data"`                                                          // List of created levies
}

func (l *LevyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LevyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LevyResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this levy
	Data  *Levy   `json:"data"`                                                          // The levy data, if creation was successful
}

type LevyQueryFilter struct {
	Organization string            `form:"organization"`               // Name of the organization
	Contact      string            `form:"contact"`                    // Name of the mandate holder
	Status       models.LevyStatus `form:"status"`                     // Payment status
	Month        types.Month       `form:"month" filterField:"false"`  // Levies due for this month, in YYYY-MM format
	Year         int               `form:"year" filterField:"false"`   // Levies due in this year
	Offset       uint              `form:"offset" filterField:"false"` // The offset of the first levy returned. Defaults to 0.
	Limit        int               `form:"limit" filterField:"false"`  // Maximum number of levies to return. Defaults to 50.
}

func (f LevyQueryFilter) model() models.MandateLevy {
	return LevyEditable{
		Organization: f.Organization,
		Contact:      f.Contact,
		Status:       f.Status,
	}.model()
}
