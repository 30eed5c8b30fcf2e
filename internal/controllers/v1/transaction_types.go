package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Organization string          `json:"organization" example:"OV Musterstadt" binding:"required"` // Name of the organization the transaction belongs to
	Kind         models.Kind     `json:"kind" example:"expense" binding:"required,oneof=income expense"`
	Category     models.Category `json:"category" example:"raummiete" binding:"required"` // Category of the transaction. Must be valid for the kind

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"450" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Correction  bool                     `json:"correction" example:"false" default:"false"`                  // Corrections may have negative amounts
	Date        time.Time                `json:"date" example:"2026-03-05T00:00:00Z"`                         // Date of the transaction. The zero time means the date is unknown
	Counterpart string                   `json:"counterpart" example:"Stadtwerke Musterstadt" default:""`     // Vendor for expenses, source for income
	Description string                   `json:"description" example:"Miete März" default:""`                 // A description
	Status      models.TransactionStatus `json:"status" example:"bezahlt" enums:"geplant,bezahlt,ausstehend"` // Payment status. Defaults to "geplant"
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Organization: editable.Organization,
		Kind:         editable.Kind,
		Category:     editable.Category,
		Amount:       editable.Amount,
		Correction:   editable.Correction,
		Date:         editable.Date,
		Counterpart:  editable.Counterpart,
		Description:  editable.Description,
		Status:       editable.Status,
	}
}

func newTransactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		Organization: model.Organization,
		Kind:         model.Kind,
		Category:     model.Category,
		Amount:       model.Amount,
		Correction:   model.Correction,
		Date:         model.Date,
		Counterpart:  model.Counterpart,
		Description:  model.Description,
		Status:       model.Status,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	CategoryLabel string           `json:"categoryLabel" example:"Raummiete"`                                                     // Display name of the category
	ImportHash    string           `json:"importHash" example:"372500093d4e2f4bd2ebc11ef0e7bd56e7e8f4dcae6d0f0e1c3a4d5b6c7d8e9f"` // SHA256 hash of the imported bank statement line. Empty for manually created transactions
	Links         TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel:        model.DefaultModel,
		TransactionEditable: newTransactionEditable(model),
		CategoryLabel:       models.NormalizeCategory(model.Kind, model.Category).Label(),
		ImportHash:          model.ImportHash,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Organization string                   `form:"organization"`                  // Name of the organization
	Kind         models.Kind              `form:"kind"`                          // Kind of the transaction
	Category     models.Category          `form:"category"`                      // Category of the transaction
	Status       models.TransactionStatus `form:"status"`                        // Payment status
	Correction   bool                     `form:"correction"`                    // Is the transaction a correction?
	FromDate     time.Time                `form:"fromDate" filterField:"false"`  // From this date. Time is ignored.
	UntilDate    time.Time                `form:"untilDate" filterField:"false"` // Until this date. Time is ignored.
	Search       string                   `form:"search" filterField:"false"`    // Search for this text in description and counterpart
	Offset       uint                     `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit        int                      `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// This does not set the string or date fields since they are
	// handled in the controller function
	return TransactionEditable{
		Organization: f.Organization,
		Kind:         f.Kind,
		Category:     f.Category,
		Status:       f.Status,
		Correction:   f.Correction,
	}.model()
}
