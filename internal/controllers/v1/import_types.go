package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kommunalcrm/treasury/internal/importer"
)

type ImportQuery struct {
	Organization string `form:"organization" binding:"required"` // Name of the organization to import the transactions for
}

type ImportResponse struct {
	Links ImportLinks `json:"links"` // Links for the import endpoints
}

type ImportLinks struct {
	BankCSV        string `json:"bankCsv" example:"https://example.com/api/v1/import/bank-csv"`                // URL of the bank statement import endpoint
	BankCSVPreview string `json:"bankCsvPreview" example:"https://example.com/api/v1/import/bank-csv-preview"` // URL of the bank statement import preview endpoint
}

// TransactionPreview is the representation of a parsed bank statement line.
type TransactionPreview struct {
	Transaction             TransactionEditable `json:"transaction"`
	ImportHash              string              `json:"importHash" example:"372500093d4e2f4bd2ebc11ef0e7bd56e7e8f4dcae6d0f0e1c3a4d5b6c7d8e9f"` // SHA256 hash of the bank statement line
	DuplicateTransactionIDs []uuid.UUID         `json:"duplicateTransactionIds"`                                                               // IDs of transactions that this transaction duplicates
}

func newTransactionPreview(_ *gin.Context, preview importer.TransactionPreview) TransactionPreview {
	return TransactionPreview{
		Transaction:             newTransactionEditable(preview.Transaction),
		ImportHash:              preview.Transaction.ImportHash,
		DuplicateTransactionIDs: preview.DuplicateTransactionIDs,
	}
}

type ImportPreviewList struct {
	Data  []TransactionPreview `json:"data"`                                                  // List of transaction previews
	Error *string              `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}

type ImportResult struct {
	Error   *string               `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
	Data    []TransactionResponse `json:"data"`                                                  // List of imported transactions
	Skipped int                   `json:"skipped" example:"3"`                                   // Number of statement lines that were skipped because they have already been imported
}

func (r *ImportResult) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}
