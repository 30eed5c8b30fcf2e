package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/importer"
	"github.com/kommunalcrm/treasury/internal/importer/parser/bankcsv"
	"github.com/kommunalcrm/treasury/internal/models"
)

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsImport)
		r.GET("", GetImport)

		r.OPTIONS("/bank-csv", OptionsImportBankCSV)
		r.POST("/bank-csv", ImportBankCSV)

		r.OPTIONS("/bank-csv-preview", OptionsImportBankCSVPreview)
		r.POST("/bank-csv-preview", ImportBankCSVPreview)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// parseUpload binds the organization and parses the uploaded bank statement.
func parseUpload(c *gin.Context) ([]importer.TransactionPreview, error) {
	var query ImportQuery
	if err := c.ShouldBindQuery(&query); err != nil || strings.TrimSpace(query.Organization) == "" {
		return nil, errOrganizationParameter
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return bankcsv.Parse(f, strings.TrimSpace(query.Organization))
}

// duplicateTransactions finds transactions of the same organization with the same import hash
// and sets their IDs in the DuplicateTransactionIDs field.
func duplicateTransactions(preview *importer.TransactionPreview) error {
	var duplicates []models.Transaction
	err := models.DB.
		Where(&models.Transaction{
			Organization: preview.Transaction.Organization,
			ImportHash:   preview.Transaction.ImportHash,
		}).
		Find(&duplicates).Error
	if err != nil {
		return err
	}

	// When there are no duplicates, we want an empty list, not null
	ids := make([]uuid.UUID, 0, len(duplicates))
	for _, duplicate := range duplicates {
		ids = append(ids, duplicate.ID)
	}
	preview.DuplicateTransactionIDs = ids

	return nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Import API overview
// @Description	Returns general information about the import endpoints
// @Tags			Import
// @Success		200	{object}	ImportResponse
// @Router			/v1/import [get]
func GetImport(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, ImportResponse{
		Links: ImportLinks{
			BankCSV:        url + "/v1/import/bank-csv",
			BankCSVPreview: url + "/v1/import/bank-csv-preview",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import/bank-csv [options]
func OptionsImportBankCSV(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import/bank-csv-preview [options]
func OptionsImportBankCSVPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Bank statement import preview
// @Description	Returns a preview of the transactions in a semicolon separated bank statement. Lines that have already been imported for the organization list the IDs of the existing transactions.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200				{object}	ImportPreviewList
// @Failure		400				{object}	ImportPreviewList
// @Failure		500				{object}	ImportPreviewList
// @Param			file			formData	file		true	"Bank statement to import"
// @Param			organization	query		ImportQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/bank-csv-preview [post]
func ImportBankCSVPreview(c *gin.Context) {
	previews, err := parseUpload(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	data := make([]TransactionPreview, 0, len(previews))
	for _, preview := range previews {
		err = duplicateTransactions(&preview)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ImportPreviewList{
				Error: &s,
			})
			return
		}

		data = append(data, newTransactionPreview(c, preview))
	}

	c.JSON(http.StatusOK, ImportPreviewList{Data: data})
}

// @Summary		Import bank statement
// @Description	Creates paid transactions from a semicolon separated bank statement. Lines that have already been imported for the organization are skipped. The response code is the highest response code number that a single transaction creation would have caused.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201				{object}	ImportResult
// @Failure		400				{object}	ImportResult
// @Failure		500				{object}	ImportResult
// @Param			file			formData	file		true	"Bank statement to import"
// @Param			organization	query		ImportQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/bank-csv [post]
func ImportBankCSV(c *gin.Context) {
	previews, err := parseUpload(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResult{
			Error: &s,
		})
		return
	}

	status := http.StatusCreated
	r := ImportResult{Data: make([]TransactionResponse, 0, len(previews))}

	for _, preview := range previews {
		err := duplicateTransactions(&preview)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if preview.Duplicate() {
			r.Skipped++
			continue
		}

		transaction := preview.Transaction
		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}
