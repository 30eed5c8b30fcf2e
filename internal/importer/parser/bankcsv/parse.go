package bankcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kommunalcrm/treasury/internal/importer"
	"github.com/kommunalcrm/treasury/internal/importer/helpers"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

// Parse parses a semicolon separated bank statement with the columns
// booking date, counterpart, purpose and amount. Positive amounts are
// income, negative amounts are expenses.
func Parse(f io.Reader, organization string) ([]importer.TransactionPreview, error) {
	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	transactions := make([]importer.TransactionPreview, 0)

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return transactions, nil
	}
	if err != nil {
		return []importer.TransactionPreview{}, fmt.Errorf("could not read header in CSV: %w", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already contains the line
			return []importer.TransactionPreview{}, fmt.Errorf("could not read line in CSV: %w", err)
		}

		if len(record) <= Amount {
			return csvReadError(reader, fmt.Errorf("expected at least %d columns, got %d", Amount+1, len(record)))
		}

		date, err := time.Parse("02.01.2006", strings.TrimSpace(record[BookingDate]))
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse booking date: %w", err))
		}

		amount, err := parseAmount(record[Amount])
		if err != nil {
			return csvReadError(reader, err)
		}

		if amount.IsZero() {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		kind := models.KindIncome
		if amount.IsNegative() {
			kind = models.KindExpense
		}

		transactions = append(transactions, importer.TransactionPreview{
			Transaction: models.Transaction{
				Organization: organization,
				Kind:         kind,
				Category:     models.CategoryOther,
				Amount:       amount.Abs(),
				Date:         date,
				Counterpart:  strings.TrimSpace(record[Counterpart]),
				Description:  strings.TrimSpace(record[Purpose]),
				Status:       models.TransactionStatusPaid,
				ImportHash:   helpers.Sha256String(organization + ";" + strings.Join(record, ";")),
			},
		})
	}

	return transactions, nil
}

// parseAmount parses an amount in German notation, e.g. "-1.234,50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("amount could not be parsed to a decimal")
	}
	return amount, nil
}

// csvReadError returns an error that includes the line of the input
// the error occurred in.
func csvReadError(r *csv.Reader, err error) ([]importer.TransactionPreview, error) {
	line, _ := r.FieldPos(0)

	return []importer.TransactionPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
