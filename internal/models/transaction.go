package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionStatus is the payment status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPlanned     TransactionStatus = "geplant"
	TransactionStatusPaid        TransactionStatus = "bezahlt"
	TransactionStatusOutstanding TransactionStatus = "ausstehend"
)

// Transaction is a single income or expense of an organization.
type Transaction struct {
	DefaultModel
	Organization string          `gorm:"index"`
	Kind         Kind            // income or expense
	Category     Category        // One of the categories for the kind
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Correction   bool            // Corrections may have negative amounts, e.g. refunds
	Date         time.Time       // The zero time means that the date is unknown
	Counterpart  string          // Vendor for expenses, source for income
	Description  string
	Status       TransactionStatus
	ImportHash   string `gorm:"index"` // SHA256 hash of the bank statement line the transaction was imported from
}

// AfterFind enforces UTC for the transaction date.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	if !t.Date.IsZero() {
		t.Date = t.Date.In(time.UTC)
	}
	return nil
}

// BeforeSave
//   - trims whitespace from string fields
//   - sets the timezone for the Date to UTC
//   - validates kind, category, amount and status
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Organization = strings.TrimSpace(t.Organization)
	t.Counterpart = strings.TrimSpace(t.Counterpart)
	t.Description = strings.TrimSpace(t.Description)

	if !t.Date.IsZero() {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Organization == "" {
		return ErrOrganizationMissing
	}

	if !t.Kind.Valid() {
		return ErrInvalidKind
	}

	if !t.Category.ValidFor(t.Kind) {
		return ErrInvalidCategory
	}

	if t.Amount.IsNegative() && !t.Correction {
		return ErrAmountNegative
	}

	switch t.Status {
	case "":
		t.Status = TransactionStatusPlanned
	case TransactionStatusPlanned, TransactionStatusPaid, TransactionStatusOutstanding:
	default:
		return ErrTransactionStatusInvalid
	}

	return nil
}

// Imported reports whether the transaction was created from a bank statement.
func (t Transaction) Imported() bool {
	return t.ImportHash != ""
}

// BookedFieldsChanged reports whether any of the fields that a bank statement
// fixes for an imported transaction differ between t and u.
func (t Transaction) BookedFieldsChanged(u Transaction) bool {
	return t.Organization != u.Organization ||
		t.Kind != u.Kind ||
		!t.Amount.Equal(u.Amount) ||
		!t.Date.Equal(u.Date) ||
		t.Counterpart != u.Counterpart
}

// HasDate reports whether the transaction has a known date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}
