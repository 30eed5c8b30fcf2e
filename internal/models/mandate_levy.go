package models

import (
	"strings"

	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LevyStatus is the payment status of a mandate levy.
type LevyStatus string

const (
	LevyStatusOpen LevyStatus = "offen"
	LevyStatusPaid LevyStatus = "bezahlt"
)

var hundred = decimal.NewFromInt(100)

// MandateLevy is the monthly contribution a mandate holder pays from
// their mandate income to the organization.
type MandateLevy struct {
	DefaultModel
	Organization string          `gorm:"index"`
	Contact      string          // Name of the mandate holder
	MandateType  string          // e.g. "Stadtrat" or "Kreistag"
	MandateBody  string          // The body the mandate is held in
	PeriodMonth  types.Month     // The month the levy is due for
	GrossIncome  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	LevyRate     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // In percent of the gross income
	Deductions   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	FinalLevy    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Computed on save
	Status       LevyStatus
	Notes        string
}

// ComputeFinalLevy returns max(0, gross * rate / 100 - deductions),
// rounded to cents.
func ComputeFinalLevy(grossIncome, levyRate, deductions decimal.Decimal) decimal.Decimal {
	levy := grossIncome.Mul(levyRate).Div(hundred).Sub(deductions)
	if levy.IsNegative() {
		return decimal.Zero
	}

	return levy.Round(2)
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates the month, rate and status
//   - computes the final levy
func (l *MandateLevy) BeforeSave(_ *gorm.DB) error {
	l.Organization = strings.TrimSpace(l.Organization)
	l.Contact = strings.TrimSpace(l.Contact)
	l.MandateType = strings.TrimSpace(l.MandateType)
	l.MandateBody = strings.TrimSpace(l.MandateBody)
	l.Notes = strings.TrimSpace(l.Notes)

	if l.Organization == "" {
		return ErrOrganizationMissing
	}

	if l.PeriodMonth.IsZero() {
		return ErrLevyMonthMissing
	}

	if l.LevyRate.IsNegative() || l.LevyRate.GreaterThan(hundred) {
		return ErrLevyRateInvalid
	}

	switch l.Status {
	case "":
		l.Status = LevyStatusOpen
	case LevyStatusOpen, LevyStatusPaid:
	default:
		return ErrLevyStatusInvalid
	}

	l.FinalLevy = ComputeFinalLevy(l.GrossIncome, l.LevyRate, l.Deductions)
	return nil
}

// Paid reports whether the levy has been paid.
func (l MandateLevy) Paid() bool {
	return l.Status == LevyStatusPaid
}
