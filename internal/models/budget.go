package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a planned total for a category over an explicit date range.
type Budget struct {
	DefaultModel
	Organization string `gorm:"index"`
	Name         string
	Notes        string
	Kind         Kind
	Category     Category
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// AfterFind enforces UTC for the period dates.
func (b *Budget) AfterFind(tx *gorm.DB) (err error) {
	err = b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.PeriodStart = b.PeriodStart.In(time.UTC)
	b.PeriodEnd = b.PeriodEnd.In(time.UTC)
	return nil
}

// BeforeSave
//   - trims whitespace from string fields
//   - normalizes the period dates to UTC
//   - validates kind, category and the period
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Organization = strings.TrimSpace(b.Organization)
	b.Name = strings.TrimSpace(b.Name)
	b.Notes = strings.TrimSpace(b.Notes)

	if b.Organization == "" {
		return ErrOrganizationMissing
	}

	if !b.Kind.Valid() {
		return ErrInvalidKind
	}

	if !b.Category.ValidFor(b.Kind) {
		return ErrInvalidCategory
	}

	if b.PeriodStart.IsZero() || b.PeriodEnd.IsZero() {
		return ErrBudgetPeriodMissing
	}

	b.PeriodStart = b.PeriodStart.In(time.UTC)
	b.PeriodEnd = b.PeriodEnd.In(time.UTC)

	if b.PeriodEnd.Before(b.PeriodStart) {
		return ErrBudgetPeriodInvalid
	}

	return nil
}

// Months returns all calendar months that intersect the budget period.
//
// A degenerate period (end before start) covers the start month only.
func (b Budget) Months() []types.Month {
	months := types.MonthsBetween(types.MonthOf(b.PeriodStart), types.MonthOf(b.PeriodEnd))
	if len(months) == 0 {
		return []types.Month{types.MonthOf(b.PeriodStart)}
	}
	return months
}

// Covers reports whether the month is one of the budget's months.
func (b Budget) Covers(month types.Month) bool {
	for _, m := range b.Months() {
		if m.Equal(month) {
			return true
		}
	}
	return false
}

// Contains reports whether the date lies within the budget period.
// Both ends of the period are inclusive and only the date is compared.
func (b Budget) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(b.PeriodStart)) && !d.After(dateOnly(b.PeriodEnd))
}

// CloneToYear returns a copy of the budget with the period shifted from
// the year fromYear to the year toYear. Occurrences of fromYear in the name
// are replaced by toYear. The amount is preserved, the copy has no ID.
func (b Budget) CloneToYear(fromYear, toYear int) Budget {
	delta := toYear - fromYear

	return Budget{
		Organization: b.Organization,
		Name:         strings.ReplaceAll(b.Name, strconv.Itoa(fromYear), strconv.Itoa(toYear)),
		Notes:        b.Notes,
		Kind:         b.Kind,
		Category:     b.Category,
		Amount:       b.Amount,
		PeriodStart:  shiftYears(b.PeriodStart, delta),
		PeriodEnd:    shiftYears(b.PeriodEnd, delta),
	}
}

// shiftYears moves the date by a number of years. Days that do not exist in
// the target year (February 29th) are clamped to the last day of the month.
func shiftYears(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	lastDay := types.NewMonth(year+years, month).End().Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year+years, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
