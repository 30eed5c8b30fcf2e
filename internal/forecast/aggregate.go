package forecast

import (
	"time"

	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// PeriodFilter decides if a transaction date is part of a period.
type PeriodFilter interface {
	Includes(date time.Time) bool
}

type allTime struct{}

func (allTime) Includes(time.Time) bool { return true }

// AllTime includes every date.
func AllTime() PeriodFilter {
	return allTime{}
}

type inMonth struct {
	month types.Month
}

func (f inMonth) Includes(date time.Time) bool {
	return f.month.Contains(date)
}

// InMonth includes all dates of the calendar month.
func InMonth(month types.Month) PeriodFilter {
	return inMonth{month: month}
}

type inYear struct {
	year int
}

func (f inYear) Includes(date time.Time) bool {
	return date.Year() == f.year
}

// InYear includes all dates of the calendar year.
func InYear(year int) PeriodFilter {
	return inYear{year: year}
}

type between struct {
	from time.Time
	to   time.Time
}

func (f between) Includes(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(f.from) && !d.After(f.to)
}

// Between includes all dates from the date of from through the date of to.
// Both ends are inclusive, the time of day is ignored.
func Between(from, to time.Time) PeriodFilter {
	return between{from: dateOnly(from), to: dateOnly(to)}
}

// Through includes all dates up to and including the last day of the month.
func Through(month types.Month) PeriodFilter {
	return between{from: time.Time{}, to: month.End()}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Selector selects categories. The empty selector selects all categories,
// every other selector is a glob pattern, e.g. "spende*". A selector without
// wildcards selects exactly one category.
type Selector string

// AllCategories selects every category of a kind.
const AllCategories Selector = ""

// Matches reports whether the category is selected.
func (s Selector) Matches(c models.Category) bool {
	if s == AllCategories {
		return true
	}
	return glob.Glob(string(s), string(c))
}

// matches reports if the transaction is dated and matches kind, selector and period.
//
// Categories unknown to the kind are matched as the catch-all category
// so that their amounts are never lost.
func matches(t models.Transaction, kind models.Kind, selector Selector, period PeriodFilter) bool {
	if !t.HasDate() || t.Kind != kind {
		return false
	}

	if !selector.Matches(models.NormalizeCategory(kind, t.Category)) {
		return false
	}

	return period.Includes(t.Date)
}

// Sum returns the total amount of all dated transactions of the kind whose
// category is selected and whose date is in the period.
func Sum(transactions []models.Transaction, kind models.Kind, selector Selector, period PeriodFilter) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if matches(t, kind, selector, period) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// MonthAmount is the amount for one calendar month.
type MonthAmount struct {
	Month  types.Month     `json:"month" example:"2026-03"`
	Amount decimal.Decimal `json:"amount" example:"250.5"`
}

// ByMonth sums the transactions separately for each of the months.
// The result has one entry per month in the order of months.
func ByMonth(transactions []models.Transaction, kind models.Kind, selector Selector, months []types.Month) []MonthAmount {
	amounts := make([]MonthAmount, 0, len(months))
	for _, month := range months {
		amounts = append(amounts, MonthAmount{
			Month:  month,
			Amount: Sum(transactions, kind, selector, InMonth(month)),
		})
	}
	return amounts
}

// CategoryAmount is the amount for one category.
type CategoryAmount struct {
	Kind     models.Kind     `json:"kind" example:"expense"`
	Category models.Category `json:"category" example:"raummiete"`
	Label    string          `json:"label" example:"Raummiete"`
	Amount   decimal.Decimal `json:"amount" example:"1350"`
}

// ByCategory sums the transactions of the kind in the period per category.
// Only categories with a nonzero total are returned, in the display order
// of the categories.
func ByCategory(transactions []models.Transaction, kind models.Kind, period PeriodFilter) []CategoryAmount {
	amounts := []CategoryAmount{}
	for _, category := range models.Categories(kind) {
		total := Sum(transactions, kind, Selector(category), period)
		if total.IsZero() {
			continue
		}

		amounts = append(amounts, CategoryAmount{
			Kind:     kind,
			Category: category,
			Label:    category.Label(),
			Amount:   total,
		})
	}
	return amounts
}

// ActiveMonths returns the number of distinct calendar months in which at
// least one dated transaction of the kind with a selected category exists.
func ActiveMonths(transactions []models.Transaction, kind models.Kind, selector Selector) int {
	months := map[string]struct{}{}
	for _, t := range transactions {
		if matches(t, kind, selector, AllTime()) {
			months[types.MonthOf(t.Date).String()] = struct{}{}
		}
	}
	return len(months)
}
