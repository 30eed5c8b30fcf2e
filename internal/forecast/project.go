package forecast

import (
	"fmt"
	"time"

	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
)

const (
	DefaultHorizon       = 6
	DefaultHistoryMonths = 6
	MaxHorizon           = 36
	AverageWindow        = 12
)

// Status classifies the risk of a forecast by its months with a negative balance.
type Status string

const (
	StatusGood Status = "good"
	StatusWarn Status = "warn"
	StatusBad  Status = "bad"
)

// Number of projected months with a negative running balance
// from which on a forecast is classified as warn or bad.
const (
	WarnNegativeMonths = 1
	BadNegativeMonths  = 3
)

// StatusFor returns the status for the number of negative months.
func StatusFor(negativeMonths int) Status {
	switch {
	case negativeMonths >= BadNegativeMonths:
		return StatusBad
	case negativeMonths >= WarnNegativeMonths:
		return StatusWarn
	default:
		return StatusGood
	}
}

// Point is one month of a forecast series.
type Point struct {
	Month          types.Month     `json:"month" example:"2026-07"`
	Income         decimal.Decimal `json:"income" example:"500"`
	Expense        decimal.Decimal `json:"expense" example:"1100"`
	RunningBalance decimal.Decimal `json:"runningBalance" example:"-200"`
	IsProjected    bool            `json:"isProjected" example:"true"`
}

// Forecast is the result of a projection.
type Forecast struct {
	Series         []Point         `json:"series"`
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"1000"`
	WorstBalance   decimal.Decimal `json:"worstBalance" example:"-800"`
	Status         Status          `json:"statusLevel" example:"bad"`
	NegativeMonths int             `json:"negativeMonths" example:"3"`
	AverageIncome  decimal.Decimal `json:"averageIncome" example:"500"`
	AverageExpense decimal.Decimal `json:"averageExpense" example:"1100"`
	AverageLevy    decimal.Decimal `json:"averageLevy" example:"0"`
}

// Options configure a projection.
type Options struct {
	// The current moment. Its month is the last historical month.
	Now time.Time

	// Number of months to project, 0 to 36.
	Horizon int

	// Number of historical months in the series, including the current month.
	HistoryMonths int

	// Planned monthly income used when no income budget covers a month.
	PlannedIncome *decimal.Decimal
}

// DefaultOptions returns the options with the default horizon and history.
func DefaultOptions(now time.Time) Options {
	return Options{
		Now:           now,
		Horizon:       DefaultHorizon,
		HistoryMonths: DefaultHistoryMonths,
	}
}

func (o Options) validate() error {
	if o.Horizon < 0 || o.Horizon > MaxHorizon {
		return fmt.Errorf("%w, got %d", ErrInvalidHorizon, o.Horizon)
	}

	if o.HistoryMonths < 0 || o.HistoryMonths > MaxHorizon {
		return fmt.Errorf("%w, got %d", ErrInvalidHistory, o.HistoryMonths)
	}

	return nil
}

// Balance returns all income minus all expenses of the dated transactions in the period.
func Balance(transactions []models.Transaction, period PeriodFilter) decimal.Decimal {
	income := Sum(transactions, models.KindIncome, AllCategories, period)
	expense := Sum(transactions, models.KindExpense, AllCategories, period)
	return income.Sub(expense)
}

// TrailingAverage returns the total of the kind over the AverageWindow months
// ending with the month, divided by the window length. Months without
// transactions count as zero.
func TrailingAverage(transactions []models.Transaction, kind models.Kind, month types.Month) decimal.Decimal {
	return TrailingAverageOf(transactions, kind, AllCategories, month)
}

// TrailingAverageOf is TrailingAverage for the selected categories.
func TrailingAverageOf(transactions []models.Transaction, kind models.Kind, selector Selector, month types.Month) decimal.Decimal {
	window := types.Trailing(month, AverageWindow)
	total := Sum(transactions, kind, selector, Between(window[0].Start(), month.End()))
	return total.Div(decimal.NewFromInt(AverageWindow))
}

// Project builds the monthly cash-flow series for the snapshot.
//
// The series starts with the historical months ending with the current month
// and continues with the projected months. Projected values come from the
// budgets covering a month and fall back to trailing averages.
func Project(s Snapshot, opts Options) (Forecast, error) {
	if err := opts.validate(); err != nil {
		return Forecast{}, err
	}

	current := types.MonthOf(opts.Now.UTC())
	f := Forecast{
		Series:         make([]Point, 0, opts.HistoryMonths+opts.Horizon),
		CurrentBalance: Balance(s.Transactions, AllTime()),
		AverageIncome:  TrailingAverage(s.Transactions, models.KindIncome, current),
		AverageExpense: TrailingAverage(s.Transactions, models.KindExpense, current),
		AverageLevy:    LevyAverage(s.Levies),
	}

	for _, month := range types.Trailing(current, opts.HistoryMonths) {
		f.Series = append(f.Series, Point{
			Month:          month,
			Income:         Sum(s.Transactions, models.KindIncome, AllCategories, InMonth(month)),
			Expense:        Sum(s.Transactions, models.KindExpense, AllCategories, InMonth(month)),
			RunningBalance: Balance(s.Transactions, Through(month)),
		})
	}

	fallbackIncome := f.AverageIncome.Add(f.AverageLevy)
	if opts.PlannedIncome != nil {
		fallbackIncome = *opts.PlannedIncome
	}

	balance := f.CurrentBalance
	f.WorstBalance = balance

	for i, month := range types.MonthsFrom(current.AddDate(0, 1), opts.Horizon) {
		income := ShareIn(s.Budgets, models.KindIncome, AllCategories, month)
		if !income.IsPositive() {
			income = fallbackIncome
		}

		expense := ShareIn(s.Budgets, models.KindExpense, AllCategories, month)
		if !expense.IsPositive() {
			expense = f.AverageExpense
		}

		balance = balance.Add(income).Sub(expense)
		if i == 0 || balance.LessThan(f.WorstBalance) {
			f.WorstBalance = balance
		}

		if balance.IsNegative() {
			f.NegativeMonths++
		}

		f.Series = append(f.Series, Point{
			Month:          month,
			Income:         income,
			Expense:        expense,
			RunningBalance: balance,
			IsProjected:    true,
		})
	}

	f.Status = StatusFor(f.NegativeMonths)
	return f, nil
}
