package forecast

import (
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
)

// Result is the output of the full pipeline for one snapshot.
type Result struct {
	Forecast  Forecast   `json:"forecast"`
	Variances []Variance `json:"variances"`
}

// PlannedMonthlyIncome returns the planned monthly income for the months
// after the month. Each income category contributes its manual monthly
// override if one is set and its trailing average otherwise. The average
// mandate levy is added on top. Overrides apply to every year.
//
// It returns false if no income override is set.
func PlannedMonthlyIncome(s Snapshot, month types.Month) (decimal.Decimal, bool) {
	resolver := NewResolver(FromOverrides)
	in := s.Inputs()

	total := LevyAverage(s.Levies)
	found := false
	for _, category := range models.Categories(models.KindIncome) {
		plan := resolver.Resolve(in, Query{Kind: models.KindIncome, Category: category})
		if plan.Source == SourceNone {
			total = total.Add(TrailingAverageOf(s.Transactions, models.KindIncome, Selector(category), month))
			continue
		}

		found = true
		total = total.Add(plan.Monthly)
	}

	return total, found
}

// Run projects the forecast and analyzes the variance of all budgets.
//
// If opts has no planned income and there are income overrides, the
// planned monthly income is used for months without an income budget.
func Run(s Snapshot, opts Options) (Result, error) {
	if opts.PlannedIncome == nil {
		if planned, ok := PlannedMonthlyIncome(s, types.MonthOf(opts.Now.UTC())); ok {
			opts.PlannedIncome = &planned
		}
	}

	f, err := Project(s, opts)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Forecast:  f,
		Variances: AnalyzeAll(s),
	}, nil
}
