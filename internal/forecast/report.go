package forecast

import (
	"fmt"
	"time"

	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
)

// MonthTotals are the actual totals of one month.
type MonthTotals struct {
	Month   types.Month     `json:"month" example:"2026-03"`
	Income  decimal.Decimal `json:"income" example:"1250"`
	Expense decimal.Decimal `json:"expense" example:"980.5"`
	Net     decimal.Decimal `json:"net" example:"269.5"`
}

// Report is the breakdown of the actual income and expenses in a date range.
type Report struct {
	From              time.Time        `json:"from" example:"2026-01-01T00:00:00Z"`
	To                time.Time        `json:"to" example:"2026-06-30T00:00:00Z"`
	Months            []MonthTotals    `json:"months"`
	IncomeCategories  []CategoryAmount `json:"incomeCategories"`
	ExpenseCategories []CategoryAmount `json:"expenseCategories"`
	TotalIncome       decimal.Decimal  `json:"totalIncome" example:"7500"`
	TotalExpense      decimal.Decimal  `json:"totalExpense" example:"6100"`
	Balance           decimal.Decimal  `json:"balance" example:"1400"`
	LeviesPaid        decimal.Decimal  `json:"leviesPaid" example:"600"`
}

// BuildReport builds the report for the inclusive date range.
//
// Months at the edges of the range only contain the transactions
// dated within the range.
func BuildReport(s Snapshot, from, to time.Time) (Report, error) {
	if to.Before(from) {
		return Report{}, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	period := Between(from, to)
	r := Report{
		From:              dateOnly(from),
		To:                dateOnly(to),
		Months:            []MonthTotals{},
		IncomeCategories:  ByCategory(s.Transactions, models.KindIncome, period),
		ExpenseCategories: ByCategory(s.Transactions, models.KindExpense, period),
		TotalIncome:       Sum(s.Transactions, models.KindIncome, AllCategories, period),
		TotalExpense:      Sum(s.Transactions, models.KindExpense, AllCategories, period),
		LeviesPaid:        decimal.Zero,
	}
	r.Balance = r.TotalIncome.Sub(r.TotalExpense)

	for _, month := range types.MonthsBetween(types.MonthOf(r.From), types.MonthOf(r.To)) {
		start := maxTime(month.Start(), r.From)
		end := minTime(month.End(), r.To)

		totals := MonthTotals{
			Month:   month,
			Income:  Sum(s.Transactions, models.KindIncome, AllCategories, Between(start, end)),
			Expense: Sum(s.Transactions, models.KindExpense, AllCategories, Between(start, end)),
		}
		totals.Net = totals.Income.Sub(totals.Expense)
		r.Months = append(r.Months, totals)
	}

	for _, l := range s.Levies {
		if !l.Paid() {
			continue
		}

		if !l.PeriodMonth.End().Before(r.From) && !l.PeriodMonth.Start().After(r.To) {
			r.LeviesPaid = r.LeviesPaid.Add(l.FinalLevy)
		}
	}

	return r, nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// PlanLine is the plan and the actual amount of an expense category in a year.
type PlanLine struct {
	Category    models.Category `json:"category" example:"raummiete"`
	Label       string          `json:"label" example:"Raummiete"`
	IsFixedCost bool            `json:"isFixedCost" example:"true"`
	Plan        Plan            `json:"plan"`
	Actual      decimal.Decimal `json:"actual" example:"2700"`
	Variance    decimal.Decimal `json:"variance" example:"-900"`
}

// IncomePlan summarizes the planned and actual recurring income of a year.
type IncomePlan struct {
	MembershipFees       Plan            `json:"membershipFees"`
	MembershipFeesActual decimal.Decimal `json:"membershipFeesActual" example:"4200"`
	LevyMonthlyAverage   decimal.Decimal `json:"levyMonthlyAverage" example:"150"`
	LevyProjected        decimal.Decimal `json:"levyProjected" example:"1800"`
	LevyPaid             decimal.Decimal `json:"levyPaid" example:"900"`
	PlannedTotal         decimal.Decimal `json:"plannedTotal" example:"6600"`
	ActualTotal          decimal.Decimal `json:"actualTotal" example:"5100"`
}

// AnnualPlan is the plan-vs-actual table of a year.
type AnnualPlan struct {
	Year           int             `json:"year" example:"2026"`
	Income         IncomePlan      `json:"income"`
	Expenses       []PlanLine      `json:"expenses"`
	PlannedExpense decimal.Decimal `json:"plannedExpense" example:"9600"`
	ActualExpense  decimal.Decimal `json:"actualExpense" example:"7350"`
}

// PlanYear builds the annual plan for the year.
//
// Expense lines are resolved with the DefaultResolver. Categories without
// any plan, actual amount or override are left out.
func PlanYear(s Snapshot, year int) (AnnualPlan, error) {
	if year < 1900 || year > 9999 {
		return AnnualPlan{}, fmt.Errorf("%w, got %d", ErrInvalidYear, year)
	}

	in := s.Inputs()
	period := InYear(year)

	plan := AnnualPlan{
		Year:           year,
		Expenses:       []PlanLine{},
		PlannedExpense: decimal.Zero,
		ActualExpense:  decimal.Zero,
	}

	for _, category := range models.Categories(models.KindExpense) {
		resolved := ResolvePlanned(in, models.KindExpense, category, year)
		actual := Sum(s.Transactions, models.KindExpense, Selector(category), period)

		if resolved.Source != SourceOverride && resolved.Annual.IsZero() && actual.IsZero() {
			continue
		}

		plan.Expenses = append(plan.Expenses, PlanLine{
			Category:    category,
			Label:       category.Label(),
			IsFixedCost: category.IsFixedCost(),
			Plan:        resolved,
			Actual:      actual,
			Variance:    actual.Sub(resolved.Annual),
		})

		plan.PlannedExpense = plan.PlannedExpense.Add(resolved.Annual)
		plan.ActualExpense = plan.ActualExpense.Add(actual)
	}

	fees := ResolvePlanned(in, models.KindIncome, models.CategoryMembershipFee, year)
	levyAverage := LevyAverageIn(s.Levies, year)

	income := IncomePlan{
		MembershipFees:       fees,
		MembershipFeesActual: Sum(s.Transactions, models.KindIncome, Selector(models.CategoryMembershipFee), period),
		LevyMonthlyAverage:   levyAverage,
		LevyProjected:        levyAverage.Mul(twelve),
		LevyPaid:             LevyPaidIn(s.Levies, year),
	}
	income.PlannedTotal = fees.Annual.Add(income.LevyProjected)
	income.ActualTotal = income.MembershipFeesActual.Add(income.LevyPaid)
	plan.Income = income

	return plan, nil
}
