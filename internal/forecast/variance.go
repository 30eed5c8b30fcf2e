package forecast

import (
	"github.com/google/uuid"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

// Classification is the verdict on the variance of a budget.
type Classification string

const (
	ClassificationExceeded    Classification = "exceeded"
	ClassificationUnderBudget Classification = "underBudget"
	ClassificationOnTrack     Classification = "onTrack"
	ClassificationAheadOfPlan Classification = "aheadOfPlan"
	ClassificationBehindPlan  Classification = "behindPlan"
)

// Percent variances at or below which a budget is under budget (expense)
// or behind plan (income).
var (
	UnderBudgetPercent = decimal.NewFromInt(-20)
	BehindPlanPercent  = decimal.NewFromInt(-25)
)

var hundred = decimal.NewFromInt(100)

// Variance compares the actual amount of a budget to its planned amount.
type Variance struct {
	BudgetID        uuid.UUID       `json:"budgetId" example:"76a4b2e9-4a0d-4f08-9c1e-2f9a1c3a5a11"`
	Name            string          `json:"name" example:"Miete 2026"`
	Kind            models.Kind     `json:"kind" example:"expense"`
	Category        models.Category `json:"category" example:"raummiete"`
	Actual          decimal.Decimal `json:"actual" example:"1200"`
	Planned         decimal.Decimal `json:"planned" example:"1000"`
	Variance        decimal.Decimal `json:"variance" example:"200"`
	PercentVariance decimal.Decimal `json:"percentVariance" example:"20"`
	Classification  Classification  `json:"classification" example:"exceeded"`
}

// Analyze computes the variance of the budget for the actual amount.
//
// The percent variance is zero if nothing is planned.
func Analyze(b models.Budget, actual decimal.Decimal) Variance {
	planned := b.Amount
	variance := actual.Sub(planned)

	percent := decimal.Zero
	if !planned.IsZero() {
		percent = variance.Mul(hundred).Div(planned)
	}

	return Variance{
		BudgetID:        b.ID,
		Name:            b.Name,
		Kind:            b.Kind,
		Category:        b.Category,
		Actual:          actual,
		Planned:         planned,
		Variance:        variance,
		PercentVariance: percent,
		Classification:  classify(b.Kind, variance, percent),
	}
}

func classify(kind models.Kind, variance, percent decimal.Decimal) Classification {
	if kind == models.KindIncome {
		switch {
		case !variance.IsNegative():
			return ClassificationAheadOfPlan
		case percent.LessThanOrEqual(BehindPlanPercent):
			return ClassificationBehindPlan
		default:
			return ClassificationOnTrack
		}
	}

	switch {
	case variance.IsPositive():
		return ClassificationExceeded
	case percent.LessThanOrEqual(UnderBudgetPercent):
		return ClassificationUnderBudget
	default:
		return ClassificationOnTrack
	}
}

// Actual returns the total of the transactions of the budget's kind and
// category dated within the budget period.
func Actual(transactions []models.Transaction, b models.Budget) decimal.Decimal {
	selector := Selector(models.NormalizeCategory(b.Kind, b.Category))
	return Sum(transactions, b.Kind, selector, Between(b.PeriodStart, b.PeriodEnd))
}

// AnalyzeAll computes the variance for every budget of the snapshot, in
// the order of the budgets.
func AnalyzeAll(s Snapshot) []Variance {
	variances := make([]Variance, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		variances = append(variances, Analyze(b, Actual(s.Transactions, b)))
	}
	return variances
}
