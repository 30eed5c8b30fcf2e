package forecast

import (
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
)

// Share is the part of a budget planned for one month.
type Share struct {
	Month  types.Month     `json:"month" example:"2026-01"`
	Amount decimal.Decimal `json:"amount" example:"100"`
}

// Distribute spreads the budget amount evenly over all calendar months
// that intersect the budget period.
//
// The division is flat and does not weigh months by days. The last share
// absorbs the rounding remainder, so the shares always add up to the
// budget amount exactly. A degenerate period yields a single share in the
// month of the period start.
func Distribute(b models.Budget) []Share {
	months := b.Months()
	count := decimal.NewFromInt(int64(len(months)))
	share := b.Amount.Div(count)

	shares := make([]Share, 0, len(months))
	for i, month := range months {
		amount := share
		if i == len(months)-1 {
			amount = b.Amount.Sub(share.Mul(count.Sub(decimal.NewFromInt(1))))
		}

		shares = append(shares, Share{Month: month, Amount: amount})
	}

	return shares
}

func budgetSelected(b models.Budget, kind models.Kind, selector Selector) bool {
	return b.Kind == kind && selector.Matches(models.NormalizeCategory(kind, b.Category))
}

// ShareIn returns the sum of the shares for the month of all budgets of the
// kind with a selected category.
func ShareIn(budgets []models.Budget, kind models.Kind, selector Selector, month types.Month) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		if !budgetSelected(b, kind, selector) {
			continue
		}

		for _, share := range Distribute(b) {
			if share.Month.Equal(month) {
				total = total.Add(share.Amount)
			}
		}
	}
	return total
}

// PlannedIn returns the sum of all shares that fall into the year for all
// budgets of the kind with a selected category.
func PlannedIn(budgets []models.Budget, kind models.Kind, selector Selector, year int) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		if !budgetSelected(b, kind, selector) {
			continue
		}

		for _, share := range Distribute(b) {
			if share.Month.Year() == year {
				total = total.Add(share.Amount)
			}
		}
	}
	return total
}
