package forecast

import (
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

// LevyAverage returns the average paid levy per month: the total of all
// paid levies divided by the number of distinct months they were paid for.
func LevyAverage(levies []models.MandateLevy) decimal.Decimal {
	total := decimal.Zero
	months := map[string]struct{}{}

	for _, l := range levies {
		if !l.Paid() {
			continue
		}

		total = total.Add(l.FinalLevy)
		months[l.PeriodMonth.String()] = struct{}{}
	}

	return total.Div(decimal.NewFromInt(int64(max(1, len(months)))))
}

// LevyAverageIn returns the average levy per month of the year over all
// levies of the year, paid or not.
func LevyAverageIn(levies []models.MandateLevy, year int) decimal.Decimal {
	total := decimal.Zero
	months := map[string]struct{}{}

	for _, l := range levies {
		if l.PeriodMonth.Year() != year {
			continue
		}

		total = total.Add(l.FinalLevy)
		months[l.PeriodMonth.String()] = struct{}{}
	}

	return total.Div(decimal.NewFromInt(int64(max(1, len(months)))))
}

// LevyPaidIn returns the total of the paid levies of the year.
func LevyPaidIn(levies []models.MandateLevy, year int) decimal.Decimal {
	total := decimal.Zero
	for _, l := range levies {
		if l.Paid() && l.PeriodMonth.Year() == year {
			total = total.Add(l.FinalLevy)
		}
	}
	return total
}
