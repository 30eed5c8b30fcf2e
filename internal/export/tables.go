package export

import (
	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/models"
)

var classificationLabels = map[forecast.Classification]string{
	forecast.ClassificationExceeded:    "Überschritten",
	forecast.ClassificationUnderBudget: "Unter Budget",
	forecast.ClassificationOnTrack:     "Im Plan",
	forecast.ClassificationAheadOfPlan: "Über Plan",
	forecast.ClassificationBehindPlan:  "Hinter Plan",
}

// Forecast returns the series of the forecast.
func Forecast(f forecast.Forecast) Table {
	t := Table{
		Header: []string{"Monat", "Einnahmen (EUR)", "Ausgaben (EUR)", "Lfd. Saldo (EUR)", "Prognose"},
		Rows:   make([][]string, 0, len(f.Series)),
	}

	for _, p := range f.Series {
		t.Rows = append(t.Rows, []string{
			p.Month.String(),
			Amount(p.Income),
			Amount(p.Expense),
			Amount(p.RunningBalance),
			yesNo(p.IsProjected),
		})
	}

	return t
}

// Variances returns one row per budget.
func Variances(variances []forecast.Variance) Table {
	t := Table{
		Header: []string{"Budget", "Typ", "Kategorie", "Ist (EUR)", "Plan (EUR)", "Abweichung (EUR)", "Abweichung (%)", "Bewertung"},
		Rows:   make([][]string, 0, len(variances)),
	}

	for _, v := range variances {
		t.Rows = append(t.Rows, []string{
			v.Name,
			v.Kind.Label(),
			v.Category.Label(),
			Amount(v.Actual),
			Amount(v.Planned),
			Amount(v.Variance),
			Amount(v.PercentVariance),
			classificationLabels[v.Classification],
		})
	}

	return t
}

// Report returns the monthly totals of the report followed by a total row.
func Report(r forecast.Report) Table {
	t := Table{
		Header: []string{"Monat", "Einnahmen (EUR)", "Ausgaben (EUR)", "Saldo (EUR)"},
		Rows:   make([][]string, 0, len(r.Months)+1),
	}

	for _, m := range r.Months {
		t.Rows = append(t.Rows, []string{m.Month.String(), Amount(m.Income), Amount(m.Expense), Amount(m.Net)})
	}

	t.Rows = append(t.Rows, []string{"Gesamt", Amount(r.TotalIncome), Amount(r.TotalExpense), Amount(r.Balance)})
	return t
}

// Transactions returns one row per transaction.
func Transactions(transactions []models.Transaction) Table {
	t := Table{
		Header: []string{"Datum", "Beschreibung", "Typ", "Kategorie", "Betrag (EUR)", "Gegenpartei", "Status"},
		Rows:   make([][]string, 0, len(transactions)),
	}

	for _, tr := range transactions {
		t.Rows = append(t.Rows, []string{
			Date(tr.Date),
			tr.Description,
			tr.Kind.Label(),
			models.NormalizeCategory(tr.Kind, tr.Category).Label(),
			Amount(tr.Amount),
			tr.Counterpart,
			string(tr.Status),
		})
	}

	return t
}

// Levies returns one row per mandate levy.
func Levies(levies []models.MandateLevy) Table {
	t := Table{
		Header: []string{"Monat", "Mandatsträger", "Mandatsart", "Gremium", "Brutto (EUR)", "Abgabe (EUR)", "Status"},
		Rows:   make([][]string, 0, len(levies)),
	}

	for _, l := range levies {
		t.Rows = append(t.Rows, []string{
			l.PeriodMonth.String(),
			l.Contact,
			l.MandateType,
			l.MandateBody,
			Amount(l.GrossIncome),
			Amount(l.FinalLevy),
			string(l.Status),
		})
	}

	return t
}

// Budgets returns one row per budget.
func Budgets(budgets []models.Budget) Table {
	t := Table{
		Header: []string{"Name", "Typ", "Kategorie", "Betrag (EUR)", "Von", "Bis"},
		Rows:   make([][]string, 0, len(budgets)),
	}

	for _, b := range budgets {
		t.Rows = append(t.Rows, []string{
			b.Name,
			b.Kind.Label(),
			b.Category.Label(),
			Amount(b.Amount),
			Date(b.PeriodStart),
			Date(b.PeriodEnd),
		})
	}

	return t
}
