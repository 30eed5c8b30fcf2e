package forecast

import (
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

// Source names the planning source a Plan was resolved from.
type Source string

const (
	SourceBudget   Source = "budget"
	SourceOverride Source = "override"
	SourceHistory  Source = "history"
	SourceNone     Source = "none"
)

var twelve = decimal.NewFromInt(12)

// Plan is the planned amount for one category in one year.
type Plan struct {
	Kind     models.Kind     `json:"kind" example:"expense"`
	Category models.Category `json:"category" example:"raummiete"`
	Year     int             `json:"year" example:"2026"`
	Annual   decimal.Decimal `json:"annual" example:"3600"`
	Monthly  decimal.Decimal `json:"monthly" example:"300"`
	Source   Source          `json:"source" example:"override"`
}

// Query identifies the category and year to resolve a Plan for.
type Query struct {
	Kind     models.Kind
	Category models.Category
	Year     int
}

func (q Query) plan(annual, monthly decimal.Decimal, source Source) Plan {
	return Plan{
		Kind:     q.Kind,
		Category: q.Category,
		Year:     q.Year,
		Annual:   annual,
		Monthly:  monthly,
		Source:   source,
	}
}

// OverrideKey identifies a manual monthly override.
type OverrideKey struct {
	Kind     models.Kind
	Category models.Category
}

// Overrides maps categories to their manual monthly amount. A key that is
// present is set, even when its amount is zero.
type Overrides map[OverrideKey]decimal.Decimal

// OverridesFrom indexes the plan overrides by kind and category.
func OverridesFrom(overrides []models.PlanOverride) Overrides {
	index := make(Overrides, len(overrides))
	for _, o := range overrides {
		index[OverrideKey{Kind: o.Kind, Category: o.Category}] = o.Monthly
	}
	return index
}

// Inputs are the collections a Strategy may resolve a Plan from.
type Inputs struct {
	Transactions []models.Transaction
	Budgets      []models.Budget
	Overrides    Overrides
}

// A Strategy resolves a Plan for the query. It returns false if it has no
// opinion, so that the next Strategy is asked.
type Strategy func(in Inputs, q Query) (Plan, bool)

// FromBudgets resolves the plan from the shares of the matching budgets that
// fall into the year. Budgets are authoritative only if their sum is nonzero.
func FromBudgets(in Inputs, q Query) (Plan, bool) {
	annual := PlannedIn(in.Budgets, q.Kind, Selector(q.Category), q.Year)
	if annual.IsZero() {
		return Plan{}, false
	}

	return q.plan(annual, annual.Div(twelve), SourceBudget), true
}

// FromOverrides resolves the plan from a manual monthly override.
func FromOverrides(in Inputs, q Query) (Plan, bool) {
	if !q.Category.AcceptsOverride(q.Kind) {
		return Plan{}, false
	}

	monthly, ok := in.Overrides[OverrideKey{Kind: q.Kind, Category: q.Category}]
	if !ok {
		return Plan{}, false
	}

	return q.plan(monthly.Mul(twelve), monthly, SourceOverride), true
}

// FromHistory resolves the plan from the average amount per active month
// of all dated transactions of the category.
func FromHistory(in Inputs, q Query) (Plan, bool) {
	selector := Selector(q.Category)

	months := ActiveMonths(in.Transactions, q.Kind, selector)
	if months == 0 {
		return Plan{}, false
	}

	monthly := Sum(in.Transactions, q.Kind, selector, AllTime()).Div(decimal.NewFromInt(int64(months)))
	return q.plan(monthly.Mul(twelve), monthly, SourceHistory), true
}

// Resolver asks its strategies in order. The first one that resolves a Plan wins.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a Resolver with the strategies in order of precedence.
func NewResolver(strategies ...Strategy) Resolver {
	return Resolver{strategies: strategies}
}

// DefaultResolver prefers budgets over manual overrides over history.
var DefaultResolver = NewResolver(FromBudgets, FromOverrides, FromHistory)

// Resolve returns the plan of the first strategy with an opinion. If no
// strategy has one, the plan is zero with SourceNone.
func (r Resolver) Resolve(in Inputs, q Query) Plan {
	for _, strategy := range r.strategies {
		if plan, ok := strategy(in, q); ok {
			return plan
		}
	}

	return q.plan(decimal.Zero, decimal.Zero, SourceNone)
}

// ResolvePlanned resolves the plan for the category and year with the DefaultResolver.
func ResolvePlanned(in Inputs, kind models.Kind, category models.Category, year int) Plan {
	return DefaultResolver.Resolve(in, Query{Kind: kind, Category: category, Year: year})
}
