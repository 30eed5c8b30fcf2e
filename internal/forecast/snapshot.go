package forecast

import (
	"context"
	"fmt"

	"github.com/kommunalcrm/treasury/internal/models"
	"golang.org/x/sync/errgroup"
)

type TransactionStore interface {
	ListTransactions(ctx context.Context, organization string) ([]models.Transaction, error)
}

type BudgetStore interface {
	ListBudgets(ctx context.Context, organization string) ([]models.Budget, error)
}

type LevyStore interface {
	ListLevies(ctx context.Context, organization string) ([]models.MandateLevy, error)
}

type OverrideStore interface {
	ListOverrides(ctx context.Context, organization string) ([]models.PlanOverride, error)
}

// Store provides all collections of a Snapshot.
type Store interface {
	TransactionStore
	BudgetStore
	LevyStore
	OverrideStore
}

// Snapshot holds all records of an organization the engine computes on.
// It is never modified by the engine.
type Snapshot struct {
	Organization string
	Transactions []models.Transaction
	Budgets      []models.Budget
	Levies       []models.MandateLevy
	Overrides    []models.PlanOverride
}

// Inputs returns the resolver inputs for the snapshot.
func (s Snapshot) Inputs() Inputs {
	return Inputs{
		Transactions: s.Transactions,
		Budgets:      s.Budgets,
		Overrides:    OverridesFrom(s.Overrides),
	}
}

// Load reads the snapshot of the organization from the store. The
// collections are read concurrently, the first error cancels the others.
func Load(ctx context.Context, store Store, organization string) (Snapshot, error) {
	s := Snapshot{Organization: organization}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Transactions, err = store.ListTransactions(ctx, organization)
		return err
	})

	g.Go(func() (err error) {
		s.Budgets, err = store.ListBudgets(ctx, organization)
		return err
	})

	g.Go(func() (err error) {
		s.Levies, err = store.ListLevies(ctx, organization)
		return err
	})

	g.Go(func() (err error) {
		s.Overrides, err = store.ListOverrides(ctx, organization)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("loading snapshot for %q: %w", organization, err)
	}

	return s, nil
}
