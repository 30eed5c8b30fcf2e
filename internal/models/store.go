package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store reads and writes the treasury records of organizations.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the database.
func NewStore(db *gorm.DB) Store {
	return Store{db: db}
}

// ListTransactions returns all transactions of the organization, oldest first.
func (s Store) ListTransactions(ctx context.Context, organization string) ([]Transaction, error) {
	var transactions []Transaction
	err := s.db.WithContext(ctx).
		Where("organization = ?", organization).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return transactions, nil
}

// ListBudgets returns all budgets of the organization ordered by period start.
func (s Store) ListBudgets(ctx context.Context, organization string) ([]Budget, error) {
	var budgets []Budget
	err := s.db.WithContext(ctx).
		Where("organization = ?", organization).
		Order("period_start ASC, name ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	return budgets, nil
}

// ListLevies returns all mandate levies of the organization ordered by month.
func (s Store) ListLevies(ctx context.Context, organization string) ([]MandateLevy, error) {
	var levies []MandateLevy
	err := s.db.WithContext(ctx).
		Where("organization = ?", organization).
		Order("period_month ASC, contact ASC").
		Find(&levies).Error
	if err != nil {
		return nil, fmt.Errorf("listing mandate levies: %w", err)
	}

	return levies, nil
}

// ListOverrides returns all plan overrides of the organization.
func (s Store) ListOverrides(ctx context.Context, organization string) ([]PlanOverride, error) {
	var overrides []PlanOverride
	err := s.db.WithContext(ctx).
		Where("organization = ?", organization).
		Order("kind ASC, category ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("listing plan overrides: %w", err)
	}

	return overrides, nil
}

// CloneBudgets copies all budgets of the organization that start in fromYear
// to toYear. All copies are created in one database transaction.
func (s Store) CloneBudgets(ctx context.Context, organization string, fromYear, toYear int) ([]Budget, error) {
	budgets, err := s.ListBudgets(ctx, organization)
	if err != nil {
		return nil, err
	}

	var clones []Budget
	for _, budget := range budgets {
		if budget.PeriodStart.Year() == fromYear {
			clones = append(clones, budget.CloneToYear(fromYear, toYear))
		}
	}

	if len(clones) == 0 {
		return nil, ErrNoBudgetsToClone
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&clones).Error
	})
	if err != nil {
		return nil, err
	}

	return clones, nil
}
