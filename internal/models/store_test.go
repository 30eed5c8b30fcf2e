package models_test

import (
	"context"

	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestStoreListsByOrganization() {
	for _, org := range []string{"OV Nord", "OV Süd"} {
		suite.createTestTransaction(models.Transaction{Organization: org, Kind: models.KindIncome, Category: models.CategoryDonation, Amount: decimal.NewFromInt(10), Date: date(2026, 2, 1)})
		suite.createTestTransaction(models.Transaction{Organization: org, Kind: models.KindIncome, Category: models.CategoryDonation, Amount: decimal.NewFromInt(20), Date: date(2026, 1, 1)})
		suite.createTestBudget(models.Budget{Organization: org, Kind: models.KindExpense, Category: models.CategoryRent, Amount: decimal.NewFromInt(1200), PeriodStart: date(2026, 1, 1), PeriodEnd: date(2026, 12, 31)})
		suite.createTestLevy(models.MandateLevy{Organization: org, PeriodMonth: types.NewMonth(2026, 1), GrossIncome: decimal.NewFromInt(100), LevyRate: decimal.NewFromInt(10)})
		suite.createTestOverride(models.PlanOverride{Organization: org, Kind: models.KindExpense, Category: models.CategoryIT, Monthly: decimal.NewFromInt(30)})
	}

	store := models.NewStore(models.DB)
	ctx := context.Background()

	transactions, err := store.ListTransactions(ctx, "OV Nord")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), date(2026, 1, 1), transactions[0].Date, "transactions must be sorted by date")

	budgets, err := store.ListBudgets(ctx, "OV Nord")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 1)

	levies, err := store.ListLevies(ctx, "OV Nord")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), levies, 1)

	overrides, err := store.ListOverrides(ctx, "OV Nord")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), overrides, 1)

	transactions, err = store.ListTransactions(ctx, "KV")
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), transactions)
}

func (suite *TestSuiteStandard) TestStoreDatabaseClosed() {
	suite.CloseDB()

	_, err := models.NewStore(models.DB).ListBudgets(context.Background(), "OV")
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestStoreCloneBudgets() {
	suite.createTestBudget(models.Budget{Organization: "OV", Name: "Miete 2025", Kind: models.KindExpense, Category: models.CategoryRent, Amount: decimal.NewFromInt(1200), PeriodStart: date(2025, 1, 1), PeriodEnd: date(2025, 12, 31)})
	suite.createTestBudget(models.Budget{Organization: "OV", Name: "Sommerfest 2025", Kind: models.KindIncome, Category: models.CategoryEvent, Amount: decimal.NewFromInt(800), PeriodStart: date(2025, 7, 1), PeriodEnd: date(2025, 7, 31)})
	suite.createTestBudget(models.Budget{Organization: "OV", Name: "Miete 2024", Kind: models.KindExpense, Category: models.CategoryRent, Amount: decimal.NewFromInt(1100), PeriodStart: date(2024, 1, 1), PeriodEnd: date(2024, 12, 31)})

	store := models.NewStore(models.DB)
	clones, err := store.CloneBudgets(context.Background(), "OV", 2025, 2026)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), clones, 2)

	budgets, err := store.ListBudgets(context.Background(), "OV")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 5)

	names := []string{}
	for _, b := range budgets {
		if b.PeriodStart.Year() == 2026 {
			names = append(names, b.Name)
		}
	}
	assert.ElementsMatch(suite.T(), []string{"Miete 2026", "Sommerfest 2026"}, names)
}

func (suite *TestSuiteStandard) TestStoreCloneBudgetsNothingToClone() {
	_, err := models.NewStore(models.DB).CloneBudgets(context.Background(), "OV", 2019, 2020)
	assert.ErrorIs(suite.T(), err, models.ErrNoBudgetsToClone)
}
