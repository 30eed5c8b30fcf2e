package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrOrganizationMissing      = errors.New("the organization must be set")
	ErrInvalidKind              = errors.New("the kind must be one of 'income' or 'expense'")
	ErrInvalidCategory          = errors.New("the category is not valid for the kind")
	ErrAmountNegative           = errors.New("the amount must not be negative unless the transaction is a correction")
	ErrTransactionStatusInvalid = errors.New("the transaction status must be one of 'geplant', 'bezahlt' or 'ausstehend'")
	ErrBudgetPeriodMissing      = errors.New("the budget period must have a start and an end date")
	ErrBudgetPeriodInvalid      = errors.New("the end of the budget period must not be before its start")
	ErrLevyMonthMissing         = errors.New("the period month of the mandate levy must be set")
	ErrLevyRateInvalid          = errors.New("the levy rate must be between 0 and 100 percent")
	ErrLevyStatusInvalid        = errors.New("the levy status must be one of 'offen' or 'bezahlt'")
	ErrMonthlyNegative          = errors.New("the monthly amount must not be negative")
	ErrOverrideNotFixedCost     = errors.New("expense overrides are only allowed for the fixed-cost categories raummiete, personal, verwaltung and edv")
	ErrPlanOverrideNotUnique    = errors.New("there already is a plan override for this organization, kind and category")
	ErrNoBudgetsToClone         = errors.New("there are no budgets starting in the source year")
	ErrImportedTransaction      = errors.New("organization, kind, amount, date and counterpart of an imported transaction can only be changed with a correction")
)
