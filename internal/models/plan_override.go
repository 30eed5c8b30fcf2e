package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanOverride is a manually planned monthly amount for a category.
//
// The existence of an override means that it is set, even when the
// monthly amount is zero.
type PlanOverride struct {
	DefaultModel
	Organization string          `gorm:"uniqueIndex:plan_override_category"`
	Kind         Kind            `gorm:"uniqueIndex:plan_override_category"`
	Category     Category        `gorm:"uniqueIndex:plan_override_category"`
	Monthly      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (o *PlanOverride) BeforeSave(_ *gorm.DB) error {
	o.Organization = strings.TrimSpace(o.Organization)

	if o.Organization == "" {
		return ErrOrganizationMissing
	}

	if !o.Kind.Valid() {
		return ErrInvalidKind
	}

	if !o.Category.ValidFor(o.Kind) {
		return ErrInvalidCategory
	}

	if !o.Category.AcceptsOverride(o.Kind) {
		return ErrOverrideNotFixedCost
	}

	if o.Monthly.IsNegative() {
		return ErrMonthlyNegative
	}

	return nil
}
