package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/shopspring/decimal"
)

var errDuplicateOverride = errors.New("the file contains more than one override for")

// overrideFile is the format of plan override files:
//
//	[[override]]
//	kind = "expense"
//	category = "raummiete"
//	monthly = "450"
type overrideFile struct {
	Overrides []overrideEntry `toml:"override"`
}

type overrideEntry struct {
	Kind     models.Kind     `toml:"kind"`
	Category models.Category `toml:"category"`
	Monthly  decimal.Decimal `toml:"monthly"`
}

// parseOverrides reads plan overrides for the organization from a TOML document.
func parseOverrides(r io.Reader, organization string) ([]models.PlanOverride, error) {
	var file overrideFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("could not parse overrides: %w", err)
	}

	seen := make(map[string]bool, len(file.Overrides))
	overrides := make([]models.PlanOverride, 0, len(file.Overrides))
	for i, entry := range file.Overrides {
		if !entry.Kind.Valid() {
			return nil, fmt.Errorf("override %d: %w", i+1, models.ErrInvalidKind)
		}

		if !entry.Category.ValidFor(entry.Kind) {
			return nil, fmt.Errorf("override %d: %w", i+1, models.ErrInvalidCategory)
		}

		if !entry.Category.AcceptsOverride(entry.Kind) {
			return nil, fmt.Errorf("override %d: %w", i+1, models.ErrOverrideNotFixedCost)
		}

		if entry.Monthly.IsNegative() {
			return nil, fmt.Errorf("override %d: %w", i+1, models.ErrMonthlyNegative)
		}

		key := overrideKey(entry.Kind, entry.Category)
		if seen[key] {
			return nil, fmt.Errorf("%w %s", errDuplicateOverride, key)
		}
		seen[key] = true

		overrides = append(overrides, models.PlanOverride{
			Organization: organization,
			Kind:         entry.Kind,
			Category:     entry.Category,
			Monthly:      entry.Monthly,
		})
	}

	return overrides, nil
}

// mergeOverrides returns the stored overrides with the ones from the file
// applied. Overrides from the file replace stored ones for the same category.
func mergeOverrides(stored, file []models.PlanOverride) []models.PlanOverride {
	replaced := make(map[string]bool, len(file))
	for _, o := range file {
		replaced[overrideKey(o.Kind, o.Category)] = true
	}

	merged := make([]models.PlanOverride, 0, len(stored)+len(file))
	for _, o := range stored {
		if !replaced[overrideKey(o.Kind, o.Category)] {
			merged = append(merged, o)
		}
	}

	return append(merged, file...)
}

func overrideKey(kind models.Kind, category models.Category) string {
	return fmt.Sprintf("%s/%s", kind, category)
}
