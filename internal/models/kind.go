package models

// Kind is the direction of money flow for transactions, budgets and plan overrides.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether the kind is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Label returns the German display name of the kind.
func (k Kind) Label() string {
	if k == KindIncome {
		return "Einnahme"
	}
	return "Ausgabe"
}

// Category is a bookkeeping category. The set of valid categories
// depends on the Kind.
type Category string

// CategoryOther is the catch-all category of both kinds.
const CategoryOther Category = "sonstiges"

// Income categories
const (
	CategoryMembershipFee     Category = "mitgliedsbeitrag"
	CategorySupportingMember  Category = "foerdermitgliedschaft"
	CategoryHonoraryMember    Category = "ehrenmitgliedschaft"
	CategoryYouthMember       Category = "jugendmitgliedschaft"
	CategoryDonation          Category = "spende"
	CategoryEarmarkedDonation Category = "spende_zweckgebunden"
	CategoryInKindDonation    Category = "spende_sach"
	CategoryEvent             Category = "veranstaltung"
	CategoryGrant             Category = "zuschuss"
	CategoryMandateLevy       Category = "mandatsabgabe"
)

// Expense categories
const (
	CategoryPersonnel           Category = "personal"
	CategoryRent                Category = "raummiete"
	CategoryMaterial            Category = "material"
	CategoryMarketing           Category = "marketing"
	CategoryAdministration      Category = "verwaltung"
	CategoryIT                  Category = "edv"
	CategoryElectionCampaigning Category = "wahlkampf"
)

var incomeCategories = []Category{
	CategoryMembershipFee,
	CategorySupportingMember,
	CategoryHonoraryMember,
	CategoryYouthMember,
	CategoryDonation,
	CategoryEarmarkedDonation,
	CategoryInKindDonation,
	CategoryEvent,
	CategoryGrant,
	CategoryMandateLevy,
	CategoryOther,
}

var expenseCategories = []Category{
	CategoryPersonnel,
	CategoryRent,
	CategoryMaterial,
	CategoryMarketing,
	CategoryAdministration,
	CategoryIT,
	CategoryElectionCampaigning,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryMembershipFee:       "Mitgliedsbeitrag",
	CategorySupportingMember:    "Fördermitgliedschaft",
	CategoryHonoraryMember:      "Ehrenmitglied",
	CategoryYouthMember:         "Jugendmitglied",
	CategoryDonation:            "Spende",
	CategoryEarmarkedDonation:   "Spende (zweckgeb.)",
	CategoryInKindDonation:      "Sachspende",
	CategoryEvent:               "Veranstaltung",
	CategoryGrant:               "Zuschuss",
	CategoryMandateLevy:         "Mandatsabgabe",
	CategoryOther:               "Sonstiges",
	CategoryPersonnel:           "Personal",
	CategoryRent:                "Raummiete",
	CategoryMaterial:            "Material",
	CategoryMarketing:           "Marketing",
	CategoryAdministration:      "Verwaltung",
	CategoryIT:                  "EDV",
	CategoryElectionCampaigning: "Wahlkampf",
}

// Categories returns the valid categories for the kind in display order.
// The returned slice is a copy.
func Categories(kind Kind) []Category {
	var categories []Category
	switch kind {
	case KindIncome:
		categories = incomeCategories
	case KindExpense:
		categories = expenseCategories
	default:
		return []Category{}
	}

	return append([]Category(nil), categories...)
}

// ValidFor reports whether the category belongs to the category set of the kind.
func (c Category) ValidFor(kind Kind) bool {
	for _, category := range Categories(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory returns the category if it is valid for the kind,
// and the catch-all category otherwise.
func NormalizeCategory(kind Kind, c Category) Category {
	if c.ValidFor(kind) {
		return c
	}
	return CategoryOther
}

// Label returns the German display name of the category. Unknown
// categories are displayed with their raw value.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsFixedCost reports whether the category is a fixed cost that accepts
// a manual monthly amount in the annual plan.
func (c Category) IsFixedCost() bool {
	switch c {
	case CategoryRent, CategoryPersonnel, CategoryAdministration, CategoryIT:
		return true
	}
	return false
}

// AcceptsOverride reports whether a manual monthly amount may be planned
// for the category. Expenses only accept it for fixed costs.
func (c Category) AcceptsOverride(kind Kind) bool {
	return c.ValidFor(kind) && (kind == KindIncome || c.IsFixedCost())
}
