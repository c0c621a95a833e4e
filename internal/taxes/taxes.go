// Package taxes implements the tax computation core: rule-based
// categorization of extracted financial items, aggregation of items into
// per-category totals, the 2024 federal tax calculation, and the mapping
// of computed values onto IRS form fields.
//
// Everything in this package is a pure function over its inputs and the
// static rule tables. No function here touches the database or returns an
// error; malformed input is resolved by documented fallbacks so that a
// summary is always computable.
package taxes

// TaxYear is the tax year all rule tables in this package apply to.
const TaxYear = 2024

// CategoryType describes how a category contributes to the tax summary.
type CategoryType string

const (
	CategoryTypeIncome      CategoryType = "income"
	CategoryTypeDeduction   CategoryType = "deduction"
	CategoryTypeCredit      CategoryType = "credit"
	CategoryTypeWithholding CategoryType = "withholding"
)

// Filing statuses understood by the calculator. Anything else falls back
// to the tables for FilingStatusSingle.
const (
	FilingStatusSingle          = "single"
	FilingStatusMarriedJoint    = "married_joint"
	FilingStatusMarriedSeparate = "married_separate"
	FilingStatusHeadOfHousehold = "head_of_household"
)

// FilingStatusLabels maps filing statuses to their display names.
var FilingStatusLabels = map[string]string{
	FilingStatusSingle:          "Single",
	FilingStatusMarriedJoint:    "Married Filing Jointly",
	FilingStatusMarriedSeparate: "Married Filing Separately",
	FilingStatusHeadOfHousehold: "Head of Household",
}
