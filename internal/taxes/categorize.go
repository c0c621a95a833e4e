package taxes

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// Document types with box-level categorization rules.
const (
	DocTypeW2   = "w2"
	DocType1099 = "1099"
)

// Source identifies which rule tier produced a category match.
type Source string

const (
	SourceW2Box   Source = "w2_box"
	Source1099Box Source = "1099_box"
	SourceKeyword Source = "keyword"
	SourceManual  Source = "manual"
	SourceNone    Source = "none"
)

// Match is the result of categorizing a single raw item.
type Match struct {
	CategoryName string
	Confidence   float64
	Source       Source
}

type boxRule struct {
	categoryName string
	confidence   float64
}

// w2BoxRules maps W-2 box identifiers to categories. Boxes 3 and 5 carry
// the Social Security and Medicare wage bases, which duplicate the box 1
// wage information; they are rejected by Discard and have no entry here.
var w2BoxRules = map[string]boxRule{
	"1":  {"wages_salaries", 0.99},
	"2":  {"federal_tax_withheld", 0.99},
	"4":  {"social_security_withheld", 0.99},
	"6":  {"medicare_withheld", 0.99},
	"16": {"state_local_taxes", 0.90},
	"17": {"state_local_taxes", 0.95},
}

// form1099Rules maps 1099 variants to their per-box categories.
var form1099Rules = map[string]map[string]boxRule{
	"INT": {
		"1": {"taxable_interest", 0.99},
		"3": {"tax_exempt_interest", 0.99},
		"4": {"federal_tax_withheld", 0.95},
	},
	"DIV": {
		"1a": {"ordinary_dividends", 0.99},
		"1b": {"qualified_dividends", 0.99},
		"4":  {"federal_tax_withheld", 0.95},
	},
	"MISC": {
		"1": {"other_income", 0.80},
		"3": {"other_income", 0.80},
	},
	"NEC": {
		"1": {"business_income", 0.90},
		"4": {"federal_tax_withheld", 0.95},
	},
	"B": {
		"proceeds": {"capital_gains", 0.90},
	},
}

type keywordRule struct {
	patterns     []string
	categoryName string
	confidence   float64
}

// keywordRules is evaluated in order, first matching rule wins. Patterns
// are globs matched against the lower-cased item description.
var keywordRules = []keywordRule{
	{[]string{"*salary*", "*payroll*", "*direct deposit*", "*wages*"}, "wages_salaries", 0.80},
	{[]string{"*interest earned*", "*interest payment*", "*savings interest*"}, "taxable_interest", 0.75},
	{[]string{"*dividend*", "*div payment*"}, "ordinary_dividends", 0.75},
	{[]string{"*federal tax*", "*irs*", "*us treasury*"}, "estimated_tax_payments", 0.70},
	{[]string{"*mortgage*", "*home loan*"}, "mortgage_interest", 0.70},
	{[]string{"*property tax*", "*real estate tax*", "*county tax*"}, "real_estate_taxes", 0.75},
	{[]string{"*doctor*", "*hospital*", "*medical*", "*pharmacy*", "*dental*", "*health*"}, "medical_expenses", 0.70},
	{[]string{"*charity*", "*donation*", "*red cross*", "*united way*", "*nonprofit*"}, "charitable_cash", 0.70},
	{[]string{"*office supplies*", "*staples*", "*office depot*"}, "business_office_expense", 0.60},
	{[]string{"*gas station*", "*fuel*", "*uber*", "*lyft*", "*car rental*"}, "business_car_expenses", 0.50},
	{[]string{"*airline*", "*hotel*", "*airbnb*", "*flight*", "*travel*"}, "business_travel", 0.50},
	{[]string{"*restaurant*", "*dining*", "*lunch*", "*dinner*", "*food*"}, "business_meals", 0.45},
	{[]string{"*internet*", "*phone*", "*electric*", "*water*", "*utility*"}, "business_utilities", 0.40},
	{[]string{"*insurance premium*", "*business insurance*"}, "business_insurance", 0.60},
	{[]string{"*advertising*", "*google ads*", "*facebook ads*", "*marketing*"}, "business_advertising", 0.70},
	{[]string{"*student loan*"}, "student_loan_interest", 0.75},
	{[]string{"*hsa*", "*health savings*"}, "hsa_deduction", 0.80},
	{[]string{"*ira contribution*", "*retirement contribution*"}, "ira_deduction", 0.70},
}

// Discard reports whether a raw item must not become an extracted item at
// all. This applies to items without a positive amount and to W-2 boxes 3
// and 5, which duplicate the box 1 wage information.
func Discard(docType, box string, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return true
	}

	if docType == DocTypeW2 && (box == "3" || box == "5") {
		return true
	}

	return false
}

// Categorize assigns a tax category to a raw item. The rule tiers are
// evaluated strictly in order: W-2 box lookup, 1099 variant box lookup,
// then keyword matching on the description. The first tier that produces
// a result wins; signals are never merged.
//
// When no rule matches, the returned Match has an empty category name,
// zero confidence and SourceNone, and ok is false. The item still becomes
// an extracted item in that case, it just needs manual categorization.
func Categorize(docType, formVariant, box, description string) (Match, bool) {
	if docType == DocTypeW2 && box != "" {
		if rule, ok := w2BoxRules[box]; ok {
			return Match{rule.categoryName, rule.confidence, SourceW2Box}, true
		}
	}

	if docType == DocType1099 && formVariant != "" && box != "" {
		if variant, ok := form1099Rules[strings.ToUpper(formVariant)]; ok {
			if rule, ok := variant[box]; ok {
				return Match{rule.categoryName, rule.confidence, Source1099Box}, true
			}
		}
	}

	if match, ok := categorizeByKeywords(description); ok {
		return match, true
	}

	return Match{Source: SourceNone}, false
}

func categorizeByKeywords(description string) (Match, bool) {
	desc := strings.ToLower(description)

	for _, rule := range keywordRules {
		for _, pattern := range rule.patterns {
			if glob.Glob(pattern, desc) {
				return Match{rule.categoryName, rule.confidence, SourceKeyword}, true
			}
		}
	}

	return Match{Source: SourceNone}, false
}
