package taxes

import "github.com/shopspring/decimal"

// DeductionUsed values for the standard/itemized election.
const (
	DeductionStandard = "standard"
	DeductionItemized = "itemized"
)

// bracket is one marginal tax bracket. A zero Max means the bracket has
// no upper bound.
type bracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

func newBracket(min, max int64, rate string) bracket {
	return bracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.RequireFromString(rate),
	}
}

// taxBrackets holds the 2024 federal income tax brackets per filing
// status, ordered from lowest to highest rate.
var taxBrackets = map[string][]bracket{
	FilingStatusSingle: {
		newBracket(0, 11600, "0.10"),
		newBracket(11600, 47150, "0.12"),
		newBracket(47150, 100525, "0.22"),
		newBracket(100525, 191950, "0.24"),
		newBracket(191950, 243725, "0.32"),
		newBracket(243725, 609350, "0.35"),
		newBracket(609350, 0, "0.37"),
	},
	FilingStatusMarriedJoint: {
		newBracket(0, 23200, "0.10"),
		newBracket(23200, 94300, "0.12"),
		newBracket(94300, 201050, "0.22"),
		newBracket(201050, 383900, "0.24"),
		newBracket(383900, 487450, "0.32"),
		newBracket(487450, 731200, "0.35"),
		newBracket(731200, 0, "0.37"),
	},
	FilingStatusMarriedSeparate: {
		newBracket(0, 11600, "0.10"),
		newBracket(11600, 47150, "0.12"),
		newBracket(47150, 100525, "0.22"),
		newBracket(100525, 191950, "0.24"),
		newBracket(191950, 243725, "0.32"),
		newBracket(243725, 365600, "0.35"),
		newBracket(365600, 0, "0.37"),
	},
	FilingStatusHeadOfHousehold: {
		newBracket(0, 16550, "0.10"),
		newBracket(16550, 63100, "0.12"),
		newBracket(63100, 100500, "0.22"),
		newBracket(100500, 191950, "0.24"),
		newBracket(191950, 243700, "0.32"),
		newBracket(243700, 609350, "0.35"),
		newBracket(609350, 0, "0.37"),
	},
}

// standardDeductions holds the 2024 standard deduction per filing status.
var standardDeductions = map[string]decimal.Decimal{
	FilingStatusSingle:          decimal.NewFromInt(14600),
	FilingStatusMarriedJoint:    decimal.NewFromInt(29200),
	FilingStatusMarriedSeparate: decimal.NewFromInt(14600),
	FilingStatusHeadOfHousehold: decimal.NewFromInt(21900),
}

// aboveTheLineCategories are the categories treated as above-the-line
// adjustments regardless of their generic deduction type.
var aboveTheLineCategories = map[string]bool{
	"educator_expenses":             true,
	"hsa_deduction":                 true,
	"self_employment_tax_deduction": true,
	"ira_deduction":                 true,
	"student_loan_interest":         true,
}

// BracketTax is one entry of the progressive bracket breakdown.
type BracketTax struct {
	Rate   decimal.Decimal `json:"rate"`   // Marginal rate of the bracket
	Amount decimal.Decimal `json:"amount"` // Taxable income that fell into the bracket
	Tax    decimal.Decimal `json:"tax"`    // Tax on that amount
}

// TaxSummary is the complete computed result for one tax return.
type TaxSummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	Adjustments       decimal.Decimal `json:"adjustments"`
	AGI               decimal.Decimal `json:"agi"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	ItemizedDeduction decimal.Decimal `json:"itemizedDeduction"`
	DeductionUsed     string          `json:"deductionUsed"` // "standard" or "itemized"
	DeductionAmount   decimal.Decimal `json:"deductionAmount"`
	TaxableIncome     decimal.Decimal `json:"taxableIncome"`
	TaxBeforeCredits  decimal.Decimal `json:"taxBeforeCredits"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	TaxAfterCredits   decimal.Decimal `json:"taxAfterCredits"`
	TotalWithholdings decimal.Decimal `json:"totalWithholdings"`
	TotalPayments     decimal.Decimal `json:"totalPayments"`
	RefundOrOwed      decimal.Decimal `json:"refundOrOwed"` // positive = refund, negative = owed
	EffectiveRate     decimal.Decimal `json:"effectiveRate"`
	BracketBreakdown  []BracketTax    `json:"bracketBreakdown"`
}

// Calculate computes the tax summary for the given filing status and
// category totals. An unrecognized filing status uses the tables for
// "single". The function is total: every numeric edge case is handled by
// clamping, never by failing.
func Calculate(filingStatus string, totals []CategoryTotal) TaxSummary {
	brackets, ok := taxBrackets[filingStatus]
	if !ok {
		brackets = taxBrackets[FilingStatusSingle]
	}

	standardDeduction, ok := standardDeductions[filingStatus]
	if !ok {
		standardDeduction = standardDeductions[FilingStatusSingle]
	}

	totalIncome := SumType(totals, CategoryTypeIncome)
	totalDeductions := SumType(totals, CategoryTypeDeduction)
	totalCredits := SumType(totals, CategoryTypeCredit)
	totalWithholdings := SumType(totals, CategoryTypeWithholding)

	adjustments := decimal.Zero
	for _, total := range totals {
		if aboveTheLineCategories[total.CategoryName] {
			adjustments = adjustments.Add(total.Total)
		}
	}

	// Not clamped: when adjustments exceed the deduction bucket this goes
	// negative, which always loses the election against the standard
	// deduction.
	belowLineDeductions := totalDeductions.Sub(adjustments)

	agi := clampZero(totalIncome.Sub(adjustments))

	deductionUsed := DeductionStandard
	deductionAmount := standardDeduction
	if belowLineDeductions.GreaterThan(standardDeduction) {
		deductionUsed = DeductionItemized
		deductionAmount = belowLineDeductions
	}

	taxableIncome := clampZero(agi.Sub(deductionAmount))

	taxBeforeCredits, breakdown := bracketTax(taxableIncome, brackets)

	taxAfterCredits := clampZero(taxBeforeCredits.Sub(totalCredits))

	refundOrOwed := totalWithholdings.Sub(taxAfterCredits)

	effectiveRate := decimal.Zero
	if totalIncome.IsPositive() {
		effectiveRate = taxAfterCredits.Div(totalIncome)
	}

	return TaxSummary{
		TotalIncome:       totalIncome,
		Adjustments:       adjustments,
		AGI:               agi,
		StandardDeduction: standardDeduction,
		ItemizedDeduction: belowLineDeductions,
		DeductionUsed:     deductionUsed,
		DeductionAmount:   deductionAmount,
		TaxableIncome:     taxableIncome,
		TaxBeforeCredits:  taxBeforeCredits,
		TotalCredits:      totalCredits,
		TaxAfterCredits:   taxAfterCredits,
		TotalWithholdings: totalWithholdings,
		TotalPayments:     totalWithholdings,
		RefundOrOwed:      refundOrOwed,
		EffectiveRate:     effectiveRate,
		BracketBreakdown:  breakdown,
	}
}

// bracketTax walks the ordered bracket table and accumulates the
// progressive tax. Brackets beyond the point where the taxable income is
// exhausted do not appear in the breakdown.
func bracketTax(taxableIncome decimal.Decimal, brackets []bracket) (decimal.Decimal, []BracketTax) {
	remaining := taxableIncome
	total := decimal.Zero
	breakdown := make([]BracketTax, 0)

	for _, b := range brackets {
		if !remaining.IsPositive() {
			break
		}

		amount := remaining
		if !b.Max.IsZero() {
			amount = decimal.Min(remaining, b.Max.Sub(b.Min))
		}

		tax := amount.Mul(b.Rate)
		total = total.Add(tax)
		breakdown = append(breakdown, BracketTax{Rate: b.Rate, Amount: amount, Tax: tax})
		remaining = remaining.Sub(amount)
	}

	return total, breakdown
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}
