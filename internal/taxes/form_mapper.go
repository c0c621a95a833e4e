package taxes

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Form identifiers of the supported IRS forms.
const (
	Form1040      = "1040"
	FormScheduleA = "schedA"
	FormScheduleB = "schedB"
	FormScheduleC = "schedC"
	FormScheduleD = "schedD"
)

// FormNames maps form identifiers to their full display names.
var FormNames = map[string]string{
	Form1040:      "Form 1040 - U.S. Individual Income Tax Return",
	FormScheduleA: "Schedule A - Itemized Deductions",
	FormScheduleB: "Schedule B - Interest and Ordinary Dividends",
	FormScheduleC: "Schedule C - Profit or Loss from Business",
	FormScheduleD: "Schedule D - Capital Gains and Losses",
}

// scheduleBThreshold is the combined interest and dividend income above
// which Schedule B becomes required.
var scheduleBThreshold = decimal.NewFromInt(1500)

// PersonalInfo is the taxpayer identity block printed at the top of
// Form 1040.
type PersonalInfo struct {
	FirstName string
	LastName  string
	SSN       string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// FormField is one PDF form field keyed by its field name in the
// template. Value is a string for text and checkbox fields and a
// decimal for amounts.
type FormField struct {
	FieldName string `json:"fieldName"`
	Value     any    `json:"value"`
}

// statusFieldIDs maps the filing status to its checkbox field on
// Form 1040.
var statusFieldIDs = map[string]string{
	FilingStatusSingle:          "c1_01",
	FilingStatusMarriedJoint:    "c1_02",
	FilingStatusMarriedSeparate: "c1_03",
	FilingStatusHeadOfHousehold: "c1_04",
}

// MapTo1040Fields translates the computed summary, the category totals
// and the taxpayer identity into the flat field list of the Form 1040
// template. Empty strings and zero amounts are omitted so that untouched
// fields stay blank on the rendered form.
func MapTo1040Fields(info PersonalInfo, filingStatus string, summary TaxSummary, totals []CategoryTotal) []FormField {
	fields := make([]FormField, 0)

	addText := func(name, value string) {
		if value == "" {
			return
		}
		fields = append(fields, FormField{FieldName: name, Value: value})
	}

	addAmount := func(name string, value decimal.Decimal) {
		if value.IsZero() {
			return
		}
		fields = append(fields, FormField{FieldName: name, Value: value})
	}

	addText("f1_01", info.FirstName)
	addText("f1_02", info.LastName)
	addText("f1_03", info.SSN)
	addText("f1_04", info.Address)

	cityLine := ""
	if info.City != "" {
		cityLine = fmt.Sprintf("%s, %s %s", info.City, info.State, info.ZipCode)
	}
	addText("f1_05", cityLine)

	if id, ok := statusFieldIDs[filingStatus]; ok {
		fields = append(fields, FormField{FieldName: id, Value: "Yes"})
	}

	addAmount("f1_06", FindTotal(totals, "wages_salaries"))
	addAmount("f1_07", FindTotal(totals, "tax_exempt_interest"))
	addAmount("f1_08", FindTotal(totals, "taxable_interest"))
	addAmount("f1_09", FindTotal(totals, "qualified_dividends"))
	addAmount("f1_10", FindTotal(totals, "ordinary_dividends"))
	addAmount("f1_14", FindTotal(totals, "capital_gains"))
	addAmount("f1_15", FindTotal(totals, "other_income").Add(FindTotal(totals, "business_income")))

	addAmount("f1_16", summary.TotalIncome)
	addAmount("f1_17", summary.Adjustments)
	addAmount("f1_18", summary.AGI)
	addAmount("f1_19", summary.DeductionAmount)
	addAmount("f1_21", summary.TaxableIncome)
	addAmount("f1_22", summary.TaxBeforeCredits)
	addAmount("f1_25", summary.TotalCredits)
	addAmount("f1_28", summary.TaxAfterCredits)
	addAmount("f1_32", summary.TotalWithholdings)
	addAmount("f1_36", summary.TotalPayments)

	switch {
	case summary.RefundOrOwed.IsPositive():
		addAmount("f1_37", summary.RefundOrOwed)
	case summary.RefundOrOwed.IsNegative():
		addAmount("f1_39", summary.RefundOrOwed.Abs())
	}

	return fields
}

// DetermineRequiredForms returns the identifiers of the forms the
// return needs, in filing order. Form 1040 is always first.
func DetermineRequiredForms(totals []CategoryTotal) []string {
	forms := []string{Form1040}

	if sumFormLinePrefix(totals, "schedA_").IsPositive() {
		forms = append(forms, FormScheduleA)
	}

	interestAndDividends := FindTotal(totals, "taxable_interest").Add(FindTotal(totals, "ordinary_dividends"))
	if interestAndDividends.GreaterThan(scheduleBThreshold) {
		forms = append(forms, FormScheduleB)
	}

	if sumFormLinePrefix(totals, "schedC_").IsPositive() || FindTotal(totals, "business_income").IsPositive() {
		forms = append(forms, FormScheduleC)
	}

	if !FindTotal(totals, "capital_gains").IsZero() {
		forms = append(forms, FormScheduleD)
	}

	return forms
}

func sumFormLinePrefix(totals []CategoryTotal, prefix string) decimal.Decimal {
	sum := decimal.Zero
	for _, total := range totals {
		if strings.HasPrefix(total.FormLine, prefix) {
			sum = sum.Add(total.Total)
		}
	}
	return sum
}
