package models

import (
	"strings"

	"github.com/snowtax/backend/internal/taxes"
	"gorm.io/gorm"
)

// TaxCategory is one entry of the category catalog items are filed
// under. The catalog is seeded on startup and stable across parses.
type TaxCategory struct {
	DefaultModel
	Name        string             `json:"name" gorm:"uniqueIndex" example:"wages_salaries"`
	Description string             `json:"description" example:"Wages, salaries, tips (W-2)"`
	FormLine    string             `json:"formLine" example:"1040_line1a"` // Line of the tax form the category totals into
	Type        taxes.CategoryType `json:"type" example:"income"`
	SortOrder   int                `json:"sortOrder" example:"1"`
}

func (c *TaxCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)

	return nil
}

// defaultCategories is the catalog of IRS categories every database
// starts with.
var defaultCategories = []TaxCategory{
	// Income
	{Name: "wages_salaries", Description: "Wages, salaries, tips (W-2)", FormLine: "1040_line1a", Type: taxes.CategoryTypeIncome, SortOrder: 1},
	{Name: "household_employee_wages", Description: "Household employee wages not on W-2", FormLine: "1040_line1b", Type: taxes.CategoryTypeIncome, SortOrder: 2},
	{Name: "tip_income", Description: "Tip income not on W-2", FormLine: "1040_line1c", Type: taxes.CategoryTypeIncome, SortOrder: 3},
	{Name: "dependent_care_benefits", Description: "Taxable dependent care benefits", FormLine: "1040_line1d", Type: taxes.CategoryTypeIncome, SortOrder: 4},
	{Name: "employer_adoption_benefits", Description: "Employer-provided adoption benefits", FormLine: "1040_line1e", Type: taxes.CategoryTypeIncome, SortOrder: 5},
	{Name: "scholarship_income", Description: "Taxable scholarship/fellowship grants", FormLine: "1040_line1f", Type: taxes.CategoryTypeIncome, SortOrder: 6},
	{Name: "tax_exempt_interest", Description: "Tax-exempt interest", FormLine: "1040_line2a", Type: taxes.CategoryTypeIncome, SortOrder: 7},
	{Name: "taxable_interest", Description: "Taxable interest", FormLine: "1040_line2b", Type: taxes.CategoryTypeIncome, SortOrder: 8},
	{Name: "qualified_dividends", Description: "Qualified dividends", FormLine: "1040_line3a", Type: taxes.CategoryTypeIncome, SortOrder: 9},
	{Name: "ordinary_dividends", Description: "Ordinary dividends", FormLine: "1040_line3b", Type: taxes.CategoryTypeIncome, SortOrder: 10},
	{Name: "ira_distributions", Description: "IRA distributions (taxable)", FormLine: "1040_line4b", Type: taxes.CategoryTypeIncome, SortOrder: 11},
	{Name: "pensions_annuities", Description: "Pensions and annuities (taxable)", FormLine: "1040_line5b", Type: taxes.CategoryTypeIncome, SortOrder: 12},
	{Name: "social_security", Description: "Social security benefits (taxable)", FormLine: "1040_line6b", Type: taxes.CategoryTypeIncome, SortOrder: 13},
	{Name: "capital_gains", Description: "Capital gain or loss", FormLine: "1040_line7", Type: taxes.CategoryTypeIncome, SortOrder: 14},
	{Name: "other_income", Description: "Other income", FormLine: "1040_line8", Type: taxes.CategoryTypeIncome, SortOrder: 15},
	{Name: "business_income", Description: "Business income or loss (Schedule C)", FormLine: "1040_line8_schedC", Type: taxes.CategoryTypeIncome, SortOrder: 16},

	// Deductions (Schedule A, itemized)
	{Name: "medical_expenses", Description: "Medical and dental expenses", FormLine: "schedA_line1", Type: taxes.CategoryTypeDeduction, SortOrder: 20},
	{Name: "state_local_taxes", Description: "State and local taxes (SALT)", FormLine: "schedA_line5a", Type: taxes.CategoryTypeDeduction, SortOrder: 21},
	{Name: "real_estate_taxes", Description: "Real estate taxes", FormLine: "schedA_line5b", Type: taxes.CategoryTypeDeduction, SortOrder: 22},
	{Name: "personal_property_taxes", Description: "Personal property taxes", FormLine: "schedA_line5c", Type: taxes.CategoryTypeDeduction, SortOrder: 23},
	{Name: "mortgage_interest", Description: "Home mortgage interest", FormLine: "schedA_line8a", Type: taxes.CategoryTypeDeduction, SortOrder: 24},
	{Name: "charitable_cash", Description: "Gifts to charity (cash)", FormLine: "schedA_line11", Type: taxes.CategoryTypeDeduction, SortOrder: 25},
	{Name: "charitable_noncash", Description: "Gifts to charity (non-cash)", FormLine: "schedA_line12", Type: taxes.CategoryTypeDeduction, SortOrder: 26},
	{Name: "casualty_losses", Description: "Casualty and theft losses", FormLine: "schedA_line15", Type: taxes.CategoryTypeDeduction, SortOrder: 27},
	{Name: "other_deductions", Description: "Other itemized deductions", FormLine: "schedA_line16", Type: taxes.CategoryTypeDeduction, SortOrder: 28},

	// Above-the-line deductions
	{Name: "educator_expenses", Description: "Educator expenses", FormLine: "schedl_line11", Type: taxes.CategoryTypeDeduction, SortOrder: 30},
	{Name: "hsa_deduction", Description: "HSA deduction", FormLine: "schedl_line13", Type: taxes.CategoryTypeDeduction, SortOrder: 31},
	{Name: "self_employment_tax_deduction", Description: "Deductible self-employment tax", FormLine: "schedl_line15", Type: taxes.CategoryTypeDeduction, SortOrder: 32},
	{Name: "ira_deduction", Description: "IRA deduction", FormLine: "schedl_line20", Type: taxes.CategoryTypeDeduction, SortOrder: 33},
	{Name: "student_loan_interest", Description: "Student loan interest deduction", FormLine: "schedl_line21", Type: taxes.CategoryTypeDeduction, SortOrder: 34},

	// Credits
	{Name: "child_tax_credit", Description: "Child tax credit", FormLine: "1040_line19", Type: taxes.CategoryTypeCredit, SortOrder: 40},
	{Name: "education_credits", Description: "Education credits", FormLine: "1040_line21", Type: taxes.CategoryTypeCredit, SortOrder: 41},
	{Name: "earned_income_credit", Description: "Earned income credit", FormLine: "1040_line27", Type: taxes.CategoryTypeCredit, SortOrder: 42},

	// Withholdings and payments
	{Name: "federal_tax_withheld", Description: "Federal income tax withheld", FormLine: "1040_line25a", Type: taxes.CategoryTypeWithholding, SortOrder: 50},
	{Name: "estimated_tax_payments", Description: "Estimated tax payments", FormLine: "1040_line26", Type: taxes.CategoryTypeWithholding, SortOrder: 51},
	{Name: "social_security_withheld", Description: "Social Security tax withheld", FormLine: "w2_box4", Type: taxes.CategoryTypeWithholding, SortOrder: 52},
	{Name: "medicare_withheld", Description: "Medicare tax withheld", FormLine: "w2_box6", Type: taxes.CategoryTypeWithholding, SortOrder: 53},

	// Business expenses (Schedule C)
	{Name: "business_advertising", Description: "Business advertising expenses", FormLine: "schedC_line8", Type: taxes.CategoryTypeDeduction, SortOrder: 60},
	{Name: "business_car_expenses", Description: "Business car and truck expenses", FormLine: "schedC_line9", Type: taxes.CategoryTypeDeduction, SortOrder: 61},
	{Name: "business_insurance", Description: "Business insurance", FormLine: "schedC_line15", Type: taxes.CategoryTypeDeduction, SortOrder: 62},
	{Name: "business_office_expense", Description: "Business office expense", FormLine: "schedC_line18", Type: taxes.CategoryTypeDeduction, SortOrder: 63},
	{Name: "business_supplies", Description: "Business supplies", FormLine: "schedC_line22", Type: taxes.CategoryTypeDeduction, SortOrder: 64},
	{Name: "business_travel", Description: "Business travel expenses", FormLine: "schedC_line24a", Type: taxes.CategoryTypeDeduction, SortOrder: 65},
	{Name: "business_meals", Description: "Business meals (50%)", FormLine: "schedC_line24b", Type: taxes.CategoryTypeDeduction, SortOrder: 66},
	{Name: "business_utilities", Description: "Business utilities", FormLine: "schedC_line25", Type: taxes.CategoryTypeDeduction, SortOrder: 67},
	{Name: "business_other_expenses", Description: "Other business expenses", FormLine: "schedC_line27a", Type: taxes.CategoryTypeDeduction, SortOrder: 68},
}

// seedCategories upserts the default catalog by name. Seeding is
// idempotent so it runs on every startup.
func seedCategories(db *gorm.DB) error {
	for _, category := range defaultCategories {
		err := db.
			Where(TaxCategory{Name: category.Name}).
			Assign(TaxCategory{
				Description: category.Description,
				FormLine:    category.FormLine,
				Type:        category.Type,
				SortOrder:   category.SortOrder,
			}).
			FirstOrCreate(&TaxCategory{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// CategoryIDsByName returns a lookup table from category name to its ID
// for resolving categorization matches into foreign keys.
func CategoryIDsByName(db *gorm.DB) (map[string]TaxCategory, error) {
	var categories []TaxCategory
	err := db.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	byName := make(map[string]TaxCategory, len(categories))
	for _, category := range categories {
		byName[category.Name] = category
	}

	return byName, nil
}
