package taxes

import "github.com/shopspring/decimal"

// Item is one categorized financial item with its category metadata
// joined in. Items without a category are excluded from aggregation by
// the caller.
type Item struct {
	CategoryName string
	Type         CategoryType
	FormLine     string
	Amount       decimal.Decimal
}

// CategoryTotal is the sum of all item amounts for one category.
type CategoryTotal struct {
	CategoryName string          `json:"categoryName"`
	Type         CategoryType    `json:"type"`
	FormLine     string          `json:"formLine"`
	Total        decimal.Decimal `json:"total"`
}

// Aggregate groups items by category and sums their amounts. The order of
// the returned totals follows the first appearance of each category in
// the input, so identical inputs always produce identical output.
func Aggregate(items []Item) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)

	for _, item := range items {
		if item.CategoryName == "" {
			continue
		}

		if i, ok := index[item.CategoryName]; ok {
			totals[i].Total = totals[i].Total.Add(item.Amount)
			continue
		}

		index[item.CategoryName] = len(totals)
		totals = append(totals, CategoryTotal{
			CategoryName: item.CategoryName,
			Type:         item.Type,
			FormLine:     item.FormLine,
			Total:        item.Amount,
		})
	}

	return totals
}

// SumType sums the totals of all categories with the given type. Totals
// with an unknown or empty type contribute to no sum.
func SumType(totals []CategoryTotal, t CategoryType) decimal.Decimal {
	sum := decimal.Zero

	for _, total := range totals {
		if total.Type == t {
			sum = sum.Add(total.Total)
		}
	}

	return sum
}

// FindTotal returns the total for the named category, or zero when the
// category has no total.
func FindTotal(totals []CategoryTotal, name string) decimal.Decimal {
	for _, total := range totals {
		if total.CategoryName == name {
			return total.Total
		}
	}

	return decimal.Zero
}
