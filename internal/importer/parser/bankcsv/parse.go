// Package bankcsv parses bank statement CSV exports.
//
// Banks do not agree on column names, so the parser detects the date,
// description and amount columns from a set of common header spellings.
// The amount is either a single signed column or a debit/credit pair.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)

// Transaction is one row of a bank statement.
type Transaction struct {
	Date        string
	Description string
	Amount      decimal.Decimal // Always positive, the sign is carried by Type
	Type        string
}

var dateHeaders = []string{"date", "transaction date", "post date", "posting date"}
var descriptionHeaders = []string{"description", "memo", "payee", "transaction", "name"}

// Parse reads a bank statement CSV. Rows without a description or with
// a non-positive amount are skipped, they carry nothing to categorize.
func Parse(f io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(f)

	// Banks pad some exports with trailing columns
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []Transaction{}, nil
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read the CSV header: %w", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var transactions []Transaction

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		transaction := Transaction{
			Date:        firstField(record, columns, dateHeaders),
			Description: firstField(record, columns, descriptionHeaders),
		}

		if raw := field(record, columns, "amount"); raw != "" {
			amount := parseAmount(raw)

			transaction.Type = TypeDeposit
			if amount.IsNegative() {
				transaction.Type = TypeWithdrawal
			}
			transaction.Amount = amount.Abs()
		} else {
			credit := parseAmount(field(record, columns, "credit"))
			debit := parseAmount(field(record, columns, "debit"))

			if credit.IsPositive() {
				transaction.Amount = credit
				transaction.Type = TypeDeposit
			} else {
				transaction.Amount = debit
				transaction.Type = TypeWithdrawal
			}
		}

		if transaction.Description == "" || !transaction.Amount.IsPositive() {
			continue
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

// field reads the named column from the record, empty if the column
// does not exist.
func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

// firstField returns the first non-empty value among the candidate
// column names.
func firstField(record []string, columns map[string]int, names []string) string {
	for _, name := range names {
		if value := field(record, columns, name); value != "" {
			return value
		}
	}

	return ""
}

// parseAmount parses a currency string. Thousands separators and
// currency signs are stripped, unparseable values count as zero.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.NewReplacer(",", "", "$", "").Replace(raw)
	if raw == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}

	return amount
}

// csvReadError returns an error including the line of the input the
// error occurred in.
func csvReadError(r *csv.Reader, err error) ([]Transaction, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []Transaction{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
