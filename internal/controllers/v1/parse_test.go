package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/snowtax/backend/internal/controllers/v1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTestDocument triggers a parse run for the document.
func parseTestDocument(t *testing.T, document v1.DocumentResponse, body any, expectedStatus ...int) v1.ParseResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, document.Data.Links.Parse, body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.ParseResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// itemByDescription returns the item with the given description.
func itemByDescription(t *testing.T, items []v1.Item, description string) v1.Item {
	for _, item := range items {
		if item.Description == description {
			return item
		}
	}

	require.FailNow(t, "No item with this description has been parsed", "Description: %s", description)
	return v1.Item{}
}

// TestParseCSV verifies parsing of an uploaded bank statement. Every
// transaction is categorized by its description.
func (suite *TestSuiteStandard) TestParseCSV() {
	content := []byte("Date,Description,Amount\n" +
		"01/15/2024,ACME CORP PAYROLL,2500.00\n" +
		"01/16/2024,MORTGAGE PAYMENT,-1800.00\n" +
		"01/31/2024,INTEREST EARNED,1.25\n" +
		"02/02/2024,CHECK #1234,-50.00\n")

	document := createTestDocument(suite.T(), "statement.csv", content, "")
	response := parseTestDocument(suite.T(), document, "")

	assert.Equal(suite.T(), 4, response.Data.ItemCount)
	assert.Equal(suite.T(), models.DocTypeBankStatement, response.Data.Document.DocType)
	assert.Equal(suite.T(), models.ParseStatusParsed, response.Data.Document.ParseStatus)

	wages := itemByDescription(suite.T(), response.Data.Items, "ACME CORP PAYROLL")
	assert.Equal(suite.T(), "wages_salaries", wages.CategoryName)
	assert.Equal(suite.T(), "keyword", wages.Source)
	assert.True(suite.T(), decimal.NewFromInt(2500).Equal(wages.Amount), "Amount is wrong: %s", wages.Amount)

	mortgage := itemByDescription(suite.T(), response.Data.Items, "MORTGAGE PAYMENT")
	assert.Equal(suite.T(), "mortgage_interest", mortgage.CategoryName)
	assert.True(suite.T(), decimal.NewFromInt(1800).Equal(mortgage.Amount), "Withdrawal amount is not positive: %s", mortgage.Amount)

	interest := itemByDescription(suite.T(), response.Data.Items, "INTEREST EARNED")
	assert.Equal(suite.T(), "taxable_interest", interest.CategoryName)

	// Unmatched transactions become uncategorized items
	check := itemByDescription(suite.T(), response.Data.Items, "CHECK #1234")
	assert.Empty(suite.T(), check.CategoryName)
	assert.Nil(suite.T(), check.CategoryID)
	assert.Equal(suite.T(), "none", check.Source)
}

// TestParseExtractionPayload verifies parsing with field data in the
// request body.
func (suite *TestSuiteStandard) TestParseExtractionPayload() {
	document := createTestDocument(suite.T(), "w2-2024.pdf", []byte("pdf content"), "docType=w2")

	payload := v1.ExtractionPayload{
		SourceName: "Acme Corp",
		Items: []v1.ExtractionItem{
			{Box: "1", Description: "Box 1 - Wages", Amount: decimal.NewFromInt(60000)},
			{Box: "2", Amount: decimal.NewFromInt(8000)},
			{Box: "3", Description: "Social security wages", Amount: decimal.NewFromInt(60000)},
			{Box: "5", Description: "Medicare wages", Amount: decimal.NewFromInt(60000)},
			{Box: "12", Description: "401k", Amount: decimal.NewFromInt(5000)},
		},
	}

	response := parseTestDocument(suite.T(), document, payload)

	// Boxes 3 and 5 duplicate the wage information and are discarded
	assert.Equal(suite.T(), 3, response.Data.ItemCount)
	assert.Equal(suite.T(), models.ParseStatusParsed, response.Data.Document.ParseStatus)
	assert.Equal(suite.T(), "Acme Corp", response.Data.Document.SourceName)

	wages := itemByDescription(suite.T(), response.Data.Items, "Box 1 - Wages")
	assert.Equal(suite.T(), "wages_salaries", wages.CategoryName)
	assert.Equal(suite.T(), 0.99, wages.Confidence)
	assert.Equal(suite.T(), "w2_box", wages.Source)

	// Items without a description get a default
	withheld := itemByDescription(suite.T(), response.Data.Items, "w2 item")
	assert.Equal(suite.T(), "federal_tax_withheld", withheld.CategoryName)

	// Unknown boxes become uncategorized items
	unknown := itemByDescription(suite.T(), response.Data.Items, "401k")
	assert.Empty(suite.T(), unknown.CategoryName)
	assert.Equal(suite.T(), float64(0), unknown.Confidence)
}

// The extraction result is more specific than the metadata set during
// the upload, so parsing updates the document.
func (suite *TestSuiteStandard) TestParseUpdatesMetadata() {
	document := createTestDocument(suite.T(), "1099.pdf", []byte("pdf content"), "")

	payload := v1.ExtractionPayload{
		DocType:     "1099",
		FormVariant: "int",
		SourceName:  "First Bank",
		Items: []v1.ExtractionItem{
			{Box: "1", Description: "Interest income", Amount: decimal.NewFromInt(200)},
		},
	}

	response := parseTestDocument(suite.T(), document, payload)

	assert.Equal(suite.T(), models.DocType1099, response.Data.Document.DocType)
	assert.Equal(suite.T(), "INT", response.Data.Document.FormVariant, "The form variant is not normalized to upper case")
	assert.Equal(suite.T(), "First Bank", response.Data.Document.SourceName)

	interest := itemByDescription(suite.T(), response.Data.Items, "Interest income")
	assert.Equal(suite.T(), "taxable_interest", interest.CategoryName)
	assert.Equal(suite.T(), "1099_box", interest.Source)
}

// TestParseReplacesItems verifies that re-parsing a document replaces
// the items of earlier runs.
func (suite *TestSuiteStandard) TestParseReplacesItems() {
	document := createTestDocument(suite.T(), "w2.pdf", []byte("pdf content"), "docType=w2")

	_ = parseTestDocument(suite.T(), document, v1.ExtractionPayload{
		Items: []v1.ExtractionItem{
			{Box: "1", Amount: decimal.NewFromInt(50000)},
			{Box: "2", Amount: decimal.NewFromInt(6000)},
		},
	})

	response := parseTestDocument(suite.T(), document, v1.ExtractionPayload{
		Items: []v1.ExtractionItem{
			{Box: "1", Amount: decimal.NewFromInt(60000)},
		},
	})
	assert.Equal(suite.T(), 1, response.Data.ItemCount)

	recorder := test.Request(suite.T(), http.MethodGet, document.Data.Links.Items, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var items v1.ItemListResponse
	test.DecodeResponse(suite.T(), &recorder, &items)

	if assert.Len(suite.T(), items.Data, 1, "Items of the earlier parse run still exist") {
		assert.True(suite.T(), decimal.NewFromInt(60000).Equal(items.Data[0].Amount))
	}
}

// TestParseErrors verifies the error handling of parse runs. Failures
// are recorded on the document.
func (suite *TestSuiteStandard) TestParseErrors() {
	suite.T().Run("Non-CSV without payload", func(t *testing.T) {
		document := createTestDocument(t, "w2.pdf", []byte("pdf content"), "docType=w2")

		response := parseTestDocument(t, document, "", http.StatusBadRequest)
		assert.Contains(t, *response.Error, "not a CSV file")

		// The failure is recorded on the document
		recorder := test.Request(t, http.MethodGet, document.Data.Links.Self, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var after v1.DocumentResponse
		test.DecodeResponse(t, &recorder, &after)
		assert.Equal(t, models.ParseStatusError, after.Data.ParseStatus)
		assert.Contains(t, after.Data.ErrorMsg, "not a CSV file")
	})

	suite.T().Run("Payload without items", func(t *testing.T) {
		document := createTestDocument(t, "w2.pdf", []byte("pdf content"), "docType=w2")

		response := parseTestDocument(t, document, v1.ExtractionPayload{}, http.StatusBadRequest)
		assert.Contains(t, *response.Error, "at least one item")
	})

	suite.T().Run("Malformed CSV", func(t *testing.T) {
		content := []byte("Date,Description,Amount\n01/16/2024,BAD \"ROW,5.00\n")
		document := createTestDocument(t, "statement.csv", content, "")

		response := parseTestDocument(t, document, "", http.StatusBadRequest)
		assert.Contains(t, *response.Error, "of the CSV")
	})

	suite.T().Run("No document with this ID", func(t *testing.T) {
		recorder := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/documents/%s/parse", uuid.New()), "")
		test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
	})

	suite.T().Run("Not a valid UUID", func(t *testing.T) {
		recorder := test.Request(t, http.MethodPost, "http://example.com/v1/documents/NotParseableAsUUID/parse", "")
		test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
	})
}
