package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/snowtax/backend/internal/controllers/v1"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	category := getCategory(suite.T(), "wages_salaries")
	_ = createTestDocument(suite.T(), "statement.csv", []byte("Date,Description,Amount\n"), "")
	_ = createTestItems(suite.T(), []v1.ItemEditable{
		{CategoryID: &category.ID, Description: "Salary", Amount: decimal.NewFromInt(1000)},
	})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/forms/generate", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	tests := []string{
		"http://example.com/v1/categories",
		"http://example.com/v1/documents",
		"http://example.com/v1/forms",
		"http://example.com/v1/items",
	}

	// Delete
	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
		{"Confirmation missing", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
