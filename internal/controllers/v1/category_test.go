package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/snowtax/backend/internal/controllers/v1"
	"github.com/google/uuid"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesGet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data, 41, "The seeded catalog has the wrong size")

	// The catalog is sorted by its sort order
	assert.Equal(suite.T(), "wages_salaries", response.Data[0].Name)

	for _, category := range response.Data {
		assert.NotEmpty(suite.T(), category.Links.Self)
		assert.NotEmpty(suite.T(), category.Links.Items)
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Income categories", "type=income", 16},
		{"Deduction categories", "type=deduction", 23},
		{"Credit categories", "type=credit", 3},
		{"Withholding categories", "type=withholding", 4},
		{"Name match", "name=wages_salaries", 1},
		{"Partial name match", "name=wages", 2},
		{"Search in name and description", "search=dividend", 2},
		{"Search with type", "type=income&search=interest", 2},
		{"No match", "name=does-not-exist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	category := getCategory(suite.T(), "mortgage_interest")

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing category", category.ID.String(), http.StatusOK},
		{"No category with this ID", uuid.New().String(), http.StatusNotFound},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)

			var response v1.CategoryResponse
			test.DecodeResponse(t, &recorder, &response)

			if tt.status == http.StatusOK {
				assert.Equal(t, "mortgage_interest", response.Data.Name)
			} else {
				assert.NotNil(t, response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesNotFoundError() {
	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrResourceNotFound.Error())
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", getCategory(suite.T(), "wages_salaries").ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
