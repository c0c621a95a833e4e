package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/snowtax/backend/internal/controllers/v1"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
	"github.com/snowtax/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestTaxReturnGet verifies that the tax return is created with
// defaults on first access.
func (suite *TestSuiteStandard) TestTaxReturnGet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/tax-return", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TaxReturnResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), taxes.TaxYear, response.Data.Year)
	assert.Equal(suite.T(), taxes.FilingStatusSingle, response.Data.FilingStatus)
	assert.Equal(suite.T(), models.ReturnStatusInProgress, response.Data.Status)

	assert.Equal(suite.T(), "http://example.com/v1/tax-return", response.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/tax-return/summary", response.Data.Links.Summary)
	assert.Equal(suite.T(), "http://example.com/v1/forms", response.Data.Links.Forms)

	// A second request returns the same return
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/tax-return", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var again v1.TaxReturnResponse
	test.DecodeResponse(suite.T(), &recorder, &again)
	assert.Equal(suite.T(), response.Data.ID, again.Data.ID, "A second tax return has been created")
}

// TestTaxReturnUpdate verifies partial updates of the tax return.
func (suite *TestSuiteStandard) TestTaxReturnUpdate() {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/tax-return", map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"ssn":       "123-45-6789",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TaxReturnResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Jane", response.Data.FirstName)
	assert.Equal(suite.T(), "Doe", response.Data.LastName)
	assert.Equal(suite.T(), "123-45-6789", response.Data.SSN)

	// Fields not in the request body are preserved
	recorder = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/tax-return", map[string]any{
		"filingStatus": taxes.FilingStatusMarriedJoint,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/tax-return", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Jane", response.Data.FirstName)
	assert.Equal(suite.T(), taxes.FilingStatusMarriedJoint, response.Data.FilingStatus)
}

func (suite *TestSuiteStandard) TestTaxReturnUpdateFails() {
	tests := []struct {
		name string
		body any
	}{
		{"Invalid body", `{ broken`},
		{"Invalid filing status", map[string]any{"filingStatus": "divorced"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, "http://example.com/v1/tax-return", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}

	// The invalid filing status has not been saved
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/tax-return", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TaxReturnResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), taxes.FilingStatusSingle, response.Data.FilingStatus)
}

func (suite *TestSuiteStandard) TestTaxReturnOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/tax-return", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/tax-return/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))
}
