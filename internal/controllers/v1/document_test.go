package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/snowtax/backend/internal/controllers/v1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/internal/importer/helpers"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/test"
	"github.com/stretchr/testify/assert"
)

// createTestDocument uploads a document. The query string configures the
// document type, variant and source name.
func createTestDocument(t *testing.T, fileName string, content []byte, query string, expectedStatus ...int) v1.DocumentResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqURL := "http://example.com/v1/documents"
	if query != "" {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query)
	}

	body, headers := uploadBody(t, fileName, content)

	r := test.Request(t, http.MethodPost, reqURL, body, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var document v1.DocumentResponse
	test.DecodeResponse(t, &r, &document)

	return document
}

func (suite *TestSuiteStandard) TestDocumentCreate() {
	content := []byte("some document content")
	document := createTestDocument(suite.T(), "w2-2024.pdf", content, "docType=w2&sourceName=Acme+Corp")

	assert.Equal(suite.T(), "w2-2024.pdf", document.Data.FileName)
	assert.Equal(suite.T(), models.DocTypeW2, document.Data.DocType)
	assert.Equal(suite.T(), "Acme Corp", document.Data.SourceName)
	assert.Equal(suite.T(), models.ParseStatusPending, document.Data.ParseStatus)
	assert.Equal(suite.T(), helpers.Sha256(content), document.Data.ContentHash)

	assert.NotEmpty(suite.T(), document.Data.Links.Self)
	assert.NotEmpty(suite.T(), document.Data.Links.Items)
	assert.Contains(suite.T(), document.Data.Links.Parse, "/parse")
}

// An upload without a document type is stored as unknown, parsing
// decides later.
func (suite *TestSuiteStandard) TestDocumentCreateDefaultDocType() {
	document := createTestDocument(suite.T(), "upload.pdf", []byte("content"), "")

	assert.Equal(suite.T(), models.DocTypeUnknown, document.Data.DocType)
}

func (suite *TestSuiteStandard) TestDocumentCreateNoFile() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/documents", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, "you must send a file")
}

func (suite *TestSuiteStandard) TestDocumentsGetFilter() {
	_ = createTestDocument(suite.T(), "w2-2024.pdf", []byte("a"), "docType=w2")
	_ = createTestDocument(suite.T(), "statement.csv", []byte("b"), "docType=bank_statement")

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All documents", "", 2},
		{"By document type", "docType=w2", 1},
		{"By parse status", "parseStatus=pending", 2},
		{"By parse status without match", "parseStatus=parsed", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/documents?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.DocumentListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestDocumentGetSingle() {
	document := createTestDocument(suite.T(), "w2-2024.pdf", []byte("a"), "docType=w2")

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing document", document.Data.ID.String(), http.StatusOK},
		{"No document with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/documents/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestDocumentDelete verifies that deleting a document also deletes the
// items extracted from it.
func (suite *TestSuiteStandard) TestDocumentDelete() {
	document := createTestDocument(suite.T(), "w2.pdf", []byte("a"), "docType=w2")

	payload := v1.ExtractionPayload{
		Items: []v1.ExtractionItem{
			{Box: "1", Description: "Box 1 - Wages", Amount: decimal.NewFromInt(60000)},
		},
	}
	recorder := test.Request(suite.T(), http.MethodPost, document.Data.Links.Parse, payload)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodDelete, document.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, document.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/items", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var items v1.ItemListResponse
	test.DecodeResponse(suite.T(), &recorder, &items)
	assert.Len(suite.T(), items.Data, 0, "Items of the deleted document still exist")
}

func (suite *TestSuiteStandard) TestDocumentsOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/documents", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))

	document := createTestDocument(suite.T(), "w2.pdf", []byte("a"), "")

	recorder = test.Request(suite.T(), http.MethodOptions, document.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, DELETE", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, document.Data.Links.Parse, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/documents/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
