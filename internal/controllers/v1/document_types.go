package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/models"
)

type DocumentLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/documents/9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0"`        // The document itself
	Items string `json:"items" example:"https://example.com/api/v1/items?document=9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0"`  // Items extracted from this document
	Parse string `json:"parse" example:"https://example.com/api/v1/documents/9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0/parse"` // Parse endpoint for this document
}

type Document struct {
	models.Document
	Links DocumentLinks `json:"links"`
}

func newDocument(c *gin.Context, model models.Document) Document {
	url := c.GetString(string(models.DBContextURL))

	return Document{
		Document: model,
		Links: DocumentLinks{
			Self:  fmt.Sprintf("%s/v1/documents/%s", url, model.ID),
			Items: fmt.Sprintf("%s/v1/items?document=%s", url, model.ID),
			Parse: fmt.Sprintf("%s/v1/documents/%s/parse", url, model.ID),
		},
	}
}

type DocumentListResponse struct {
	Data  []Document `json:"data"`                                                          // List of documents
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DocumentResponse struct {
	Data  *Document `json:"data"`                                                          // Data for the document
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DocumentQueryFilter struct {
	DocType     string `form:"docType"`     // By document type
	ParseStatus string `form:"parseStatus"` // By parse status
}

func (f DocumentQueryFilter) model() models.Document {
	return models.Document{
		DocType:     f.DocType,
		ParseStatus: f.ParseStatus,
	}
}
