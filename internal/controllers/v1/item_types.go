package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/internal/models"
	snowtax_uuid "github.com/snowtax/backend/internal/uuid"
)

// ItemEditable represents all user configurable parameters
type ItemEditable struct {
	CategoryID  *uuid.UUID      `json:"categoryId" example:"b2f63eba-b9bb-4b38-9b53-0b54eb6b4df5"` // ID of the category the item is filed under. Null for uncategorized items
	DocumentID  *uuid.UUID      `json:"documentId" example:"9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0"` // ID of the document the item belongs to. Null for manual items
	Description string          `json:"description" example:"Box 1 - Wages" default:""`            // Description of the item
	Amount      decimal.Decimal `json:"amount" example:"60000" minimum:"0.00000001"`               // Amount of the item
	Verified    bool            `json:"verified" example:"false" default:"false"`                  // Has a user confirmed the categorization?
}

func (editable ItemEditable) model() models.ExtractedItem {
	return models.ExtractedItem{
		CategoryID:  editable.CategoryID,
		DocumentID:  editable.DocumentID,
		Description: editable.Description,
		Amount:      editable.Amount,
		Verified:    editable.Verified,
	}
}

type ItemLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/items/bf4f5067-6e43-4bd7-a2f6-0a85d39a3ab8"`          // The item itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/b2f63eba-b9bb-4b38-9b53-0b54eb6b4df5"` // The category the item is filed under, empty if uncategorized
	Document string `json:"document" example:"https://example.com/api/v1/documents/9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0"`  // The document the item belongs to, empty for manual items
}

type Item struct {
	models.ExtractedItem
	CategoryName string    `json:"categoryName" example:"wages_salaries"` // Name of the category, empty if uncategorized
	Links        ItemLinks `json:"links"`
}

func newItem(c *gin.Context, model models.ExtractedItem, categoryName string) Item {
	url := c.GetString(string(models.DBContextURL))

	item := Item{
		ExtractedItem: model,
		CategoryName:  categoryName,
		Links: ItemLinks{
			Self: fmt.Sprintf("%s/v1/items/%s", url, model.ID),
		},
	}

	if model.CategoryID != nil {
		item.Links.Category = fmt.Sprintf("%s/v1/categories/%s", url, *model.CategoryID)
	}

	if model.DocumentID != nil {
		item.Links.Document = fmt.Sprintf("%s/v1/documents/%s", url, *model.DocumentID)
	}

	return item
}

type ItemListResponse struct {
	Data       []Item      `json:"data"`                                                          // List of items
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ItemCreateResponse struct {
	Data  []ItemResponse `json:"data"`                                                          // List of the created items or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ItemResponse struct {
	Data  *Item   `json:"data"`                                                          // Data for the item
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ItemQueryFilter struct {
	CategoryID    snowtax_uuid.UUID `form:"category"`                          // By ID of the category
	DocumentID    snowtax_uuid.UUID `form:"document"`                          // By ID of the document
	Verified      bool              `form:"verified"`                          // Is the item verified?
	Uncategorized bool              `form:"uncategorized" filterField:"false"` // Only items without a category
	Search        string            `form:"search" filterField:"false"`        // By string in the description
	Offset        uint              `form:"offset" filterField:"false"`        // The offset of the first item returned. Defaults to 0.
	Limit         int               `form:"limit" filterField:"false"`         // Maximum number of items to return. Defaults to 50.
}

func (f ItemQueryFilter) model() models.ExtractedItem {
	var categoryID, documentID *uuid.UUID
	if f.CategoryID != snowtax_uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}
	if f.DocumentID != snowtax_uuid.Nil {
		documentID = &f.DocumentID.UUID
	}

	return models.ExtractedItem{
		CategoryID: categoryID,
		DocumentID: documentID,
		Verified:   f.Verified,
	}
}
