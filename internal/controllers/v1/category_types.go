package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
)

type CategoryLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`      // The category itself
	Items string `json:"items" example:"https://example.com/api/v1/items?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Items filed under this category
}

type Category struct {
	models.TaxCategory
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.TaxCategory) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		TaxCategory: model,
		Links: CategoryLinks{
			Self:  fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Items: fmt.Sprintf("%s/v1/items?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string             `form:"name" filterField:"false"`   // By name
	Type   taxes.CategoryType `form:"type"`                       // By category type
	Search string             `form:"search" filterField:"false"` // By string in name or description
}
