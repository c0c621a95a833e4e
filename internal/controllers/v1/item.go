package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
	"golang.org/x/exp/slices"
)

// RegisterItemRoutes registers the routes for extracted items with
// the RouterGroup that is passed.
func RegisterItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsItemList)
		r.GET("", GetItems)
		r.POST("", CreateItems)
	}

	// Item with ID
	{
		r.OPTIONS("/:id", OptionsItemDetail)
		r.GET("/:id", GetItem)
		r.PATCH("/:id", UpdateItem)
		r.DELETE("/:id", DeleteItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Router			/v1/items [options]
func OptionsItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [options]
func OptionsItemDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.ExtractedItem{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create items
// @Description	Creates new items, for example for amounts a document parser cannot see
// @Tags			Items
// @Produce		json
// @Success		201		{object}	ItemCreateResponse
// @Failure		400		{object}	ItemCreateResponse
// @Failure		404		{object}	ItemCreateResponse
// @Failure		500		{object}	ItemCreateResponse
// @Param			items	body		[]ItemEditable	true	"Items"
// @Router			/v1/items [post]
func CreateItems(c *gin.Context) {
	var editables []ItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model()

		// Manual items are trusted input
		item.Source = string(taxes.SourceManual)
		item.Confidence = 1.0

		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newItemWithCategory(c, item)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get items
// @Description	Returns a list of items
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemListResponse
// @Failure		400	{object}	ItemListResponse
// @Failure		500	{object}	ItemListResponse
// @Router			/v1/items [get]
// @Param			category		query	string	false	"Filter by category ID"
// @Param			document		query	string	false	"Filter by document ID"
// @Param			verified		query	bool	false	"Is the item verified?"
// @Param			uncategorized	query	bool	false	"Only return items without a category"
// @Param			search			query	string	false	"Search for this text in the description"
// @Param			offset			query	uint	false	"The offset of the first item returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of items to return. Defaults to 50."
func GetItems(c *gin.Context) {
	var filter ItemQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("created_at DESC").
		Where(filter.model(), queryFields...)

	if filter.Uncategorized {
		q = q.Where("category_id IS NULL")
	}

	if filter.Search != "" {
		q = q.Where("description LIKE ?", "%"+filter.Search+"%")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var items []models.ExtractedItem
	err := q.Preload("Category").Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Item, 0)
	for _, item := range items {
		data = append(data, newItem(c, item, item.Category.Name))
	}

	c.JSON(http.StatusOK, ItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get item
// @Description	Returns a specific item
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemResponse
// @Failure		400	{object}	ItemResponse
// @Failure		404	{object}	ItemResponse
// @Failure		500	{object}	ItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [get]
func GetItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var item models.ExtractedItem
	err = models.DB.Preload("Category").First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	data := newItem(c, item, item.Category.Name)
	c.JSON(http.StatusOK, ItemResponse{Data: &data})
}

// @Summary		Update item
// @Description	Update an existing item, for example to assign a category or correct an amount. Only values to be updated need to be specified.
// @Tags			Items
// @Accept			json
// @Produce		json
// @Success		200		{object}	ItemResponse
// @Failure		400		{object}	ItemResponse
// @Failure		404		{object}	ItemResponse
// @Failure		500		{object}	ItemResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		ItemEditable	true	"Item"
// @Router			/v1/items/{id} [patch]
func UpdateItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var item models.ExtractedItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	var data ItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	r, err := newItemWithCategory(c, item)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Data: &r})
}

// @Summary		Delete item
// @Description	Deletes an item
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [delete]
func DeleteItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.ExtractedItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// newItemWithCategory resolves the category name before building the
// API resource.
func newItemWithCategory(c *gin.Context, item models.ExtractedItem) (Item, error) {
	var categoryName string

	if item.CategoryID != nil {
		var category models.TaxCategory
		err := models.DB.First(&category, *item.CategoryID).Error
		if err != nil {
			return Item{}, err
		}
		categoryName = category.Name
	}

	return newItem(c, item, categoryName), nil
}
