package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Categories string `json:"categories" example:"https://example.com/api/v1/categories"` // URL of the category catalog endpoint
	Documents  string `json:"documents" example:"https://example.com/api/v1/documents"`   // URL of the Document collection endpoint
	Forms      string `json:"forms" example:"https://example.com/api/v1/forms"`           // URL of the generated forms endpoint
	Items      string `json:"items" example:"https://example.com/api/v1/items"`           // URL of the ExtractedItem collection endpoint
	TaxReturn  string `json:"taxReturn" example:"https://example.com/api/v1/tax-return"`  // URL of the tax return endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Categories: url + "/v1/categories",
			Documents:  url + "/v1/documents",
			Forms:      url + "/v1/forms",
			Items:      url + "/v1/items",
			TaxReturn:  url + "/v1/tax-return",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
