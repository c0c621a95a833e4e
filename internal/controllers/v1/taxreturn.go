package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/models"
)

// RegisterTaxReturnRoutes registers the routes for the tax return with
// the RouterGroup that is passed.
//
// The tax return is a singleton, it is created on first access.
func RegisterTaxReturnRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsTaxReturn)
	r.GET("", GetTaxReturn)
	r.PATCH("", UpdateTaxReturn)

	r.OPTIONS("/summary", OptionsTaxReturnSummary)
	r.GET("/summary", GetTaxReturnSummary)
}

// TaxReturnEditable represents all user configurable parameters
type TaxReturnEditable struct {
	FilingStatus string `json:"filingStatus" example:"married_joint" default:"single"` // Filing status used for the calculation
	Status       string `json:"status" example:"in_progress" default:"in_progress"`    // Preparation status of the return
	FirstName    string `json:"firstName" example:"Jane" default:""`                   // First name as printed on the return
	LastName     string `json:"lastName" example:"Taxpayer" default:""`                // Last name as printed on the return
	SSN          string `json:"ssn" example:"123-45-6789" default:""`                  // Social security number
	Address      string `json:"address" example:"123 Main St" default:""`              // Street address
	City         string `json:"city" example:"Springfield" default:""`                 // City
	State        string `json:"state" example:"IL" default:""`                         // State
	ZipCode      string `json:"zipCode" example:"62704" default:""`                    // ZIP code
}

func (editable TaxReturnEditable) model() models.TaxReturn {
	return models.TaxReturn{
		FilingStatus: editable.FilingStatus,
		Status:       editable.Status,
		FirstName:    editable.FirstName,
		LastName:     editable.LastName,
		SSN:          editable.SSN,
		Address:      editable.Address,
		City:         editable.City,
		State:        editable.State,
		ZipCode:      editable.ZipCode,
	}
}

type TaxReturnLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/tax-return"`            // The tax return itself
	Summary string `json:"summary" example:"https://example.com/api/v1/tax-return/summary"` // The computed tax summary
	Forms   string `json:"forms" example:"https://example.com/api/v1/forms"`                // The generated forms
}

type TaxReturn struct {
	models.TaxReturn
	Links TaxReturnLinks `json:"links"`
}

func newTaxReturn(c *gin.Context, model models.TaxReturn) TaxReturn {
	url := c.GetString(string(models.DBContextURL))

	return TaxReturn{
		TaxReturn: model,
		Links: TaxReturnLinks{
			Self:    fmt.Sprintf("%s/v1/tax-return", url),
			Summary: fmt.Sprintf("%s/v1/tax-return/summary", url),
			Forms:   fmt.Sprintf("%s/v1/forms", url),
		},
	}
}

type TaxReturnResponse struct {
	Data  *TaxReturn `json:"data"`                                                          // Data for the tax return
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			TaxReturn
// @Success		204
// @Router			/v1/tax-return [options]
func OptionsTaxReturn(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get tax return
// @Description	Returns the tax return. It is created with defaults on first access.
// @Tags			TaxReturn
// @Produce		json
// @Success		200	{object}	TaxReturnResponse
// @Failure		500	{object}	TaxReturnResponse
// @Router			/v1/tax-return [get]
func GetTaxReturn(c *gin.Context) {
	taxReturn, err := models.CurrentTaxReturn(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TaxReturnResponse{
			Error: &s,
		})
		return
	}

	data := newTaxReturn(c, taxReturn)
	c.JSON(http.StatusOK, TaxReturnResponse{Data: &data})
}

// @Summary		Update tax return
// @Description	Update the tax return. Only values to be updated need to be specified.
// @Tags			TaxReturn
// @Accept			json
// @Produce		json
// @Success		200			{object}	TaxReturnResponse
// @Failure		400			{object}	TaxReturnResponse
// @Failure		500			{object}	TaxReturnResponse
// @Param			taxReturn	body		TaxReturnEditable	true	"TaxReturn"
// @Router			/v1/tax-return [patch]
func UpdateTaxReturn(c *gin.Context) {
	taxReturn, err := models.CurrentTaxReturn(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TaxReturnResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TaxReturnEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TaxReturnResponse{
			Error: &s,
		})
		return
	}

	var data TaxReturnEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TaxReturnResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&taxReturn).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TaxReturnResponse{
			Error: &s,
		})
		return
	}

	r := newTaxReturn(c, taxReturn)
	c.JSON(http.StatusOK, TaxReturnResponse{Data: &r})
}
