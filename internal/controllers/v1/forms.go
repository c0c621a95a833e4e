package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
	"gorm.io/gorm"
)

// RegisterFormRoutes registers the routes for generated forms with
// the RouterGroup that is passed.
func RegisterFormRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsFormList)
	r.GET("", GetForms)

	r.OPTIONS("/generate", OptionsFormGenerate)
	r.POST("/generate", GenerateForms)
}

type FormLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/forms/1c90186a-a971-4097-b6cb-63b6cd9ff1e3"` // The form itself
}

type Form struct {
	models.GeneratedForm
	Links FormLinks `json:"links"`
}

func newForm(c *gin.Context, model models.GeneratedForm) Form {
	url := c.GetString(string(models.DBContextURL))

	return Form{
		GeneratedForm: model,
		Links: FormLinks{
			Self: fmt.Sprintf("%s/v1/forms/%s", url, model.ID),
		},
	}
}

type FormListResponse struct {
	Data  []Form  `json:"data"`                                                          // List of generated forms
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GenerateResult struct {
	Forms   []Form           `json:"forms"`   // The generated forms in filing order
	Summary taxes.TaxSummary `json:"summary"` // The tax summary the forms were generated from
}

type GenerateResponse struct {
	Data  *GenerateResult `json:"data"`                                                          // Data for the generation run
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forms
// @Success		204
// @Router			/v1/forms [options]
func OptionsFormList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forms
// @Success		204
// @Router			/v1/forms/generate [options]
func OptionsFormGenerate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get forms
// @Description	Returns the forms of the last generation run
// @Tags			Forms
// @Produce		json
// @Success		200	{object}	FormListResponse
// @Failure		500	{object}	FormListResponse
// @Router			/v1/forms [get]
func GetForms(c *gin.Context) {
	var forms []models.GeneratedForm
	err := models.DB.Order("created_at ASC").Find(&forms).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FormListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Form, 0)
	for _, form := range forms {
		data = append(data, newForm(c, form))
	}

	c.JSON(http.StatusOK, FormListResponse{
		Data: data,
	})
}

// @Summary		Generate forms
// @Description	Determines the required forms from the current items, computes the tax summary and maps it onto
// @Description	the Form 1040 field layout. Forms of earlier runs are replaced.
// @Tags			Forms
// @Produce		json
// @Success		201	{object}	GenerateResponse
// @Failure		500	{object}	GenerateResponse
// @Router			/v1/forms/generate [post]
func GenerateForms(c *gin.Context) {
	taxReturn, err := models.CurrentTaxReturn(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GenerateResponse{
			Error: &s,
		})
		return
	}

	totals, _, err := categoryTotals(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GenerateResponse{
			Error: &s,
		})
		return
	}

	summary := taxes.Calculate(taxReturn.FilingStatus, totals)
	required := taxes.DetermineRequiredForms(totals)

	forms := make([]models.GeneratedForm, 0, len(required))
	for _, formID := range required {
		// Only Form 1040 has a field mapping, the schedules are
		// rendered from the category totals by the PDF service
		fields := make([]taxes.FormField, 0)
		if formID == taxes.Form1040 {
			fields = taxes.MapTo1040Fields(taxReturn.PersonalInfo(), taxReturn.FilingStatus, summary, totals)
		}

		fieldData, err := json.Marshal(fields)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, GenerateResponse{
				Error: &s,
			})
			return
		}

		forms = append(forms, models.GeneratedForm{
			TaxReturnID: taxReturn.ID,
			FormID:      formID,
			Name:        taxes.FormNames[formID],
			FieldData:   fieldData,
		})
	}

	// Replace the forms of earlier runs in one transaction
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("true").Delete(&models.GeneratedForm{}).Error
		if err != nil {
			return err
		}

		for i := range forms {
			err = tx.Create(&forms[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GenerateResponse{
			Error: &s,
		})
		return
	}

	data := make([]Form, 0, len(forms))
	for _, form := range forms {
		data = append(data, newForm(c, form))
	}

	c.JSON(http.StatusCreated, GenerateResponse{
		Data: &GenerateResult{
			Forms:   data,
			Summary: summary,
		},
	})
}
