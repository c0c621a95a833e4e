package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
)

type SummaryResult struct {
	Summary        taxes.TaxSummary      `json:"summary"`                       // The computed tax summary
	CategoryTotals []taxes.CategoryTotal `json:"categoryTotals"`                // Per-category totals that went into the calculation
	FilingStatus   string                `json:"filingStatus" example:"single"` // Filing status the calculation used
	ItemCount      int                   `json:"itemCount" example:"12"`        // Number of categorized items aggregated
}

type SummaryResponse struct {
	Data  *SummaryResult `json:"data"`                                                          // Data for the summary
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			TaxReturn
// @Success		204
// @Router			/v1/tax-return/summary [options]
func OptionsTaxReturnSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get tax summary
// @Description	Aggregates all categorized items and computes the tax summary for the current filing status.
// @Tags			TaxReturn
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/tax-return/summary [get]
func GetTaxReturnSummary(c *gin.Context) {
	taxReturn, err := models.CurrentTaxReturn(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	totals, itemCount, err := categoryTotals(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	summary := taxes.Calculate(taxReturn.FilingStatus, totals)

	c.JSON(http.StatusOK, SummaryResponse{
		Data: &SummaryResult{
			Summary:        summary,
			CategoryTotals: totals,
			FilingStatus:   taxReturn.FilingStatus,
			ItemCount:      itemCount,
		},
	})
}

// categoryTotals aggregates all categorized items into per-category
// totals. Items without a category are skipped, they do not take part
// in the calculation until a user assigns one.
func categoryTotals(_ *gin.Context) ([]taxes.CategoryTotal, int, error) {
	var items []models.ExtractedItem
	err := models.DB.
		Where("category_id IS NOT NULL").
		Preload("Category").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	taxItems := make([]taxes.Item, 0, len(items))
	for _, item := range items {
		taxItems = append(taxItems, taxes.Item{
			CategoryName: item.Category.Name,
			Type:         item.Category.Type,
			FormLine:     item.Category.FormLine,
			Amount:       item.Amount,
		})
	}

	return taxes.Aggregate(taxItems), len(taxItems), nil
}
