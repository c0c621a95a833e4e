package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/internal/importer/parser/bankcsv"
	"github.com/snowtax/backend/internal/models"
	"github.com/snowtax/backend/internal/taxes"
	"gorm.io/gorm"
)

// ExtractionPayload is the field data an external document extraction
// service produced for a document. It is sent as the request body when
// parsing non-CSV documents.
type ExtractionPayload struct {
	DocType     string           `json:"docType" example:"w2"`           // Detected document type
	FormVariant string           `json:"formVariant" example:"INT"`      // Detected 1099 variant
	SourceName  string           `json:"sourceName" example:"Acme Corp"` // Detected employer, bank or payer name
	Items       []ExtractionItem `json:"items"`                          // The extracted field values
}

type ExtractionItem struct {
	Box         string          `json:"box" example:"1"`                     // Box identifier on the form, empty for free-form documents
	Description string          `json:"description" example:"Box 1 - Wages"` // Description of the value
	Amount      decimal.Decimal `json:"amount" example:"60000"`              // The extracted amount
}

type ParseResult struct {
	Document  Document `json:"document"`  // The parsed document
	ItemCount int      `json:"itemCount"` // Number of items the parse produced
	Items     []Item   `json:"items"`     // The created items
}

type ParseResponse struct {
	Data  *ParseResult `json:"data"`                                                          // Data for the parse run
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Parse document
// @Description	Parses a document into extracted items. Re-parsing a document deletes the items of earlier runs.
// @Description	CSV documents are parsed from the stored file. For all other documents, the request body
// @Description	carries the field data of an external extraction service.
// @Tags			Documents
// @Accept			json
// @Produce		json
// @Success		201		{object}	ParseResponse
// @Failure		400		{object}	ParseResponse
// @Failure		404		{object}	ParseResponse
// @Failure		500		{object}	ParseResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payload	body		ExtractionPayload	false	"Extracted field data for non-CSV documents"
// @Router			/v1/documents/{id}/parse [post]
func ParseDocument(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	var document models.Document
	err = models.DB.First(&document, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	// Mark as parsing and clear the state of earlier runs
	err = models.DB.Model(&document).
		Select("ParseStatus", "ErrorMsg").
		Updates(models.Document{ParseStatus: models.ParseStatusParsing}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	categories, err := models.CategoryIDsByName(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	var items []models.ExtractedItem
	if isCSV(document) {
		items, err = parseCSVDocument(&document, categories)
	} else {
		items, err = parseExtractionPayload(c, &document, categories)
	}

	if err != nil {
		// Record the failure on the document, the parse error
		// wins over any error of this update
		_ = models.DB.Model(&document).
			Select("ParseStatus", "ErrorMsg").
			Updates(models.Document{
				ParseStatus: models.ParseStatusError,
				ErrorMsg:    err.Error(),
			}).Error

		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	// Replace the items of earlier runs in one transaction
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("document_id = ?", document.ID).Delete(&models.ExtractedItem{}).Error
		if err != nil {
			return err
		}

		for i := range items {
			err = tx.Create(&items[i]).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&document).
			Select("ParseStatus", "DocType", "FormVariant", "SourceName").
			Updates(models.Document{
				ParseStatus: models.ParseStatusParsed,
				DocType:     document.DocType,
				FormVariant: document.FormVariant,
				SourceName:  document.SourceName,
			}).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ParseResponse{
			Error: &s,
		})
		return
	}

	data := make([]Item, 0, len(items))
	for _, item := range items {
		var categoryName string
		if item.CategoryID != nil {
			for name, category := range categories {
				if category.ID == *item.CategoryID {
					categoryName = name
					break
				}
			}
		}
		data = append(data, newItem(c, item, categoryName))
	}

	c.JSON(http.StatusCreated, ParseResponse{
		Data: &ParseResult{
			Document:  newDocument(c, document),
			ItemCount: len(data),
			Items:     data,
		},
	})
}

// isCSV reports whether the stored document is parsed as a bank CSV.
func isCSV(document models.Document) bool {
	return strings.Contains(document.FileType, "csv") ||
		strings.HasSuffix(strings.ToLower(document.FileName), ".csv")
}

// parseCSVDocument parses the stored file content as a bank statement.
// Every transaction is categorized by its description.
func parseCSVDocument(document *models.Document, categories map[string]models.TaxCategory) ([]models.ExtractedItem, error) {
	transactions, err := bankcsv.Parse(bytes.NewReader(document.Content))
	if err != nil {
		return nil, err
	}

	document.DocType = models.DocTypeBankStatement

	items := make([]models.ExtractedItem, 0, len(transactions))
	for _, transaction := range transactions {
		match, _ := taxes.Categorize("", "", "", transaction.Description)
		raw, _ := json.Marshal(transaction)

		items = append(items, newExtractedItem(document, categories, match, transaction.Description, transaction.Amount, string(raw)))
	}

	return items, nil
}

// parseExtractionPayload builds items from the extraction service
// payload in the request body.
func parseExtractionPayload(c *gin.Context, document *models.Document, categories map[string]models.TaxCategory) ([]models.ExtractedItem, error) {
	var payload ExtractionPayload
	err := c.ShouldBindJSON(&payload)
	if err != nil {
		return nil, errDocumentNotCSV
	}

	if len(payload.Items) == 0 {
		return nil, errNoItemsInRequest
	}

	// The extraction result is more specific than what the
	// user set during upload
	if payload.DocType != "" {
		document.DocType = payload.DocType
	}
	if payload.FormVariant != "" {
		document.FormVariant = strings.ToUpper(payload.FormVariant)
	}
	if payload.SourceName != "" {
		document.SourceName = payload.SourceName
	}

	items := make([]models.ExtractedItem, 0, len(payload.Items))
	for _, extracted := range payload.Items {
		if taxes.Discard(document.DocType, extracted.Box, extracted.Amount) {
			continue
		}

		description := extracted.Description
		if description == "" {
			description = document.DocType + " item"
		}

		match, _ := taxes.Categorize(document.DocType, document.FormVariant, extracted.Box, description)
		raw, _ := json.Marshal(extracted)

		items = append(items, newExtractedItem(document, categories, match, description, extracted.Amount, string(raw)))
	}

	return items, nil
}

// newExtractedItem resolves a categorization match into an item bound
// to the document.
func newExtractedItem(document *models.Document, categories map[string]models.TaxCategory, match taxes.Match, description string, amount decimal.Decimal, raw string) models.ExtractedItem {
	item := models.ExtractedItem{
		DocumentID:  &document.ID,
		Description: description,
		Amount:      amount,
		Confidence:  match.Confidence,
		Source:      string(match.Source),
		RawData:     raw,
	}

	if category, ok := categories[match.CategoryName]; ok {
		id := category.ID
		item.CategoryID = &id
	}

	return item
}
