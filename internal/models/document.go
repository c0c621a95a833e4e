package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document types recognized by the categorization engine. Anything else
// is treated as keyword-only input.
const (
	DocTypeW2            = "w2"
	DocType1099          = "1099"
	DocTypeBankStatement = "bank_statement"
	DocTypeUnknown       = "unknown"
)

// Parse status lifecycle of a document.
const (
	ParseStatusPending = "pending"
	ParseStatusParsing = "parsing"
	ParseStatusParsed  = "parsed"
	ParseStatusError   = "error"
)

// Document is one uploaded source document. The raw upload is kept in
// Content so that parsing can be repeated without a new upload.
type Document struct {
	DefaultModel
	FileName    string `json:"fileName" example:"w2-2024.pdf"`
	FileType    string `json:"fileType" example:"application/pdf"` // MIME type of the upload
	DocType     string `json:"docType" example:"w2"`
	FormVariant string `json:"formVariant" example:"INT"` // 1099 variant, empty for other doc types
	SourceName  string `json:"sourceName" example:"Acme Corp"`
	ParseStatus string `json:"parseStatus" example:"parsed"`
	ErrorMsg    string `json:"errorMsg" example:""`
	ContentHash string `json:"contentHash" example:"fafdad29cd32673cbcda95f8b797cb02379ce4ba188d0b63335d1ecdf7b5b65c"`
	Content     []byte `json:"-"` // Raw upload, not part of API responses
}

func (d *Document) BeforeSave(_ *gorm.DB) error {
	d.FileName = strings.TrimSpace(d.FileName)
	d.SourceName = strings.TrimSpace(d.SourceName)
	d.FormVariant = strings.ToUpper(strings.TrimSpace(d.FormVariant))

	return nil
}

// AfterDelete cleans up the items extracted from the document.
func (d *Document) AfterDelete(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		return nil
	}

	return tx.Where("document_id = ?", d.ID).Delete(&ExtractedItem{}).Error
}
