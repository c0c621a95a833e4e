package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrItemAmountNegative = errors.New("the amount of an item must not be negative")

// ExtractedItem is one amount pulled out of a document or entered by
// hand. Items without a category are ignored by the aggregation until a
// user assigns one.
type ExtractedItem struct {
	DefaultModel
	Document    Document        `json:"-"`
	DocumentID  *uuid.UUID      `json:"documentId" example:"9f9c2b31-b9d2-4a9a-95f9-1a6f0b54e9c0"` // Document the item was extracted from, null for manual items
	Category    TaxCategory     `json:"-"`
	CategoryID  *uuid.UUID      `json:"categoryId" example:"b2f63eba-b9bb-4b38-9b53-0b54eb6b4df5"` // Null while uncategorized
	Description string          `json:"description" example:"Box 1 - Wages"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"60000" minimum:"0.00000001" multipleOf:"0.00000001"`
	Confidence  float64         `json:"confidence" example:"0.99"` // Categorization confidence between 0 and 1
	Source      string          `json:"source" example:"w2_box"`   // Which categorization tier matched
	Verified    bool            `json:"verified" example:"false"`  // Set by users after reviewing the item
	RawData     string          `json:"rawData" example:"{\"box\":\"1\"}"`
}

func (i *ExtractedItem) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ExtractedItem)
	return i.checkIntegrity(tx, *toSave)
}

func (i *ExtractedItem) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(ExtractedItem)

	if tx.Statement.Changed("CategoryID") && toSave.CategoryID != nil {
		err = tx.First(&TaxCategory{}, *toSave.CategoryID).Error
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("DocumentID") && toSave.DocumentID != nil {
		err = tx.First(&Document{}, *toSave.DocumentID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that all referenced resources exist.
func (i *ExtractedItem) checkIntegrity(tx *gorm.DB, toSave ExtractedItem) error {
	if toSave.CategoryID != nil {
		err := tx.First(&TaxCategory{}, *toSave.CategoryID).Error
		if err != nil {
			return err
		}
	}

	if toSave.DocumentID != nil {
		err := tx.First(&Document{}, *toSave.DocumentID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func (i *ExtractedItem) BeforeSave(_ *gorm.DB) error {
	i.Description = strings.TrimSpace(i.Description)

	return nil
}

func (i *ExtractedItem) AfterSave(_ *gorm.DB) error {
	if i.Amount.IsNegative() {
		return ErrItemAmountNegative
	}

	return nil
}
