package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snowtax/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestItemTrimWhitespace() {
	item := suite.createTestItem(models.ExtractedItem{
		Description: "  Box 1 - Wages \t",
		Amount:      decimal.NewFromInt(50000),
	})

	assert.Equal(suite.T(), "Box 1 - Wages", item.Description)
}

// TestItemCreateIntegrity verifies that items can only reference
// existing resources.
func (suite *TestSuiteStandard) TestItemCreateIntegrity() {
	badID := uuid.New()

	err := models.DB.Create(&models.ExtractedItem{CategoryID: &badID}).Error
	if assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound) {
		assert.Contains(suite.T(), err.Error(), "there is no tax category")
	}

	err = models.DB.Create(&models.ExtractedItem{DocumentID: &badID}).Error
	if assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound) {
		assert.Contains(suite.T(), err.Error(), "there is no document")
	}
}

// TestItemUpdateIntegrity verifies the same referential checks on
// updates.
func (suite *TestSuiteStandard) TestItemUpdateIntegrity() {
	category := suite.category("wages_salaries")
	document := suite.createTestDocument(models.Document{DocType: models.DocTypeW2})

	item := suite.createTestItem(models.ExtractedItem{
		CategoryID: &category.ID,
		DocumentID: &document.ID,
		Amount:     decimal.NewFromInt(100),
	})

	badID := uuid.New()

	err := models.DB.Model(&item).Updates(models.ExtractedItem{CategoryID: &badID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = models.DB.Model(&item).Updates(models.ExtractedItem{DocumentID: &badID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// Updating to an existing resource works
	interest := suite.category("taxable_interest")
	err = models.DB.Model(&item).Updates(models.ExtractedItem{CategoryID: &interest.ID}).Error
	assert.Nil(suite.T(), err)
}

// TestItemAmountNegative verifies that negative amounts are rejected
// on create and update. A zero amount stays valid, it marks an item a
// user still has to fill in.
func (suite *TestSuiteStandard) TestItemAmountNegative() {
	err := models.DB.Create(&models.ExtractedItem{
		Description: "Refund gone wrong",
		Amount:      decimal.NewFromInt(-500),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrItemAmountNegative)

	item := suite.createTestItem(models.ExtractedItem{
		Description: "Box 1 - Wages",
		Amount:      decimal.NewFromInt(50000),
	})

	err = models.DB.Model(&item).Updates(models.ExtractedItem{Amount: decimal.NewFromInt(-1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrItemAmountNegative)

	zero := suite.createTestItem(models.ExtractedItem{
		Description: "Still empty",
	})
	assert.True(suite.T(), zero.Amount.IsZero())
}

// Items without a category or document are valid, they are manual
// entries awaiting categorization.
func (suite *TestSuiteStandard) TestItemUncategorized() {
	item := suite.createTestItem(models.ExtractedItem{
		Description: "Cash income",
		Amount:      decimal.NewFromInt(250),
	})

	assert.Nil(suite.T(), item.CategoryID)
	assert.Nil(suite.T(), item.DocumentID)
}
