package models_test

import (
	"github.com/snowtax/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestDocumentBeforeSave() {
	document := models.Document{
		FileName:    " w2-2024.pdf ",
		FormVariant: "  int ",
		SourceName:  "Acme Corp\t",
	}

	err := document.BeforeSave(&gorm.DB{})
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), "w2-2024.pdf", document.FileName)
	assert.Equal(suite.T(), "INT", document.FormVariant, "The form variant is not normalized to upper case")
	assert.Equal(suite.T(), "Acme Corp", document.SourceName)
}

// TestDocumentDeleteCascades verifies that deleting a document deletes
// its extracted items, but nothing else.
func (suite *TestSuiteStandard) TestDocumentDeleteCascades() {
	document := suite.createTestDocument(models.Document{DocType: models.DocTypeW2})
	other := suite.createTestDocument(models.Document{DocType: models.DocType1099})

	_ = suite.createTestItem(models.ExtractedItem{DocumentID: &document.ID, Description: "Box 1"})
	_ = suite.createTestItem(models.ExtractedItem{DocumentID: &document.ID, Description: "Box 2"})
	kept := suite.createTestItem(models.ExtractedItem{DocumentID: &other.ID, Description: "Box 1"})

	err := models.DB.Delete(&document).Error
	assert.Nil(suite.T(), err)

	var items []models.ExtractedItem
	err = models.DB.Find(&items).Error
	assert.Nil(suite.T(), err)

	if assert.Len(suite.T(), items, 1, "Items of the deleted document still exist") {
		assert.Equal(suite.T(), kept.ID, items[0].ID)
	}
}

// An AfterDelete hook on an uninitialized document must not delete
// anything.
func (suite *TestSuiteStandard) TestDocumentAfterDeleteZeroID() {
	document := suite.createTestDocument(models.Document{DocType: models.DocTypeW2})
	_ = suite.createTestItem(models.ExtractedItem{DocumentID: &document.ID})

	err := (&models.Document{}).AfterDelete(models.DB)
	assert.Nil(suite.T(), err)

	var count int64
	err = models.DB.Model(&models.ExtractedItem{}).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count)
}
