package models

import (
	"errors"
	"strings"

	"github.com/snowtax/backend/internal/taxes"
	"gorm.io/gorm"
)

// Return status values.
const (
	ReturnStatusInProgress = "in_progress"
	ReturnStatusCompleted  = "completed"
)

var ErrFilingStatusInvalid = errors.New("the filing status must be one of: single, married_joint, married_separate, head_of_household")

// TaxReturn is the singleton return being prepared. It holds the filing
// status the calculation uses and the taxpayer identity printed on the
// forms.
type TaxReturn struct {
	DefaultModel
	Year         int    `json:"year" example:"2024"`
	FilingStatus string `json:"filingStatus" example:"single"`
	Status       string `json:"status" example:"in_progress"`
	FirstName    string `json:"firstName" example:"Jane"`
	LastName     string `json:"lastName" example:"Taxpayer"`
	SSN          string `json:"ssn" example:"123-45-6789"`
	Address      string `json:"address" example:"123 Main St"`
	City         string `json:"city" example:"Springfield"`
	State        string `json:"state" example:"IL"`
	ZipCode      string `json:"zipCode" example:"62704"`
}

func (t *TaxReturn) BeforeSave(_ *gorm.DB) error {
	t.FirstName = strings.TrimSpace(t.FirstName)
	t.LastName = strings.TrimSpace(t.LastName)
	t.SSN = strings.TrimSpace(t.SSN)
	t.Address = strings.TrimSpace(t.Address)
	t.City = strings.TrimSpace(t.City)
	t.State = strings.TrimSpace(t.State)
	t.ZipCode = strings.TrimSpace(t.ZipCode)

	return nil
}

func (t *TaxReturn) AfterSave(_ *gorm.DB) error {
	if _, ok := taxes.FilingStatusLabels[t.FilingStatus]; !ok {
		return ErrFilingStatusInvalid
	}

	return nil
}

// PersonalInfo converts the identity fields into the form mapper input.
func (t TaxReturn) PersonalInfo() taxes.PersonalInfo {
	return taxes.PersonalInfo{
		FirstName: t.FirstName,
		LastName:  t.LastName,
		SSN:       t.SSN,
		Address:   t.Address,
		City:      t.City,
		State:     t.State,
		ZipCode:   t.ZipCode,
	}
}

// CurrentTaxReturn returns the singleton return, creating it with
// defaults on first access.
func CurrentTaxReturn(db *gorm.DB) (TaxReturn, error) {
	var taxReturn TaxReturn
	err := db.
		Where(TaxReturn{Year: taxes.TaxYear}).
		Attrs(TaxReturn{
			FilingStatus: taxes.FilingStatusSingle,
			Status:       ReturnStatusInProgress,
		}).
		FirstOrCreate(&taxReturn).Error

	return taxReturn, err
}
