package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// GeneratedForm is one form produced by a generation run, with the
// flat field data an external PDF renderer fills into the template.
type GeneratedForm struct {
	DefaultModel
	TaxReturn   TaxReturn       `json:"-"`
	TaxReturnID uuid.UUID       `json:"taxReturnId" example:"5b95d408-98f1-4c53-982b-07da48923c1d"`
	FormID      string          `json:"formId" example:"1040"`                                        // Short form identifier
	Name        string          `json:"name" example:"Form 1040 - U.S. Individual Income Tax Return"` // Full display name
	FieldData   json.RawMessage `json:"fieldData" swaggertype:"object"`                               // Field name to value mapping for the PDF template
}
