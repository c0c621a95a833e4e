package v1

import (
	"errors"
	"net/http"

	"github.com/snowtax/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Document errors
var (
	errNoFilePost = errors.New("you must send a file to this endpoint")
)

// Parse errors
var (
	errDocumentNotCSV   = errors.New("the stored document is not a CSV file, send the extracted field data in the request body instead")
	errNoItemsInRequest = errors.New("the request body must contain at least one item")
)
