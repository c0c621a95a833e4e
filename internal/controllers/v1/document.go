package v1

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowtax/backend/internal/httputil"
	"github.com/snowtax/backend/internal/importer/helpers"
	"github.com/snowtax/backend/internal/models"
)

// RegisterDocumentRoutes registers the routes for documents with
// the RouterGroup that is passed.
func RegisterDocumentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDocumentList)
		r.GET("", GetDocuments)
		r.POST("", CreateDocument)
	}

	// Document with ID
	{
		r.OPTIONS("/:id", OptionsDocumentDetail)
		r.GET("/:id", GetDocument)
		r.DELETE("/:id", DeleteDocument)
		r.POST("/:id/parse", ParseDocument)
		r.OPTIONS("/:id/parse", OptionsDocumentParse)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Router			/v1/documents [options]
func OptionsDocumentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documents/{id} [options]
func OptionsDocumentDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Document{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documents/{id}/parse [options]
func OptionsDocumentParse(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Document{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context) (multipart.File, string, string, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, "", "", errNoFilePost
	}

	if err != nil {
		return nil, "", "", err
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", "", err
	}

	return f, formFile.Filename, formFile.Header.Get("Content-Type"), nil
}

// @Summary		Upload document
// @Description	Uploads a new source document. The raw file is stored so that parsing can be repeated.
// @Tags			Documents
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	DocumentResponse
// @Failure		400			{object}	DocumentResponse
// @Failure		500			{object}	DocumentResponse
// @Param			file		formData	file	true	"The document to upload"
// @Param			docType		query		string	false	"Type of the document: w2, 1099 or bank_statement"
// @Param			formVariant	query		string	false	"1099 variant, for example INT or DIV"
// @Param			sourceName	query		string	false	"Name of the employer, bank or payer"
// @Router			/v1/documents [post]
func CreateDocument(c *gin.Context) {
	var query struct {
		DocType     string `form:"docType"`
		FormVariant string `form:"formVariant"`
		SourceName  string `form:"sourceName"`
	}
	_ = c.Bind(&query)

	f, fileName, fileType, err := getUploadedFile(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, DocumentResponse{
			Error: &s,
		})
		return
	}

	docType := query.DocType
	if docType == "" {
		docType = models.DocTypeUnknown
	}

	document := models.Document{
		FileName:    fileName,
		FileType:    fileType,
		DocType:     docType,
		FormVariant: query.FormVariant,
		SourceName:  query.SourceName,
		ParseStatus: models.ParseStatusPending,
		ContentHash: helpers.Sha256(content),
		Content:     content,
	}

	err = models.DB.Create(&document).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	data := newDocument(c, document)
	c.JSON(http.StatusCreated, DocumentResponse{Data: &data})
}

// @Summary		Get documents
// @Description	Returns a list of documents
// @Tags			Documents
// @Produce		json
// @Success		200	{object}	DocumentListResponse
// @Failure		400	{object}	DocumentListResponse
// @Failure		500	{object}	DocumentListResponse
// @Router			/v1/documents [get]
// @Param			docType		query	string	false	"Filter by document type"
// @Param			parseStatus	query	string	false	"Filter by parse status"
func GetDocuments(c *gin.Context) {
	var filter DocumentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	var documents []models.Document
	err := models.DB.
		Order("created_at DESC").
		Where(filter.model(), queryFields...).
		Find(&documents).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Document, 0)
	for _, document := range documents {
		data = append(data, newDocument(c, document))
	}

	c.JSON(http.StatusOK, DocumentListResponse{
		Data: data,
	})
}

// @Summary		Get document
// @Description	Returns a specific document
// @Tags			Documents
// @Produce		json
// @Success		200	{object}	DocumentResponse
// @Failure		400	{object}	DocumentResponse
// @Failure		404	{object}	DocumentResponse
// @Failure		500	{object}	DocumentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documents/{id} [get]
func GetDocument(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	var document models.Document
	err = models.DB.First(&document, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	data := newDocument(c, document)
	c.JSON(http.StatusOK, DocumentResponse{Data: &data})
}

// @Summary		Delete document
// @Description	Deletes a document and all items extracted from it
// @Tags			Documents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documents/{id} [delete]
func DeleteDocument(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var document models.Document
	err = models.DB.First(&document, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&document).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
