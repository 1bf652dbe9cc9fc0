package controllers

import (
	"net/http"

	"clothing-store/models"
	"clothing-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UploadController struct {
	uploads *services.UploadService
	maxSize int64
	log     logrus.FieldLogger
}

func NewUploadController(uploads *services.UploadService, maxSize int64, log logrus.FieldLogger) *UploadController {
	return &UploadController{uploads: uploads, maxSize: maxSize, log: log}
}

// @Summary Upload an image
// @Description Stores the image in object storage when configured, otherwise returns it as a base64 data URL.
// @Tags Upload
// @Security ApiKeyAuth
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader, err = c.FormFile("image")
	}
	if err != nil {
		respondError(c, ctrl.log, models.ErrValidation("No file uploaded", models.FieldError{Field: "file", Message: "file is required"}))
		return
	}

	url, err := ctrl.uploads.Upload(c.Request.Context(), fileHeader)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "File uploaded", gin.H{"url": url})
}
