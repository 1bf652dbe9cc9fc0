package services

import (
	"context"
	"errors"
	"mime/multipart"

	"clothing-store/libs"
	"clothing-store/models"
	"clothing-store/utils"

	"github.com/sirupsen/logrus"
)

const uploadFolder = "clothing-store"

type UploadService struct {
	uploader libs.Uploader
	maxSize  int64
	log      logrus.FieldLogger
}

func NewUploadService(uploader libs.Uploader, maxSize int64, log logrus.FieldLogger) *UploadService {
	if uploader == nil {
		uploader = libs.DataURLUploader{}
	}
	return &UploadService{uploader: uploader, maxSize: maxSize, log: log.WithField("service", "upload")}
}

// Upload checks size and extension, then hands the file to the configured
// store. It returns the URL the image is served from.
func (s *UploadService) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", models.ErrValidation("No file uploaded", models.FieldError{Field: "file", Message: "file is required"})
	}
	if err := utils.ValidateImage(fileHeader, s.maxSize); err != nil {
		switch {
		case errors.Is(err, utils.ErrFileTooLarge):
			return "", models.ErrValidation("File too large", models.FieldError{Field: "file", Message: err.Error()})
		case errors.Is(err, utils.ErrInvalidFileType):
			return "", models.ErrValidation("Invalid file type", models.FieldError{Field: "file", Message: err.Error()})
		}
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", models.ErrValidation("Could not read uploaded file")
	}
	defer file.Close()

	url, err := s.uploader.Upload(ctx, file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), uploadFolder)
	if err != nil {
		s.log.WithError(err).WithField("filename", fileHeader.Filename).Error("Image upload failed")
		return "", models.ErrUpstream("Image upload failed", err)
	}
	return url, nil
}
