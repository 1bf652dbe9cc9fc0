package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"clothing-store/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores an image and returns the URL it can be served from.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType, folder string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader prefers the separate credentials and falls back to
// CLOUDINARY_URL.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, cloudinaryURL string) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename, _ string, folder string) (string, error) {
	publicID := fmt.Sprintf("%d_%s", time.Now().UnixNano(), utils.SafeFilename(filename))

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp == nil {
		return "", errors.New("cloudinary response is nil")
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", errors.New("cloudinary returned no URL")
}

// DataURLUploader keeps nothing server side; the image travels inline.
type DataURLUploader struct{}

func (DataURLUploader) Upload(_ context.Context, file io.Reader, _, contentType, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return utils.DataURL(contentType, data), nil
}
