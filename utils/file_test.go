package utils

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name string
		file multipart.FileHeader
		want error
	}{
		{"png", multipart.FileHeader{Filename: "shirt.PNG", Size: 100}, nil},
		{"webp", multipart.FileHeader{Filename: "a.webp", Size: 100}, nil},
		{"too large", multipart.FileHeader{Filename: "a.jpg", Size: 2048}, ErrFileTooLarge},
		{"not an image", multipart.FileHeader{Filename: "a.pdf", Size: 100}, ErrInvalidFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateImage(&tt.file, 1024))
		})
	}
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "summer_dress-01", SafeFilename("../summer dress-01.jpg"))
	assert.Len(t, SafeFilename(strings.Repeat("a", 150)+".png"), 100)
}

func TestDataURLSniffsContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	assert.True(t, strings.HasPrefix(DataURL("", png), "data:image/png;base64,"))
	assert.True(t, strings.HasPrefix(DataURL("image/jpeg", []byte("x")), "data:image/jpeg;base64,"))
}
