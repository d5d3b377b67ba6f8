// pkg/utils/validation/file.go
package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit")
	ErrImageType    = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
	ErrDocumentType = errors.New("invalid file type. Allowed types: PDF")
	ErrFileRequired = errors.New("no file provided")
)

const (
	MaxImageSize    = 10 * 1024 * 1024 // 10MB
	MaxDocumentSize = 20 * 1024 * 1024 // 20MB
)

var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	if file.Size > MaxImageSize {
		return ErrFileSize
	}

	ext := filepath.Ext(strings.ToLower(file.Filename))
	if !AllowedImageTypes[ext] {
		return ErrImageType
	}

	return nil
}

// ValidateDocument checks brochure uploads.
func ValidateDocument(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	if file.Size > MaxDocumentSize {
		return ErrFileSize
	}

	if filepath.Ext(strings.ToLower(file.Filename)) != ".pdf" {
		return ErrDocumentType
	}

	return nil
}
