package dto

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidFileType = errors.New("invalid file type. Supported: PDF, PNG, JPG, GIF, BMP, WEBP")
)

// SupportedExtensions lists the upload extensions accepted by the extract endpoint
var SupportedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// DocumentExtractRequest represents an upload to POST /api/v1/documents/extract
type DocumentExtractRequest struct {
	File     *multipart.FileHeader `form:"file"`
	Password string                `form:"password"`
}

// Validate performs basic validation on the request
func (r *DocumentExtractRequest) Validate() error {
	if r.File == nil {
		return ErrFileRequired
	}
	if !HasSupportedExtension(r.File.Filename) {
		return ErrInvalidFileType
	}
	return nil
}

// HasSupportedExtension reports whether filename ends with one of SupportedExtensions
func HasSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range SupportedExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
