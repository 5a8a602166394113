package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/ocr-document-verifier/dto"
	"github.com/Aashish23092/ocr-document-verifier/service"
)

// DocumentExtractor is the service contract the handler depends on
type DocumentExtractor interface {
	ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.FieldRecord, error)
}

// DocumentVerifier checks an extracted record against the identity registry
type DocumentVerifier interface {
	Verify(ctx context.Context, rec *dto.FieldRecord) (*dto.VerificationResult, error)
}

// DocumentHandler handles document extraction and verification requests
type DocumentHandler struct {
	documentService DocumentExtractor
	verifier        DocumentVerifier
	maxFileSize     int64
}

// NewDocumentHandler builds the handler. verifier may be nil when no
// identity registry is configured; the verify route then answers 503.
func NewDocumentHandler(documentService DocumentExtractor, verifier DocumentVerifier, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		verifier:        verifier,
		maxFileSize:     maxFileSize,
	}
}

// ExtractDocument handles POST /api/v1/documents/extract
func (h *DocumentHandler) ExtractDocument(c *gin.Context) {
	rec, ok := h.extract(c)
	if !ok {
		return
	}

	log.Printf("Document extraction completed: %s", rec.DocumentType())
	c.PureJSON(http.StatusOK, rec)
}

// VerifyDocument handles POST /api/v1/documents/verify
func (h *DocumentHandler) VerifyDocument(c *gin.Context) {
	if h.verifier == nil {
		h.sendError(c, http.StatusServiceUnavailable, "VERIFICATION_DISABLED", "Identity registry is not configured", nil)
		return
	}

	rec, ok := h.extract(c)
	if !ok {
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), rec)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "VERIFICATION_FAILED", "Failed to verify document", err)
		return
	}

	log.Printf("Document verification completed: %s (valid=%t)", rec.DocumentType(), result.Valid)
	c.PureJSON(http.StatusOK, dto.VerifyResponse{Record: rec, Verification: result})
}

// extract binds the upload and runs the extraction service. On failure the
// error response has already been written.
func (h *DocumentHandler) extract(c *gin.Context) (*dto.FieldRecord, bool) {
	var req dto.DocumentExtractRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed multipart form", err)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return nil, false
	}

	file := req.File
	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the maximum upload size", nil)
		return nil, false
	}

	log.Printf("Processing document: %s (%d bytes)", file.Filename, file.Size)

	reader, err := file.Open()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "DOCUMENT_EXTRACTION_FAILED", "Failed to open uploaded file", err)
		return nil, false
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "DOCUMENT_EXTRACTION_FAILED", "Failed to read file data", err)
		return nil, false
	}

	rec, err := h.documentService.ExtractFromFile(c.Request.Context(), fileData, file.Filename, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFile), errors.Is(err, service.ErrUnsupportedFile):
			h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid file. Supported: PDF, PNG, JPEG, GIF, BMP, WEBP", err)
		case errors.Is(err, service.ErrPDFDecrypt):
			h.sendError(c, http.StatusUnprocessableEntity, "PDF_DECRYPT_FAILED", "Failed to decrypt PDF. Check password.", err)
		case errors.Is(err, service.ErrNoImageInPDF):
			h.sendError(c, http.StatusUnprocessableEntity, "NO_IMAGE_IN_PDF", "PDF has no text layer or image to read", err)
		default:
			h.sendError(c, http.StatusInternalServerError, "DOCUMENT_EXTRACTION_FAILED", "Failed to extract document", err)
		}
		return nil, false
	}
	return rec, true
}

// sendError sends a structured error response
func (h *DocumentHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:     code,
		Message:   message,
		Code:      statusCode,
		RequestID: c.GetString(RequestIDKey),
	})
}
