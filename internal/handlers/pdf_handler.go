package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// PDFHandler handles document inspection requests: page counts and
// page-to-image conversion.
type PDFHandler struct {
	service interfaces.ExtractionService
	logger  arbor.ILogger
}

// NewPDFHandler creates a new PDF handler
func NewPDFHandler(service interfaces.ExtractionService, logger arbor.ILogger) *PDFHandler {
	return &PDFHandler{
		service: service,
		logger:  logger,
	}
}

// PageCountHandler handles POST /page-count requests
func (h *PDFHandler) PageCountHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.PageCountRequest
	if !DecodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		WriteServiceError(w, err)
		return
	}

	result, err := h.service.PageCount(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Str("file_id", req.FileID).Msg("Page count failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"pageCount": result.PageCount,
		"fileName":  result.FileName,
	})
}

// ConvertHandler handles POST /convert requests
func (h *PDFHandler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ConvertRequest
	if !DecodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		WriteServiceError(w, err)
		return
	}

	image, err := h.service.ConvertPage(r.Context(), &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("file_id", req.FileID).
			Int("page", req.Page()).
			Msg("Page conversion failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"base64Image": image.Base64Image,
		"mimeType":    image.MimeType,
		"pageNumber":  image.PageNumber,
		"fileName":    image.FileName,
	})
}
