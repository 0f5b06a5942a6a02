package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// AnalyzeHandler handles extraction requests for single pages and whole
// documents.
type AnalyzeHandler struct {
	service interfaces.ExtractionService
	logger  arbor.ILogger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service interfaces.ExtractionService, logger arbor.ILogger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeHandler handles POST /analyze requests
func (h *AnalyzeHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalyzeRequest
	if !DecodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().
		Str("file_id", req.FileID).
		Int("page", req.Page()).
		Msg("Processing analyze request")

	analysis, err := h.service.AnalyzePage(r.Context(), &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("file_id", req.FileID).
			Int("page", req.Page()).
			Msg("Page analysis failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, analysis)
}

// AnalyzeFullHandler handles POST /analyze-full requests
func (h *AnalyzeHandler) AnalyzeFullHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.BatchAnalyzeRequest
	if !DecodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().
		Str("file_id", req.FileID).
		Msg("Processing full document analysis request")

	batch, err := h.service.AnalyzeDocument(r.Context(), &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("file_id", req.FileID).
			Msg("Document analysis failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, batch)
}
