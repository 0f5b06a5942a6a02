package extraction

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// Service runs the page extraction pipeline: fetch the source PDF, count
// pages, rasterize the requested page and send it to the vision model,
// then normalize the response. It holds no state between requests.
type Service struct {
	store      interfaces.DocumentStore
	counter    interfaces.PageCounter
	rasterizer interfaces.PageRasterizer
	vision     interfaces.VisionService
	config     *common.Config
	logger     arbor.ILogger
}

// NewService creates a new extraction service
func NewService(
	store interfaces.DocumentStore,
	counter interfaces.PageCounter,
	rasterizer interfaces.PageRasterizer,
	vision interfaces.VisionService,
	config *common.Config,
	logger arbor.ILogger,
) *Service {
	return &Service{
		store:      store,
		counter:    counter,
		rasterizer: rasterizer,
		vision:     vision,
		config:     config,
		logger:     logger,
	}
}

var _ interfaces.ExtractionService = (*Service)(nil)

func encodeImage(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}

// PageCount resolves the document and reports how many pages it has.
func (s *Service) PageCount(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error) {
	meta, pdf, err := s.store.Fetch(ctx, req.FileID)
	if err != nil {
		return nil, err
	}

	total, err := s.counter.PageCount(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	s.logger.Info().
		Str("file_id", req.FileID).
		Str("file_name", meta.Name).
		Int("pages", total).
		Msg("Counted document pages")

	return &models.PageCountResult{PageCount: total, FileName: meta.Name}, nil
}

// ConvertPage resolves the document and renders a single page to PNG.
// The page range is not pre-checked here: a page outside the document
// surfaces as a not-found error from the renderer.
func (s *Service) ConvertPage(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
	meta, pdf, err := s.store.Fetch(ctx, req.FileID)
	if err != nil {
		return nil, err
	}

	page := req.Page()
	png, err := s.rasterizer.RenderPage(ctx, pdf, page)
	if err != nil {
		s.logger.Warn().
			Str("file_id", req.FileID).
			Int("page", page).
			Err(err).
			Msg("Page render failed")
		return nil, models.NewNotFoundError(req.FileID, fmt.Sprintf("Page %d not found in PDF", page), err)
	}

	return &models.PageImage{
		Base64Image: encodeImage(png),
		MimeType:    "image/png",
		PageNumber:  page,
		FileName:    meta.Name,
	}, nil
}

// AnalyzePage runs the full pipeline for one page: resolve the API key,
// fetch the document, verify the page exists, render it and ask the
// vision model for structured data.
func (s *Service) AnalyzePage(ctx context.Context, req *models.AnalyzeRequest) (*models.PageAnalysis, error) {
	key, err := s.vision.ResolveKey(req.Model, req.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	meta, pdf, err := s.store.Fetch(ctx, req.FileID)
	if err != nil {
		return nil, err
	}

	total, err := s.counter.PageCount(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	page := req.Page()
	if page > total {
		return nil, models.NewInputError("Page %d exceeds total pages (%d)", page, total)
	}

	png, err := s.rasterizer.RenderPage(ctx, pdf, page)
	if err != nil {
		return nil, models.NewPageProcessError(page, fmt.Sprintf("Failed to convert page %d", page), err)
	}

	text, err := s.vision.AnalyzePage(ctx, &interfaces.VisionRequest{
		APIKey:     key,
		Model:      req.Model,
		Image:      png,
		PageNumber: page,
	})
	if err != nil {
		return nil, models.NewPageProcessError(page, err.Error(), err)
	}

	payload, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("file_id", req.FileID).
		Int("page", page).
		Int("total_pages", total).
		Msg("Page analyzed")

	return Normalize(payload, models.AnalysisMetadata{
		SourceFile: meta.Name,
		FileID:     req.FileID,
		PageNumber: page,
		TotalPages: total,
		Model:      s.vision.ModelID(req.Model),
		DPI:        s.config.PDF.DPI,
	}), nil
}
