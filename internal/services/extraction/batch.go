package extraction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// pageOutcome carries one page through a batch run. Exactly one of result
// and pageErr is set.
type pageOutcome struct {
	result  *models.PageResult
	pageErr *models.PageError
}

// AnalyzeDocument runs page analysis over a page range. Pages fail
// independently: a failed page records an error entry and the run keeps
// going. Every page in the range lands in exactly one of the results or
// errors lists, both ordered by page number.
func (s *Service) AnalyzeDocument(ctx context.Context, req *models.BatchAnalyzeRequest) (*models.BatchAnalysis, error) {
	batchLogger := s.logger.WithCorrelationId(common.NewBatchID())

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

	start := req.Start()
	end := req.End(total)

	batchLogger.Info().
		Str("file_id", req.FileID).
		Str("file_name", meta.Name).
		Int("start_page", start).
		Int("end_page", end).
		Int("total_pages", total).
		Msg("Starting document analysis")

	outcomes := s.analyzeRange(ctx, batchLogger, pdf, meta, req, key, start, end, total)

	results := []models.PageResult{}
	pageErrors := []models.PageError{}
	for _, outcome := range outcomes {
		if outcome.result != nil {
			results = append(results, *outcome.result)
		} else if outcome.pageErr != nil {
			pageErrors = append(pageErrors, *outcome.pageErr)
		}
	}

	batchLogger.Info().
		Str("file_id", req.FileID).
		Int("processed", len(results)).
		Int("failed", len(pageErrors)).
		Msg("Document analysis complete")

	return &models.BatchAnalysis{
		Success: true,
		Metadata: models.BatchMetadata{
			SourceFile:     meta.Name,
			FileID:         req.FileID,
			TotalPages:     total,
			ProcessedPages: len(results),
			ErrorPages:     len(pageErrors),
			ProcessedAt:    time.Now().UTC().Format(time.RFC3339),
			Model:          s.vision.ModelID(req.Model),
		},
		Results: results,
		Errors:  pageErrors,
	}, nil
}

// analyzeRange processes pages start..end into a slice indexed by page
// offset, so output order never depends on worker scheduling. Each worker
// writes only its own slot.
func (s *Service) analyzeRange(ctx context.Context, logger arbor.ILogger, pdf []byte, meta *models.DocumentMeta, req *models.BatchAnalyzeRequest, key string, start, end, total int) []pageOutcome {
	if end < start {
		return nil
	}

	outcomes := make([]pageOutcome, end-start+1)

	workers := s.config.Batch.Workers
	if workers <= 1 {
		for i := range outcomes {
			outcomes[i] = s.analyzeOne(ctx, logger, pdf, meta, req, key, start+i, total)
		}
		return outcomes
	}

	var wg sync.WaitGroup

	// Semaphore for concurrency control
	sem := make(chan struct{}, workers)

	for i := range outcomes {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			outcomes[idx] = s.analyzeOne(ctx, logger, pdf, meta, req, key, start+idx, total)
		}(i)
	}

	wg.Wait()
	return outcomes
}

// analyzeOne renders and analyzes a single page. Failures, including
// panics, become a page error entry rather than aborting the batch.
func (s *Service) analyzeOne(ctx context.Context, logger arbor.ILogger, pdf []byte, meta *models.DocumentMeta, req *models.BatchAnalyzeRequest, key string, page, total int) (outcome pageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Int("page", page).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", common.GetStackTrace()).
				Msg("Page analysis panicked")
			outcome = pageOutcome{pageErr: &models.PageError{Page: page, Error: fmt.Sprintf("panic: %v", r)}}
		}
	}()

	png, err := s.rasterizer.RenderPage(ctx, pdf, page)
	if err != nil {
		logger.Warn().Int("page", page).Err(err).Msg("Page render failed")
		return pageOutcome{pageErr: &models.PageError{Page: page, Error: "Failed to convert to image"}}
	}

	text, err := s.vision.AnalyzePage(ctx, &interfaces.VisionRequest{
		APIKey:     key,
		Model:      req.Model,
		Image:      png,
		PageNumber: page,
		Batch:      true,
	})
	if err != nil {
		logger.Warn().Int("page", page).Err(err).Msg("Vision call failed")
		return pageOutcome{pageErr: &models.PageError{Page: page, Error: err.Error()}}
	}

	payload, err := ExtractJSON(text)
	if err != nil {
		var parseErr *models.ParseError
		if errors.As(err, &parseErr) {
			return pageOutcome{pageErr: &models.PageError{
				Page:  page,
				Error: fmt.Sprintf("%s; raw response: %s", parseErr.Error(), parseErr.RawResponse),
			}}
		}
		return pageOutcome{pageErr: &models.PageError{Page: page, Error: err.Error()}}
	}

	analysis := Normalize(payload, models.AnalysisMetadata{
		SourceFile: meta.Name,
		FileID:     req.FileID,
		PageNumber: page,
		TotalPages: total,
		Model:      s.vision.ModelID(req.Model),
		DPI:        s.config.PDF.DPI,
	})

	return pageOutcome{result: &models.PageResult{
		PageNumber: page,
		PageType:   analysis.Metadata.PageType,
		Data:       analysis,
	}}
}
