// -----------------------------------------------------------------------
// Extraction Service Interface - Scanned report extraction pipeline
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/aperio/internal/models"
)

// ExtractionService runs the resolve -> rasterize -> analyze -> normalize
// pipeline over scanned disclosure reports.
type ExtractionService interface {
	// PageCount resolves the document and returns its page count.
	PageCount(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error)

	// ConvertPage renders one page to a base64 PNG.
	ConvertPage(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error)

	// AnalyzePage extracts structured data from a single page.
	AnalyzePage(ctx context.Context, req *models.AnalyzeRequest) (*models.PageAnalysis, error)

	// AnalyzeDocument extracts a page range, isolating per-page failures:
	// every page in the range lands in exactly one of Results or Errors.
	AnalyzeDocument(ctx context.Context, req *models.BatchAnalyzeRequest) (*models.BatchAnalysis, error)
}
