// -----------------------------------------------------------------------
// PDF Page Counter - document page counts via pdfcpu
// -----------------------------------------------------------------------

package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/interfaces"
)

// Counter reports page counts using pdfcpu. pdfcpu reads from a file on
// disk, so the document bytes go through a per-call temp file.
type Counter struct {
	logger  arbor.ILogger
	tempDir string
}

// Compile-time interface assertion
var _ interfaces.PageCounter = (*Counter)(nil)

// NewCounter creates a new page counter service
func NewCounter(logger arbor.ILogger) *Counter {
	tempDir := filepath.Join(os.TempDir(), "aperio-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Counter{
		logger:  logger,
		tempDir: tempDir,
	}
}

// PageCount returns the number of pages in the given PDF bytes.
func (c *Counter) PageCount(ctx context.Context, pdf []byte) (int, error) {
	tempFile, err := os.CreateTemp(c.tempDir, "count-*.pdf")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp PDF file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdf); err != nil {
		tempFile.Close()
		return 0, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	tempFile.Close()

	pdfCtx, err := api.ReadContextFile(tempFile.Name())
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}

	c.logger.Debug().
		Int("page_count", pdfCtx.PageCount).
		Int("size_bytes", len(pdf)).
		Msg("Read PDF page count")

	return pdfCtx.PageCount, nil
}
