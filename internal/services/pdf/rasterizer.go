// -----------------------------------------------------------------------
// PDF Rasterizer - single page PNG rendering via poppler pdftoppm
// -----------------------------------------------------------------------

package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/interfaces"
)

// Rasterizer renders single PDF pages to PNG by shelling out to poppler's
// pdftoppm. Scanned reports need a real renderer; 300 DPI keeps the page
// marker in the top right corner legible for the vision model.
type Rasterizer struct {
	runner Runner
	binary string
	dpi    int
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.PageRasterizer = (*Rasterizer)(nil)

// NewRasterizer creates a rasterizer using the configured pdftoppm binary.
func NewRasterizer(config *common.Config, logger arbor.ILogger) *Rasterizer {
	return &Rasterizer{
		runner: execRunner{logger: logger},
		binary: config.PDF.Pdftoppm,
		dpi:    config.PDF.DPI,
		logger: logger,
	}
}

// NewRasterizerWithRunner creates a rasterizer with a custom command
// runner. Tests use this to stub the external binary.
func NewRasterizerWithRunner(runner Runner, binary string, dpi int, logger arbor.ILogger) *Rasterizer {
	return &Rasterizer{
		runner: runner,
		binary: binary,
		dpi:    dpi,
		logger: logger,
	}
}

// RenderPage renders one page (1-indexed) of the PDF to a PNG image.
func (r *Rasterizer) RenderPage(ctx context.Context, pdf []byte, pageNumber int) ([]byte, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number %d out of range", pageNumber)
	}

	tmpDir, err := os.MkdirTemp("", "aperio-pp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "source.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	page := strconv.Itoa(pageNumber)

	// pdftoppm -r 300 -png -f N -l N <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.binary, "-r", strconv.Itoa(r.dpi), "-png", "-f", page, "-l", page, pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, truncate(string(errb), 512))
	}

	// pdftoppm zero-pads the page suffix based on document length, so
	// glob instead of guessing the exact name
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pages rendered")
	}

	png, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered page: %w", err)
	}

	r.logger.Debug().
		Int("page", pageNumber).
		Int("dpi", r.dpi).
		Int("png_bytes", len(png)).
		Msg("Rendered PDF page")

	return png, nil
}
