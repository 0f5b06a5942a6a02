// -----------------------------------------------------------------------
// Page Rasterizer Interface - Render PDF pages to images
// -----------------------------------------------------------------------

package interfaces

import "context"

// PageRasterizer renders a single PDF page to a PNG image at the service's
// configured resolution.
type PageRasterizer interface {
	// RenderPage renders the given 1-indexed page to PNG bytes.
	// A page outside the document's range returns an error.
	RenderPage(ctx context.Context, pdf []byte, pageNumber int) ([]byte, error)
}
