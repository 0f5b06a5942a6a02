// -----------------------------------------------------------------------
// Document Store Interface - Resolve and download source documents
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/aperio/internal/models"
)

// DocumentStore abstracts the backing document storage. The production
// implementation talks to Google Drive; tests substitute an in-memory store.
type DocumentStore interface {
	// Resolve returns document metadata (name, MIME type, size) without
	// downloading content. Rejects non-PDF documents and documents over
	// the configured size cap.
	Resolve(ctx context.Context, fileID string) (*models.DocumentMeta, error)

	// Download returns the raw document bytes.
	Download(ctx context.Context, fileID string) ([]byte, error)

	// Fetch resolves and downloads in one call. The metadata checks run
	// before any content is transferred.
	Fetch(ctx context.Context, fileID string) (*models.DocumentMeta, []byte, error)
}
