package interfaces

import "context"

// PageCounter reports how many pages a PDF contains.
type PageCounter interface {
	// PageCount parses the document and returns its page count.
	// Corrupt or non-PDF bytes return an error.
	PageCount(ctx context.Context, pdf []byte) (int, error)
}
