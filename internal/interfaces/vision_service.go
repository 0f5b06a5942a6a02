// -----------------------------------------------------------------------
// Vision Service Interface - Analyze page images with a vision LLM
// -----------------------------------------------------------------------

package interfaces

import "context"

// VisionRequest is a single page-image analysis call.
type VisionRequest struct {
	// APIKey authenticates the model call. Resolved via ResolveKey before
	// any document I/O happens.
	APIKey string

	// Model optionally overrides the configured default. Provider is
	// detected from the model name prefix.
	Model string

	// Image is the rasterized page (PNG).
	Image []byte

	// PageNumber is informational, used for logging and prompt context.
	PageNumber int

	// Batch selects the shorter batch prompt variant.
	Batch bool
}

// VisionService sends page images to a vision-capable LLM and returns the
// raw response text. Exactly one attempt is made per call: failures are
// returned to the caller, never retried.
type VisionService interface {
	// ResolveKey resolves the API key for the provider implied by model:
	// request value first, then environment, then configuration.
	// Returns an InputError when no key can be found.
	ResolveKey(model, requestKey string) (string, error)

	// ModelID returns the concrete model identifier the given override
	// resolves to, for result metadata.
	ModelID(model string) string

	// AnalyzePage performs one model call and returns the raw text.
	AnalyzePage(ctx context.Context, req *VisionRequest) (string, error)

	// Close releases provider clients.
	Close() error
}
