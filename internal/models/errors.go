package models

import "fmt"

// RawResponseLimit caps how many characters of raw model output a parse
// error carries back to the caller.
const RawResponseLimit = 1000

// InputError reports a caller mistake detected before any document or model
// I/O is performed.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates an input error with a formatted message.
func NewInputError(format string, args ...interface{}) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// ResolutionError reports a document the caller named but that cannot be
// used: not found, wrong type, or over the size cap.
type ResolutionError struct {
	FileID   string
	Message  string
	NotFound bool
	Err      error
}

func (e *ResolutionError) Error() string {
	return e.Message
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError creates a resolution error for the given file.
func NewResolutionError(fileID, message string, err error) *ResolutionError {
	return &ResolutionError{FileID: fileID, Message: message, Err: err}
}

// NewNotFoundError creates a resolution error for a resource that does not
// exist (missing file, page outside the document).
func NewNotFoundError(fileID, message string, err error) *ResolutionError {
	return &ResolutionError{FileID: fileID, Message: message, NotFound: true, Err: err}
}

// PageProcessError reports a per-page failure: rasterization produced no
// image, or the model call failed. In batch mode it becomes a PageError
// entry instead of aborting the run.
type PageProcessError struct {
	Page    int
	Message string
	Err     error
}

func (e *PageProcessError) Error() string {
	return e.Message
}

func (e *PageProcessError) Unwrap() error {
	return e.Err
}

// NewPageProcessError creates a page processing error.
func NewPageProcessError(page int, message string, err error) *PageProcessError {
	return &PageProcessError{Page: page, Message: message, Err: err}
}

// ParseError reports that the model replied but its output was not usable
// JSON. RawResponse holds at most RawResponseLimit characters of the
// original response text for diagnosis.
type ParseError struct {
	Detail      string
	RawResponse string
}

func (e *ParseError) Error() string {
	return "JSON parse error: " + e.Detail
}

// NewParseError creates a parse error, truncating raw to RawResponseLimit
// characters.
func NewParseError(detail, raw string) *ParseError {
	runes := []rune(raw)
	if len(runes) > RawResponseLimit {
		raw = string(runes[:RawResponseLimit])
	}
	return &ParseError{Detail: detail, RawResponse: raw}
}
