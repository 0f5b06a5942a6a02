package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Request fields use pointers where the API distinguishes an absent field
// from an explicit zero: pageNumber defaults to 1 when omitted but an
// explicit 0 is rejected.

// PageCountRequest asks for the page count of a stored document.
type PageCountRequest struct {
	FileID string `json:"fileId" validate:"required"`
}

// ConvertRequest asks for one page rendered to a PNG image.
type ConvertRequest struct {
	FileID     string `json:"fileId" validate:"required"`
	PageNumber *int   `json:"pageNumber"`
}

// AnalyzeRequest asks for a single-page extraction.
type AnalyzeRequest struct {
	FileID       string `json:"fileId" validate:"required"`
	PageNumber   *int   `json:"pageNumber"`
	GeminiAPIKey string `json:"geminiApiKey"`
	Model        string `json:"model,omitempty"`
}

// BatchAnalyzeRequest asks for extraction over a page range. StartPage
// defaults to 1; EndPage defaults to the document's last page and is
// clamped to it.
type BatchAnalyzeRequest struct {
	FileID       string `json:"fileId" validate:"required"`
	GeminiAPIKey string `json:"geminiApiKey"`
	Model        string `json:"model,omitempty"`
	StartPage    *int   `json:"startPage"`
	EndPage      *int   `json:"endPage"`
}

var validate = validator.New()

// Validate checks required fields and returns an InputError carrying the
// exact message the API contract specifies.
func (r *PageCountRequest) Validate() error {
	return checkStruct(r)
}

// Validate checks required fields and the page number.
func (r *ConvertRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	return checkPageNumber(r.PageNumber)
}

// Validate checks required fields and the page number. The API key is
// resolved separately because it may come from the environment.
func (r *AnalyzeRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	return checkPageNumber(r.PageNumber)
}

// Page returns the requested page number, defaulting to 1.
func (r *AnalyzeRequest) Page() int {
	if r.PageNumber == nil {
		return 1
	}
	return *r.PageNumber
}

// Page returns the requested page number, defaulting to 1.
func (r *ConvertRequest) Page() int {
	if r.PageNumber == nil {
		return 1
	}
	return *r.PageNumber
}

// Validate checks required fields and that startPage, when present, is a
// positive integer.
func (r *BatchAnalyzeRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if r.StartPage != nil && *r.StartPage < 1 {
		return NewInputError("startPage must be a positive integer")
	}
	return nil
}

// Start returns the first page of the requested range, defaulting to 1.
func (r *BatchAnalyzeRequest) Start() int {
	if r.StartPage == nil {
		return 1
	}
	return *r.StartPage
}

// End returns the last page of the requested range clamped to totalPages.
// An absent endPage means the whole document.
func (r *BatchAnalyzeRequest) End(totalPages int) int {
	if r.EndPage == nil || *r.EndPage > totalPages {
		return totalPages
	}
	return *r.EndPage
}

func checkStruct(r interface{}) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "FileID":
			return NewInputError("fileId is required")
		}
	}
	return NewInputError("invalid request")
}

func checkPageNumber(page *int) error {
	if page != nil && *page < 1 {
		return NewInputError("pageNumber must be a positive integer")
	}
	return nil
}
