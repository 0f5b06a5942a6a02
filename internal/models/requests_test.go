package models

import (
	"errors"
	"testing"
)

func assertInputError(t *testing.T, err error, message string) {
	t.Helper()
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %T: %v", err, err)
	}
	if inputErr.Error() != message {
		t.Errorf("message = %q, want %q", inputErr.Error(), message)
	}
}

func TestPageCountRequestValidate(t *testing.T) {
	if err := (&PageCountRequest{FileID: "abc"}).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := (&PageCountRequest{}).Validate()
	assertInputError(t, err, "fileId is required")
}

func TestAnalyzeRequestValidate(t *testing.T) {
	page := func(v int) *int { return &v }

	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantMsg string
	}{
		{"missing fileId", AnalyzeRequest{}, "fileId is required"},
		{"zero page", AnalyzeRequest{FileID: "abc", PageNumber: page(0)}, "pageNumber must be a positive integer"},
		{"negative page", AnalyzeRequest{FileID: "abc", PageNumber: page(-3)}, "pageNumber must be a positive integer"},
		{"valid", AnalyzeRequest{FileID: "abc", PageNumber: page(2)}, ""},
		{"absent page is valid", AnalyzeRequest{FileID: "abc"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertInputError(t, err, tt.wantMsg)
		})
	}
}

func TestAnalyzeRequestPageDefault(t *testing.T) {
	req := &AnalyzeRequest{FileID: "abc"}
	if req.Page() != 1 {
		t.Errorf("Page() = %d, want 1 when absent", req.Page())
	}

	three := 3
	req.PageNumber = &three
	if req.Page() != 3 {
		t.Errorf("Page() = %d, want 3", req.Page())
	}
}

func TestBatchAnalyzeRequestValidate(t *testing.T) {
	page := func(v int) *int { return &v }

	if err := (&BatchAnalyzeRequest{FileID: "abc"}).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := (&BatchAnalyzeRequest{FileID: "abc", StartPage: page(0)}).Validate()
	assertInputError(t, err, "startPage must be a positive integer")

	err = (&BatchAnalyzeRequest{}).Validate()
	assertInputError(t, err, "fileId is required")
}

func TestBatchAnalyzeRequestRange(t *testing.T) {
	page := func(v int) *int { return &v }

	tests := []struct {
		name      string
		req       BatchAnalyzeRequest
		total     int
		wantStart int
		wantEnd   int
	}{
		{"defaults cover whole document", BatchAnalyzeRequest{}, 7, 1, 7},
		{"explicit range", BatchAnalyzeRequest{StartPage: page(2), EndPage: page(5)}, 7, 2, 5},
		{"end clamped to total", BatchAnalyzeRequest{EndPage: page(99)}, 7, 1, 7},
		{"start beyond total left alone", BatchAnalyzeRequest{StartPage: page(10)}, 7, 10, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Start(); got != tt.wantStart {
				t.Errorf("Start() = %d, want %d", got, tt.wantStart)
			}
			if got := tt.req.End(tt.total); got != tt.wantEnd {
				t.Errorf("End(%d) = %d, want %d", tt.total, got, tt.wantEnd)
			}
		})
	}
}

func TestParseErrorTruncation(t *testing.T) {
	long := make([]byte, 0, 4000)
	for i := 0; i < 2000; i++ {
		long = append(long, 'x')
	}

	err := NewParseError("unexpected end of JSON input", string(long))
	if got := len([]rune(err.RawResponse)); got != RawResponseLimit {
		t.Errorf("raw response length = %d, want %d", got, RawResponseLimit)
	}
	if err.Error() != "JSON parse error: unexpected end of JSON input" {
		t.Errorf("unexpected error string: %q", err.Error())
	}
}
