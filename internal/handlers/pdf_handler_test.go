package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/models"
)

// mockExtractionService implements interfaces.ExtractionService for testing
type mockExtractionService struct {
	pageCountFunc  func(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error)
	convertFunc    func(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error)
	analyzeFunc    func(ctx context.Context, req *models.AnalyzeRequest) (*models.PageAnalysis, error)
	analyzeDocFunc func(ctx context.Context, req *models.BatchAnalyzeRequest) (*models.BatchAnalysis, error)
}

func (m *mockExtractionService) PageCount(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error) {
	if m.pageCountFunc != nil {
		return m.pageCountFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockExtractionService) ConvertPage(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
	if m.convertFunc != nil {
		return m.convertFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockExtractionService) AnalyzePage(ctx context.Context, req *models.AnalyzeRequest) (*models.PageAnalysis, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockExtractionService) AnalyzeDocument(ctx context.Context, req *models.BatchAnalyzeRequest) (*models.BatchAnalysis, error) {
	if m.analyzeDocFunc != nil {
		return m.analyzeDocFunc(ctx, req)
	}
	return nil, nil
}

// Helper to POST a JSON body to a handler func
func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestPageCountHandler_Success(t *testing.T) {
	mockService := &mockExtractionService{
		pageCountFunc: func(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error) {
			return &models.PageCountResult{PageCount: 12, FileName: "report.pdf"}, nil
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.PageCountHandler, "/page-count", `{"fileId": "abc123"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["success"] != true {
		t.Errorf("Expected success true, got %v", response["success"])
	}
	if int(response["pageCount"].(float64)) != 12 {
		t.Errorf("Expected pageCount 12, got %v", response["pageCount"])
	}
	if response["fileName"] != "report.pdf" {
		t.Errorf("Expected fileName 'report.pdf', got %v", response["fileName"])
	}
}

func TestPageCountHandler_MissingFileID(t *testing.T) {
	handler := NewPDFHandler(&mockExtractionService{}, common.GetLogger())
	rec := postJSON(handler.PageCountHandler, "/page-count", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "fileId is required" {
		t.Errorf("Expected error 'fileId is required', got %v", response["error"])
	}
}

func TestPageCountHandler_EmptyBody(t *testing.T) {
	handler := NewPDFHandler(&mockExtractionService{}, common.GetLogger())
	rec := postJSON(handler.PageCountHandler, "/page-count", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "Request body is required" {
		t.Errorf("Expected error 'Request body is required', got %v", response["error"])
	}
}

func TestPageCountHandler_FileNotFound(t *testing.T) {
	mockService := &mockExtractionService{
		pageCountFunc: func(ctx context.Context, req *models.PageCountRequest) (*models.PageCountResult, error) {
			return nil, models.NewNotFoundError(req.FileID, "File not found: "+req.FileID, nil)
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.PageCountHandler, "/page-count", `{"fileId": "missing"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "File not found: missing" {
		t.Errorf("Expected not-found error, got %v", response["error"])
	}
}

func TestPageCountHandler_MethodNotAllowed(t *testing.T) {
	handler := NewPDFHandler(&mockExtractionService{}, common.GetLogger())
	req := httptest.NewRequest("GET", "/page-count", nil)
	rec := httptest.NewRecorder()

	handler.PageCountHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestConvertHandler_Success(t *testing.T) {
	var capturedPage int
	mockService := &mockExtractionService{
		convertFunc: func(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
			capturedPage = req.Page()
			return &models.PageImage{
				Base64Image: "aW1hZ2VieXRlcw==",
				MimeType:    "image/png",
				PageNumber:  req.Page(),
				FileName:    "report.pdf",
			}, nil
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.ConvertHandler, "/convert", `{"fileId": "abc123", "pageNumber": 3}`)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if capturedPage != 3 {
		t.Errorf("Expected page 3 passed to service, got %d", capturedPage)
	}

	response := decodeResponse(t, rec)
	if response["success"] != true {
		t.Errorf("Expected success true, got %v", response["success"])
	}
	if response["base64Image"] != "aW1hZ2VieXRlcw==" {
		t.Errorf("Expected image payload, got %v", response["base64Image"])
	}
	if response["mimeType"] != "image/png" {
		t.Errorf("Expected mimeType 'image/png', got %v", response["mimeType"])
	}
	if int(response["pageNumber"].(float64)) != 3 {
		t.Errorf("Expected pageNumber 3, got %v", response["pageNumber"])
	}
}

func TestConvertHandler_DefaultsToPageOne(t *testing.T) {
	var capturedPage int
	mockService := &mockExtractionService{
		convertFunc: func(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
			capturedPage = req.Page()
			return &models.PageImage{Base64Image: "eA==", MimeType: "image/png", PageNumber: 1}, nil
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.ConvertHandler, "/convert", `{"fileId": "abc123"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if capturedPage != 1 {
		t.Errorf("Expected default page 1, got %d", capturedPage)
	}
}

func TestConvertHandler_InvalidPageNumber(t *testing.T) {
	handler := NewPDFHandler(&mockExtractionService{}, common.GetLogger())
	rec := postJSON(handler.ConvertHandler, "/convert", `{"fileId": "abc123", "pageNumber": 0}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "pageNumber must be a positive integer" {
		t.Errorf("Expected page number error, got %v", response["error"])
	}
}

func TestConvertHandler_PageNotFound(t *testing.T) {
	mockService := &mockExtractionService{
		convertFunc: func(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
			return nil, models.NewNotFoundError(req.FileID, "Page 9 not found in PDF", nil)
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.ConvertHandler, "/convert", `{"fileId": "abc123", "pageNumber": 9}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "Page 9 not found in PDF" {
		t.Errorf("Expected page not found error, got %v", response["error"])
	}
}

func TestConvertHandler_WrongMimeType(t *testing.T) {
	mockService := &mockExtractionService{
		convertFunc: func(ctx context.Context, req *models.ConvertRequest) (*models.PageImage, error) {
			return nil, models.NewResolutionError(req.FileID, "File is not a PDF. MimeType: image/png", nil)
		},
	}

	handler := NewPDFHandler(mockService, common.GetLogger())
	rec := postJSON(handler.ConvertHandler, "/convert", `{"fileId": "abc123"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["error"] != "File is not a PDF. MimeType: image/png" {
		t.Errorf("Expected MIME type error, got %v", response["error"])
	}
}
