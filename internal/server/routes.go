package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Document inspection
	mux.HandleFunc("/page-count", s.app.PDFHandler.PageCountHandler)
	mux.HandleFunc("/convert", s.app.PDFHandler.ConvertHandler)

	// Extraction
	mux.HandleFunc("/analyze", s.app.AnalyzeHandler.AnalyzeHandler)
	mux.HandleFunc("/analyze-full", s.app.AnalyzeHandler.AnalyzeFullHandler)

	// System
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/shutdown", s.ShutdownHandler) // Graceful shutdown endpoint (dev mode)

	// 404 handler for everything else
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
