// -----------------------------------------------------------------------
// Application wiring - services and handlers behind the HTTP server
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/handlers"
	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/services/drive"
	"github.com/ternarybob/aperio/internal/services/extraction"
	"github.com/ternarybob/aperio/internal/services/llm"
	"github.com/ternarybob/aperio/internal/services/pdf"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Pipeline services
	DocumentStore     interfaces.DocumentStore
	PageCounter       interfaces.PageCounter
	PageRasterizer    interfaces.PageRasterizer
	VisionService     interfaces.VisionService
	ExtractionService interfaces.ExtractionService

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	PDFHandler     *handlers.PDFHandler
	AnalyzeHandler *handlers.AnalyzeHandler
}

// New initializes the application with all dependencies
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("provider", string(cfg.LLM.DefaultProvider)).
		Int("dpi", cfg.PDF.DPI).
		Msg("Application initialization complete")

	return app, nil
}

// initServices builds the extraction pipeline back to front: document
// store, PDF tooling, vision provider, then the orchestrating service.
func (a *App) initServices(ctx context.Context) error {
	store, err := drive.NewService(ctx, a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	a.DocumentStore = store

	a.PageCounter = pdf.NewCounter(a.Logger)
	a.PageRasterizer = pdf.NewRasterizer(a.Config, a.Logger)
	a.VisionService = llm.NewService(a.Config, a.Logger)

	a.ExtractionService = extraction.NewService(
		a.DocumentStore,
		a.PageCounter,
		a.PageRasterizer,
		a.VisionService,
		a.Config,
		a.Logger,
	)

	a.Logger.Debug().Msg("Services initialized")
	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config)
	a.PDFHandler = handlers.NewPDFHandler(a.ExtractionService, a.Logger)
	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.ExtractionService, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.VisionService != nil {
		if err := a.VisionService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close vision service")
		} else {
			a.Logger.Info().Msg("Vision service closed")
		}
	}

	return nil
}
