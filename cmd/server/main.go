package main

import (
	"fmt"
	"log"

	"awaaz/internal/config"
	"awaaz/internal/extractor"
	"awaaz/internal/extractor/gemini"
	"awaaz/internal/extractor/heuristic"
	"awaaz/internal/extractor/vision"
	"awaaz/internal/handler"
	"awaaz/internal/port"
	"awaaz/internal/renderer/pdf"
	"awaaz/internal/repository/postgres"
	"awaaz/internal/router"
	"awaaz/internal/service"
	s3storage "awaaz/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	sessionRepo := postgres.NewSessionRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Register extractor providers and build the fallback chain
	extractor.RegisterProvider("gemini", func(pc *config.ProviderConfig) (port.SlotExtractor, error) {
		return gemini.New(pc), nil
	})
	extractor.RegisterProvider("heuristic", func(pc *config.ProviderConfig) (port.SlotExtractor, error) {
		return heuristic.New(), nil
	})

	chain, names, err := buildExtractorChain(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build extractor chain: %w", err)
	}
	slotExtractor := extractor.NewFallback(chain, names)

	visionExtractor := vision.New(&cfg.Vision)

	// Initialize services
	turnSvc := service.NewTurnService(slotExtractor, sessionRepo)
	documentSvc := service.NewDocumentService(visionExtractor)
	sessionSvc := service.NewSessionService(sessionRepo)
	renderSvc := service.NewRenderService(pdf.New(), sessionRepo, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	// Initialize handlers
	processH := handler.NewProcessHandler(turnSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	renderH := handler.NewRenderHandler(renderSvc)
	exportH := handler.NewExportHandler(sessionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, processH, documentH, sessionH, renderH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildExtractorChain resolves the configured primary and secondary providers.
// An unset or blank secondary leaves a single-provider chain.
func buildExtractorChain(cfg *config.ExtractorConfig) ([]port.SlotExtractor, []string, error) {
	var chain []port.SlotExtractor
	var names []string

	for _, pc := range []config.ProviderConfig{cfg.Primary, cfg.Secondary} {
		if pc.Provider == "" {
			continue
		}
		pc := pc
		ex, err := extractor.NewExtractor(&pc)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, ex)
		names = append(names, pc.Provider)
	}

	if len(chain) == 0 {
		return nil, nil, fmt.Errorf("no extractor providers configured")
	}
	return chain, names, nil
}
