package main

import (
	"fmt"
	"log"

	"teklio/internal/config"
	"teklio/internal/extract"
	"teklio/internal/handler"
	"teklio/internal/parser"
	"teklio/internal/parser/openai"
	"teklio/internal/port"
	"teklio/internal/repository/postgres"
	"teklio/internal/resolver"
	"teklio/internal/router"
	"teklio/internal/service"
	s3storage "teklio/internal/storage/s3"
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

	// The scanned-PDF fallback needs pdftoppm on PATH. Warn-only: text
	// extraction still works without it.
	if err := extract.EnsureRenderer(); err != nil {
		log.Printf("pdf rasterizer unavailable, scanned PDFs will fail: %v", err)
	}

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	proposalRepo := postgres.NewProposalRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize storage (archival disabled without a bucket)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	chatClient := openai.NewClient(&cfg.Parser)
	if !chatClient.Configured() {
		log.Printf("no parser api key configured; AI-required imports will be rejected")
	}
	parserSvc := parser.New(chatClient)
	importSvc := service.NewImportService(parserSvc, storage, cfg.S3.Bucket, cfg.Import.RasterDPI)
	proposalSvc := service.NewProposalService(companyRepo, contactRepo, proposalRepo, auditRepo, cfg.Import.DuplicateWindow)
	entityResolver := resolver.New(companyRepo, contactRepo)

	// Initialize handlers
	importH := handler.NewImportHandler(importSvc, cfg.Import.MaxFileSizeMB)
	resolveH := handler.NewResolveHandler(entityResolver)
	proposalH := handler.NewProposalHandler(proposalSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(importH, resolveH, proposalH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
