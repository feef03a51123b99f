package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"screenguard/internal/config"
	"screenguard/internal/extract"
	"screenguard/internal/handler"
	"screenguard/internal/ocr"
	"screenguard/internal/phishing"
	"screenguard/internal/router"
	"screenguard/internal/service"
	"screenguard/internal/spam"
	"screenguard/internal/storage/local"
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

	store, err := local.NewStore(cfg.Temp.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize temp storage: %w", err)
	}

	// Initialize pipeline stages
	ocrExtractor := ocr.NewExtractor(cfg.OCR)
	recordExtractor := extract.NewExtractor(&cfg.LLM)
	spamClient := spam.NewClient(&cfg.Spam)
	phishingChecker := phishing.NewStubChecker()

	// Validate the LLM credential before serving any traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := recordExtractor.ValidateCredentials(ctx); err != nil {
		return fmt.Errorf("failed to validate LLM credentials: %w", err)
	}

	pipelineSvc := service.NewPipelineService(ocrExtractor, recordExtractor, spamClient, phishingChecker)

	// Initialize handlers
	statusH := handler.NewStatusHandler()
	screenshotH := handler.NewScreenshotHandler(pipelineSvc, store)

	// Setup router
	r := router.Setup(statusH, screenshotH)

	if cfg.Spam.Endpoint == "" {
		log.Printf("spam classifier endpoint not configured; spam dispatch will degrade per request")
	}
	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
