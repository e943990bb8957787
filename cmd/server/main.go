package main

import (
	"fmt"
	"log"

	"receiptscan/internal/config"
	"receiptscan/internal/domain"
	"receiptscan/internal/handler"
	"receiptscan/internal/llm/openai"
	"receiptscan/internal/port"
	"receiptscan/internal/router"
	"receiptscan/internal/scanner"
	s3storage "receiptscan/internal/storage/s3"
	"receiptscan/internal/textsource/textract"
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

	llmClient := openai.NewClient(&cfg.OpenAI)

	ocrClient, err := textract.NewClient(&cfg.Textract)
	if err != nil {
		return fmt.Errorf("failed to initialize textract client: %w", err)
	}

	var source port.TextSource
	if cfg.Textract.UseS3Staging {
		storage, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		source = textract.NewS3Upload(ocrClient, storage, cfg.S3.Bucket)
	} else {
		source = textract.NewTextract(ocrClient)
	}

	sc := scanner.New(scanner.EmbeddedTemplates{}, llmClient, domain.ModelName(cfg.OpenAI.DefaultModel))

	scanH := handler.NewScanHandler(sc, source, cfg.Scan.MaxFileSizeMB)
	healthH := handler.NewHealthHandler()

	r := router.Setup(scanH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
