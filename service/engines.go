package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Aashish23092/ocr-document-verifier/client"
	"github.com/Aashish23092/ocr-document-verifier/config"
	"github.com/Aashish23092/ocr-document-verifier/repository"
)

// NewRecognizers returns the OCR engine selected by cfg.OCREngine and the
// engine to fall back to. Tesseract is the last resort and has no fallback.
func NewRecognizers(cfg *config.Config) (primary, fallback LineRecognizer) {
	tesseract := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)

	if cfg.OCREngine == config.EnginePaddle {
		log.Println("Using PaddleOCR with Tesseract fallback")
		return client.NewPaddleClient(cfg.PaddleAPIURL), tesseract
	}

	log.Println("Using Tesseract OCR")
	return tesseract, nil
}

// OpenVerification connects the identity registry named by cfg, creates its
// table and loads the seed file when one is set. It returns a nil service and
// a no-op close when cfg.RegistryDriver is empty.
func OpenVerification(ctx context.Context, cfg *config.Config, metrics *Metrics) (*VerificationService, func() error, error) {
	noop := func() error { return nil }
	if cfg.RegistryDriver == "" {
		log.Println("Identity registry not configured, verification disabled")
		return nil, noop, nil
	}

	db, err := repository.Open(ctx, cfg.RegistryDriver, cfg.RegistryDSN)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open identity registry: %w", err)
	}

	registry := repository.NewIdentityRegistry(db, cfg.RegistryDriver)
	if err := registry.Migrate(ctx); err != nil {
		db.Close()
		return nil, noop, err
	}
	if cfg.RegistrySeedFile != "" {
		ids, err := repository.LoadSeedFile(cfg.RegistrySeedFile)
		if err == nil {
			err = registry.Seed(ctx, ids)
		}
		if err != nil {
			db.Close()
			return nil, noop, err
		}
	}

	log.Printf("Identity registry ready (driver=%s)", cfg.RegistryDriver)
	return NewVerificationService(registry, metrics), db.Close, nil
}
