package main

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aashish23092/ocr-document-verifier/config"
	"github.com/Aashish23092/ocr-document-verifier/handler"
	"github.com/Aashish23092/ocr-document-verifier/service"
	"github.com/Aashish23092/ocr-document-verifier/telemetry"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)

	shutdown, err := telemetry.Init(context.Background(), cfg.OtelEnabled, cfg.OtelServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}
	promMiddleware, err := handler.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("Failed to register HTTP metrics: %v", err)
	}

	// Initialize service layer
	primary, fallback := service.NewRecognizers(cfg)
	documentService := service.NewDocumentService(cfg, primary, fallback, service.NewPDFProcessor(), metrics)

	verificationService, closeRegistry, err := service.OpenVerification(context.Background(), cfg, metrics)
	if err != nil {
		log.Fatalf("Failed to initialize identity registry: %v", err)
	}
	defer closeRegistry()

	var verifier handler.DocumentVerifier
	if verificationService != nil {
		verifier = verificationService
	}

	// Initialize handler layer
	documentHandler := handler.NewDocumentHandler(documentService, verifier, cfg.MaxFileSize)
	router := handler.NewRouter(documentHandler, promMiddleware, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Start server
	log.Printf("Starting OCR Document Verifier on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
