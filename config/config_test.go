package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "OCR_ENGINE", "MAX_FILE_SIZE_MB", "SIMILARITY_THRESHOLD",
		"PREPROCESS_ENABLED", "QR_FALLBACK_ENABLED", "MIN_TEXT_LAYER_CHARS", "OTEL_ENABLED",
		"REGISTRY_DRIVER", "REGISTRY_DSN", "REGISTRY_SEED_FILE",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, EngineTesseract, cfg.OCREngine)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 0.6, cfg.SimilarityThreshold)
	assert.True(t, cfg.PreprocessEnabled)
	assert.True(t, cfg.QRFallbackEnabled)
	assert.Equal(t, 20, cfg.MinTextLayerChars)
	assert.False(t, cfg.OtelEnabled)
	assert.Empty(t, cfg.RegistryDriver)
	assert.Equal(t, "file:registry.db", cfg.RegistryDSN)
	assert.Empty(t, cfg.RegistrySeedFile)
}

func TestLoadConfigRegistry(t *testing.T) {
	t.Setenv("REGISTRY_DRIVER", "PGX")
	t.Setenv("REGISTRY_DSN", "postgres://verifier@localhost:5432/registry")
	t.Setenv("REGISTRY_SEED_FILE", "seed.json")

	cfg := LoadConfig()

	assert.Equal(t, RegistryPostgres, cfg.RegistryDriver)
	assert.Equal(t, "postgres://verifier@localhost:5432/registry", cfg.RegistryDSN)
	assert.Equal(t, "seed.json", cfg.RegistrySeedFile)

	t.Setenv("REGISTRY_DRIVER", "mongodb")
	assert.Empty(t, LoadConfig().RegistryDriver)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OCR_ENGINE", "PADDLE")
	t.Setenv("MAX_FILE_SIZE_MB", "2")
	t.Setenv("SIMILARITY_THRESHOLD", "0.75")
	t.Setenv("PREPROCESS_ENABLED", "false")
	t.Setenv("DEBUG_OCR", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, EnginePaddle, cfg.OCREngine)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 0.75, cfg.SimilarityThreshold)
	assert.False(t, cfg.PreprocessEnabled)
	assert.True(t, cfg.DebugOCR)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("OCR_ENGINE", "easyocr")
	t.Setenv("MAX_FILE_SIZE_MB", "ten")
	t.Setenv("SIMILARITY_THRESHOLD", "high")

	cfg := LoadConfig()

	assert.Equal(t, EngineTesseract, cfg.OCREngine)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 0.6, cfg.SimilarityThreshold)
}
