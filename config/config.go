package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	OCREngine         string
	PaddleAPIURL      string
	MaxFileSize       int64

	SimilarityThreshold float64
	PreprocessEnabled   bool
	QRFallbackEnabled   bool
	MinTextLayerChars   int
	DebugOCR            bool

	OtelEnabled     bool
	OtelServiceName string

	// empty RegistryDriver disables registry verification
	RegistryDriver   string
	RegistryDSN      string
	RegistrySeedFile string
}

const (
	EngineTesseract = "tesseract"
	EnginePaddle    = "paddle"

	RegistrySQLite   = "sqlite"
	RegistryPostgres = "pgx"
)

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first; real environment variables take precedence.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	engine := strings.ToLower(getEnv("OCR_ENGINE", EngineTesseract))
	if engine != EngineTesseract && engine != EnginePaddle {
		log.Printf("Warning: unknown OCR_ENGINE %q, using %s", engine, EngineTesseract)
		engine = EngineTesseract
	}

	registryDriver := strings.ToLower(getEnv("REGISTRY_DRIVER", ""))
	switch registryDriver {
	case "", RegistrySQLite, RegistryPostgres:
	default:
		log.Printf("Warning: unknown REGISTRY_DRIVER %q, verification disabled", registryDriver)
		registryDriver = ""
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguage:       getEnv("OCR_LANGUAGE", "eng"),
		OCREngine:         engine,
		PaddleAPIURL:      getEnv("PADDLEOCR_API_URL", "http://paddleocr:8866/predict/ocr_system"),
		MaxFileSize:       int64(getEnvInt("MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,

		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.6),
		PreprocessEnabled:   getEnvBool("PREPROCESS_ENABLED", true),
		QRFallbackEnabled:   getEnvBool("QR_FALLBACK_ENABLED", true),
		MinTextLayerChars:   getEnvInt("MIN_TEXT_LAYER_CHARS", 20),
		DebugOCR:            getEnvBool("DEBUG_OCR", false),

		OtelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OtelServiceName: getEnv("OTEL_SERVICE_NAME", "ocr-document-verifier"),

		RegistryDriver:   registryDriver,
		RegistryDSN:      getEnv("REGISTRY_DSN", "file:registry.db"),
		RegistrySeedFile: getEnv("REGISTRY_SEED_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
