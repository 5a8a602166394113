package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

const serviceName = "OCR Document Verifier"

// NewRouter builds the gin engine with health, metrics, extraction and verification routes.
// prom may be nil to disable request counting.
func NewRouter(documentHandler *DocumentHandler, prom *PrometheusMiddleware, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())
	if prom != nil {
		router.Use(prom.Handler())
	}

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:  "healthy",
			Service: serviceName,
		})
	})

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := router.Group("/api/v1")
	{
		documents := api.Group("/documents")
		{
			documents.POST("/extract", documentHandler.ExtractDocument)
			documents.POST("/verify", documentHandler.VerifyDocument)
		}
	}

	return router
}
