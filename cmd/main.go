package main

import (
	"fmt"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"proformagen/internal/config"
	"proformagen/internal/handlers"
	"proformagen/internal/render"
	"proformagen/internal/services"
)

func main() {
	// Invoice template configuration
	templatePath := os.Getenv("INVOICE_TEMPLATE_PATH")
	template := config.DefaultInvoiceTemplate()
	if templatePath != "" {
		loaded, err := config.LoadInvoiceTemplate(templatePath)
		if err != nil {
			log.Fatalf("Failed to load invoice template %s: %v", templatePath, err)
		}
		template = loaded
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000" // Default MinIO endpoint
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	bucketName := os.Getenv("PROFORMA_BUCKET")
	if bucketName == "" {
		bucketName = "proformas"
	}

	storageService, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Pipeline services
	workbookService := services.NewWorkbookService()
	normalizerService := services.NewNormalizerService()
	composerService := services.NewComposerService(template)
	pdfRenderer := render.NewPDFRenderer()
	htmlRenderer := render.NewHTMLRenderer()

	// Handlers
	proformaHandlers := handlers.NewProformaHandlers(
		workbookService,
		normalizerService,
		composerService,
		storageService,
		pdfRenderer,
		htmlRenderer,
		bucketName,
	)
	healthHandlers := handlers.NewHealthHandlers(storageService, bucketName)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Proforma invoice endpoints
	v1 := e.Group("/v1")
	v1.POST("/proformas/preview", proformaHandlers.PreviewProforma)
	v1.POST("/proformas/generate", proformaHandlers.GenerateProforma)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}
