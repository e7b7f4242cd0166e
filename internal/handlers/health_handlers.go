package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"proformagen/internal/services"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	storageService services.StorageService
	bucketName     string
}

// NewHealthHandlers creates a new health handlers instance. A nil storage
// service marks the storage check as skipped rather than failing.
func NewHealthHandlers(storageService services.StorageService, bucketName string) *HealthHandlers {
	return &HealthHandlers{
		storageService: storageService,
		bucketName:     bucketName,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck reports liveness plus the state of the storage dependency.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if h.storageService == nil {
		health.Services["storage"] = "skipped"
	} else if err := h.storageService.EnsureBucketExists(c.Request().Context(), h.bucketName); err != nil {
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Document generation itself is stateless, so readiness only gates on the
// storage backend when one is configured.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if h.storageService != nil {
		if err := h.storageService.EnsureBucketExists(c.Request().Context(), h.bucketName); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "not_ready",
				"message": "Document storage unavailable",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
