package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"proformagen/internal/render"
	"proformagen/internal/services"
)

type mockStorageService struct {
	mock.Mock
}

func (m *mockStorageService) UploadDocument(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *mockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *mockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func newStoringHandlers(storage services.StorageService) *ProformaHandlers {
	return NewProformaHandlers(
		services.NewWorkbookService(),
		services.NewNormalizerService(),
		services.NewComposerService(nil),
		storage,
		render.NewPDFRenderer(),
		render.NewHTMLRenderer(),
		"proformas",
	)
}

func TestGenerateProforma_StoreReturnsPresignedLink(t *testing.T) {
	storage := new(mockStorageService)
	storage.On("EnsureBucketExists", mock.Anything, "proformas").Return(nil)
	storage.On("UploadDocument", mock.Anything, "proformas", mock.Anything, "application/pdf", mock.Anything, mock.Anything).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "proformas", mock.Anything, 24*time.Hour).
		Return("https://minio.local/proformas/doc?signature=abc", nil)

	h := newStoringHandlers(storage)
	e := echo.New()
	req, rec := multipartUpload(t, sampleSheet(t), map[string]string{
		"store":     "true",
		"pi_number": "SAR/LG/0207",
	})

	require.NoError(t, h.GenerateProforma(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://minio.local/proformas/doc?signature=abc", resp["url"])
	assert.Contains(t, resp["object_name"], "PI_SAR_LG_0207")
	assert.Equal(t, "application/pdf", resp["content_type"])
	storage.AssertExpectations(t)
}

func TestGenerateProforma_StoreUploadFailure(t *testing.T) {
	storage := new(mockStorageService)
	storage.On("EnsureBucketExists", mock.Anything, "proformas").Return(nil)
	storage.On("UploadDocument", mock.Anything, "proformas", mock.Anything, "application/pdf", mock.Anything, mock.Anything).
		Return(assert.AnError)

	h := newStoringHandlers(storage)
	e := echo.New()
	req, rec := multipartUpload(t, sampleSheet(t), map[string]string{"store": "true"})

	require.NoError(t, h.GenerateProforma(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER_ERROR")
	storage.AssertExpectations(t)
}

func TestHealthCheck_StorageDegraded(t *testing.T) {
	storage := new(mockStorageService)
	storage.On("EnsureBucketExists", mock.Anything, "proformas").Return(assert.AnError)

	h := NewHealthHandlers(storage, "proformas")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HealthCheck(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage":"unhealthy"`)
}

func TestReadinessCheck_Ready(t *testing.T) {
	storage := new(mockStorageService)
	storage.On("EnsureBucketExists", mock.Anything, "proformas").Return(nil)

	h := NewHealthHandlers(storage, "proformas")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ReadinessCheck(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}
