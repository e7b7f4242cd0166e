package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"proformagen/internal/common"
	"proformagen/internal/models"
	"proformagen/internal/render"
	"proformagen/internal/services"
)

// presignedURLExpiry bounds how long a stored document's download link stays
// valid.
const presignedURLExpiry = 24 * time.Hour

// ProformaHandlers serves the proforma invoice pipeline: spreadsheet upload,
// normalization preview and document generation.
type ProformaHandlers struct {
	workbookService   services.WorkbookService
	normalizerService services.NormalizerService
	composerService   services.ComposerService
	storageService    services.StorageService
	renderers         map[string]render.Renderer
	bucketName        string
}

// NewProformaHandlers creates a new proforma handlers instance. The storage
// service may be nil, in which case store requests are rejected.
func NewProformaHandlers(
	workbookService services.WorkbookService,
	normalizerService services.NormalizerService,
	composerService services.ComposerService,
	storageService services.StorageService,
	pdfRenderer render.Renderer,
	htmlRenderer render.Renderer,
	bucketName string,
) *ProformaHandlers {
	return &ProformaHandlers{
		workbookService:   workbookService,
		normalizerService: normalizerService,
		composerService:   composerService,
		storageService:    storageService,
		renderers: map[string]render.Renderer{
			"pdf":  pdfRenderer,
			"html": htmlRenderer,
		},
		bucketName: bucketName,
	}
}

// PreviewProforma normalizes and aggregates an uploaded order sheet and
// returns the line items as JSON without rendering a document.
func (h *ProformaHandlers) PreviewProforma(c echo.Context) error {
	items, report, done := h.normalizedItems(c)
	if done {
		return nil
	}

	doc := h.composerService.Compose(items, models.InvoiceMetadata{})
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":          items,
		"style_count":    len(items),
		"total_quantity": services.FormatGroupedQuantity(doc.TotalQuantity),
		"total_amount":   services.FormatGroupedAmount(doc.TotalAmount),
		"report":         report,
	})
}

// GenerateProforma renders an uploaded order sheet as a proforma invoice
// document. The format form field selects the backend (pdf or html, pdf by
// default); store=true uploads the document to object storage and returns a
// presigned link instead of the document body.
func (h *ProformaHandlers) GenerateProforma(c echo.Context) error {
	items, report, done := h.normalizedItems(c)
	if done {
		return nil
	}

	format := strings.ToLower(strings.TrimSpace(c.FormValue("format")))
	if format == "" {
		format = "pdf"
	}
	renderer, ok := h.renderers[format]
	if !ok {
		return common.SendValidationError(c, "format", "format must be one of: pdf, html")
	}

	meta := h.composerService.ResolveMetadata(models.InvoiceMetadata{
		PINumber:     strings.TrimSpace(c.FormValue("pi_number")),
		InvoiceDate:  strings.TrimSpace(c.FormValue("invoice_date")),
		POReference:  strings.TrimSpace(c.FormValue("po_reference")),
		ShipmentDate: strings.TrimSpace(c.FormValue("shipment_date")),
	})

	doc := h.composerService.Compose(items, meta)
	data, err := renderer.Render(doc)
	if err != nil {
		var renderErr *render.RenderError
		if errors.As(err, &renderErr) {
			c.Logger().Errorf("%s render failed for PI %s: %v", renderErr.Backend, meta.PINumber, renderErr.Err)
		}
		return common.SendServerError(c, "Failed to render the invoice document")
	}

	fileName := documentFileName(meta, renderer.FileExtension())
	if c.FormValue("store") == "true" {
		return h.storeDocument(c, fileName, renderer.ContentType(), data, report)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, renderer.ContentType(), data)
}

// normalizedItems runs the upload through ingestion and normalization. When
// it has already written an error response it reports done=true.
func (h *ProformaHandlers) normalizedItems(c echo.Context) ([]models.AggregatedLineItem, *models.NormalizeReport, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = common.SendValidationError(c, "file", "A spreadsheet file is required")
		return nil, nil, true
	}

	src, err := fileHeader.Open()
	if err != nil {
		_ = common.SendServerError(c, "Failed to open the uploaded file")
		return nil, nil, true
	}
	defer src.Close()

	records, err := h.workbookService.ReadRecords(src)
	if err != nil {
		_ = common.SendClientError(c, "Failed to read the uploaded workbook")
		return nil, nil, true
	}

	items, report, err := h.normalizerService.NormalizeAndAggregate(records)
	if err != nil {
		var schemaErr *services.InputSchemaError
		if errors.As(err, &schemaErr) {
			_ = common.SendSchemaError(c, schemaErr.MissingFields)
			return nil, nil, true
		}
		_ = common.SendServerError(c, "Failed to normalize the uploaded rows")
		return nil, nil, true
	}

	if len(report.DroppedRows) > 0 {
		c.Logger().Warnf("dropped %d of %d rows from %s", len(report.DroppedRows), report.TotalRows, fileHeader.Filename)
	}
	return items, report, false
}

// storeDocument uploads the rendered document and responds with a presigned
// download link.
func (h *ProformaHandlers) storeDocument(c echo.Context, fileName, contentType string, data []byte, report *models.NormalizeReport) error {
	if h.storageService == nil {
		return common.SendClientError(c, "Document storage is not configured")
	}

	ctx := c.Request().Context()
	if err := h.storageService.EnsureBucketExists(ctx, h.bucketName); err != nil {
		c.Logger().Errorf("bucket check failed: %v", err)
		return common.SendServerError(c, "Failed to prepare document storage")
	}

	objectName := fmt.Sprintf("%s-%s", uuid.New().String(), fileName)
	if err := h.storageService.UploadDocument(ctx, h.bucketName, objectName, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		c.Logger().Errorf("upload of %s failed: %v", objectName, err)
		return common.SendServerError(c, "Failed to store the invoice document")
	}

	url, err := h.storageService.GetPresignedURL(ctx, h.bucketName, objectName, presignedURLExpiry)
	if err != nil {
		c.Logger().Errorf("presign of %s failed: %v", objectName, err)
		return common.SendServerError(c, "Failed to create a download link")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"object_name":  objectName,
		"url":          url,
		"content_type": contentType,
		"size":         len(data),
		"expires_in":   presignedURLExpiry.String(),
		"report":       report,
	})
}

// documentFileName builds the download name, e.g. a PI of "SAR/LG/0702"
// dated 07-02-2025 becomes "PI_SAR_LG_0702_07-02-2025.pdf".
func documentFileName(meta models.InvoiceMetadata, extension string) string {
	safePI := strings.ReplaceAll(meta.PINumber, "/", "_")
	return fmt.Sprintf("PI_%s_%s%s", safePI, meta.InvoiceDate, extension)
}
