package render

import (
	"fmt"

	"proformagen/internal/models"
)

// Renderer turns a composed invoice document into output bytes. The composer
// is renderer-agnostic; the PDF and HTML backends consume the same block
// model.
type Renderer interface {
	Render(doc *models.InvoiceDocument) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// RenderError wraps a backend failure. No partial output ever accompanies
// it: a failed render returns nothing but this error.
type RenderError struct {
	Backend string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s render failed: %v", e.Backend, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
