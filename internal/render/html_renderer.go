package render

import (
	"bytes"
	"html/template"
	"strings"

	"proformagen/internal/models"
)

// HTMLRenderer renders the block model as a standalone printable HTML page.
// The stylesheet targets A4 with half-inch margins so a browser print of the
// page matches the PDF backend.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a new HTML renderer instance. The page template is
// parsed once at construction.
func NewHTMLRenderer() *HTMLRenderer {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"nl2br": nl2br,
	}).Parse(invoicePageTemplate))
	return &HTMLRenderer{tmpl: tmpl}
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *HTMLRenderer) FileExtension() string {
	return ".html"
}

func (r *HTMLRenderer) Render(doc *models.InvoiceDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, &RenderError{Backend: "html", Err: err}
	}
	return buf.Bytes(), nil
}

// nl2br escapes cell text, then turns embedded newlines into line breaks.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

const invoicePageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Proforma Invoice</title>
<style>
  @page { size: A4; margin: 0.5in; }
  body { font-family: Arial, Helvetica, sans-serif; font-size: 11px; color: #000; margin: 0.5in; }
  .header-table { width: 100%; border-collapse: collapse; margin-bottom: 8px; }
  .header-table td { width: 50%; vertical-align: top; padding: 1px 4px; }
  .title { text-align: center; font-weight: bold; font-size: 14px; margin: 10px 0; }
  .paragraph { margin: 8px 0; }
  .paragraph.bold { font-weight: bold; }
  .paragraph.centered { text-align: center; }
  .main-table { width: 100%; border-collapse: collapse; margin: 8px 0; }
  .main-table th, .main-table td { border: 1px solid #000; padding: 3px 4px; }
  .main-table th { background-color: #d3d3d3; text-align: center; }
  .main-table td:nth-child(n+7) { text-align: right; }
  .main-table tr.total-row td { background-color: #d3d3d3; font-weight: bold; }
  .total-words { text-align: center; font-weight: bold; margin: 10px 0; }
  .signature-section { width: 100%; border-collapse: collapse; margin-top: 16px; }
  .signature-section td { width: 50%; vertical-align: top; padding: 2px 4px; }
</style>
</head>
<body>
{{- range .Blocks}}
{{- if .KeyValue}}
<table class="header-table">
{{- range .KeyValue.Rows}}
  <tr><td>{{nl2br (index . 0)}}</td><td>{{nl2br (index . 1)}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .Paragraph}}
<div class="paragraph{{if .Paragraph.Bold}} bold{{end}}{{if .Paragraph.Centered}} centered{{end}}">{{.Paragraph.Text}}</div>
{{- end}}
{{- if .Table}}
<table class="main-table">
  <thead>
    <tr>
{{- range .Table.Header}}
      <th>{{nl2br .}}</th>
{{- end}}
    </tr>
  </thead>
  <tbody>
{{- range .Table.Rows}}
    <tr>
{{- range .}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
{{- if .Table.TotalRow}}
    <tr class="total-row">
{{- range .Table.TotalRow}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>
{{- end}}
{{- end}}
</body>
</html>
`
