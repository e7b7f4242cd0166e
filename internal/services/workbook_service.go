package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"proformagen/internal/models"
)

// WorkbookService reads uploaded spreadsheets into raw records. It is the
// ingestion edge of the pipeline and carries no business logic: the first
// row of the first worksheet is taken as headers and every later row becomes
// one record keyed by header.
type WorkbookService interface {
	ReadRecords(r io.Reader) ([]models.RawRecord, error)
}

type workbookService struct{}

// NewWorkbookService creates a new workbook service instance.
func NewWorkbookService() WorkbookService {
	return &workbookService{}
}

func (s *workbookService) ReadRecords(r io.Reader) ([]models.RawRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no worksheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	records := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := models.RawRecord{}
		for i, header := range headers {
			header = strings.TrimSpace(header)
			// Worksheet rows are ragged: cells past the row's last value are
			// simply absent from the record.
			if header == "" || i >= len(row) {
				continue
			}
			record[header] = row[i]
		}
		records = append(records, record)
	}
	return records, nil
}
