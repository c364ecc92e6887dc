package exporter

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// SheetName is the title of the single sheet every exported workbook has.
const SheetName = "Imported Data"

// WorkbookWriter materializes a result set into a single-sheet xlsx
// workbook: row 1 holds the headers, rows 2..N+1 hold the data in query
// order. Nothing touches disk until Save is called.
type WorkbookWriter struct {
	Logger *logrus.Logger
}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter(logger *logrus.Logger) *WorkbookWriter {
	return &WorkbookWriter{
		Logger: logger,
	}
}

// Build creates an in-memory workbook from headers and rows. Values keep
// their native scalar types; NULL cells are left empty.
func (ww *WorkbookWriter) Build(headers []string, rows [][]interface{}) (*excelize.File, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("headers must not be empty")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	// Header row
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerCells); err != nil {
		return nil, err
	}

	// Data rows, preserving query order
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), len(headers))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	ww.Logger.Debugf("Built workbook with %d columns and %d data rows", len(headers), len(rows))
	return f, nil
}

// Save writes the workbook to path, overwriting any existing file.
func (ww *WorkbookWriter) Save(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		ww.Logger.Errorf("Error saving workbook to %s: %v", path, err)
		return &models.WriteError{Path: path, Err: err}
	}

	ww.Logger.Infof("Saved workbook to %s", path)
	return nil
}
