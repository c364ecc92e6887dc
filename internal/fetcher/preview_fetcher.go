package fetcher

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/internal/connector"
	"github.com/vitebski/sqlite-excel-exporter/internal/inspector"
	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// DefaultPreviewLimit caps a preview when the caller does not choose one.
const DefaultPreviewLimit = 1000

// PreviewFetcher reads a capped, unordered slice of a table for
// interactive display. Read-only; truncation at the cap is expected,
// not an error.
type PreviewFetcher struct {
	DB     *connector.DatabaseConnector
	Logger *logrus.Logger
}

// NewPreviewFetcher creates a new preview fetcher
func NewPreviewFetcher(db *connector.DatabaseConnector, logger *logrus.Logger) *PreviewFetcher {
	return &PreviewFetcher{
		DB:     db,
		Logger: logger,
	}
}

// Fetch returns the table's column names and up to limit rows with every
// cell stringified. NULL cells become empty strings.
func (pf *PreviewFetcher) Fetch(table string, limit int) (*models.Preview, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", inspector.QuoteIdentifier(table), limit)
	columns, rows, err := pf.DB.ExecuteQuery(query)
	if err != nil {
		pf.Logger.Errorf("Error fetching preview of table %s: %v", table, err)
		// A closed connection keeps its own error type
		var connErr *models.ConnectionError
		if errors.As(err, &connErr) {
			return nil, err
		}
		return nil, &models.SchemaError{Table: table, Err: err}
	}

	display := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, val := range row {
			cells[i] = stringifyCell(val)
		}
		display = append(display, cells)
	}

	pf.Logger.Infof("Fetched %d preview rows from table %s", len(display), table)

	return &models.Preview{Columns: columns, Rows: display}, nil
}

// stringifyCell converts a scalar cell to its display form
func stringifyCell(val interface{}) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}
