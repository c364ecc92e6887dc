package fetcher

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/internal/connector"
	"github.com/vitebski/sqlite-excel-exporter/internal/inspector"
	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// RowRangeFetcher runs the bounded export query: all rows whose ordering
// column lies in an inclusive integer range, sorted ascending by that
// column.
type RowRangeFetcher struct {
	DB     *connector.DatabaseConnector
	Logger *logrus.Logger
}

// NewRowRangeFetcher creates a new row range fetcher
func NewRowRangeFetcher(db *connector.DatabaseConnector, logger *logrus.Logger) *RowRangeFetcher {
	return &RowRangeFetcher{
		DB:     db,
		Logger: logger,
	}
}

// FetchRange returns the rows of table whose orderColumn value lies in
// [start, end], ordered ascending by orderColumn. The range bounds are
// bound parameters; the table and column names are caller-trusted
// identifiers. Zero matching rows is an error, not an empty result.
func (rf *RowRangeFetcher) FetchRange(table, orderColumn string, start, end int64) (*models.ResultSet, error) {
	if orderColumn == "" {
		orderColumn = models.DefaultOrderColumn
	}
	if start > end {
		return nil, fmt.Errorf("invalid range: start %d is greater than end %d", start, end)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s BETWEEN ? AND ? ORDER BY %s ASC",
		inspector.QuoteIdentifier(table),
		inspector.QuoteIdentifier(orderColumn),
		inspector.QuoteIdentifier(orderColumn))

	columns, rows, err := rf.DB.ExecuteQuery(query, start, end)
	if err != nil {
		rf.Logger.Errorf("Error fetching range [%d, %d] from table %s: %v", start, end, table, err)
		// A closed connection keeps its own error type; everything else
		// from a well-formed range query is a schema problem
		var connErr *models.ConnectionError
		if errors.As(err, &connErr) {
			return nil, err
		}
		return nil, &models.SchemaError{Table: table, Err: err}
	}

	if len(rows) == 0 {
		return nil, &models.EmptyResultError{
			Table:       table,
			OrderColumn: orderColumn,
			Start:       start,
			End:         end,
		}
	}

	rf.Logger.Infof("Fetched %d rows from table %s for %s range %d to %d",
		len(rows), table, orderColumn, start, end)

	return &models.ResultSet{Columns: columns, Rows: rows}, nil
}
