package inspector

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/internal/connector"
	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// SchemaInspector reads table names and column layouts from the live
// database. Nothing is cached: every call reflects the schema as it is
// at that moment.
type SchemaInspector struct {
	DB     *connector.DatabaseConnector
	Logger *logrus.Logger
}

// NewSchemaInspector creates a new schema inspector
func NewSchemaInspector(db *connector.DatabaseConnector, logger *logrus.Logger) *SchemaInspector {
	return &SchemaInspector{
		DB:     db,
		Logger: logger,
	}
}

// Tables returns the sorted names of the user tables in the database.
func (si *SchemaInspector) Tables() ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	_, rows, err := si.DB.ExecuteQuery(query)
	if err != nil {
		si.Logger.Errorf("Error getting tables: %v", err)
		return nil, &models.SchemaError{Err: err}
	}

	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		name, ok := row[0].(string)
		if !ok {
			return nil, &models.SchemaError{Err: fmt.Errorf("unexpected table name value %v", row[0])}
		}
		tables = append(tables, name)
	}

	si.Logger.Debugf("Found %d tables", len(tables))
	return tables, nil
}

// TableColumns returns the ordered column names of one table, read from
// the descriptors of a single-row probe query. The table name is a
// caller-trusted identifier.
func (si *SchemaInspector) TableColumns(table string) ([]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT 1", QuoteIdentifier(table))
	columns, _, err := si.DB.ExecuteQuery(query)
	if err != nil {
		si.Logger.Errorf("Error loading columns for table %s: %v", table, err)
		return nil, &models.SchemaError{Table: table, Err: err}
	}

	si.Logger.Debugf("Loaded %d columns for table %s", len(columns), table)
	return columns, nil
}

// HasColumn reports whether the table contains the named column.
func (si *SchemaInspector) HasColumn(table, column string) (bool, error) {
	columns, err := si.TableColumns(table)
	if err != nil {
		return false, err
	}
	for _, c := range columns {
		if c == column {
			return true, nil
		}
	}
	return false, nil
}

// EnsureColumns verifies that every named column exists in the table,
// returning a SchemaError naming the first one that does not.
func (si *SchemaInspector) EnsureColumns(table string, columns []string) error {
	for _, name := range columns {
		ok, err := si.HasColumn(table, name)
		if err != nil {
			return err
		}
		if !ok {
			return &models.SchemaError{Table: table, Err: fmt.Errorf("column %q not found", name)}
		}
	}
	return nil
}

// QuoteIdentifier wraps a caller-trusted identifier in double quotes so
// names with spaces or reserved words survive the query.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
