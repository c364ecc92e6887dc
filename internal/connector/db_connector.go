package connector

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// ValidExtensions lists the file extensions accepted as a database path.
var ValidExtensions = []string{".db", ".sqlite", ".sqlite3"}

// DatabaseConnector handles the database connection and query execution.
// One logical session owns the connector at a time: Connect opens the file,
// Disconnect closes it, and reconnecting to a different path closes the
// previous handle first.
type DatabaseConnector struct {
	Path   string
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewDatabaseConnector creates a new database connector
func NewDatabaseConnector(path string, logger *logrus.Logger) *DatabaseConnector {
	if path == "" {
		path = os.Getenv("SQLITE_EXPORTER_DB_PATH")
	}

	return &DatabaseConnector{
		Path:   path,
		Logger: logger,
	}
}

// ValidatePath checks that the path points at an existing file with a
// recognized database extension.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("database path must be provided either as an argument or as SQLITE_EXPORTER_DB_PATH environment variable")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("database file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range ValidExtensions {
		if ext == valid {
			return nil
		}
	}
	return fmt.Errorf("unrecognized database file extension %q (expected one of %s)",
		ext, strings.Join(ValidExtensions, ", "))
}

// Connect establishes a connection to the database file. Any previously
// open handle is closed first.
func (dc *DatabaseConnector) Connect() error {
	if err := ValidatePath(dc.Path); err != nil {
		dc.Logger.Errorf("Error validating database path: %v", err)
		return &models.ConnectionError{Path: dc.Path, Err: err}
	}

	// Close a leftover handle before opening a new one
	if dc.DB != nil {
		dc.Disconnect()
	}

	db, err := sql.Open("sqlite3", dc.Path)
	if err != nil {
		dc.Logger.Errorf("Error connecting to database: %v", err)
		return &models.ConnectionError{Path: dc.Path, Err: err}
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		dc.Logger.Errorf("Error pinging database: %v", err)
		db.Close()
		return &models.ConnectionError{Path: dc.Path, Err: err}
	}

	dc.DB = db
	dc.Logger.Infof("Connected to database: %s", dc.Path)
	return nil
}

// Connected reports whether a handle is currently open.
func (dc *DatabaseConnector) Connected() bool {
	return dc.DB != nil
}

// Disconnect closes the database connection
func (dc *DatabaseConnector) Disconnect() {
	if dc.DB != nil {
		err := dc.DB.Close()
		if err != nil {
			dc.Logger.Errorf("Error closing database connection: %v", err)
		} else {
			dc.Logger.Info("Database connection closed")
		}
		dc.DB = nil
	}
}

// ExecuteQuery executes a SQL query and returns the ordered column names
// plus the rows, values aligned positionally with the columns.
func (dc *DatabaseConnector) ExecuteQuery(query string, params ...interface{}) ([]string, [][]interface{}, error) {
	if dc.DB == nil {
		return nil, nil, &models.ConnectionError{Path: dc.Path, Err: fmt.Errorf("connection is not open")}
	}

	rows, err := dc.DB.Query(query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing query: %v", err)
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		dc.Logger.Errorf("Error getting columns: %v", err)
		return nil, nil, err
	}

	var results [][]interface{}

	for rows.Next() {
		// Create a slice of interface{} to hold the values
		values := make([]interface{}, len(columns))
		// Create a slice of pointers to the values
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		// Scan the result into the pointers
		if err := rows.Scan(valuePtrs...); err != nil {
			dc.Logger.Errorf("Error scanning row: %v", err)
			return nil, nil, err
		}

		// Convert []byte to string for text fields
		for i, val := range values {
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}

		results = append(results, values)
	}

	if err := rows.Err(); err != nil {
		dc.Logger.Errorf("Error iterating rows: %v", err)
		return nil, nil, err
	}

	return columns, results, nil
}
