package models

import "fmt"

// ConnectionError indicates the database file could not be opened: the file
// is missing, has an unrecognized extension, or the driver rejected it.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error connecting to database %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaError indicates a table or column was not found, or the schema
// could not be read at all. The driver message is preserved verbatim.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("error reading schema: %v", e.Err)
	}
	return fmt.Sprintf("error reading schema of table %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// EmptyResultError indicates a range query matched zero rows. A zero-row
// export is almost always a misconfigured range or table, so it is
// reported to the user instead of producing an empty workbook.
type EmptyResultError struct {
	Table       string
	OrderColumn string
	Start       int64
	End         int64
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no records found in table %s for %s range %d to %d",
		e.Table, e.OrderColumn, e.Start, e.End)
}

// WriteError indicates the workbook could not be saved to its destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing workbook %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConfigError indicates the settings file could not be read or written.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("error with settings file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
