package models

import "fmt"

// DefaultOrderColumn is the column used to bound and sort range exports
// unless the caller picks another one.
const DefaultOrderColumn = "NUMBER"

// DefaultKeywords is the keyword list used when the caller supplies none.
const DefaultKeywords = "VIDEO,AUDIO,JF,NETWORK"

// MaxFilterColumns is the number of columns a user can designate explicitly.
const MaxFilterColumns = 2

// ResultSet represents the outcome of a query: ordered column names and
// rows whose values align positionally with the columns.
type ResultSet struct {
	Columns []string
	Rows    [][]interface{}
}

// Preview represents a capped, display-ready slice of a table. All cell
// values are stringified; NULL becomes the empty string.
type Preview struct {
	Columns []string
	Rows    [][]string
}

// ExportRequest describes one export action: which table, which inclusive
// range over the ordering column, which keywords and designated filter
// columns, and where the workbook goes.
type ExportRequest struct {
	Table         string
	OrderColumn   string
	Start         int64
	End           int64
	Keywords      []string
	FilterColumns []string
	Destination   string
}

// Validate checks the request invariants that do not need a live schema.
func (r *ExportRequest) Validate() error {
	if r.Table == "" {
		return fmt.Errorf("table name must be provided")
	}
	if r.Start > r.End {
		return fmt.Errorf("invalid range: start %d is greater than end %d", r.Start, r.End)
	}
	if len(r.FilterColumns) > MaxFilterColumns {
		return fmt.Errorf("at most %d filter columns can be designated, got %d", MaxFilterColumns, len(r.FilterColumns))
	}
	if r.Destination == "" {
		return fmt.Errorf("destination path must be provided")
	}
	return nil
}

// PreviewRequest describes one interactive preview action.
type PreviewRequest struct {
	Table string
	Limit int
}

// Notifier receives user-facing status text. The core packages report
// outcomes through it instead of printing or popping up anything
// themselves; the front end decides how to render.
type Notifier interface {
	Info(text string)
	Error(text string)
}
