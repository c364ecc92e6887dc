package filter

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Criteria maps a zero-based column index to the values that stay visible
// when the column's auto-filter is engaged.
type Criteria map[int][]string

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and dropping empty entries.
func ParseKeywords(s string) []string {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

// KeywordFilter computes and applies keyword-restricted auto-filter
// criteria to an exported sheet.
type KeywordFilter struct {
	Logger *logrus.Logger
}

// NewKeywordFilter creates a new keyword filter
func NewKeywordFilter(logger *logrus.Logger) *KeywordFilter {
	return &KeywordFilter{
		Logger: logger,
	}
}

// BuildCriteria computes the per-column filter criteria.
//
// Explicitly designated columns (up to two, duplicates and names absent
// from the headers skipped) are restricted to the full keyword set.
// Every other column whose header contains a keyword as a case-insensitive
// substring is restricted to the keywords that match it, in keyword-list
// order. An explicit designation always wins over a header match, and the
// result is the same no matter how many times it is computed.
func (kf *KeywordFilter) BuildCriteria(headers, keywords, filterColumns []string) Criteria {
	criteria := make(Criteria)
	if len(keywords) == 0 {
		return criteria
	}

	// Explicitly designated columns get the full keyword set
	explicit := make(map[int]bool)
	for _, name := range filterColumns {
		idx := indexOf(headers, name)
		if idx < 0 {
			kf.Logger.Warningf("Designated filter column %q not found in headers, skipping", name)
			continue
		}
		if explicit[idx] {
			continue
		}
		explicit[idx] = true
		criteria[idx] = append([]string(nil), keywords...)
	}

	// Header-substring matches, never overwriting an explicit designation
	for idx, header := range headers {
		if explicit[idx] {
			continue
		}
		upper := strings.ToUpper(header)
		var matched []string
		for _, kw := range keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			criteria[idx] = matched
		}
	}

	return criteria
}

// Apply sets the sheet's auto-filter range to the full populated
// rectangle: row 1 through the last data row, column 1 through the last
// header column. rowCount is the number of data rows below the header.
// The per-column criteria are attached to the saved file afterwards by
// WriteCriteria, since a value-list criterion is not expressible through
// the workbook API.
func (kf *KeywordFilter) Apply(f *excelize.File, sheet string, headers []string, rowCount int) error {
	if len(headers) == 0 {
		return fmt.Errorf("headers must not be empty")
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), rowCount+1)
	if err != nil {
		return err
	}
	rangeRef := "A1:" + lastCell

	if err := f.AutoFilter(sheet, rangeRef, nil); err != nil {
		kf.Logger.Errorf("Error setting auto-filter range %s: %v", rangeRef, err)
		return err
	}

	kf.Logger.Debugf("Set auto-filter range %s", rangeRef)
	return nil
}

// indexOf returns the position of name in headers, -1 when absent
func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
