package filter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// sheetXMLPath is where the single exported sheet lives inside the
// workbook archive.
const sheetXMLPath = "xl/worksheets/sheet1.xml"

var autoFilterPattern = regexp.MustCompile(`(?s)<autoFilter[^>]*?ref="([^"]+)"[^>]*?(?:/>|>.*?</autoFilter>)`)

// WriteCriteria attaches the per-column criteria to the workbook already
// saved at path. Excel stores a multi-value criterion as a value list
// (<filterColumn><filters><filter val=.../>), which the workbook API
// cannot emit, so the sheet XML inside the archive is rewritten in place.
// The auto-filter range must have been set before the save (Apply).
// Rewriting replaces any previously attached criteria wholesale, so
// repeated calls with the same criteria leave the file unchanged.
func (kf *KeywordFilter) WriteCriteria(path string, criteria Criteria) error {
	if len(criteria) == 0 {
		return nil
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return &models.WriteError{Path: path, Err: err}
	}
	defer r.Close()

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	found := false

	for _, entry := range r.File {
		rc, err := entry.Open()
		if err != nil {
			return &models.WriteError{Path: path, Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return &models.WriteError{Path: path, Err: err}
		}

		if entry.Name == sheetXMLPath {
			if data, err = injectCriteria(data, criteria); err != nil {
				return &models.WriteError{Path: path, Err: err}
			}
			found = true
		}

		fw, err := w.Create(entry.Name)
		if err != nil {
			return &models.WriteError{Path: path, Err: err}
		}
		if _, err := fw.Write(data); err != nil {
			return &models.WriteError{Path: path, Err: err}
		}
	}

	if !found {
		return &models.WriteError{Path: path, Err: fmt.Errorf("workbook has no sheet part %s", sheetXMLPath)}
	}
	if err := w.Close(); err != nil {
		return &models.WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		kf.Logger.Errorf("Error writing filter criteria to %s: %v", path, err)
		return &models.WriteError{Path: path, Err: err}
	}

	kf.Logger.Infof("Attached filter criteria to %d columns in %s", len(criteria), path)
	return nil
}

// injectCriteria rebuilds the sheet's autoFilter element with one
// value-list filterColumn per criterion, column indexes zero-based as the
// sheet format expects.
func injectCriteria(sheetXML []byte, criteria Criteria) ([]byte, error) {
	loc := autoFilterPattern.FindSubmatchIndex(sheetXML)
	if loc == nil {
		return nil, fmt.Errorf("sheet has no auto-filter range")
	}
	ref := sheetXML[loc[2]:loc[3]]

	// Stable column order keeps the rewrite deterministic
	indexes := make([]int, 0, len(criteria))
	for idx := range criteria {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var b bytes.Buffer
	b.WriteString(`<autoFilter ref="`)
	b.Write(ref)
	b.WriteString(`">`)
	for _, idx := range indexes {
		fmt.Fprintf(&b, `<filterColumn colId="%d"><filters>`, idx)
		for _, val := range criteria[idx] {
			b.WriteString(`<filter val="`)
			if err := xml.EscapeText(&b, []byte(val)); err != nil {
				return nil, err
			}
			b.WriteString(`"/>`)
		}
		b.WriteString(`</filters></filterColumn>`)
	}
	b.WriteString(`</autoFilter>`)

	rebuilt := make([]byte, 0, len(sheetXML)+b.Len())
	rebuilt = append(rebuilt, sheetXML[:loc[0]]...)
	rebuilt = append(rebuilt, b.Bytes()...)
	rebuilt = append(rebuilt, sheetXML[loc[1]:]...)
	return rebuilt, nil
}
