package seeder

import (
	"testing"

	"github.com/sirupsen/logrus"
)

// Helper function to create a test logger
func createTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests
	return logger
}

func TestRows(t *testing.T) {
	s := NewSeeder(createTestLogger())

	rows := s.Rows(20)
	if len(rows) != 20 {
		t.Fatalf("Expected 20 rows, got %d", len(rows))
	}

	columns := s.Columns()
	for i, row := range rows {
		if len(row) != len(columns) {
			t.Fatalf("Expected row %d to have %d values, got %d", i, len(columns), len(row))
		}

		// NUMBER runs 1..count in order
		if row[0] != int64(i+1) {
			t.Errorf("Expected row %d to have NUMBER %d, got %v", i, i+1, row[0])
		}

		// TYPE comes from the keyword-friendly vocabulary
		typ, ok := row[1].(string)
		if !ok || typ == "" {
			t.Errorf("Expected row %d to have a non-empty TYPE, got %v", i, row[1])
		}
	}
}

func TestRowsNullableNotes(t *testing.T) {
	s := NewSeeder(createTestLogger())

	rows := s.Rows(14)

	// Every seventh row has a NULL note
	if rows[6][6] != nil {
		t.Errorf("Expected row 7 to have NULL notes, got %v", rows[6][6])
	}
	if rows[13][6] != nil {
		t.Errorf("Expected row 14 to have NULL notes, got %v", rows[13][6])
	}
	if rows[0][6] == nil {
		t.Error("Expected row 1 to have non-NULL notes")
	}
}

func TestColumnsIncludeOrderColumn(t *testing.T) {
	s := NewSeeder(createTestLogger())

	columns := s.Columns()
	if columns[0] != "NUMBER" {
		t.Errorf("Expected first column to be NUMBER, got %s", columns[0])
	}
}
