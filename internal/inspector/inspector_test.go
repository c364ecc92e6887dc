package inspector

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/internal/connector"
	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// Helper function to create a connector backed by sqlmock
func createMockConnector(t *testing.T) (*connector.DatabaseConnector, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests

	return &connector.DatabaseConnector{Path: "mock.db", DB: db, Logger: logger}, mock
}

func TestTables(t *testing.T) {
	dc, mock := createMockConnector(t)
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	mock.ExpectQuery("SELECT name").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).
			AddRow("Cables").
			AddRow("Panels"))

	si := NewSchemaInspector(dc, logger)
	tables, err := si.Tables()
	if err != nil {
		t.Fatalf("Expected Tables to succeed, got %v", err)
	}

	if len(tables) != 2 || tables[0] != "Cables" || tables[1] != "Panels" {
		t.Errorf("Expected [Cables Panels], got %v", tables)
	}
}

func TestTableColumns(t *testing.T) {
	dc, mock := createMockConnector(t)
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	mock.ExpectQuery(`SELECT \* FROM "Cables" LIMIT 1`).WillReturnRows(
		sqlmock.NewRows([]string{"NUMBER", "TYPE", "NOTES"}))

	si := NewSchemaInspector(dc, logger)
	columns, err := si.TableColumns("Cables")
	if err != nil {
		t.Fatalf("Expected TableColumns to succeed, got %v", err)
	}

	if len(columns) != 3 || columns[0] != "NUMBER" || columns[1] != "TYPE" || columns[2] != "NOTES" {
		t.Errorf("Expected [NUMBER TYPE NOTES], got %v", columns)
	}
}

func TestTableColumnsUnknownTable(t *testing.T) {
	dc, mock := createMockConnector(t)
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	mock.ExpectQuery(`SELECT \* FROM "Missing" LIMIT 1`).
		WillReturnError(errors.New("no such table: Missing"))

	si := NewSchemaInspector(dc, logger)
	_, err := si.TableColumns("Missing")
	if err == nil {
		t.Fatal("Expected TableColumns to fail for an unknown table")
	}

	// The failure must carry the schema-error type with the driver message
	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected a SchemaError, got %T", err)
	}
	if schemaErr.Table != "Missing" {
		t.Errorf("Expected SchemaError.Table to be 'Missing', got %q", schemaErr.Table)
	}
}

func TestHasColumn(t *testing.T) {
	dc, mock := createMockConnector(t)
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	mock.ExpectQuery(`SELECT \* FROM "Cables" LIMIT 1`).WillReturnRows(
		sqlmock.NewRows([]string{"NUMBER", "TYPE"}))
	mock.ExpectQuery(`SELECT \* FROM "Cables" LIMIT 1`).WillReturnRows(
		sqlmock.NewRows([]string{"NUMBER", "TYPE"}))

	si := NewSchemaInspector(dc, logger)

	ok, err := si.HasColumn("Cables", "TYPE")
	if err != nil || !ok {
		t.Errorf("Expected TYPE to be found, got ok=%v err=%v", ok, err)
	}

	ok, err = si.HasColumn("Cables", "COLOR")
	if err != nil || ok {
		t.Errorf("Expected COLOR to be absent, got ok=%v err=%v", ok, err)
	}
}

func TestEnsureColumns(t *testing.T) {
	dc, mock := createMockConnector(t)
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	si := NewSchemaInspector(dc, logger)

	// No designated columns means nothing to verify and no query
	if err := si.EnsureColumns("Cables", nil); err != nil {
		t.Errorf("Expected EnsureColumns with no columns to succeed, got %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "Cables" LIMIT 1`).WillReturnRows(
		sqlmock.NewRows([]string{"NUMBER", "TYPE"}))
	if err := si.EnsureColumns("Cables", []string{"TYPE"}); err != nil {
		t.Errorf("Expected existing column to pass, got %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "Cables" LIMIT 1`).WillReturnRows(
		sqlmock.NewRows([]string{"NUMBER", "TYPE"}))
	err := si.EnsureColumns("Cables", []string{"COLOR"})
	if err == nil {
		t.Fatal("Expected EnsureColumns to fail for a missing column")
	}

	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected a SchemaError, got %T", err)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := QuoteIdentifier("Cables"); got != `"Cables"` {
		t.Errorf(`Expected "Cables", got %s`, got)
	}
	if got := QuoteIdentifier(`we"ird`); got != `"we""ird"` {
		t.Errorf(`Expected "we""ird", got %s`, got)
	}
}
