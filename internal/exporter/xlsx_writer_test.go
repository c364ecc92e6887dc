package exporter

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestBuildAndSaveRoundTrip(t *testing.T) {
	ww := NewWorkbookWriter(testLogger())

	headers := []string{"NUMBER", "TYPE", "NOTES"}
	rows := [][]interface{}{
		{int64(2), "VIDEO", "rack 2"},
		{int64(3), "AUDIO", nil},
		{int64(4), "JF", "spare"},
	}

	f, err := ww.Build(headers, rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, ww.Save(f, path))
	require.NoError(t, f.Close())

	// Read the saved file back and compare
	saved, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer saved.Close()

	got, err := saved.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, headers, got[0])
	assert.Equal(t, []string{"2", "VIDEO", "rack 2"}, got[1])
	// The NULL cell stays empty; trailing empty cells may be trimmed
	assert.Equal(t, "3", got[2][0])
	assert.Equal(t, "AUDIO", got[2][1])
	assert.Equal(t, []string{"4", "JF", "spare"}, got[3])
}

func TestBuildRejectsRaggedRows(t *testing.T) {
	ww := NewWorkbookWriter(testLogger())

	_, err := ww.Build([]string{"NUMBER", "TYPE"}, [][]interface{}{{int64(1)}})
	assert.Error(t, err)

	_, err = ww.Build(nil, nil)
	assert.Error(t, err)
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	ww := NewWorkbookWriter(testLogger())
	path := filepath.Join(t.TempDir(), "export.xlsx")

	f1, err := ww.Build([]string{"NUMBER"}, [][]interface{}{{int64(1)}})
	require.NoError(t, err)
	require.NoError(t, ww.Save(f1, path))
	require.NoError(t, f1.Close())

	f2, err := ww.Build([]string{"NUMBER"}, [][]interface{}{{int64(7)}})
	require.NoError(t, err)
	require.NoError(t, ww.Save(f2, path))
	require.NoError(t, f2.Close())

	saved, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer saved.Close()

	value, err := saved.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "7", value)
}

func TestSaveUnwritableDestination(t *testing.T) {
	ww := NewWorkbookWriter(testLogger())

	f, err := ww.Build([]string{"NUMBER"}, nil)
	require.NoError(t, err)
	defer f.Close()

	err = ww.Save(f, filepath.Join(t.TempDir(), "no-such-dir", "export.xlsx"))
	require.Error(t, err)

	var writeErr *models.WriteError
	assert.True(t, errors.As(err, &writeErr), "expected a WriteError, got %T", err)
}
