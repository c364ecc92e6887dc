package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	// Create a new logger
	logger := logrus.New()

	// Get log level from environment variable or parameter
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("SQLITE_EXPORTER_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	// Parse log level
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	// Configure logger
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	return logger
}

// LoadEnvironmentVariables loads environment variables from .env file
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) {
	// Load environment variables from .env file if it exists
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.Warningf("Error loading %s file: %v", envFile, err)
		} else {
			logger.Infof("Loaded environment variables from %s", envFile)
		}
	} else {
		logger.Debugf("No %s file found, using existing environment variables", envFile)
	}
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// RenderPreview writes a table preview to w as an aligned text table.
func RenderPreview(w io.Writer, preview *models.Preview) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, col := range preview.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, row := range preview.Rows {
		r := table.Row{}
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}

	t.Render()
}

// PrintExportSummary prints a summary of a finished export.
func PrintExportSummary(req *models.ExportRequest, rowCount int) {
	fmt.Println("\n=== Export Summary ===")
	fmt.Printf("Table:          %s\n", req.Table)
	fmt.Printf("%s range:   %d to %d\n", req.OrderColumn, req.Start, req.End)
	fmt.Printf("Rows exported:  %d\n", rowCount)
	fmt.Printf("Keywords:       %v\n", req.Keywords)
	if len(req.FilterColumns) > 0 {
		fmt.Printf("Filter columns: %v\n", req.FilterColumns)
	}
	fmt.Printf("Workbook:       %s\n", req.Destination)
}

// LogNotifier reports user-facing status through the logger. It is the
// CLI's stand-in for the dialog popups a GUI front end would show.
type LogNotifier struct {
	Logger *logrus.Logger
}

// Info reports a user-facing success or progress message.
func (n *LogNotifier) Info(text string) {
	n.Logger.Info(text)
}

// Error reports a user-facing failure message.
func (n *LogNotifier) Error(text string) {
	n.Logger.Error(text)
}
