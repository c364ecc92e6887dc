package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitebski/sqlite-excel-exporter/internal/connector"
	"github.com/vitebski/sqlite-excel-exporter/internal/exporter"
	"github.com/vitebski/sqlite-excel-exporter/internal/fetcher"
	"github.com/vitebski/sqlite-excel-exporter/internal/filter"
	"github.com/vitebski/sqlite-excel-exporter/internal/inspector"
	"github.com/vitebski/sqlite-excel-exporter/internal/seeder"
	"github.com/vitebski/sqlite-excel-exporter/internal/settings"
	"github.com/vitebski/sqlite-excel-exporter/internal/utils"
	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

func main() {
	var (
		dbPath        string
		envFile       string
		logLevel      string
		settingsPath  string
		tableName     string
		startNumber   int64
		endNumber     int64
		orderColumn   string
		keywords      string
		filterColumns []string
		excelPath     string
		previewLimit  int
		seedRecords   int
	)

	rootCmd := &cobra.Command{
		Use:   "sqlite-excel-exporter",
		Short: "Export table row ranges from a SQLite database into filtered Excel workbooks",
		Long: `SQLite to Excel Exporter

A tool that extracts a bounded row range from a SQLite table, writes it
into a single-sheet xlsx workbook, and attaches keyword-driven
auto-filter criteria to selected columns.`,
	}

	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the SQLite database file")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", settings.DefaultFileName, "Path to the settings file")

	// connect performs the shared setup of every command: logging,
	// environment, persisted settings and the database session.
	connect := func() (*connector.DatabaseConnector, *settings.Store, *utils.LogNotifier, error) {
		logger := utils.SetupLogging(logLevel)
		utils.LoadEnvironmentVariables(envFile, logger)
		notifier := &utils.LogNotifier{Logger: logger}

		store := settings.NewStore(settingsPath, logger)
		store.Load()

		// Flag beats environment beats last-used setting
		path := dbPath
		if path == "" {
			path = os.Getenv("SQLITE_EXPORTER_DB_PATH")
		}
		if path == "" {
			path = store.String(settings.KeyDBPath)
		}

		db := connector.NewDatabaseConnector(path, logger)
		if err := db.Connect(); err != nil {
			store.Set(settings.KeyLastConnectionStatus, false)
			if saveErr := store.Save(); saveErr != nil {
				notifier.Error(saveErr.Error())
			}
			return nil, nil, nil, err
		}

		store.Set(settings.KeyDBPath, db.Path)
		store.Set(settings.KeyLastConnectionStatus, true)
		return db, store, notifier, nil
	}

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, notifier, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect()

			si := inspector.NewSchemaInspector(db, db.Logger)
			tables, err := si.Tables()
			if err != nil {
				notifier.Error(err.Error())
				return err
			}

			for _, table := range tables {
				fmt.Println(table)
			}
			notifier.Info(fmt.Sprintf("Found %d tables", len(tables)))

			if err := store.Save(); err != nil {
				notifier.Error(err.Error())
			}
			return nil
		},
	}

	columnsCmd := &cobra.Command{
		Use:   "columns",
		Short: "List the columns of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, notifier, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect()

			table := resolveTable(tableName, store)
			if table == "" {
				return fmt.Errorf("table name must be provided with --table")
			}

			si := inspector.NewSchemaInspector(db, db.Logger)
			columns, err := si.TableColumns(table)
			if err != nil {
				notifier.Error(err.Error())
				return err
			}

			for _, column := range columns {
				fmt.Println(column)
			}
			notifier.Info("Columns loaded successfully")

			store.Set(settings.KeySelectedTable, table)
			if err := store.Save(); err != nil {
				notifier.Error(err.Error())
			}
			return nil
		},
	}
	columnsCmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Show up to N rows of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, notifier, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect()

			table := resolveTable(tableName, store)
			if table == "" {
				return fmt.Errorf("table name must be provided with --table")
			}

			req := &models.PreviewRequest{Table: table, Limit: previewLimit}
			if req.Limit <= 0 {
				req.Limit = utils.GetEnvInt("SQLITE_EXPORTER_PREVIEW_ROWS",
					store.Int(settings.KeyTableDisplayRows))
			}

			pf := fetcher.NewPreviewFetcher(db, db.Logger)
			preview, err := pf.Fetch(req.Table, req.Limit)
			if err != nil {
				notifier.Error(err.Error())
				return err
			}

			utils.RenderPreview(os.Stdout, preview)
			notifier.Info(fmt.Sprintf("Previewed %d rows of table %s", len(preview.Rows), table))

			store.Set(settings.KeySelectedTable, table)
			if err := store.Save(); err != nil {
				notifier.Error(err.Error())
			}
			return nil
		},
	}
	previewCmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name")
	previewCmd.Flags().IntVarP(&previewLimit, "limit", "n", 0, "Maximum rows to show (default: SQLITE_EXPORTER_PREVIEW_ROWS or the table_display_rows setting)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a row range into a filtered Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, notifier, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect()

			req := &models.ExportRequest{
				Table:         resolveTable(tableName, store),
				OrderColumn:   orderColumn,
				Start:         startNumber,
				End:           endNumber,
				Keywords:      filter.ParseKeywords(keywords),
				FilterColumns: filterColumns,
				Destination:   excelPath,
			}
			if err := req.Validate(); err != nil {
				notifier.Error(err.Error())
				return err
			}

			if err := runExport(db, req, notifier); err != nil {
				notifier.Error(err.Error())
				return err
			}

			store.Set(settings.KeySelectedTable, req.Table)
			if err := store.Save(); err != nil {
				notifier.Error(err.Error())
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name")
	exportCmd.Flags().Int64Var(&startNumber, "start", 0, "Inclusive range start over the ordering column")
	exportCmd.Flags().Int64Var(&endNumber, "end", 0, "Inclusive range end over the ordering column")
	exportCmd.Flags().StringVar(&orderColumn, "order-column", models.DefaultOrderColumn, "Column used to bound and sort the export")
	exportCmd.Flags().StringVarP(&keywords, "keywords", "k", models.DefaultKeywords, "Comma-separated keyword list")
	exportCmd.Flags().StringSliceVarP(&filterColumns, "filter-column", "f", nil, "Column to restrict to the keyword set (repeatable, max 2)")
	exportCmd.Flags().StringVarP(&excelPath, "out", "o", "", "Destination xlsx path")
	exportCmd.MarkFlagRequired("out")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo database with a populated Cables table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.SetupLogging(logLevel)
			notifier := &utils.LogNotifier{Logger: logger}

			if dbPath == "" {
				return fmt.Errorf("database path must be provided with --db")
			}

			sd := seeder.NewSeeder(logger)
			if err := sd.Seed(dbPath, seedRecords); err != nil {
				notifier.Error(err.Error())
				return err
			}

			notifier.Info(fmt.Sprintf("Seeded demo database at %s", dbPath))
			return nil
		},
	}
	seedCmd.Flags().IntVarP(&seedRecords, "records", "r", seeder.DefaultRecords, "Number of rows to generate")

	rootCmd.AddCommand(tablesCmd, columnsCmd, previewCmd, exportCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveTable falls back to the last-used table from the settings store
func resolveTable(flag string, store *settings.Store) string {
	if flag != "" {
		return flag
	}
	return store.String(settings.KeySelectedTable)
}

// runExport drives the full export pipeline: schema check, range fetch,
// workbook materialization, keyword filtering, final save.
func runExport(db *connector.DatabaseConnector, req *models.ExportRequest, notifier models.Notifier) error {
	logger := db.Logger

	// The filter columns must exist in the live schema
	si := inspector.NewSchemaInspector(db, logger)
	if err := si.EnsureColumns(req.Table, req.FilterColumns); err != nil {
		return err
	}

	rf := fetcher.NewRowRangeFetcher(db, logger)
	result, err := rf.FetchRange(req.Table, req.OrderColumn, req.Start, req.End)
	if err != nil {
		return err
	}

	ww := exporter.NewWorkbookWriter(logger)
	workbook, err := ww.Build(result.Columns, result.Rows)
	if err != nil {
		return err
	}
	defer workbook.Close()

	// First save materializes the data
	if err := ww.Save(workbook, req.Destination); err != nil {
		return err
	}

	// The filter range is workbook metadata, so a second save follows;
	// the value-list criteria then go into the saved file itself
	kf := filter.NewKeywordFilter(logger)
	criteria := kf.BuildCriteria(result.Columns, req.Keywords, req.FilterColumns)
	if err := kf.Apply(workbook, exporter.SheetName, result.Columns, len(result.Rows)); err != nil {
		return err
	}
	if err := ww.Save(workbook, req.Destination); err != nil {
		return err
	}
	if err := kf.WriteCriteria(req.Destination, criteria); err != nil {
		return err
	}

	utils.PrintExportSummary(req, len(result.Rows))
	notifier.Info(fmt.Sprintf("Data imported and filtered successfully! Exported %d records.", len(result.Rows)))
	return nil
}
