package seeder

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/jaswdr/faker"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// DefaultTable is the table the seeder creates.
const DefaultTable = "Cables"

// DefaultRecords is how many rows a seeded table gets by default.
const DefaultRecords = 50

var cableTypes = []string{"VIDEO", "AUDIO", "JF", "NETWORK", "POWER", "CONTROL"}

var signalTypes = []string{"HD-SDI", "AES", "ANALOG", "CAT6", "FIBER", "XLR"}

// Seeder builds a demo database so the exporter can be exercised without
// a production file. The generated table carries the conventional NUMBER
// ordering column plus keyword-friendly signal columns.
type Seeder struct {
	Faker  faker.Faker
	Logger *logrus.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(logger *logrus.Logger) *Seeder {
	return &Seeder{
		Faker:  faker.New(),
		Logger: logger,
	}
}

// Columns returns the column names of the seeded table, in order.
func (s *Seeder) Columns() []string {
	return []string{"NUMBER", "TYPE", "SIGNAL", "SOURCE", "DESTINATION", "LENGTH_M", "NOTES"}
}

// Rows generates count fake cable rows with NUMBER running 1..count.
func (s *Seeder) Rows(count int) [][]interface{} {
	rows := make([][]interface{}, 0, count)
	for i := 1; i <= count; i++ {
		var notes interface{}
		// Leave some notes NULL so exports exercise empty cells
		if i%7 != 0 {
			notes = s.Faker.Lorem().Sentence(4)
		}

		rows = append(rows, []interface{}{
			int64(i),
			cableTypes[s.Faker.IntBetween(0, len(cableTypes)-1)],
			signalTypes[s.Faker.IntBetween(0, len(signalTypes)-1)],
			fmt.Sprintf("RACK-%02d", s.Faker.IntBetween(1, 20)),
			fmt.Sprintf("PANEL-%02d", s.Faker.IntBetween(1, 40)),
			float64(s.Faker.IntBetween(1, 500)) / 10.0,
			notes,
		})
	}
	return rows
}

// Seed creates (or replaces) a demo database at path with one populated
// table, inserted in a single transaction.
func (s *Seeder) Seed(path string, count int) error {
	if count <= 0 {
		count = DefaultRecords
	}

	// A seed always starts from a fresh file
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &models.ConnectionError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return &models.ConnectionError{Path: path, Err: err}
	}
	defer db.Close()

	createStmt := fmt.Sprintf(`
		CREATE TABLE %s (
			NUMBER INTEGER PRIMARY KEY,
			TYPE TEXT NOT NULL,
			SIGNAL TEXT NOT NULL,
			SOURCE TEXT NOT NULL,
			DESTINATION TEXT NOT NULL,
			LENGTH_M REAL NOT NULL,
			NOTES TEXT
		)`, DefaultTable)
	if _, err := db.Exec(createStmt); err != nil {
		s.Logger.Errorf("Error creating table %s: %v", DefaultTable, err)
		return err
	}

	// Insert all rows in one transaction
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (NUMBER, TYPE, SIGNAL, SOURCE, DESTINATION, LENGTH_M, NOTES) VALUES (?, ?, ?, ?, ?, ?, ?)",
		DefaultTable))
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range s.Rows(count) {
		if _, err := stmt.Exec(row...); err != nil {
			s.Logger.Errorf("Error inserting seed row: %v", err)
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return err
	}

	s.Logger.Infof("Seeded %d rows into table %s at %s", count, DefaultTable, path)
	return nil
}
