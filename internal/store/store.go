// Package store persists uploaded case tables as plain TEXT-column tables,
// one table per upload. Cell typing stays in the dataset layer; the store
// round-trips text and leaves coercion to readers.
package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"caselens-mcp/internal/dataset"
)

// protectedTables may never be dropped through the store.
var protectedTables = map[string]bool{
	"users":       true,
	"permissions": true,
}

var identPattern = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

// Store wraps one SQL connection. Driver is "sqlite3" or "mysql"; quoting
// and catalog queries differ between the two.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects and pings. For sqlite3 the DSN is a file path.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}
	log.Info().Str("driver", driver).Msg("store connected")
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// quoteIdent validates and quotes a table or column identifier. Table and
// column names come from user uploads, so placeholder binding is not an
// option and validation is.
func (s *Store) quoteIdent(name string) (string, error) {
	if name == "" || !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	if s.driver == "mysql" {
		return "`" + name + "`", nil
	}
	return `"` + name + `"`, nil
}

// SaveDataset replaces the named table with the dataset's contents. All
// columns are stored as TEXT; nulls survive the round trip.
func (s *Store) SaveDataset(name string, ds *dataset.Dataset) error {
	if len(ds.Columns) == 0 {
		return fmt.Errorf("dataset %q has no columns", name)
	}
	table, err := s.quoteIdent(name)
	if err != nil {
		return err
	}

	cols := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		q, err := s.quoteIdent(c)
		if err != nil {
			return err
		}
		cols[i] = q + " TEXT"
	}

	if _, err := s.db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
		return fmt.Errorf("dropping old table %s: %w", name, err)
	}
	if _, err := s.db.Exec("CREATE TABLE " + table + " (" + strings.Join(cols, ", ") + ")"); err != nil {
		return fmt.Errorf("creating table %s: %w", name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?,", len(ds.Columns)), ",") + ")"
	stmt, err := tx.Prepare("INSERT INTO " + table + " VALUES " + placeholders)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range ds.Rows {
		args := make([]interface{}, len(ds.Columns))
		for i, col := range ds.Columns {
			v := row.Get(col)
			if v.IsNull() {
				args[i] = nil
			} else {
				args[i] = v.String()
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Str("table", name).Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).Msg("dataset saved")
	return nil
}

// LoadDataset reads a whole table back into memory, re-coercing cell text
// the same way the spreadsheet reader does.
func (s *Store) LoadDataset(name string) (*dataset.Dataset, error) {
	table, err := s.quoteIdent(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var raw [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scanning row of %s: %w", name, err)
		}
		rec := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		raw = append(raw, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dataset.FromRows(name, columns, raw), nil
}

// ListTables lists the user tables in the catalog, excluding the protected
// system tables.
func (s *Store) ListTables() ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	if s.driver == "mysql" {
		query = "SHOW TABLES"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if protectedTables[name] {
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DropTable removes an uploaded table. Protected tables are refused.
func (s *Store) DropTable(name string) error {
	if protectedTables[name] {
		return fmt.Errorf("table %q is protected", name)
	}
	table, err := s.quoteIdent(name)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
		return fmt.Errorf("dropping table %s: %w", name, err)
	}
	log.Info().Str("table", name).Msg("table dropped")
	return nil
}
