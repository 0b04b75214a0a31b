// Package sqlite is the relational side of the converter: it reads tables
// as typed row streams for export and creates/populates tables on import.
// It uses the pure-Go modernc.org/sqlite driver, so the binary stays
// cgo-free.
package sqlite

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/klytics/xlsq/internal/xlsx"
)

// Store wraps one SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open opens the database at path. The file must already exist; opening a
// typo'd path should not silently create an empty database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s — check that the path is correct", path)
	}
	return open(path)
}

// OpenOrCreate opens the database at path, creating it if needed. Import
// into a fresh database is a legitimate use.
func OpenOrCreate(path string) (*Store, error) {
	return open(path)
}

// OpenMemory opens a private in-memory database.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection.
func (s *Store) Close() error { return s.db.Close() }

// Tables lists user tables in creation order, excluding SQLite internals.
func (s *Store) Tables() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReadTable streams a table's rows. The caller owns the returned iterator
// and must Close it.
func (s *Store) ReadTable(name string) ([]string, *RowIter, error) {
	rows, err := s.db.Query("SELECT * FROM " + QuoteIdent(name))
	if err != nil {
		return nil, nil, fmt.Errorf("could not read table %s: %w", name, err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, nil, err
	}
	return cols, &RowIter{rows: rows, width: len(cols)}, nil
}

// RowIter yields one typed cell row per table row.
type RowIter struct {
	rows  *sql.Rows
	width int
}

// Next returns the next row, or (nil, nil) when the table is exhausted.
func (it *RowIter) Next() ([]xlsx.Cell, error) {
	if !it.rows.Next() {
		return nil, it.rows.Err()
	}
	raw := make([]any, it.width)
	ptrs := make([]any, it.width)
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := it.rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	cells := make([]xlsx.Cell, it.width)
	for i, v := range raw {
		cells[i] = toCell(v)
	}
	return cells, nil
}

// Close releases the underlying result set.
func (it *RowIter) Close() error { return it.rows.Close() }

// toCell maps a driver value onto the codec's cell variants. BLOBs have no
// spreadsheet representation, so they are carried as uppercase hex text.
func toCell(v any) xlsx.Cell {
	switch x := v.(type) {
	case nil:
		return xlsx.Null()
	case int64:
		return xlsx.Int64(x)
	case float64:
		return xlsx.Float64(x)
	case string:
		return xlsx.Text(x)
	case []byte:
		return xlsx.Text(strings.ToUpper(hex.EncodeToString(x)))
	case bool:
		if x {
			return xlsx.Int64(1)
		}
		return xlsx.Int64(0)
	default:
		return xlsx.Text(fmt.Sprintf("%v", x))
	}
}

// CreateTable creates an untyped table with the given column names. With
// overwrite set, an existing table of the same name is dropped first;
// otherwise creation is IF NOT EXISTS and existing rows survive.
func (s *Store) CreateTable(name string, columns []string, overwrite bool) error {
	if overwrite {
		if _, err := s.db.Exec("DROP TABLE IF EXISTS " + QuoteIdent(name)); err != nil {
			return fmt.Errorf("could not drop table %s: %w", name, err)
		}
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdent(c)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		QuoteIdent(name), strings.Join(quoted, ", "))
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("could not create table %s: %w", name, err)
	}
	return nil
}

// InsertRows bulk-inserts decoded rows in one transaction. Rows shorter
// than width are padded with NULL, matching the decoder's missing-cell
// rule.
func (s *Store) InsertRows(name string, width int, rows [][]xlsx.Cell) (int, error) {
	if width == 0 || len(rows) == 0 {
		return 0, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", width), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		QuoteIdent(name), placeholders))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	args := make([]any, width)
	for _, row := range rows {
		for i := 0; i < width; i++ {
			if i < len(row) {
				args[i] = toValue(row[i])
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return inserted, fmt.Errorf("could not insert into %s: %w", name, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func toValue(c xlsx.Cell) any {
	switch c.Kind {
	case xlsx.KindInt:
		return c.Int
	case xlsx.KindFloat:
		return c.Float
	case xlsx.KindText:
		return c.Text
	default:
		return nil
	}
}

// QuoteIdent quotes an identifier for SQLite, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
