// Package catalog persists the fabrics and cutting tables a disposition
// can be configured from.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/piwi3910/FabricCut/internal/model"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS fabric (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		manufacturer TEXT NOT NULL DEFAULT '',
		width INTEGER NOT NULL,
		code TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS cutting_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		width INTEGER NOT NULL,
		length INTEGER NOT NULL
	)`,
}

// Store is a SQLite backed catalog.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate catalog: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateFabric validates and inserts a fabric, returning it with its ID.
func (s *Store) CreateFabric(f model.Fabric) (model.Fabric, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Fabric{}, err
	}
	res, err := s.db.Exec("INSERT INTO fabric (name, manufacturer, width, code) VALUES (?, ?, ?, ?)",
		f.Name, f.Manufacturer, f.Width, f.Code)
	if err != nil {
		return model.Fabric{}, fmt.Errorf("failed to create fabric: %w", err)
	}
	if f.ID, err = res.LastInsertId(); err != nil {
		return model.Fabric{}, fmt.Errorf("failed to create fabric: %w", err)
	}
	return f, nil
}

// Fabric returns a fabric by ID.
func (s *Store) Fabric(id int64) (model.Fabric, error) {
	var f model.Fabric
	err := s.db.QueryRow("SELECT id, name, manufacturer, width, code FROM fabric WHERE id=?", id).
		Scan(&f.ID, &f.Name, &f.Manufacturer, &f.Width, &f.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fabric{}, fmt.Errorf("fabric %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Fabric{}, fmt.Errorf("failed to fetch fabric %d: %w", id, err)
	}
	return f, nil
}

// Fabrics lists all fabrics ordered by name.
func (s *Store) Fabrics() ([]model.Fabric, error) {
	rows, err := s.db.Query("SELECT id, name, manufacturer, width, code FROM fabric ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list fabrics: %w", err)
	}
	defer rows.Close()

	fabrics := []model.Fabric{}
	for rows.Next() {
		var f model.Fabric
		if err := rows.Scan(&f.ID, &f.Name, &f.Manufacturer, &f.Width, &f.Code); err != nil {
			return nil, fmt.Errorf("failed to list fabrics: %w", err)
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

// UpdateFabric validates and stores every field of f.
func (s *Store) UpdateFabric(f model.Fabric) (model.Fabric, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Fabric{}, err
	}
	res, err := s.db.Exec("UPDATE fabric SET name=?, manufacturer=?, width=?, code=? WHERE id=?",
		f.Name, f.Manufacturer, f.Width, f.Code, f.ID)
	if err != nil {
		return model.Fabric{}, fmt.Errorf("failed to update fabric %d: %w", f.ID, err)
	}
	if err := requireOneRow(res, "fabric", f.ID); err != nil {
		return model.Fabric{}, err
	}
	return f, nil
}

// DeleteFabric removes a fabric and returns what was deleted.
func (s *Store) DeleteFabric(id int64) (model.Fabric, error) {
	f, err := s.Fabric(id)
	if err != nil {
		return model.Fabric{}, err
	}
	if _, err := s.db.Exec("DELETE FROM fabric WHERE id=?", id); err != nil {
		return model.Fabric{}, fmt.Errorf("failed to delete fabric %d: %w", id, err)
	}
	return f, nil
}

// CreateCuttingTable validates and inserts a cutting table.
func (s *Store) CreateCuttingTable(t model.CuttingTable) (model.CuttingTable, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return model.CuttingTable{}, err
	}
	res, err := s.db.Exec("INSERT INTO cutting_table (name, width, length) VALUES (?, ?, ?)",
		t.Name, t.Width, t.Length)
	if err != nil {
		return model.CuttingTable{}, fmt.Errorf("failed to create cutting table: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return model.CuttingTable{}, fmt.Errorf("failed to create cutting table: %w", err)
	}
	return t, nil
}

// CuttingTable returns a cutting table by ID.
func (s *Store) CuttingTable(id int64) (model.CuttingTable, error) {
	var t model.CuttingTable
	err := s.db.QueryRow("SELECT id, name, width, length FROM cutting_table WHERE id=?", id).
		Scan(&t.ID, &t.Name, &t.Width, &t.Length)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CuttingTable{}, fmt.Errorf("cutting table %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.CuttingTable{}, fmt.Errorf("failed to fetch cutting table %d: %w", id, err)
	}
	return t, nil
}

// CuttingTables lists all cutting tables ordered by name.
func (s *Store) CuttingTables() ([]model.CuttingTable, error) {
	rows, err := s.db.Query("SELECT id, name, width, length FROM cutting_table ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list cutting tables: %w", err)
	}
	defer rows.Close()

	tables := []model.CuttingTable{}
	for rows.Next() {
		var t model.CuttingTable
		if err := rows.Scan(&t.ID, &t.Name, &t.Width, &t.Length); err != nil {
			return nil, fmt.Errorf("failed to list cutting tables: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// UpdateCuttingTable validates and stores every field of t.
func (s *Store) UpdateCuttingTable(t model.CuttingTable) (model.CuttingTable, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return model.CuttingTable{}, err
	}
	res, err := s.db.Exec("UPDATE cutting_table SET name=?, width=?, length=? WHERE id=?",
		t.Name, t.Width, t.Length, t.ID)
	if err != nil {
		return model.CuttingTable{}, fmt.Errorf("failed to update cutting table %d: %w", t.ID, err)
	}
	if err := requireOneRow(res, "cutting table", t.ID); err != nil {
		return model.CuttingTable{}, err
	}
	return t, nil
}

// DeleteCuttingTable removes a cutting table and returns what was deleted.
func (s *Store) DeleteCuttingTable(id int64) (model.CuttingTable, error) {
	t, err := s.CuttingTable(id)
	if err != nil {
		return model.CuttingTable{}, err
	}
	if _, err := s.db.Exec("DELETE FROM cutting_table WHERE id=?", id); err != nil {
		return model.CuttingTable{}, fmt.Errorf("failed to delete cutting table %d: %w", id, err)
	}
	return t, nil
}

func requireOneRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
