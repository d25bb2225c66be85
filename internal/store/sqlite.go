package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite-backed document store used by the relay server
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	log.Printf("Store initialized at %s", dbPath)
	return &SQLite{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS drawings (
		id TEXT PRIMARY KEY,
		image BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Create(image []byte) (*Document, error) {
	id := uuid.NewString()

	_, err := s.db.Exec(
		"INSERT INTO drawings (id, image) VALUES (?, ?)",
		id, image,
	)
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *SQLite) Get(id string) (*Document, error) {
	row := s.db.QueryRow(
		"SELECT id, image, created_at FROM drawings WHERE id = ?",
		id,
	)

	var doc Document
	err := row.Scan(&doc.ID, &doc.Image, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Returns every stored drawing in insertion order
func (s *SQLite) ListAll() ([]Document, error) {
	rows, err := s.db.Query(
		"SELECT id, image, created_at FROM drawings ORDER BY rowid ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Image, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SQLite) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM drawings").Scan(&count)
	return count, err
}
