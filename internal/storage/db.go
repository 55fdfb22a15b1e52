package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"datanorm/internal"
	"datanorm/internal/catalog"
)

type DB struct {
	conn   *sql.DB
	rawDir string
}

func Open(path, rawDir string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn, rawDir: rawDir}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS attachments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  comment TEXT NOT NULL,
  hash TEXT NOT NULL,
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(name)
);
CREATE INDEX IF NOT EXISTS idx_attachments_comment ON attachments(comment);

CREATE TABLE IF NOT EXISTS scans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT NOT NULL,
  status TEXT NOT NULL,
  groupsConsulted INTEGER NOT NULL,
  malformedLines INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// AddAttachment stores the raw file on disk and upserts its row. Equal
// names replace the previous content; the content hash keeps index
// cache invalidation honest.
func (d *DB) AddAttachment(name, comment string, blob []byte) (internal.AttachmentRow, error) {
	sum := sha256.Sum256(blob)
	hash := hex.EncodeToString(sum[:])

	rawRef := filepath.Join(d.rawDir, fmt.Sprintf("%s_%s", hash[:12], filepath.Base(name)))
	if err := os.WriteFile(rawRef, blob, 0o644); err != nil {
		return internal.AttachmentRow{}, err
	}

	_, err := d.conn.Exec(`
INSERT INTO attachments (name, comment, hash, rawRef)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  comment=excluded.comment,
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, name, comment, hash, rawRef)
	if err != nil {
		return internal.AttachmentRow{}, err
	}

	row, err := d.GetAttachmentByName(name)
	if err != nil {
		return internal.AttachmentRow{}, err
	}
	if row == nil {
		return internal.AttachmentRow{}, errors.New("failed to upsert attachment")
	}
	return *row, nil
}

func (d *DB) GetAttachmentByName(name string) (*internal.AttachmentRow, error) {
	var row internal.AttachmentRow
	err := d.conn.QueryRow(`
SELECT id, name, comment, hash, rawRef, createdAt
FROM attachments WHERE name = ?
`, name).Scan(&row.ID, &row.Name, &row.Comment, &row.Hash, &row.RawRef, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) ListAttachments() ([]internal.AttachmentRow, error) {
	rows, err := d.conn.Query(`
SELECT id, name, comment, hash, rawRef, createdAt
FROM attachments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.AttachmentRow
	for rows.Next() {
		var row internal.AttachmentRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Comment, &row.Hash, &row.RawRef, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) RemoveAttachment(name string) error {
	row, err := d.GetAttachmentByName(name)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("attachment not found: %s", name)
	}
	if _, err := d.conn.Exec(`DELETE FROM attachments WHERE name = ?`, name); err != nil {
		return err
	}
	_ = os.Remove(row.RawRef)
	return nil
}

// CatalogFiles implements the resolver's attachment source: every
// stored file with its comment and raw bytes.
func (d *DB) CatalogFiles() ([]catalog.SourceFile, error) {
	rows, err := d.ListAttachments()
	if err != nil {
		return nil, err
	}

	out := make([]catalog.SourceFile, 0, len(rows))
	for _, row := range rows {
		blob, err := os.ReadFile(row.RawRef)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", row.Name, err)
		}
		out = append(out, catalog.SourceFile{Name: row.Name, Comment: row.Comment, Data: blob})
	}
	return out, nil
}

func (d *DB) InsertScan(res internal.Resolution) error {
	_, err := d.conn.Exec(`
INSERT INTO scans (code, status, groupsConsulted, malformedLines)
VALUES (?, ?, ?, ?)
`, res.Code, string(res.Status), res.GroupsConsulted, res.MalformedLines)
	return err
}

func (d *DB) ListScans(limit int) ([]internal.ScanRow, error) {
	rows, err := d.conn.Query(`
SELECT id, code, status, groupsConsulted, malformedLines, createdAt
FROM scans ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ScanRow
	for rows.Next() {
		var row internal.ScanRow
		if err := rows.Scan(&row.ID, &row.Code, &row.Status, &row.Groups, &row.MalformedLines, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
