package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/muninn-kg/muninn/internal/logseq"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS files (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS blocks (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS files_fts USING fts5(
	id UNINDEXED,
	title,
	body
);

CREATE VIRTUAL TABLE IF NOT EXISTS blocks_fts USING fts5(
	id UNINDEXED,
	body
);
`

// SQLite is the local document store backend. Entities are stored as JSON
// documents keyed by id, with FTS5 shadow tables for full-text search.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the store database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// UpsertFiles writes files keyed by id, replacing existing documents.
func (s *SQLite) UpsertFiles(ctx context.Context, files []*logseq.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for _, f := range files {
		doc, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("sqlite: encode file %s: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (id, doc) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, f.ID, string(doc)); err != nil {
			return fmt.Errorf("sqlite: upsert file %s: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM files_fts WHERE id = ?`, f.ID); err != nil {
			return fmt.Errorf("sqlite: refresh file fts %s: %w", f.ID, err)
		}
		body := f.Title + " " + strings.Join(f.Tags, " ") + " " + strings.Join(f.Wikilinks, " ")
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files_fts (id, title, body) VALUES (?, ?, ?)`, f.ID, f.Title, body); err != nil {
			return fmt.Errorf("sqlite: index file %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

// UpsertBlocks writes blocks keyed by id, replacing existing documents.
func (s *SQLite) UpsertBlocks(ctx context.Context, blocks []*logseq.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for _, b := range blocks {
		doc, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("sqlite: encode block %s: %w", b.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blocks (id, doc) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, b.ID, string(doc)); err != nil {
			return fmt.Errorf("sqlite: upsert block %s: %w", b.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocks_fts WHERE id = ?`, b.ID); err != nil {
			return fmt.Errorf("sqlite: refresh block fts %s: %w", b.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blocks_fts (id, body) VALUES (?, ?)`, b.ID, b.Content); err != nil {
			return fmt.Errorf("sqlite: index block %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// GetFile reads one file document by id.
func (s *SQLite) GetFile(ctx context.Context, id string) (*logseq.File, error) {
	var f logseq.File
	if err := s.getDocument(ctx, "files", id, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetBlock reads one block document by id.
func (s *SQLite) GetBlock(ctx context.Context, id string) (*logseq.Block, error) {
	var b logseq.Block
	if err := s.getDocument(ctx, "blocks", id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *SQLite) getDocument(ctx context.Context, table, id string, dst any) error {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM `+table+` WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("sqlite: get %s from %s: %w", id, table, err)
	}
	return json.Unmarshal([]byte(doc), dst)
}

// SearchFiles runs an FTS5 query over indexed file titles and tags.
func (s *SQLite) SearchFiles(ctx context.Context, query string, limit int) ([]*logseq.File, error) {
	ids, err := s.searchIDs(ctx, "files_fts", query, limit)
	if err != nil {
		return nil, err
	}
	files := make([]*logseq.File, 0, len(ids))
	for _, id := range ids {
		f, err := s.GetFile(ctx, id)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// SearchBlocks runs an FTS5 query over indexed block content.
func (s *SQLite) SearchBlocks(ctx context.Context, query string, limit int) ([]*logseq.Block, error) {
	ids, err := s.searchIDs(ctx, "blocks_fts", query, limit)
	if err != nil {
		return nil, err
	}
	blocks := make([]*logseq.Block, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBlock(ctx, id)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (s *SQLite) searchIDs(ctx context.Context, table, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM `+table+` WHERE `+table+` MATCH ? ORDER BY rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: search %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
