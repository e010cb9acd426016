// Package store persists File and Block entities in a document store and
// reads them back by id during the linking phase.
//
// Two backends: Meilisearch (remote) and SQLite with FTS5 (local). Both
// guarantee that a document is readable once its upsert call returns,
// which the linking phase relies on.
package store

import (
	"context"
	"errors"

	"github.com/muninn-kg/muninn/internal/logseq"
)

// Collection names. Each entity kind lives in its own collection, keyed
// by the entity's "id" field.
const (
	FilesCollection  = "files"
	BlocksCollection = "blocks"
)

// ErrNotFound indicates the requested document id is not in the store.
var ErrNotFound = errors.New("document not found in store")

// Store is the document store used by the indexer. Upserts are keyed by
// entity id; reads must observe previously completed upserts.
type Store interface {
	UpsertFiles(ctx context.Context, files []*logseq.File) error
	UpsertBlocks(ctx context.Context, blocks []*logseq.Block) error
	GetFile(ctx context.Context, id string) (*logseq.File, error)
	GetBlock(ctx context.Context, id string) (*logseq.Block, error)
	SearchFiles(ctx context.Context, query string, limit int) ([]*logseq.File, error)
	SearchBlocks(ctx context.Context, query string, limit int) ([]*logseq.Block, error)
	Close() error
}
