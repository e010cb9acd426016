// Package indexer drives one ingestion pass over a Logseq graph
// directory: build entities per file, push them to the document store,
// then resolve all graph edges in a deferred linking phase.
package indexer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/muninn-kg/muninn/internal/graph"
	"github.com/muninn-kg/muninn/internal/logseq"
	"github.com/muninn-kg/muninn/internal/parser"
	"github.com/muninn-kg/muninn/internal/store"
	"github.com/muninn-kg/muninn/internal/vault"
)

// Options configures one ingestion pass.
type Options struct {
	// IndexBlocks enables per-block entity extraction in addition to
	// file-level entities.
	IndexBlocks bool

	// Excludes are extra directory names the walker skips.
	Excludes []string

	// OnFile, if set, is called with each file's relative path before it
	// is ingested. Used for progress reporting.
	OnFile func(relativePath string)
}

// Stats summarizes an ingestion pass.
type Stats struct {
	Files   int
	Blocks  int
	Skipped int
	Nodes   int
	Edges   int
}

// Indexer ingests a graph directory into the document store and the
// knowledge graph.
type Indexer struct {
	store  store.Store
	graph  *graph.Graph
	logger *log.Logger
	opts   Options
}

// New creates an Indexer. The store and logger are explicit dependencies;
// there is no process-wide configuration.
func New(st store.Store, logger *log.Logger, opts Options) *Indexer {
	return &Indexer{
		store:  st,
		graph:  graph.New(),
		logger: logger,
		opts:   opts,
	}
}

// Graph returns the knowledge graph built by this pass.
func (ix *Indexer) Graph() *graph.Graph {
	return ix.graph
}

// Run performs a full ingestion pass over root: walk all markdown files,
// ingest each one, then run the linking phase. Files that fail to read,
// parse, or build are logged and skipped; store and linking failures
// abort the pass.
func (ix *Indexer) Run(ctx context.Context, root string) (*Stats, error) {
	stats := &Stats{}

	err := vault.WalkMarkdownFiles(root, ix.opts.Excludes, func(result vault.WalkResult) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if result.Err != nil {
			ix.logger.Warn("skipping file", "path", result.RelativePath, "err", result.Err)
			stats.Skipped++
			return nil
		}

		if ix.opts.OnFile != nil {
			ix.opts.OnFile(result.RelativePath)
		}

		file, batches, err := ix.buildEntities(result.Document)
		if err != nil {
			ix.logger.Warn("skipping file", "path", result.RelativePath, "err", err)
			stats.Skipped++
			return nil
		}

		if err := ix.ingest(ctx, file, batches); err != nil {
			return fmt.Errorf("ingest %s: %w", result.RelativePath, err)
		}

		stats.Files++
		for _, batch := range batches {
			stats.Blocks += len(batch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ix.Link(ctx); err != nil {
		return nil, err
	}

	stats.Nodes = ix.graph.NodeCount()
	stats.Edges = ix.graph.EdgeCount()
	return stats, nil
}

// buildEntities builds the File entity and, when enabled, one block batch
// per top-level list item. Failures here are input errors: the caller
// skips the file and the pass continues.
func (ix *Indexer) buildEntities(doc *parser.Document) (*logseq.File, [][]*logseq.Block, error) {
	file, err := logseq.BuildFile(doc)
	if err != nil {
		return nil, nil, err
	}

	if !ix.opts.IndexBlocks {
		return file, nil, nil
	}

	var batches [][]*logseq.Block
	for _, item := range doc.TopLevelItems() {
		blocks, err := logseq.BuildBlocks(doc, item, file.ID, nil)
		if err != nil {
			return nil, nil, err
		}
		batches = append(batches, blocks)
	}
	return file, batches, nil
}

// ingest inserts bare graph nodes for all of the file's entities, then
// issues the store writes without waiting on each submission and joins
// them at a per-file barrier. Node insertion always precedes any write,
// so every stored entity has its node before linking can run.
func (ix *Indexer) ingest(ctx context.Context, file *logseq.File, batches [][]*logseq.Block) error {
	ix.graph.AddFile(file.ID, file.Title)
	for _, batch := range batches {
		for _, b := range batch {
			ix.graph.AddBlock(b.ID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ix.store.UpsertFiles(gctx, []*logseq.File{file})
	})
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			return ix.store.UpsertBlocks(gctx, batch)
		})
	}
	return g.Wait()
}

// Link is the linking phase: every node's entity is re-read from the
// store and asked to add its edges. Runs only after the whole walk has
// completed, so forward references between pages resolve regardless of
// walk order. Any missing document or edge target aborts the pass.
func (ix *Indexer) Link(ctx context.Context) error {
	for _, node := range ix.graph.Nodes() {
		switch node.Kind {
		case graph.KindBlock:
			block, err := ix.store.GetBlock(ctx, node.ID)
			if err != nil {
				return fmt.Errorf("linking: %w", err)
			}
			if err := ix.graph.ConnectBlock(block); err != nil {
				return fmt.Errorf("linking: %w", err)
			}
		case graph.KindFile:
			file, err := ix.store.GetFile(ctx, node.ID)
			if err != nil {
				return fmt.Errorf("linking: %w", err)
			}
			if err := ix.graph.ConnectFile(file); err != nil {
				return fmt.Errorf("linking: %w", err)
			}
		}
	}
	return nil
}
