package indexer

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/muninn-kg/muninn/internal/graph"
	"github.com/muninn-kg/muninn/internal/logseq"
	"github.com/muninn-kg/muninn/internal/store"
	"github.com/muninn-kg/muninn/internal/testutil"
)

func newTestIndexer(t *testing.T, opts Options) (*Indexer, *store.SQLite) {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, log.New(io.Discard), opts), st
}

func TestRunIndexesBlockHierarchy(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/tests___parsing___blocks___hierarchy.md", ""+
		"- Lorem\n"+
		"  - Ipsum\n"+
		"  - Dolor\n"+
		"    - Sit\n"+
		"- Amet\n")

	ix, st := newTestIndexer(t, Options{IndexBlocks: true})
	ctx := context.Background()

	stats, err := ix.Run(ctx, tg.Path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Files != 1 || stats.Blocks != 5 {
		t.Fatalf("stats=%+v, want 1 file and 5 blocks", stats)
	}

	// Re-read every block from the store and key them by content.
	byContent := make(map[string]*logseq.Block)
	for _, node := range ix.Graph().Nodes() {
		if node.Kind != graph.KindBlock {
			continue
		}
		b, err := st.GetBlock(ctx, node.ID)
		if err != nil {
			t.Fatalf("GetBlock %s: %v", node.ID, err)
		}
		byContent[b.Content] = b
	}
	if len(byContent) != 5 {
		t.Fatalf("stored %d distinct blocks, want 5", len(byContent))
	}

	lorem := byContent["- Lorem"]
	if lorem == nil || lorem.ParentBlockID != nil {
		t.Fatalf("Lorem=%+v, want a top-level block", lorem)
	}
	for _, content := range []string{"- Ipsum", "- Dolor"} {
		b := byContent[content]
		if b == nil || b.ParentBlockID == nil || *b.ParentBlockID != lorem.ID {
			t.Fatalf("%s=%+v, want parent Lorem", content, b)
		}
	}
	dolor := byContent["- Dolor"]
	sit := byContent["- Sit"]
	if sit == nil || sit.ParentBlockID == nil || *sit.ParentBlockID != dolor.ID {
		t.Fatalf("Sit=%+v, want parent Dolor", sit)
	}
	amet := byContent["- Amet"]
	if amet == nil || amet.ParentBlockID != nil {
		t.Fatalf("Amet=%+v, want a top-level block", amet)
	}
	for _, b := range byContent {
		if b.FileID != lorem.FileID {
			t.Fatalf("block %q has file_id %q, want %q", b.Content, b.FileID, lorem.FileID)
		}
	}
}

func TestRunResolvesForwardReferences(t *testing.T) {
	tg := testutil.NewGraph(t)
	// a.md references b, which the walk only reaches afterwards.
	tg.WritePage("pages/a.md", "- see [[b]]\n")
	tg.WritePage("pages/b.md", "- see [[a]]\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: true})
	stats, err := ix.Run(context.Background(), tg.Path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	g := ix.Graph()
	aIdx, ok := g.FileByTitle("a")
	if !ok {
		t.Fatal("page a has no node")
	}
	bIdx, ok := g.FileByTitle("b")
	if !ok {
		t.Fatal("page b has no node")
	}
	if !g.HasEdge(aIdx, bIdx) {
		t.Fatal("expected a file-to-file wikilink edge between a and b")
	}
	// Each page's single block links to the other page too.
	// 2 file nodes + 2 block nodes; edges: a-b, blockA-b, blockB-a.
	if stats.Nodes != 4 {
		t.Fatalf("nodes=%d, want 4", stats.Nodes)
	}
	if stats.Edges != 3 {
		t.Fatalf("edges=%d, want 3", stats.Edges)
	}
}

func TestRunTagAsPageEdges(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/project.md", "- the project page\n")
	tg.WritePage("pages/journal.md", "tags:: project\n\n- worked on #project\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: true})
	if _, err := ix.Run(context.Background(), tg.Path); err != nil {
		t.Fatalf("Run: %v", err)
	}

	g := ix.Graph()
	journal, _ := g.FileByTitle("journal")
	project, _ := g.FileByTitle("project")
	if !g.HasEdge(journal, project) {
		t.Fatal("expected a tag-as-page edge from journal to project")
	}
}

func TestRunStrictLinkingFailsOnMissingTarget(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/a.md", "- see [[nowhere]]\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: true})
	_, err := ix.Run(context.Background(), tg.Path)
	if !errors.Is(err, graph.ErrTargetMissing) {
		t.Fatalf("err=%v, want ErrTargetMissing", err)
	}
}

func TestRunSkipsMalformedFiles(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/empty.md", "")
	tg.WritePage("pages/good.md", "- fine\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: true})
	stats, err := ix.Run(context.Background(), tg.Path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Files != 1 || stats.Skipped != 1 {
		t.Fatalf("stats=%+v, want 1 indexed and 1 skipped", stats)
	}
}

func TestRunFileOnlyMode(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/a.md", "- a block\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: false})
	stats, err := ix.Run(context.Background(), tg.Path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Blocks != 0 {
		t.Fatalf("blocks=%d, want 0 with block indexing disabled", stats.Blocks)
	}
	if stats.Nodes != 1 {
		t.Fatalf("nodes=%d, want only the file node", stats.Nodes)
	}
}

func TestLinkIsIdempotent(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WritePage("pages/a.md", "- see [[b]]\n")
	tg.WritePage("pages/b.md", "- plain\n")

	ix, _ := newTestIndexer(t, Options{IndexBlocks: true})
	stats, err := ix.Run(context.Background(), tg.Path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := ix.Link(context.Background()); err != nil {
		t.Fatalf("second Link: %v", err)
	}
	if got := ix.Graph().EdgeCount(); got != stats.Edges {
		t.Fatalf("edges=%d after relinking, want %d", got, stats.Edges)
	}
}
