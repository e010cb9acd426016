package graph

import (
	"fmt"

	"github.com/muninn-kg/muninn/internal/logseq"
)

// ConnectBlock adds the block's edges: to its parent block, to the File
// node of every tag, and to the File node of every wikilink. The policy is
// strict: a tag or wikilink naming a page that was never ingested fails
// the whole edge set.
func (g *Graph) ConnectBlock(b *logseq.Block) error {
	self, ok := g.NodeByID(b.ID)
	if !ok {
		return fmt.Errorf("block %s: %w", b.ID, ErrNodeMissing)
	}

	if b.ParentBlockID != nil {
		parent, ok := g.NodeByID(*b.ParentBlockID)
		if !ok {
			return fmt.Errorf("block %s: parent block %s: %w", b.ID, *b.ParentBlockID, ErrTargetMissing)
		}
		g.AddEdge(self, parent)
	}

	return g.connectPages(self, b.Tags, b.Wikilinks, "block "+b.ID)
}

// ConnectFile adds the file's edges: to the File node of every tag
// (tag-as-page) and of every wikilink, under the same strict policy.
func (g *Graph) ConnectFile(f *logseq.File) error {
	self, ok := g.NodeByID(f.ID)
	if !ok {
		return fmt.Errorf("file %s: %w", f.Title, ErrNodeMissing)
	}
	return g.connectPages(self, f.Tags, f.Wikilinks, "file "+f.Title)
}

func (g *Graph) connectPages(self int, tags, wikilinks []string, entity string) error {
	for _, tag := range tags {
		target, ok := g.FileByTitle(tag)
		if !ok {
			return fmt.Errorf("%s: tag %q: %w", entity, tag, ErrTargetMissing)
		}
		g.AddEdge(self, target)
	}
	for _, link := range wikilinks {
		target, ok := g.FileByTitle(link)
		if !ok {
			return fmt.Errorf("%s: wikilink %q: %w", entity, link, ErrTargetMissing)
		}
		g.AddEdge(self, target)
	}
	return nil
}
