package logseq

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/muninn-kg/muninn/internal/parser"
)

// Block is one hierarchical list item and its extracted annotations.
type Block struct {
	ID            string            `json:"id"`
	Content       string            `json:"content"`
	FileID        string            `json:"file_id"`
	ParentBlockID *string           `json:"parent_block_id"`
	Properties    map[string]string `json:"properties"`
	Tags          []string          `json:"tags"`
	Wikilinks     []string          `json:"wikilinks"`
}

// BuildBlocks turns one list item and its subtree into a flat list of
// Blocks: all descendants first, the item's own Block last. parentID is
// nil for top-level items.
func BuildBlocks(doc *parser.Document, item ast.Node, fileID string, parentID *string) ([]*Block, error) {
	if item.Kind() != ast.KindListItem {
		return nil, fmt.Errorf("expected a list item, got %s", item.Kind())
	}

	content, err := itemContent(doc, item)
	if err != nil {
		return nil, err
	}

	id := ExtractID(content)
	properties, err := ExtractProperties(content)
	if err != nil {
		return nil, err
	}
	tags, err := ExtractTags(content)
	if err != nil {
		return nil, err
	}

	var blocks []*Block
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() != ast.KindList {
			continue
		}
		for sub := child.FirstChild(); sub != nil; sub = sub.NextSibling() {
			if sub.Kind() != ast.KindListItem {
				continue
			}
			descendants, err := BuildBlocks(doc, sub, fileID, &id)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, descendants...)
		}
	}

	blocks = append(blocks, &Block{
		ID:            id,
		Content:       content,
		FileID:        fileID,
		ParentBlockID: parentID,
		Properties:    properties,
		Tags:          tags,
		Wikilinks:     ExtractWikilinks(content),
	})
	return blocks, nil
}

// itemContent slices the item's own text span out of the raw source: from
// the item's start offset up to the start of its first nested list, or to
// the item's end offset when it has none.
func itemContent(doc *parser.Document, item ast.Node) (string, error) {
	start, err := parser.NodeStart(item, doc.Source)
	if err != nil {
		return "", fmt.Errorf("list item in %s: %w", doc.Path, err)
	}

	var stop int
	if nested := parser.FirstChildList(item); nested != nil {
		stop, err = parser.NodeStart(nested, doc.Source)
	} else {
		stop, err = parser.NodeStop(item)
	}
	if err != nil {
		return "", fmt.Errorf("list item in %s: %w", doc.Path, err)
	}
	if stop < start {
		return "", fmt.Errorf("list item in %s: inverted span [%d, %d)", doc.Path, start, stop)
	}

	return strings.TrimSpace(string(doc.Source[start:stop])), nil
}
