package logseq

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark/ast"

	"github.com/muninn-kg/muninn/internal/parser"
)

// Namespace separator used in page filenames: "a___b.md" is the page "a/b".
const namespaceSeparator = "___"

// File is one ingested page and its extracted annotations.
type File struct {
	ID         string            `json:"id"`
	Path       string            `json:"path"`
	Title      string            `json:"title"`
	Properties map[string]string `json:"properties"`
	Wikilinks  []string          `json:"wikilinks"`
	Tags       []string          `json:"tags"`
}

// BuildFile produces one File entity from a parsed document. The id is
// freshly generated on every build; page properties and declared tags are
// read from the text preceding the first list, inline wikilinks and tags
// from the whole body.
func BuildFile(doc *parser.Document) (*File, error) {
	if doc.Root.FirstChild() == nil {
		return nil, fmt.Errorf("%s: document has no content", doc.Path)
	}

	topText := topText(doc)
	content := string(doc.Source)

	properties, err := ExtractProperties(topText)
	if err != nil {
		return nil, err
	}
	delete(properties, "title")
	delete(properties, "tags")

	inlineTags, err := ExtractTags(content)
	if err != nil {
		return nil, err
	}
	tags := append(DeclaredTags(topText), inlineTags...)

	return &File{
		ID:         uuid.NewString(),
		Path:       doc.Path,
		Title:      TitleFromPath(doc.Path),
		Properties: properties,
		Wikilinks:  ExtractWikilinks(content),
		Tags:       tags,
	}, nil
}

// TitleFromPath derives a page title from its filename: the extension is
// stripped and the namespace separator becomes "/".
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(name, namespaceSeparator, "/")
}

// topText concatenates the text leaves of the paragraph-level children
// preceding the document's first list. Page-level property and tags
// declarations are only looked for here, never in the body.
func topText(doc *parser.Document) string {
	var sb strings.Builder
	for child := doc.Root.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() == ast.KindList || child.Kind() == ast.KindListItem {
			break
		}
		if child.Kind() != ast.KindParagraph && child.Kind() != ast.KindTextBlock {
			continue
		}
		appendTextLeaves(&sb, child, doc.Source)
	}
	return sb.String()
}

func appendTextLeaves(sb *strings.Builder, n ast.Node, source []byte) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
			continue
		}
		appendTextLeaves(sb, child, source)
	}
}
