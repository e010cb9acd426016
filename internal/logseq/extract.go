// Package logseq extracts File and Block entities from parsed Logseq pages.
//
// Annotation grammar (kept compatible with the corpus format):
//
//	inline id:     "id:: " + [a-f0-9-]+
//	property:      [a-z]+ ":: " [a-z]+
//	wikilink:      whitespace + [[target]]   (a leading '#' makes it a tag)
//	tag:           #[[multi word]] or #word, case-insensitive
package logseq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	idRe       = regexp.MustCompile(`id:: ([a-f0-9-]+)`)
	propertyRe = regexp.MustCompile(`([a-z]+):: ([a-z]+)`)
	wikilinkRe = regexp.MustCompile(`\s\[\[([\w\s]+)\]\]`)
	tagRe      = regexp.MustCompile(`(?i)#\[\[([\w\s]+)\]\]|#(\w+)`)
)

// ExtractID returns the inline-declared block id if the text contains an
// "id::" annotation, otherwise a freshly generated one.
func ExtractID(text string) string {
	if m := idRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return uuid.NewString()
}

// ExtractProperties returns all "key:: value" pairs in the text. The "id"
// key is consumed by ExtractID and never appears in the result.
func ExtractProperties(text string) (map[string]string, error) {
	properties := make(map[string]string)
	for _, m := range propertyRe.FindAllStringSubmatch(text, -1) {
		if len(m) != 3 {
			return nil, fmt.Errorf("property match did not decompose into key and value: %q", m)
		}
		key, value := m[1], m[2]
		if key == "id" {
			continue
		}
		properties[key] = value
	}
	return properties, nil
}

// ExtractWikilinks returns wikilink targets in match order, duplicates
// preserved. A bracket link immediately preceded by '#' is a tag, not a
// wikilink: the grammar requires whitespace before "[[".
func ExtractWikilinks(text string) []string {
	var wikilinks []string
	for _, m := range wikilinkRe.FindAllStringSubmatch(text, -1) {
		wikilinks = append(wikilinks, strings.TrimSpace(m[1]))
	}
	return wikilinks
}

// ExtractTags returns inline tags (#word and #[[multi word]]) in document
// order.
func ExtractTags(text string) ([]string, error) {
	var tags []string
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		if len(m) != 3 {
			return nil, fmt.Errorf("tag match did not decompose into its alternatives: %q", m)
		}
		switch {
		case m[1] != "":
			tags = append(tags, m[1])
		case m[2] != "":
			tags = append(tags, m[2])
		default:
			return nil, fmt.Errorf("tag match yielded no capture: %q", m[0])
		}
	}
	return tags, nil
}

// DeclaredTags returns the comma-separated values of a "tags::" line, in
// declaration order. Used for file-level tag extraction over the top text.
func DeclaredTags(topText string) []string {
	var tags []string
	for _, line := range strings.Split(topText, "\n") {
		key, value, found := strings.Cut(line, "::")
		if !found || strings.TrimSpace(key) != "tags" {
			continue
		}
		for _, v := range strings.Split(value, ",") {
			tags = append(tags, strings.TrimSpace(v))
		}
	}
	return tags
}
