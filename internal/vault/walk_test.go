package vault

import (
	"sort"
	"testing"

	"github.com/muninn-kg/muninn/internal/testutil"
)

func TestWalkMarkdownFiles(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WriteFile("pages/one.md", "- one\n")
	tg.WriteFile("pages/nested/two.md", "- two\n")
	tg.WriteFile("pages/ignored.txt", "not markdown")
	tg.WriteFile("logseq/config.edn", "{}")
	tg.WriteFile("logseq/bak/page.md", "- stale backup\n")
	tg.WriteFile(".trash/gone.md", "- deleted\n")

	var seen []string
	err := WalkMarkdownFiles(tg.Path, nil, func(result WalkResult) error {
		if result.Err != nil {
			t.Fatalf("unexpected per-file error for %s: %v", result.RelativePath, result.Err)
		}
		seen = append(seen, result.RelativePath)
		if result.Document == nil {
			t.Fatalf("missing document for %s", result.RelativePath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	sort.Strings(seen)
	want := []string{"pages/nested/two.md", "pages/one.md"}
	if len(seen) != len(want) {
		t.Fatalf("walked %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("walked %v, want %v", seen, want)
		}
	}
}

func TestWalkMarkdownFilesExcludes(t *testing.T) {
	tg := testutil.NewGraph(t)
	tg.WriteFile("pages/keep.md", "- keep\n")
	tg.WriteFile("archive/skip.md", "- skip\n")

	var seen []string
	err := WalkMarkdownFiles(tg.Path, []string{"archive"}, func(result WalkResult) error {
		seen = append(seen, result.RelativePath)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(seen) != 1 || seen[0] != "pages/keep.md" {
		t.Fatalf("walked %v, want only pages/keep.md", seen)
	}
}
