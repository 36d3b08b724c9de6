package fileid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	id1 := ForFile("/seed/memo.json")
	id2 := ForFile("/seed/memo.json")
	if id1 != id2 {
		t.Errorf("same path should give same ID: %q vs %q", id1, id2)
	}
	if !strings.HasPrefix(id1, prefix) {
		t.Errorf("ID should have prefix %q: got %q", prefix, id1)
	}
	if ForFile("/seed/other.json") == id1 {
		t.Error("different paths should give different IDs")
	}
}

func TestForFile_normalized(t *testing.T) {
	id := ForFile("/seed/memo.json")
	for _, p := range []string{"/seed/./memo.json", "/seed/sub/../memo.json"} {
		if got := ForFile(p); got != id {
			t.Errorf("ForFile(%q) = %q, want %q", p, got, id)
		}
	}
}

func TestForFile_relativeResolvesAgainstWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if ForFile("memo.json") != ForFile(filepath.Join(wd, "memo.json")) {
		t.Error("relative and absolute forms of the same path should match")
	}
}

func TestForEntry(t *testing.T) {
	p := "/seed/batch.json"
	e0, e1 := ForEntry(p, 0), ForEntry(p, 1)
	if e0 == e1 {
		t.Error("entries of one file should differ")
	}
	if e0 == ForFile(p) {
		t.Error("entry id should differ from file id")
	}
	if !strings.HasPrefix(e0, ForFile(p)) {
		t.Errorf("entry id %q should extend file id", e0)
	}
	if ForEntry(p, 1) != e1 {
		t.Error("entry ids should be deterministic")
	}
}
