package loader

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/docstore/internal/fileid"
	"github.com/hyperjump/docstore/internal/models"
	"github.com/hyperjump/docstore/internal/store"
	"github.com/hyperjump/docstore/internal/watcher"
)

func TestWatchedSeedDirectory(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.json")
	writeFile(t, existing, memoJSON)

	repo := store.NewSynchronized(store.New())
	l := New(repo, []string{".json"}, nil)
	w := watcher.New([]string{dir}, true, l.Accepts, func(path string) {
		// A file caught mid-write fails to decode; its write event reloads it.
		_, _ = l.LoadFile(path)
	}, watcher.WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.SyncExistingFiles()

	if _, ok := repo.FindByID(fileid.ForFile(existing)); !ok {
		t.Fatal("existing seed file should be loaded on sync")
	}

	added := filepath.Join(dir, "nested", "batch.json")
	writeFile(t, added, batchJSON)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	deadline := time.Now().Add(3 * time.Second)
	for repo.Len() < 3 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if repo.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", repo.Len())
	}
	if _, ok := repo.FindByID("fixed"); !ok {
		t.Error("document with explicit id should keep it")
	}
	if _, ok := repo.FindByID(fileid.ForEntry(added, 1)); !ok {
		t.Error("array entry without id should get an entry id")
	}

	got := repo.Search(models.NewSearchRequest().WithAuthorIDs("u2"))
	if len(got) != 1 || got[0].Content != "standup" {
		t.Errorf("search by author u2 = %+v", got)
	}
}
