package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"gloss/internal/records"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImportAndExport(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entries := []records.Entry{
		{Key: "k1", Original: "Sword", Translation: "Schwert", Stage: 1, Context: "ctx1"},
		{Key: "k2", Original: "Shield", Translation: "", Stage: 0, Context: "ctx2"},
	}
	count, err := store.Import(ctx, "level1.json", entries)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d entries, want 2", count)
	}

	exported, err := store.Export(ctx, "level1.json")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("exported %d entries, want 2", len(exported))
	}
	if exported[0].Key != "k1" || exported[0].Translation != "Schwert" {
		t.Fatalf("unexpected first entry: %+v", exported[0])
	}
}

func TestImportEmptyTranslationKeepsExisting(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Import(ctx, "a.json", []records.Entry{
		{Key: "k1", Original: "Sword", Translation: "Schwert", Stage: 1},
	}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	// Re-extraction produces the same key with an empty translation.
	if _, err := store.Import(ctx, "a.json", []records.Entry{
		{Key: "k1", Original: "Sword", Translation: ""},
	}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	exported, err := store.Export(ctx, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(exported) != 1 {
		t.Fatalf("exported %d entries, want 1", len(exported))
	}
	if exported[0].Translation != "Schwert" || exported[0].Stage != 1 {
		t.Fatalf("translation lost on re-import: %+v", exported[0])
	}
}

func TestImportNewTranslationOverwrites(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Import(ctx, "a.json", []records.Entry{
		{Key: "k1", Original: "Sword", Translation: "Schwert", Stage: 1},
	}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := store.Import(ctx, "a.json", []records.Entry{
		{Key: "k1", Original: "Sword", Translation: "Klinge", Stage: 5},
	}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	exported, _ := store.Export(ctx, "")
	if exported[0].Translation != "Klinge" || exported[0].Stage != 5 {
		t.Fatalf("updated translation not stored: %+v", exported[0])
	}
}

func TestImportSkipsEmptyKeys(t *testing.T) {
	store := openStore(t)
	count, err := store.Import(context.Background(), "a.json", []records.Entry{
		{Key: "", Original: "Sword"},
		{Key: "k1", Original: "Shield"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if count != 1 {
		t.Fatalf("imported %d entries, want 1", count)
	}
}

func TestStatsAndSources(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Import(ctx, "b.json", []records.Entry{
		{Key: "k1", Original: "Sword", Translation: "Schwert"},
		{Key: "k2", Original: "Shield"},
	}); err != nil {
		t.Fatalf("import b: %v", err)
	}
	if _, err := store.Import(ctx, "a.json", []records.Entry{
		{Key: "k3", Original: "Potion", Translation: "Trank"},
	}); err != nil {
		t.Fatalf("import a: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Translated != 2 || stats.Sources != 2 {
		t.Fatalf("stats = %+v, want {3 2 2}", stats)
	}

	sources, err := store.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if len(sources) != 2 || sources[0] != "a.json" || sources[1] != "b.json" {
		t.Fatalf("sources = %v", sources)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := store.Import(context.Background(), "a.json", []records.Entry{
		{Key: "k1", Original: "Sword"},
	}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer reopened.Close()
	stats, err := reopened.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 1 {
		t.Fatalf("Total = %d after reopen, want 1", stats.Total)
	}
}
