package testsupport

import (
	"testing"

	"gloss/internal/config"
	"gloss/internal/corpus"
)

// MustOpenStore opens a corpus.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *corpus.Store {
	t.Helper()

	store, err := corpus.Open(cfg.Corpus.DatabasePath)
	if err != nil {
		t.Fatalf("corpus.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
