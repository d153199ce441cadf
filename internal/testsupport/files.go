package testsupport

import (
	"testing"

	"gloss/internal/assetgraph"
	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/records"
)

// WriteGraph serializes a container to path and fails the test on error.
func WriteGraph(t testing.TB, path string, container *memgraph.Container) {
	t.Helper()

	if err := container.WriteFile(path); err != nil {
		t.Fatalf("write container %s: %v", path, err)
	}
}

// WriteCorpus saves entries as a JSON corpus file and fails the test on error.
func WriteCorpus(t testing.TB, path string, entries []records.Entry) {
	t.Helper()

	if err := records.Save(path, entries); err != nil {
		t.Fatalf("write corpus %s: %v", path, err)
	}
}

// TextObject builds a MonoBehaviour carrying a single text field, wired
// to an owning GameObject reference.
func TextObject(pathID, ownerID int64, script, text string) *memgraph.Object {
	return memgraph.NewObject(pathID, assetgraph.KindMonoBehaviour, script, assetgraph.Tree{
		"m_GameObject": map[string]any{"m_PathID": ownerID},
		"m_text":       text,
	})
}
