// Package extraction runs the single-pass text extraction over a
// loaded container and reports identity-key collisions.
package extraction

import (
	"log/slog"
	"strings"

	"gloss/internal/assetgraph"
	"gloss/internal/hierarchy"
	"gloss/internal/logging"
	"gloss/internal/processors"
	"gloss/internal/records"
)

// Collision is one record key shared by two or more extracted entries.
type Collision struct {
	Key      string
	Contexts []string
}

// Result summarizes one extraction pass. Entries keeps every extracted
// record, colliding ones included, in object-enumeration order.
type Result struct {
	Entries    []records.Entry
	Collisions []Collision
	Processed  int
	Failed     int
}

// Run walks every content object in enumeration order, dispatches
// script-backed objects through the registry, and aggregates entries.
// A failing object loses only its own entries: the failure is logged
// with the object's path id and the pass continues.
func Run(container assetgraph.Container, registry *processors.Registry, logger *slog.Logger) Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "extraction"))

	idx := hierarchy.Build(container)
	result := Result{}

	for _, obj := range container.Objects() {
		if obj.Kind() != assetgraph.KindMonoBehaviour {
			continue
		}
		processor, ok := registry.Resolve(obj.ScriptName())
		if !ok {
			continue
		}

		view, err := processors.NewView(obj, idx)
		if err != nil {
			logger.Warn("failed to process object",
				logging.Int64(logging.FieldPathID, obj.PathID()),
				logging.Error(err))
			result.Failed++
			continue
		}
		entries, err := processor.Extract(view)
		if err != nil {
			logger.Warn("failed to process object",
				logging.Int64(logging.FieldPathID, obj.PathID()),
				logging.Error(err))
			result.Failed++
			continue
		}
		result.Entries = append(result.Entries, entries...)
		result.Processed++
	}

	result.Collisions = detectCollisions(result.Entries)
	for _, collision := range result.Collisions {
		logger.Warn("duplicate record key detected",
			logging.String("key", collision.Key),
			logging.Int("entries", len(collision.Contexts)),
			logging.String("contexts", flattenContexts(collision.Contexts)))
	}
	return result
}

// flattenContexts folds each colliding entry's labelled context lines
// into a single attribute value so collisions can be diagnosed from a
// pipeline run's log alone.
func flattenContexts(contexts []string) string {
	flat := make([]string, len(contexts))
	for i, c := range contexts {
		flat[i] = strings.ReplaceAll(c, "\n", ", ")
	}
	return strings.Join(flat, " | ")
}

// detectCollisions groups entries by key and reports every key shared
// by two or more entries, ordered by first occurrence, with all
// colliding contexts attached.
func detectCollisions(entries []records.Entry) []Collision {
	contexts := make(map[string][]string, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, seen := contexts[entry.Key]; !seen {
			order = append(order, entry.Key)
		}
		contexts[entry.Key] = append(contexts[entry.Key], entry.Context)
	}

	var collisions []Collision
	for _, key := range order {
		if group := contexts[key]; len(group) > 1 {
			collisions = append(collisions, Collision{Key: key, Contexts: group})
		}
	}
	return collisions
}
