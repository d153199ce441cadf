// Package application re-applies persisted translation records onto a
// loaded container through the processor registry.
package application

import (
	"log/slog"

	"gloss/internal/assetgraph"
	"gloss/internal/contextkey"
	"gloss/internal/hierarchy"
	"gloss/internal/logging"
	"gloss/internal/processors"
	"gloss/internal/records"
)

// Result summarizes one application pass.
type Result struct {
	// Applied counts objects actually changed.
	Applied int
	// SkippedRecords counts records dropped before the pass: empty or
	// undecodable context, or no translation.
	SkippedRecords int
	// Failed counts objects whose processing raised an error.
	Failed int
}

// Run groups usable records by identity and patches every matching
// live object. Record-level decode failures skip only that record;
// object-level failures skip only that object.
func Run(container assetgraph.Container, entries []records.Entry, registry *processors.Registry, logger *slog.Logger) Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "application"))

	result := Result{}
	groups := make(map[contextkey.Identity][]records.Entry)
	pathIDs := make(map[int64]struct{})

	for _, entry := range entries {
		if entry.Context == "" || !entry.Translated() {
			result.SkippedRecords++
			continue
		}
		key, err := contextkey.Parse(entry.Context)
		if err != nil {
			logger.Warn("could not parse record context",
				logging.String("record_key", entry.Key),
				logging.Error(err))
			result.SkippedRecords++
			continue
		}
		identity := key.Identity()
		groups[identity] = append(groups[identity], entry)
		pathIDs[identity.PathID] = struct{}{}
	}
	if len(groups) == 0 {
		logger.Info("no applicable records, skipping apply")
		return result
	}

	idx := hierarchy.Build(container)

	for _, obj := range container.Objects() {
		if obj.Kind() != assetgraph.KindMonoBehaviour {
			continue
		}
		if _, hit := pathIDs[obj.PathID()]; !hit {
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

		// The owner id comes from the object's own field tree, never
		// trusted from the file.
		group, ok := groups[contextkey.Identity{
			PathID:  view.PathID,
			Script:  view.Script,
			OwnerID: view.OwnerID,
		}]
		if !ok {
			continue
		}
		processor, ok := registry.Resolve(view.Script)
		if !ok {
			continue
		}

		changed, err := processor.Apply(view, group)
		if err != nil {
			logger.Warn("failed to process object",
				logging.Int64(logging.FieldPathID, obj.PathID()),
				logging.Error(err))
			result.Failed++
			continue
		}
		if !changed {
			continue
		}
		if err := view.Commit(); err != nil {
			logger.Warn("failed to save object",
				logging.Int64(logging.FieldPathID, obj.PathID()),
				logging.Error(err))
			result.Failed++
			continue
		}
		result.Applied++
	}

	logger.Info("applied translations", logging.Int("objects", result.Applied))
	return result
}
