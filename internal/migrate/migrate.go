// Package migrate merges translation-memory records across schema
// revisions: translations captured under an old corpus revision are
// carried onto freshly extracted records by matching script, path id
// and original text.
package migrate

import (
	"fmt"
	"log/slog"
	"sort"

	"gloss/internal/contextkey"
	"gloss/internal/logging"
	"gloss/internal/records"
)

// Report summarizes one merge for operator review.
type Report struct {
	// Merged counts new entries that received an old translation.
	Merged int
	// DuplicateOldKeys lists lookup keys that appeared more than once
	// in the old corpus; only the first occurrence is used.
	DuplicateOldKeys []string
	// DuplicateNewIdentities lists (script:pathID:gameObjectID) tuples
	// shared by several new entries, with the originals involved.
	DuplicateNewIdentities []IdentityClash
	// UnmatchedOld lists old lookup keys that found no new entry.
	UnmatchedOld []string
	// UnmatchedNew lists new lookup keys that found no old translation,
	// deduplicated and sorted.
	UnmatchedNew []string
}

// IdentityClash is a set of new entries sharing one identity tuple.
type IdentityClash struct {
	Identity  string
	Originals []string
}

// Merge carries translations and stages from oldEntries onto
// newEntries in place and returns the merged slice with a report.
// Entries whose context predates required labels are matched on the
// labels they do have; the lookup key is Script:PathID:original.
func Merge(oldEntries, newEntries []records.Entry, logger *slog.Logger) ([]records.Entry, Report) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "migrate"))

	report := Report{}

	lookup := make(map[string]records.Entry, len(oldEntries))
	for _, entry := range oldEntries {
		key, ok := lookupKey(entry)
		if !ok {
			continue
		}
		if _, dup := lookup[key]; dup {
			report.DuplicateOldKeys = append(report.DuplicateOldKeys, key)
			logger.Warn("duplicate key in old corpus", logging.String("key", key))
			continue
		}
		lookup[key] = entry
	}

	report.DuplicateNewIdentities = findIdentityClashes(newEntries)
	for _, clash := range report.DuplicateNewIdentities {
		logger.Warn("entries share an identity tuple",
			logging.String("identity", clash.Identity),
			logging.Int("entries", len(clash.Originals)))
	}

	merged := make(map[string]struct{})
	unmatchedNew := make(map[string]struct{})
	for i := range newEntries {
		key, ok := lookupKey(newEntries[i])
		if !ok {
			continue
		}
		old, hit := lookup[key]
		if !hit {
			unmatchedNew[key] = struct{}{}
			continue
		}
		newEntries[i].Translation = old.Translation
		newEntries[i].Stage = old.Stage
		merged[key] = struct{}{}
		report.Merged++
	}

	for key := range lookup {
		if _, ok := merged[key]; !ok {
			report.UnmatchedOld = append(report.UnmatchedOld, key)
		}
	}
	sort.Strings(report.UnmatchedOld)

	for key := range unmatchedNew {
		report.UnmatchedNew = append(report.UnmatchedNew, key)
	}
	sort.Strings(report.UnmatchedNew)

	logger.Info("merged translations", logging.Int("entries", report.Merged))
	return newEntries, report
}

// lookupKey builds the cross-revision matching key. It reads labels
// leniently because old-revision contexts may omit GameObjectID.
func lookupKey(entry records.Entry) (string, bool) {
	labels := contextkey.Labels(entry.Context)
	script := labels[contextkey.LabelScript]
	pathID := labels[contextkey.LabelPathID]
	if script == "" || pathID == "" || entry.Original == "" {
		return "", false
	}
	return script + ":" + pathID + ":" + entry.Original, true
}

func findIdentityClashes(entries []records.Entry) []IdentityClash {
	seen := make(map[string][]string)
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels := contextkey.Labels(entry.Context)
		script := labels[contextkey.LabelScript]
		pathID := labels[contextkey.LabelPathID]
		ownerID := labels[contextkey.LabelOwnerID]
		if script == "" || pathID == "" || ownerID == "" {
			continue
		}
		identity := fmt.Sprintf("%s:%s:%s", script, pathID, ownerID)
		if _, ok := seen[identity]; !ok {
			order = append(order, identity)
		}
		seen[identity] = append(seen[identity], entry.Original)
	}

	var clashes []IdentityClash
	for _, identity := range order {
		if originals := seen[identity]; len(originals) > 1 {
			clashes = append(clashes, IdentityClash{Identity: identity, Originals: originals})
		}
	}
	return clashes
}
