package migrate

import (
	"testing"

	"gloss/internal/records"
)

func oldEntry(script, pathID, original, translation string, stage int) records.Entry {
	return records.Entry{
		Original:    original,
		Translation: translation,
		Stage:       stage,
		// Old-revision contexts carry only PathID and Script.
		Context: "PathID: " + pathID + "\nScript: " + script,
	}
}

func newEntry(script, pathID, ownerID, original string) records.Entry {
	return records.Entry{
		Original: original,
		Context:  "GameObjectID: " + ownerID + "\nPathID: " + pathID + "\nScript: " + script,
	}
}

func TestMergeCarriesTranslationAndStage(t *testing.T) {
	oldCorpus := []records.Entry{
		oldEntry("Text", "7", "Hello", "Bonjour", 2),
		oldEntry("Text", "8", "Stale", "Vieux", 1),
	}
	newCorpus := []records.Entry{
		newEntry("Text", "7", "1", "Hello"),
		newEntry("Text", "9", "1", "Fresh"),
	}

	merged, report := Merge(oldCorpus, newCorpus, nil)

	if report.Merged != 1 {
		t.Fatalf("merged = %d", report.Merged)
	}
	if merged[0].Translation != "Bonjour" || merged[0].Stage != 2 {
		t.Fatalf("entry not updated: %+v", merged[0])
	}
	if merged[1].Translation != "" {
		t.Fatalf("unmatched entry mutated: %+v", merged[1])
	}
	if len(report.UnmatchedOld) != 1 || report.UnmatchedOld[0] != "Text:8:Stale" {
		t.Fatalf("unmatched old: %+v", report.UnmatchedOld)
	}
	if len(report.UnmatchedNew) != 1 || report.UnmatchedNew[0] != "Text:9:Fresh" {
		t.Fatalf("unmatched new: %+v", report.UnmatchedNew)
	}
}

func TestMergeFirstOldOccurrenceWins(t *testing.T) {
	oldCorpus := []records.Entry{
		oldEntry("Text", "7", "Hello", "First", 1),
		oldEntry("Text", "7", "Hello", "Second", 2),
	}
	newCorpus := []records.Entry{newEntry("Text", "7", "1", "Hello")}

	merged, report := Merge(oldCorpus, newCorpus, nil)
	if len(report.DuplicateOldKeys) != 1 || report.DuplicateOldKeys[0] != "Text:7:Hello" {
		t.Fatalf("duplicates: %+v", report.DuplicateOldKeys)
	}
	if merged[0].Translation != "First" {
		t.Fatalf("wrong occurrence used: %+v", merged[0])
	}
}

func TestMergeReportsNewIdentityClashes(t *testing.T) {
	newCorpus := []records.Entry{
		newEntry("Text", "7", "1", "Hello"),
		newEntry("Text", "7", "1", "Howdy"),
		newEntry("Text", "8", "1", "Bye"),
	}
	_, report := Merge(nil, newCorpus, nil)

	if len(report.DuplicateNewIdentities) != 1 {
		t.Fatalf("clashes: %+v", report.DuplicateNewIdentities)
	}
	clash := report.DuplicateNewIdentities[0]
	if clash.Identity != "Text:7:1" || len(clash.Originals) != 2 {
		t.Fatalf("clash detail: %+v", clash)
	}
}

func TestMergeSkipsEntriesWithoutUsableContext(t *testing.T) {
	oldCorpus := []records.Entry{
		{Original: "NoContext", Translation: "X"},
	}
	newCorpus := []records.Entry{
		{Original: "NoContext"},
	}
	merged, report := Merge(oldCorpus, newCorpus, nil)
	if report.Merged != 0 || merged[0].Translation != "" {
		t.Fatalf("contextless entries must not match: %+v %+v", report, merged)
	}
}
