// Package contextkey owns the structured identity that ties an
// extracted string to a re-appliable location in a container, and its
// labelled-line wire encoding persisted inside translation records.
package contextkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Wire labels recognized in the persisted context string. GameObjectPath
// is advisory and never part of the identity.
const (
	LabelPathID    = "PathID"
	LabelScript    = "Script"
	LabelOwnerID   = "GameObjectID"
	LabelOwnerPath = "GameObjectPath"
	LabelSubPath   = "JsonPath"
)

// Key identifies one extracted string's location inside a container.
type Key struct {
	// PathID is the content object's container-scoped id.
	PathID int64
	// Script is the content object's declared script type name.
	Script string
	// OwnerID is the owning object's container-scoped id.
	OwnerID int64
	// OwnerPath is the human-readable scene path of the owner. Advisory
	// only; two keys with different OwnerPath still match.
	OwnerPath string
	// SubPath addresses a sub-element within the object, for processors
	// that emit more than one entry per object.
	SubPath string
}

// Identity is the comparable tuple used to group records against live
// objects. OwnerPath and SubPath are excluded: a single object receives
// its whole group and resolves sub-paths itself.
type Identity struct {
	PathID  int64
	Script  string
	OwnerID int64
}

// Identity returns the grouping tuple for the key.
func (k Key) Identity() Identity {
	return Identity{PathID: k.PathID, Script: k.Script, OwnerID: k.OwnerID}
}

// Encode renders the key as newline-separated "Label: value" lines,
// wire-compatible with existing translation corpora. Optional labels
// are omitted when empty.
func (k Key) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d", LabelOwnerID, k.OwnerID)
	if k.OwnerPath != "" {
		fmt.Fprintf(&b, "\n%s: %s", LabelOwnerPath, k.OwnerPath)
	}
	fmt.Fprintf(&b, "\n%s: %d", LabelPathID, k.PathID)
	fmt.Fprintf(&b, "\n%s: %s", LabelScript, k.Script)
	if k.SubPath != "" {
		fmt.Fprintf(&b, "\n%s: %s", LabelSubPath, k.SubPath)
	}
	return b.String()
}

// Parse decodes a persisted context string. PathID, Script and
// GameObjectID are required; the advisory labels are optional.
func Parse(context string) (Key, error) {
	labels := Labels(context)

	script, ok := labels[LabelScript]
	if !ok || script == "" {
		return Key{}, fmt.Errorf("context missing %s label", LabelScript)
	}
	pathID, err := requiredInt(labels, LabelPathID)
	if err != nil {
		return Key{}, err
	}
	ownerID, err := requiredInt(labels, LabelOwnerID)
	if err != nil {
		return Key{}, err
	}

	return Key{
		PathID:    pathID,
		Script:    script,
		OwnerID:   ownerID,
		OwnerPath: labels[LabelOwnerPath],
		SubPath:   labels[LabelSubPath],
	}, nil
}

// Labels splits a context string into its label/value pairs. Lines
// without a colon are ignored; later duplicates win. Used directly by
// corpus migration, which must read old-revision contexts that predate
// some labels.
func Labels(context string) map[string]string {
	labels := make(map[string]string)
	for _, line := range strings.Split(context, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		labels[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}
	return labels
}

func requiredInt(labels map[string]string, label string) (int64, error) {
	raw, ok := labels[label]
	if !ok || raw == "" {
		return 0, fmt.Errorf("context missing %s label", label)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("context %s: %w", label, err)
	}
	return value, nil
}

// EntryKey derives the stable record key: a lowercase SHA-256 hex
// digest over the identity-defining fields and the original text.
// Identical inputs always produce the same digest.
func EntryKey(k Key, original string) string {
	parts := []string{
		strconv.FormatInt(k.OwnerID, 10),
		k.Script,
		strconv.FormatInt(k.PathID, 10),
	}
	if k.SubPath != "" {
		parts = append(parts, k.SubPath)
	}
	parts = append(parts, original)
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
