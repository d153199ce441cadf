// Package processors routes content objects to content-type-aware
// extract/apply logic. The registry is a fixed, explicitly ordered
// binding list: specific processors come first, the generic text
// processor last, and the first predicate match wins.
package processors

import (
	"fmt"

	"gloss/internal/assetgraph"
	"gloss/internal/contextkey"
	"gloss/internal/hierarchy"
	"gloss/internal/records"
)

// ObjectView binds one content object's mutable field tree to the
// identity and scene context a processor needs. Mutations stay private
// to the view until Commit writes them back.
type ObjectView struct {
	PathID    int64
	Script    string
	OwnerID   int64
	OwnerPath string

	obj    assetgraph.Object
	fields assetgraph.Tree
}

// NewView reads the object's field tree and resolves its owning object.
func NewView(obj assetgraph.Object, idx *hierarchy.Index) (*ObjectView, error) {
	fields, err := obj.Fields()
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	ownerID, _ := fields.RefID("m_GameObject")
	ownerPath := hierarchy.UnknownPath
	if idx != nil {
		ownerPath = idx.Path(ownerID)
	}
	return &ObjectView{
		PathID:    obj.PathID(),
		Script:    obj.ScriptName(),
		OwnerID:   ownerID,
		OwnerPath: ownerPath,
		obj:       obj,
		fields:    fields,
	}, nil
}

// Fields exposes the mutable field tree.
func (v *ObjectView) Fields() assetgraph.Tree {
	return v.fields
}

// Commit writes the view's field tree back to the object.
func (v *ObjectView) Commit() error {
	return v.obj.SaveFields(v.fields)
}

// Key builds the identity key for an extraction from this view.
func (v *ObjectView) Key(subPath string) contextkey.Key {
	return contextkey.Key{
		PathID:    v.PathID,
		Script:    v.Script,
		OwnerID:   v.OwnerID,
		OwnerPath: v.OwnerPath,
		SubPath:   subPath,
	}
}

// Processor extracts translation candidates from and re-applies
// translations to one kind of content object. Apply mutates the view's
// field tree and reports whether anything changed; the caller decides
// when to commit.
type Processor interface {
	Extract(view *ObjectView) ([]records.Entry, error)
	Apply(view *ObjectView, group []records.Entry) (bool, error)
}

type binding struct {
	match func(script string) bool
	build func() Processor
}

// Registry resolves script type names to processors by a linear scan
// over the ordered binding list. Order is fixed at construction.
type Registry struct {
	bindings []binding
}

// NewRegistry returns the registry with the built-in processors in
// their required order. ItemCatalog and Dropdown precede Text so a
// dropdown or catalog script whose name also contains "text" is never
// misrouted to the generic path.
func NewRegistry() *Registry {
	return &Registry{bindings: []binding{
		{match: matchItemCatalog, build: func() Processor { return itemCatalogProcessor{} }},
		{match: matchDropdown, build: func() Processor { return dropdownProcessor{} }},
		{match: matchText, build: func() Processor { return textProcessor{} }},
	}}
}

// Resolve returns a processor for the script name, or false when no
// binding claims it. The scan stops at the first match.
func (r *Registry) Resolve(script string) (Processor, bool) {
	for _, b := range r.bindings {
		if b.match(script) {
			return b.build(), true
		}
	}
	return nil, false
}

// newEntry assembles a record for one extracted string.
func newEntry(key contextkey.Key, original string) records.Entry {
	return records.Entry{
		Key:      contextkey.EntryKey(key, original),
		Original: original,
		Context:  key.Encode(),
	}
}

// parseEntryContext decodes a persisted record's context. Only records
// read back from a corpus file pass through here; keys produced in this
// process are consumed structured.
func parseEntryContext(entry records.Entry) (contextkey.Key, error) {
	return contextkey.Parse(entry.Context)
}
