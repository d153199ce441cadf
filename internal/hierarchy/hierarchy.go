// Package hierarchy derives human-readable scene paths for the owning
// objects in a container. The index is advisory context for translators
// and diagnostics; it is never part of a record's identity.
package hierarchy

import (
	"gloss/internal/assetgraph"
)

// UnknownPath is returned for owner ids the index has no path for.
const UnknownPath = "UnknownPath"

type traversal int

const (
	viaRectTransform traversal = iota
	viaTransform
)

// Index maps owning-object path ids to slash-separated scene paths for
// one container. Rebuilt per load; never persisted.
type Index struct {
	paths map[int64]string
}

// Build scans every GameObject in the container and walks each
// top-level node's transform tree depth-first. Owners exposing a
// UI-oriented RectTransform child list are traversed through it;
// everything else falls back to the plain transform child list.
func Build(container assetgraph.Container) *Index {
	idx := &Index{paths: make(map[int64]string)}
	if container == nil {
		return idx
	}
	for _, obj := range container.Objects() {
		if obj.Kind() != assetgraph.KindGameObject {
			continue
		}
		if _, seen := idx.paths[obj.PathID()]; seen {
			continue
		}
		fields, err := obj.Fields()
		if err != nil {
			continue
		}
		name := fields.String("m_Name")
		idx.paths[obj.PathID()] = name

		if rectTransformID(container, fields) != 0 {
			idx.walk(container, obj.PathID(), fields, name, viaRectTransform)
		} else if _, ok := fields.RefID("m_Transform"); ok {
			idx.walk(container, obj.PathID(), fields, name, viaTransform)
		}
	}
	return idx
}

// Path returns the scene path for an owner id, or UnknownPath.
func (i *Index) Path(ownerID int64) string {
	if path, ok := i.paths[ownerID]; ok {
		return path
	}
	return UnknownPath
}

// Len reports how many owners the index covers.
func (i *Index) Len() int {
	return len(i.paths)
}

func (i *Index) walk(container assetgraph.Container, id int64, fields assetgraph.Tree, path string, mode traversal) {
	i.paths[id] = path

	tfID := int64(0)
	switch mode {
	case viaRectTransform:
		tfID = rectTransformID(container, fields)
	case viaTransform:
		tfID, _ = fields.RefID("m_Transform")
	}
	if tfID == 0 {
		return
	}
	tf, ok := container.Object(tfID)
	if !ok {
		return
	}
	tfFields, err := tf.Fields()
	if err != nil {
		return
	}

	for _, childRef := range tfFields.Trees("m_Children") {
		childTfID, ok := childRef.Int64("m_PathID")
		if !ok {
			continue
		}
		childTf, ok := container.Object(childTfID)
		if !ok {
			continue
		}
		childTfFields, err := childTf.Fields()
		if err != nil {
			continue
		}
		childID, ok := childTfFields.RefID("m_GameObject")
		if !ok {
			continue
		}
		child, ok := container.Object(childID)
		if !ok {
			continue
		}
		childFields, err := child.Fields()
		if err != nil {
			continue
		}
		i.walk(container, childID, childFields, path+"/"+childFields.String("m_Name"), mode)
	}
}

// rectTransformID resolves the GameObject's RectTransform component id,
// or 0 when it has none.
func rectTransformID(container assetgraph.Container, fields assetgraph.Tree) int64 {
	for _, component := range fields.Trees("m_Component") {
		id, ok := component.Int64("m_PathID")
		if !ok {
			continue
		}
		obj, ok := container.Object(id)
		if !ok {
			continue
		}
		if obj.Kind() == assetgraph.KindRectTransform {
			return id
		}
	}
	return 0
}
