package memgraph

import (
	"encoding/json"
	"fmt"
	"os"

	"gloss/internal/assetgraph"
)

// containerDoc is the on-disk JSON shape of a container dump.
type containerDoc struct {
	Name    string      `json:"name"`
	Objects []objectDoc `json:"objects"`
}

type objectDoc struct {
	PathID int64           `json:"path_id"`
	Kind   string          `json:"kind"`
	Script string          `json:"script,omitempty"`
	Fields assetgraph.Tree `json:"fields,omitempty"`
	Image  []byte          `json:"image,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
}

// Load reads a JSON container dump from disk.
func Load(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return Decode(data)
}

// Decode parses a JSON container dump.
func Decode(data []byte) (*Container, error) {
	var doc containerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse container: %w", err)
	}
	container := New(doc.Name)
	for _, od := range doc.Objects {
		obj := NewObject(od.PathID, od.Kind, od.Script, od.Fields)
		if od.Kind == assetgraph.KindTexture2D {
			obj.image = od.Image
			obj.width = od.Width
			obj.height = od.Height
		}
		container.Add(obj)
	}
	return container, nil
}

// Save serializes the container, including every committed mutation.
func (c *Container) Save() ([]byte, error) {
	doc := containerDoc{Name: c.name, Objects: make([]objectDoc, 0, len(c.objects))}
	for _, obj := range c.objects {
		od := objectDoc{
			PathID: obj.pathID,
			Kind:   obj.kind,
			Script: obj.script,
			Fields: obj.fields,
		}
		if obj.kind == assetgraph.KindTexture2D {
			od.Image = obj.image
			od.Width = obj.width
			od.Height = obj.height
		}
		doc.Objects = append(doc.Objects, od)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode container: %w", err)
	}
	return out, nil
}

// WriteFile serializes the container to path.
func (c *Container) WriteFile(path string) error {
	data, err := c.Save()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	return nil
}
