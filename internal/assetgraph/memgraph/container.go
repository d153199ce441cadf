// Package memgraph is the reference in-memory assetgraph implementation.
// It backs the JSON container format used by the CLI and provides the
// fixture surface for engine tests.
package memgraph

import (
	"fmt"

	"gloss/internal/assetgraph"
)

// Object is an in-memory content object.
type Object struct {
	pathID int64
	kind   string
	script string
	fields assetgraph.Tree

	image  []byte
	width  int
	height int
}

// NewObject constructs an object with the given identity and field tree.
func NewObject(pathID int64, kind, script string, fields assetgraph.Tree) *Object {
	return &Object{pathID: pathID, kind: kind, script: script, fields: fields}
}

func (o *Object) PathID() int64      { return o.pathID }
func (o *Object) Kind() string       { return o.kind }
func (o *Object) ScriptName() string { return o.script }

// Fields returns a deep copy; mutations are invisible until committed
// back through SaveFields.
func (o *Object) Fields() (assetgraph.Tree, error) {
	if o.fields == nil {
		return assetgraph.Tree{}, nil
	}
	return o.fields.Clone(), nil
}

func (o *Object) SaveFields(tree assetgraph.Tree) error {
	o.fields = tree.Clone()
	return nil
}

// Image implements assetgraph.Texture.
func (o *Object) Image() ([]byte, int, int, error) {
	if o.kind != assetgraph.KindTexture2D {
		return nil, 0, 0, fmt.Errorf("object %d is %s, not a texture", o.pathID, o.kind)
	}
	return o.image, o.width, o.height, nil
}

// SetImage implements assetgraph.Texture.
func (o *Object) SetImage(data []byte, width, height int) error {
	if o.kind != assetgraph.KindTexture2D {
		return fmt.Errorf("object %d is %s, not a texture", o.pathID, o.kind)
	}
	o.image = append([]byte(nil), data...)
	o.width = width
	o.height = height
	return nil
}

// Container is an in-memory asset container. Object enumeration is
// stable in insertion order.
type Container struct {
	name    string
	objects []*Object
	byID    map[int64]*Object
}

// New constructs an empty container.
func New(name string) *Container {
	return &Container{name: name, byID: make(map[int64]*Object)}
}

// Add appends an object. A duplicate path id replaces the index entry
// but keeps both objects in enumeration order, matching how duplicate
// ids surface from the engine's own containers.
func (c *Container) Add(obj *Object) {
	c.objects = append(c.objects, obj)
	if _, ok := c.byID[obj.pathID]; !ok {
		c.byID[obj.pathID] = obj
	}
}

func (c *Container) Name() string { return c.name }

func (c *Container) Objects() []assetgraph.Object {
	out := make([]assetgraph.Object, len(c.objects))
	for i, obj := range c.objects {
		out[i] = obj
	}
	return out
}

func (c *Container) Object(pathID int64) (assetgraph.Object, bool) {
	obj, ok := c.byID[pathID]
	if !ok {
		return nil, false
	}
	return obj, true
}

var (
	_ assetgraph.Container = (*Container)(nil)
	_ assetgraph.Texture   = (*Object)(nil)
)
