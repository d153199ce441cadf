// Package assetgraph defines the boundary to the engine's serialized
// object-graph containers.
//
// The proprietary binary container codec lives outside this repository;
// everything here consumes containers through the Container and Object
// interfaces and mutates object state through the dynamically-typed
// Tree view. The memgraph subpackage provides the reference in-memory
// implementation used by tests and by the JSON container format.
package assetgraph
