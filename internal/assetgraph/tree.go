package assetgraph

import "encoding/json"

// Tree is a mutable dynamically-typed field tree. Values are strings,
// numbers, booleans, nested Trees, or []any slices, mirroring what a
// JSON round trip produces. Accessors are lenient: a missing or
// mistyped field reads as the zero value so processors can probe for
// optional aliases without ceremony.
type Tree map[string]any

// Has reports whether key is present at all.
func (t Tree) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// String returns the string value under key, or "".
func (t Tree) String(key string) string {
	s, _ := t[key].(string)
	return s
}

// Set stores value under key.
func (t Tree) Set(key string, value any) {
	t[key] = value
}

// Int64 returns the integer value under key. JSON decoding produces
// float64 for numbers; both representations are accepted.
func (t Tree) Int64(key string) (int64, bool) {
	switch v := t[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// Float64 returns the numeric value under key.
func (t Tree) Float64(key string) (float64, bool) {
	switch v := t[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Child returns the nested tree under key.
func (t Tree) Child(key string) (Tree, bool) {
	switch v := t[key].(type) {
	case Tree:
		return v, true
	case map[string]any:
		return Tree(v), true
	default:
		return nil, false
	}
}

// Slice returns the list value under key, or nil.
func (t Tree) Slice(key string) []any {
	s, _ := t[key].([]any)
	return s
}

// Trees returns the list under key filtered to nested trees.
func (t Tree) Trees(key string) []Tree {
	raw := t.Slice(key)
	if raw == nil {
		return nil
	}
	out := make([]Tree, 0, len(raw))
	for _, elem := range raw {
		switch v := elem.(type) {
		case Tree:
			out = append(out, v)
		case map[string]any:
			out = append(out, Tree(v))
		}
	}
	return out
}

// RefID reads the m_PathID of the reference stored under key. Object
// references in field trees are nested trees carrying an m_PathID.
func (t Tree) RefID(key string) (int64, bool) {
	ref, ok := t.Child(key)
	if !ok {
		return 0, false
	}
	return ref.Int64("m_PathID")
}

// Clone deep-copies the tree so a view can be mutated without touching
// the committed object state.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Tree:
		return val.Clone()
	case map[string]any:
		return Tree(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		return val
	}
}
