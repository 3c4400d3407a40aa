package payload

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Node is a possibly-absent position inside a payload.
// Every accessor is total: walking through a missing or wrongly-typed branch
// yields an absent Node instead of failing. JSON null counts as absent.
type Node struct {
	v any
}

// Entry is one key/value pair of an object node.
type Entry struct {
	Key   string
	Value Node
}

// Wrap turns a decoded value into a Node. Nodes and *Object values are accepted as-is.
func Wrap(v any) Node {
	if n, ok := v.(Node); ok {
		return n
	}
	if o, ok := v.(*Object); ok && o == nil {
		return Node{}
	}
	return Node{v: v}
}

// Absent returns the empty Node.
func Absent() Node {
	return Node{}
}

// Present reports whether the node holds a non-null value.
func (n Node) Present() bool {
	return n.v != nil
}

// Raw returns the underlying value, or nil when absent.
func (n Node) Raw() any {
	return n.v
}

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool {
	switch n.v.(type) {
	case *Object, map[string]any:
		return true
	}
	return false
}

// IsArray reports whether the node is a JSON array.
func (n Node) IsArray() bool {
	_, ok := n.v.([]any)
	return ok
}

// Get returns the child stored under key, or an absent Node.
func (n Node) Get(key string) Node {
	switch t := n.v.(type) {
	case *Object:
		v, _ := t.Get(key)
		return Wrap(v)
	case map[string]any:
		return Wrap(t[key])
	}
	return Node{}
}

// Path walks a sequence of keys.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.Present() {
			return Node{}
		}
	}
	return cur
}

// Has reports whether key holds a non-null value.
func (n Node) Has(key string) bool {
	return n.Get(key).Present()
}

// Index returns the i-th element of an array node.
func (n Node) Index(i int) Node {
	items, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(items) {
		return Node{}
	}
	return Wrap(items[i])
}

// Keys returns object keys in document order. Plain maps are sorted.
func (n Node) Keys() []string {
	switch t := n.v.(type) {
	case *Object:
		return t.Keys()
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}

// Entries returns the object's key/value pairs in order, skipping null values.
func (n Node) Entries() []Entry {
	var out []Entry
	for _, k := range n.Keys() {
		if v := n.Get(k); v.Present() {
			out = append(out, Entry{Key: k, Value: v})
		}
	}
	return out
}

// Items returns the elements of an array node, skipping nulls.
func (n Node) Items() []Node {
	items, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, Wrap(it))
		}
	}
	return out
}

// Objects returns the object elements of an array node.
func (n Node) Objects() []Node {
	var out []Node
	for _, it := range n.Items() {
		if it.IsObject() {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of keys or elements, or 0 for scalars.
func (n Node) Len() int {
	switch t := n.v.(type) {
	case *Object:
		return t.Len()
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	}
	return 0
}

// NonEmpty reports whether the node carries displayable data:
// a non-empty object, array or string, or any number or boolean.
func (n Node) NonEmpty() bool {
	switch t := n.v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case *Object, map[string]any, []any:
		return n.Len() > 0
	}
	return true
}

// Number returns the numeric value of the node. Strings are never parsed.
func (n Node) Number() (float64, bool) {
	return Float(n.v)
}

// Text returns a display string for scalar nodes and "" otherwise.
func (n Node) Text() string {
	switch t := n.v.(type) {
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := Float(n.v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// Strings returns the non-empty scalar texts of an array node.
// A scalar node yields a single-element slice.
func (n Node) Strings() []string {
	if !n.IsArray() {
		if s := n.Text(); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, it := range n.Items() {
		if s := it.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Float converts Go numeric kinds and json.Number into a finite float64.
func Float(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case Node:
		return Float(t.v)
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
