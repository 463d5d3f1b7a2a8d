package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Annotation is a source-namespaced ordered key/value map attached to a
// feature or package.
type Annotation struct {
	Source  string
	Details *Details
}

// NewAnnotation creates an annotation with empty details.
func NewAnnotation(source string) *Annotation {
	return &Annotation{Source: source, Details: NewDetails()}
}

// Clone returns a deep copy of a.
func (a *Annotation) Clone() *Annotation {
	return &Annotation{Source: a.Source, Details: a.Details.Clone()}
}

// Details is an insertion-ordered string map. Setting an existing key
// updates it in place without changing its position.
type Details struct {
	keys   []string
	values map[string]string
}

// NewDetails creates an empty Details map.
func NewDetails() *Details {
	return &Details{values: make(map[string]string)}
}

// Set stores value under key.
func (d *Details) Set(key, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}

	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}

	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Details) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}

	v, ok := d.values[key]

	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Details) Keys() []string {
	if d == nil {
		return nil
	}

	return append([]string(nil), d.keys...)
}

// Len returns the number of entries.
func (d *Details) Len() int {
	if d == nil {
		return 0
	}

	return len(d.keys)
}

// Map returns an unordered copy of the entries.
func (d *Details) Map() map[string]string {
	out := make(map[string]string, d.Len())
	for _, k := range d.Keys() {
		out[k] = d.values[k]
	}

	return out
}

// Clone returns a deep copy of d.
func (d *Details) Clone() *Details {
	out := NewDetails()
	if d == nil {
		return out
	}

	for _, k := range d.keys {
		out.Set(k, d.values[k])
	}

	return out
}

// MarshalYAML renders the entries as a mapping in insertion order.
func (d *Details) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, k := range d.Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.values[k]},
		)
	}

	return node, nil
}

// UnmarshalYAML reads a mapping of scalars, keeping document order.
func (d *Details) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("details must be a mapping, got %v", node.Kind)
	}

	*d = Details{values: make(map[string]string)}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("details entry at line %d must be a scalar pair", k.Line)
		}

		d.Set(k.Value, v.Value)
	}

	return nil
}
