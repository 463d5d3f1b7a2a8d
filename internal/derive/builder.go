package derive

import (
	"fmt"

	"schema-profiler/internal/schema"
)

// EnsureClass returns the class named name in out, creating and appending an
// empty one on first use. A non-class classifier already holding the name is
// an error.
func EnsureClass(out *schema.Schema, name string) (*schema.Class, error) {
	if c := out.Lookup(name); c != nil {
		if !c.IsClass() {
			return nil, fmt.Errorf("output classifier %q is a %s, not a class", name, c.Kind)
		}

		return c, nil
	}

	c := schema.NewClass(name)
	if err := out.Add(c); err != nil {
		return nil, fmt.Errorf("add output class: %w", err)
	}

	return c, nil
}

// CopyFeature appends an independent copy of f to cls and returns the copy.
// Repeated paths append repeated copies.
func CopyFeature(cls *schema.Class, f *schema.Feature) *schema.Feature {
	copied := f.Clone()
	cls.AddFeature(copied)

	return copied
}
