package derive

import (
	"fmt"
	"strconv"

	"schema-profiler/internal/diagnostic"
	"schema-profiler/internal/profile"
	"schema-profiler/internal/schema"
)

// Applier layers a constraint onto a copied feature.
type Applier struct {
	ns Namespaces
}

// NewApplier creates an Applier writing to the given annotation sources.
// Empty sources fall back to DefaultNamespaces.
func NewApplier(ns Namespaces) *Applier {
	return &Applier{ns: ns.withDefaults()}
}

// Apply runs every sub-step. Each one is a no-op when its input is absent.
func (a *Applier) Apply(c *profile.Constraint, f *schema.Feature, class string, d *diagnostic.Diagnostics) {
	a.ApplyBounds(c, f, class, d)
	a.ApplySlicing(c, f)
	a.ApplyMustSupportAndBinding(c, f)
	a.ApplyDocumentation(c, f)
}

// ApplyBounds copies min and max onto the feature. A value that cannot be
// used leaves the existing bound untouched and records a warning.
func (a *Applier) ApplyBounds(c *profile.Constraint, f *schema.Feature, class string, d *diagnostic.Diagnostics) {
	if c.Min != nil {
		if *c.Min < 0 {
			d.AddWarning(CodeInvalidMin, fmt.Sprintf("invalid min cardinality %d", *c.Min), class, c.Path)
		} else {
			f.Lower = *c.Min
		}
	}

	if c.Max != nil {
		upper, err := schema.ParseBound(*c.Max)
		if err != nil {
			d.AddWarning(CodeInvalidMax, fmt.Sprintf("invalid max cardinality %q", *c.Max), class, c.Path)
			return
		}

		f.Upper = upper
	}
}

// ApplySlicing writes slicing metadata into the slicing annotation.
func (a *Applier) ApplySlicing(c *profile.Constraint, f *schema.Feature) {
	s := c.Slicing
	if s == nil {
		return
	}

	details := f.EnsureAnnotation(a.ns.Slicing).Details

	for i, disc := range s.Discriminators {
		details.Set(discriminatorPrefix+strconv.Itoa(i), disc.Type+":"+disc.Path)
	}

	if s.Rules != nil {
		details.Set(KeyRules, *s.Rules)
	}

	if s.Ordered != nil {
		details.Set(KeyOrdered, strconv.FormatBool(*s.Ordered))
	}

	if s.Description != nil && *s.Description != "" {
		details.Set(KeyDescription, *s.Description)
	}
}

// ApplyMustSupportAndBinding writes the must-support flag and binding into
// the domain annotation. The annotation is created even when empty. A false
// or absent flag writes nothing.
func (a *Applier) ApplyMustSupportAndBinding(c *profile.Constraint, f *schema.Feature) {
	details := f.EnsureAnnotation(a.ns.Domain).Details

	if c.IsMustSupport() {
		details.Set(KeyMustSupport, "true")
	}

	if b := c.Binding; b != nil {
		if b.ValueSet != nil {
			details.Set(KeyBindingValueSet, *b.ValueSet)
		}

		if b.Strength != nil {
			details.Set(KeyBindingStrength, *b.Strength)
		}
	}
}

// ApplyDocumentation writes the short text, or else the definition, into the
// documentation annotation.
func (a *Applier) ApplyDocumentation(c *profile.Constraint, f *schema.Feature) {
	doc, ok := c.Documentation()
	if !ok {
		return
	}

	f.EnsureAnnotation(a.ns.Documentation).Details.Set(KeyDocumentation, doc)
}
