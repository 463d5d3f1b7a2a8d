package profile

// Constraint is one path-addressed narrowing instruction.
type Constraint struct {
	// ID is the element id, informational only.
	ID string
	// Path is the dot-delimited element path, e.g. "Patient.name".
	Path string
	// Min is the minimum occurrence.
	Min *int
	// Max is the maximum occurrence: a decimal integer or "*".
	Max *string
	// Slicing describes how occurrences are partitioned.
	Slicing *SlicingSpec
	// Binding associates the element with a value set.
	Binding *BindingSpec
	// MustSupport asserts that implementations must handle the element.
	MustSupport *bool
	// Short is the short display text.
	Short *string
	// Definition is the long-form definition text.
	Definition *string
}

// IsMustSupport returns true only if the flag is present and true.
func (c *Constraint) IsMustSupport() bool {
	return c.MustSupport != nil && *c.MustSupport
}

// Documentation returns Short if present (even when empty), else Definition.
func (c *Constraint) Documentation() (string, bool) {
	if c.Short != nil {
		return *c.Short, true
	}

	if c.Definition != nil {
		return *c.Definition, true
	}

	return "", false
}

// Discriminator identifies which sub-value of an occurrence distinguishes slices.
type Discriminator struct {
	Type string
	Path string
}

// SlicingSpec describes the slicing of a repeating element.
type SlicingSpec struct {
	Discriminators []Discriminator
	Rules          *string
	Ordered        *bool
	Description    *string
}

// BindingSpec binds an element to a value set.
type BindingSpec struct {
	ValueSet *string
	Strength *string
}

// ConstraintList is an ordered sequence of constraints.
type ConstraintList []Constraint
