package schema

import (
	"fmt"

	"schema-profiler/internal/common"
)

// Kind represents the kind of a classifier.
type Kind int

const (
	KindUnknown  Kind = iota
	KindClass         // EClass
	KindDataType      // EDataType
	KindEnum          // EEnum
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindDataType:
		return "datatype"
	case KindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// ParseKind is the inverse of Kind.String. An empty string means class.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "class":
		return KindClass, nil
	case "datatype":
		return KindDataType, nil
	case "enum":
		return KindEnum, nil
	default:
		return KindUnknown, fmt.Errorf("unknown classifier kind %q", s)
	}
}

// FeatureKind distinguishes attributes from references.
type FeatureKind int

const (
	FeatureAttribute FeatureKind = iota
	FeatureReference
)

// String returns a human-readable representation of the FeatureKind.
func (k FeatureKind) String() string {
	switch k {
	case FeatureAttribute:
		return "attribute"
	case FeatureReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// ParseFeatureKind is the inverse of FeatureKind.String. An empty string means attribute.
func ParseFeatureKind(s string) (FeatureKind, error) {
	switch s {
	case "", "attribute":
		return FeatureAttribute, nil
	case "reference":
		return FeatureReference, nil
	default:
		return FeatureAttribute, fmt.Errorf("unknown feature kind %q", s)
	}
}

// Schema is a named collection of classifiers with unique names.
type Schema struct {
	Name        string
	NsURI       string
	NsPrefix    string
	Annotations []*Annotation

	classes []*Class
	index   map[string]*Class
}

// New creates an empty schema with the given package header.
func New(name, nsURI, nsPrefix string) *Schema {
	return &Schema{
		Name:     name,
		NsURI:    nsURI,
		NsPrefix: nsPrefix,
		index:    make(map[string]*Class),
	}
}

// Classes returns the classifiers in insertion order.
func (s *Schema) Classes() []*Class {
	return s.classes
}

// Len returns the number of classifiers.
func (s *Schema) Len() int {
	return len(s.classes)
}

// Lookup returns the classifier with the given name, or nil if not found.
func (s *Schema) Lookup(name string) *Class {
	if s == nil || s.index == nil {
		return nil
	}

	return s.index[name]
}

// LookupClass returns the classifier with the given name only if it is a class.
func (s *Schema) LookupClass(name string) *Class {
	c := s.Lookup(name)
	if c == nil || !c.IsClass() {
		return nil
	}

	return c
}

// Add appends a classifier. Names must be unique within the schema.
func (s *Schema) Add(c *Class) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("classifier must have a name")
	}

	if s.index == nil {
		s.index = make(map[string]*Class)
	}

	if _, ok := s.index[c.Name]; ok {
		return fmt.Errorf("duplicate classifier %q", c.Name)
	}

	s.classes = append(s.classes, c)
	s.index[c.Name] = c

	return nil
}

// Shell returns a copy of the package header and package annotations with no classifiers.
func (s *Schema) Shell() *Schema {
	out := New(s.Name, s.NsURI, s.NsPrefix)
	for _, a := range s.Annotations {
		out.Annotations = append(out.Annotations, a.Clone())
	}

	return out
}

// FindFeature looks up a feature by name on c, then through its supertypes
// depth-first. Supertype cycles are tolerated.
func (s *Schema) FindFeature(c *Class, name string) *Feature {
	return s.findFeature(c, name, map[string]bool{})
}

func (s *Schema) findFeature(c *Class, name string, seen map[string]bool) *Feature {
	if c == nil || seen[c.Name] {
		return nil
	}

	seen[c.Name] = true

	if f := c.Feature(name); f != nil {
		return f
	}

	for _, st := range c.SuperTypes {
		if f := s.findFeature(s.Lookup(st), name, seen); f != nil {
			return f
		}
	}

	return nil
}

// AllFeatures returns the features of c including inherited ones, supertypes first.
func (s *Schema) AllFeatures(c *Class) []*Feature {
	var out []*Feature

	s.collectFeatures(c, map[string]bool{}, &out)

	return out
}

func (s *Schema) collectFeatures(c *Class, seen map[string]bool, out *[]*Feature) {
	if c == nil || seen[c.Name] {
		return
	}

	seen[c.Name] = true

	for _, st := range c.SuperTypes {
		s.collectFeatures(s.Lookup(st), seen, out)
	}

	*out = append(*out, c.Features...)
}

// Class describes a classifier. Only KindClass classifiers carry features.
type Class struct {
	Name              string
	Kind              Kind
	Abstract          bool
	Interface         bool
	SuperTypes        []string // classifier names, not references
	InstanceClassName string   // data types only
	Literals          []Literal
	Features          []*Feature
	Annotations       []*Annotation
}

// NewClass creates an empty class.
func NewClass(name string) *Class {
	return &Class{Name: name, Kind: KindClass}
}

// IsClass returns true if the classifier is class-shaped.
func (c *Class) IsClass() bool {
	return c != nil && c.Kind == KindClass
}

// Feature returns the class's own feature with the given name, or nil.
func (c *Class) Feature(name string) *Feature {
	for _, f := range c.Features {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// AddFeature appends a feature. Duplicate names are not rejected.
func (c *Class) AddFeature(f *Feature) {
	c.Features = append(c.Features, f)
}

// Literal is an enum literal.
type Literal struct {
	Name    string
	Value   int
	Literal string
}

// Feature describes an attribute or reference of a class.
type Feature struct {
	Name        string
	Kind        FeatureKind
	Type        string // opaque type reference, copied verbatim
	Lower       int
	Upper       Bound
	Containment bool
	Opposite    string
	// Properties holds additional serialized attributes (transient, derived,
	// defaultValueLiteral, ...) preserved verbatim.
	Properties  *Details
	Annotations []*Annotation
}

// NewFeature creates a feature with the Ecore default bounds 0..1.
func NewFeature(name string, kind FeatureKind, typ string) *Feature {
	return &Feature{Name: name, Kind: kind, Type: typ, Upper: 1}
}

// Clone returns a structural copy of f with an empty annotation list.
// The copy shares no mutable state with f.
func (f *Feature) Clone() *Feature {
	out := &Feature{
		Name:        f.Name,
		Kind:        f.Kind,
		Type:        f.Type,
		Lower:       f.Lower,
		Upper:       f.Upper,
		Containment: f.Containment,
		Opposite:    f.Opposite,
	}

	if f.Properties != nil {
		out.Properties = f.Properties.Clone()
	}

	return out
}

// Annotation returns the annotation with the given source, or nil.
func (f *Feature) Annotation(source string) *Annotation {
	return findAnnotation(f.Annotations, source)
}

// EnsureAnnotation returns the annotation with the given source, creating
// and appending it if it does not exist yet.
func (f *Feature) EnsureAnnotation(source string) *Annotation {
	if a := f.Annotation(source); a != nil {
		return a
	}

	a := NewAnnotation(source)
	f.Annotations = append(f.Annotations, a)

	return a
}

func findAnnotation(list []*Annotation, source string) *Annotation {
	for _, a := range list {
		if a.Source == source {
			return a
		}
	}

	return nil
}
