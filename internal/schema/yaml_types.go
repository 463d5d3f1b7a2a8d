package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlSchema struct {
	Name        string           `yaml:"name"`
	NsURI       string           `yaml:"nsURI,omitempty"`
	NsPrefix    string           `yaml:"nsPrefix,omitempty"`
	Annotations []yamlAnnotation `yaml:"annotations,omitempty"`
	Classes     []yamlClass      `yaml:"classes"`
}

type yamlClass struct {
	Name              string           `yaml:"name"`
	Kind              string           `yaml:"kind,omitempty"`
	Abstract          bool             `yaml:"abstract,omitempty"`
	Interface         bool             `yaml:"interface,omitempty"`
	SuperTypes        []string         `yaml:"superTypes,omitempty"`
	InstanceClassName string           `yaml:"instanceClassName,omitempty"`
	Literals          []yamlLiteral    `yaml:"literals,omitempty"`
	Features          []yamlFeature    `yaml:"features,omitempty"`
	Annotations       []yamlAnnotation `yaml:"annotations,omitempty"`
}

type yamlLiteral struct {
	Name    string `yaml:"name"`
	Value   int    `yaml:"value,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

type yamlFeature struct {
	Name        string           `yaml:"name"`
	Kind        string           `yaml:"kind,omitempty"`
	Type        string           `yaml:"type,omitempty"`
	Lower       int              `yaml:"lower,omitempty"`
	Upper       *Bound           `yaml:"upper,omitempty"`
	Containment bool             `yaml:"containment,omitempty"`
	Opposite    string           `yaml:"opposite,omitempty"`
	Properties  *Details         `yaml:"properties,omitempty"`
	Annotations []yamlAnnotation `yaml:"annotations,omitempty"`
}

type yamlAnnotation struct {
	Source  string   `yaml:"source"`
	Details *Details `yaml:"details,omitempty"`
}

func parseYAML(data []byte) (*Schema, error) {
	var ys yamlSchema

	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	s := New(ys.Name, ys.NsURI, ys.NsPrefix)
	s.Annotations = annotationsFromYAML(ys.Annotations)

	for i := range ys.Classes {
		c, err := classFromYAML(&ys.Classes[i])
		if err != nil {
			return nil, err
		}

		if err := s.Add(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func classFromYAML(yc *yamlClass) (*Class, error) {
	kind, err := ParseKind(yc.Kind)
	if err != nil {
		return nil, fmt.Errorf("classifier %q: %w", yc.Name, err)
	}

	c := &Class{
		Name:              yc.Name,
		Kind:              kind,
		Abstract:          yc.Abstract,
		Interface:         yc.Interface,
		SuperTypes:        yc.SuperTypes,
		InstanceClassName: yc.InstanceClassName,
		Annotations:       annotationsFromYAML(yc.Annotations),
	}

	for _, l := range yc.Literals {
		c.Literals = append(c.Literals, Literal(l))
	}

	for i := range yc.Features {
		yf := &yc.Features[i]

		fk, err := ParseFeatureKind(yf.Kind)
		if err != nil {
			return nil, fmt.Errorf("feature %s.%s: %w", yc.Name, yf.Name, err)
		}

		f := NewFeature(yf.Name, fk, yf.Type)
		f.Lower = yf.Lower
		f.Containment = yf.Containment
		f.Opposite = yf.Opposite
		f.Properties = yf.Properties
		f.Annotations = annotationsFromYAML(yf.Annotations)

		if yf.Upper != nil {
			f.Upper = *yf.Upper
		}

		c.AddFeature(f)
	}

	return c, nil
}

func annotationsFromYAML(list []yamlAnnotation) []*Annotation {
	var out []*Annotation

	for _, ya := range list {
		a := NewAnnotation(ya.Source)
		if ya.Details != nil {
			a.Details = ya.Details
		}

		out = append(out, a)
	}

	return out
}

func marshalYAML(s *Schema) ([]byte, error) {
	ys := yamlSchema{
		Name:        s.Name,
		NsURI:       s.NsURI,
		NsPrefix:    s.NsPrefix,
		Annotations: annotationsToYAML(s.Annotations),
		Classes:     []yamlClass{},
	}

	for _, c := range s.Classes() {
		yc := yamlClass{
			Name:              c.Name,
			Abstract:          c.Abstract,
			Interface:         c.Interface,
			SuperTypes:        c.SuperTypes,
			InstanceClassName: c.InstanceClassName,
			Annotations:       annotationsToYAML(c.Annotations),
		}

		if c.Kind != KindClass {
			yc.Kind = c.Kind.String()
		}

		for _, l := range c.Literals {
			yc.Literals = append(yc.Literals, yamlLiteral(l))
		}

		for _, f := range c.Features {
			upper := f.Upper
			yf := yamlFeature{
				Name:        f.Name,
				Type:        f.Type,
				Lower:       f.Lower,
				Upper:       &upper,
				Containment: f.Containment,
				Opposite:    f.Opposite,
				Annotations: annotationsToYAML(f.Annotations),
			}

			if f.Kind == FeatureReference {
				yf.Kind = f.Kind.String()
			}

			if f.Properties.Len() > 0 {
				yf.Properties = f.Properties
			}

			yc.Features = append(yc.Features, yf)
		}

		ys.Classes = append(ys.Classes, yc)
	}

	return yaml.Marshal(&ys)
}

func annotationsToYAML(list []*Annotation) []yamlAnnotation {
	var out []yamlAnnotation

	for _, a := range list {
		ya := yamlAnnotation{Source: a.Source}
		if a.Details.Len() > 0 {
			ya.Details = a.Details
		}

		out = append(out, ya)
	}

	return out
}
