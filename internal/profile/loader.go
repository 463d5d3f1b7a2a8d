package profile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoSnapshot is returned for profiles that carry no snapshot element list.
var ErrNoSnapshot = errors.New("profile has no snapshot elements")

// LoadFile loads a profile from the given path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile file %s: %w", path, err)
	}

	return p, nil
}

// Parse decodes a StructureDefinition in JSON, YAML or XML.
func Parse(data []byte) (*Profile, error) {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return parseXML(data)
	}

	return parseYAML(data)
}

type yamlDocument struct {
	ResourceType string        `yaml:"resourceType"`
	URL          string        `yaml:"url"`
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type"`
	Snapshot     *yamlElements `yaml:"snapshot"`
	Elements     []yamlElement `yaml:"elements"`
}

type yamlElements struct {
	Element []yamlElement `yaml:"element"`
}

type yamlElement struct {
	ID          string       `yaml:"id"`
	Path        string       `yaml:"path"`
	Min         *int         `yaml:"min"`
	Max         *string      `yaml:"max"`
	MustSupport *bool        `yaml:"mustSupport"`
	Short       *string      `yaml:"short"`
	Definition  *string      `yaml:"definition"`
	Slicing     *yamlSlicing `yaml:"slicing"`
	Binding     *yamlBinding `yaml:"binding"`
}

type yamlSlicing struct {
	Discriminator []yamlDiscriminator `yaml:"discriminator"`
	Rules         *string             `yaml:"rules"`
	Ordered       *bool               `yaml:"ordered"`
	Description   *string             `yaml:"description"`
}

type yamlDiscriminator struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

type yamlBinding struct {
	Strength *string `yaml:"strength"`
	ValueSet *string `yaml:"valueSet"`
}

func parseYAML(data []byte) (*Profile, error) {
	var doc yamlDocument

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	elements := doc.Elements
	if doc.Snapshot != nil && len(doc.Snapshot.Element) > 0 {
		elements = doc.Snapshot.Element
	}

	if len(elements) == 0 {
		return nil, ErrNoSnapshot
	}

	p := &Profile{URL: doc.URL, Name: doc.Name, Type: doc.Type}

	for i := range elements {
		p.Constraints = append(p.Constraints, elements[i].constraint())
	}

	return p, nil
}

func (e *yamlElement) constraint() Constraint {
	c := Constraint{
		ID:          e.ID,
		Path:        e.Path,
		Min:         e.Min,
		Max:         e.Max,
		MustSupport: e.MustSupport,
		Short:       e.Short,
		Definition:  e.Definition,
	}

	if e.Slicing != nil {
		s := &SlicingSpec{
			Rules:       e.Slicing.Rules,
			Ordered:     e.Slicing.Ordered,
			Description: e.Slicing.Description,
		}

		for _, d := range e.Slicing.Discriminator {
			s.Discriminators = append(s.Discriminators, Discriminator(d))
		}

		c.Slicing = s
	}

	if e.Binding != nil {
		c.Binding = &BindingSpec{ValueSet: e.Binding.ValueSet, Strength: e.Binding.Strength}
	}

	return c
}
