package profile

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// FHIR XML carries primitive values in a "value" attribute: <min value="1"/>.
type xmlValue struct {
	Value string `xml:"value,attr"`
}

func (v *xmlValue) str() *string {
	if v == nil {
		return nil
	}

	s := v.Value

	return &s
}

func (v *xmlValue) boolean() (*bool, error) {
	if v == nil {
		return nil, nil
	}

	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", v.Value)
	}

	return &b, nil
}

type xmlDocument struct {
	XMLName  xml.Name     `xml:"StructureDefinition"`
	URL      *xmlValue    `xml:"url"`
	Name     *xmlValue    `xml:"name"`
	Type     *xmlValue    `xml:"type"`
	Snapshot *xmlElements `xml:"snapshot"`
}

type xmlElements struct {
	Element []xmlElement `xml:"element"`
}

type xmlElement struct {
	ID          string      `xml:"id,attr"`
	Path        *xmlValue   `xml:"path"`
	Min         *xmlValue   `xml:"min"`
	Max         *xmlValue   `xml:"max"`
	MustSupport *xmlValue   `xml:"mustSupport"`
	Short       *xmlValue   `xml:"short"`
	Definition  *xmlValue   `xml:"definition"`
	Slicing     *xmlSlicing `xml:"slicing"`
	Binding     *xmlBinding `xml:"binding"`
}

type xmlSlicing struct {
	Discriminator []xmlDiscriminator `xml:"discriminator"`
	Rules         *xmlValue          `xml:"rules"`
	Ordered       *xmlValue          `xml:"ordered"`
	Description   *xmlValue          `xml:"description"`
}

type xmlDiscriminator struct {
	Type xmlValue `xml:"type"`
	Path xmlValue `xml:"path"`
}

type xmlBinding struct {
	Strength *xmlValue `xml:"strength"`
	ValueSet *xmlValue `xml:"valueSet"`
}

func parseXML(data []byte) (*Profile, error) {
	var doc xmlDocument

	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile XML: %w", err)
	}

	if doc.Snapshot == nil || len(doc.Snapshot.Element) == 0 {
		return nil, ErrNoSnapshot
	}

	p := &Profile{}
	if doc.URL != nil {
		p.URL = doc.URL.Value
	}

	if doc.Name != nil {
		p.Name = doc.Name.Value
	}

	if doc.Type != nil {
		p.Type = doc.Type.Value
	}

	for i := range doc.Snapshot.Element {
		c, err := doc.Snapshot.Element[i].constraint()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		p.Constraints = append(p.Constraints, c)
	}

	return p, nil
}

func (e *xmlElement) constraint() (Constraint, error) {
	c := Constraint{
		ID:         e.ID,
		Max:        e.Max.str(),
		Short:      e.Short.str(),
		Definition: e.Definition.str(),
	}

	if e.Path != nil {
		c.Path = e.Path.Value
	}

	if e.Min != nil {
		n, err := strconv.Atoi(e.Min.Value)
		if err != nil {
			return c, fmt.Errorf("%s: invalid min %q", c.Path, e.Min.Value)
		}

		c.Min = &n
	}

	ms, err := e.MustSupport.boolean()
	if err != nil {
		return c, fmt.Errorf("%s: mustSupport: %w", c.Path, err)
	}

	c.MustSupport = ms

	if e.Slicing != nil {
		ordered, err := e.Slicing.Ordered.boolean()
		if err != nil {
			return c, fmt.Errorf("%s: slicing.ordered: %w", c.Path, err)
		}

		s := &SlicingSpec{
			Rules:       e.Slicing.Rules.str(),
			Ordered:     ordered,
			Description: e.Slicing.Description.str(),
		}

		for _, d := range e.Slicing.Discriminator {
			s.Discriminators = append(s.Discriminators, Discriminator{Type: d.Type.Value, Path: d.Path.Value})
		}

		c.Slicing = s
	}

	if e.Binding != nil {
		c.Binding = &BindingSpec{ValueSet: e.Binding.ValueSet.str(), Strength: e.Binding.Strength.str()}
	}

	return c, nil
}
