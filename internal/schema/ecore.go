package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"schema-profiler/internal/common"
)

const (
	xmiNamespace   = "http://www.omg.org/XMI"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	ecoreNamespace = "http://www.eclipse.org/emf/2002/Ecore"

	ecoreClass     = "ecore:EClass"
	ecoreDataType  = "ecore:EDataType"
	ecoreEnum      = "ecore:EEnum"
	ecoreAttribute = "ecore:EAttribute"
	ecoreReference = "ecore:EReference"
)

// Unprefixed attribute tags match regardless of namespace, so xsi:type
// decodes through "type,attr".

type xmiPackage struct {
	XMLName     xml.Name        `xml:"EPackage"`
	Name        string          `xml:"name,attr"`
	NsURI       string          `xml:"nsURI,attr"`
	NsPrefix    string          `xml:"nsPrefix,attr"`
	Annotations []xmiAnnotation `xml:"eAnnotations"`
	Classifiers []xmiClassifier `xml:"eClassifiers"`
}

type xmiClassifier struct {
	Type              string          `xml:"type,attr"`
	Name              string          `xml:"name,attr"`
	Abstract          bool            `xml:"abstract,attr"`
	Interface         bool            `xml:"interface,attr"`
	InstanceClassName string          `xml:"instanceClassName,attr"`
	SuperTypes        string          `xml:"eSuperTypes,attr"`
	Annotations       []xmiAnnotation `xml:"eAnnotations"`
	Features          []xmiFeature    `xml:"eStructuralFeatures"`
	Literals          []xmiLiteral    `xml:"eLiterals"`
}

type xmiFeature struct {
	Type        string          `xml:"type,attr"`
	Name        string          `xml:"name,attr"`
	LowerBound  string          `xml:"lowerBound,attr"`
	UpperBound  string          `xml:"upperBound,attr"`
	EType       string          `xml:"eType,attr"`
	Containment bool            `xml:"containment,attr"`
	Opposite    string          `xml:"eOpposite,attr"`
	Extra       []xml.Attr      `xml:",any,attr"`
	Annotations []xmiAnnotation `xml:"eAnnotations"`
}

type xmiLiteral struct {
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
	Literal string `xml:"literal,attr"`
}

type xmiAnnotation struct {
	Source  string      `xml:"source,attr"`
	Details []xmiDetail `xml:"details"`
}

type xmiDetail struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

func parseEcore(data []byte) (*Schema, error) {
	var pkg xmiPackage

	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse Ecore XMI: %w", err)
	}

	s := New(pkg.Name, pkg.NsURI, pkg.NsPrefix)
	s.Annotations = annotationsFromXMI(pkg.Annotations)

	for i := range pkg.Classifiers {
		c, err := classFromXMI(&pkg.Classifiers[i])
		if err != nil {
			return nil, err
		}

		if err := s.Add(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func classFromXMI(xc *xmiClassifier) (*Class, error) {
	c := &Class{
		Name:              xc.Name,
		Abstract:          xc.Abstract,
		Interface:         xc.Interface,
		InstanceClassName: xc.InstanceClassName,
		Annotations:       annotationsFromXMI(xc.Annotations),
	}

	switch xc.Type {
	case ecoreClass, "":
		c.Kind = KindClass
	case ecoreDataType:
		c.Kind = KindDataType
	case ecoreEnum:
		c.Kind = KindEnum
	default:
		return nil, fmt.Errorf("classifier %q: unsupported type %q", xc.Name, xc.Type)
	}

	for _, ref := range strings.Fields(xc.SuperTypes) {
		c.SuperTypes = append(c.SuperTypes, common.RefName(ref))
	}

	for _, xl := range xc.Literals {
		l := Literal{Name: xl.Name, Literal: xl.Literal}

		if xl.Value != "" {
			v, err := strconv.Atoi(xl.Value)
			if err != nil {
				return nil, fmt.Errorf("literal %s.%s: invalid value %q", xc.Name, xl.Name, xl.Value)
			}

			l.Value = v
		}

		c.Literals = append(c.Literals, l)
	}

	for i := range xc.Features {
		f, err := featureFromXMI(&xc.Features[i])
		if err != nil {
			return nil, fmt.Errorf("feature %s.%s: %w", xc.Name, xc.Features[i].Name, err)
		}

		c.AddFeature(f)
	}

	return c, nil
}

func featureFromXMI(xf *xmiFeature) (*Feature, error) {
	kind := FeatureAttribute
	if xf.Type == ecoreReference {
		kind = FeatureReference
	}

	f := NewFeature(xf.Name, kind, xf.EType)
	f.Containment = xf.Containment
	f.Opposite = xf.Opposite
	f.Annotations = annotationsFromXMI(xf.Annotations)

	if xf.LowerBound != "" {
		n, err := strconv.Atoi(xf.LowerBound)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid lowerBound %q", xf.LowerBound)
		}

		f.Lower = n
	}

	if xf.UpperBound != "" {
		b, err := parseEcoreBound(xf.UpperBound)
		if err != nil {
			return nil, err
		}

		f.Upper = b
	}

	for _, a := range xf.Extra {
		if a.Name.Space != "" {
			continue
		}

		if f.Properties == nil {
			f.Properties = NewDetails()
		}

		f.Properties.Set(a.Name.Local, a.Value)
	}

	return f, nil
}

func annotationsFromXMI(list []xmiAnnotation) []*Annotation {
	var out []*Annotation

	for _, xa := range list {
		a := NewAnnotation(xa.Source)
		for _, d := range xa.Details {
			a.Details.Set(d.Key, d.Value)
		}

		out = append(out, a)
	}

	return out
}

// ecoreWriter emits XMI tokens, keeping the first error.
type ecoreWriter struct {
	enc *xml.Encoder
	err error
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (w *ecoreWriter) start(name string, attrs ...xml.Attr) {
	if w.err != nil {
		return
	}

	w.err = w.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *ecoreWriter) end(name string) {
	if w.err != nil {
		return
	}

	w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *ecoreWriter) annotations(list []*Annotation) {
	for _, a := range list {
		w.start("eAnnotations", attr("source", a.Source))

		for _, k := range a.Details.Keys() {
			v, _ := a.Details.Get(k)
			w.start("details", attr("key", k), attr("value", v))
			w.end("details")
		}

		w.end("eAnnotations")
	}
}

func (w *ecoreWriter) classifier(c *Class) {
	attrs := []xml.Attr{}

	switch c.Kind {
	case KindDataType:
		attrs = append(attrs, attr("xsi:type", ecoreDataType))
	case KindEnum:
		attrs = append(attrs, attr("xsi:type", ecoreEnum))
	default:
		attrs = append(attrs, attr("xsi:type", ecoreClass))
	}

	attrs = append(attrs, attr("name", c.Name))

	if c.Abstract {
		attrs = append(attrs, attr("abstract", "true"))
	}

	if c.Interface {
		attrs = append(attrs, attr("interface", "true"))
	}

	if c.InstanceClassName != "" {
		attrs = append(attrs, attr("instanceClassName", c.InstanceClassName))
	}

	if len(c.SuperTypes) > 0 {
		refs := make([]string, 0, len(c.SuperTypes))
		for _, st := range c.SuperTypes {
			refs = append(refs, common.LocalRef(st))
		}

		attrs = append(attrs, attr("eSuperTypes", strings.Join(refs, " ")))
	}

	w.start("eClassifiers", attrs...)
	w.annotations(c.Annotations)

	for _, l := range c.Literals {
		la := []xml.Attr{attr("name", l.Name)}
		if l.Value != 0 {
			la = append(la, attr("value", strconv.Itoa(l.Value)))
		}

		if l.Literal != "" {
			la = append(la, attr("literal", l.Literal))
		}

		w.start("eLiterals", la...)
		w.end("eLiterals")
	}

	for _, f := range c.Features {
		w.feature(f)
	}

	w.end("eClassifiers")
}

func (w *ecoreWriter) feature(f *Feature) {
	typ := ecoreAttribute
	if f.Kind == FeatureReference {
		typ = ecoreReference
	}

	attrs := []xml.Attr{attr("xsi:type", typ), attr("name", f.Name)}

	for _, k := range f.Properties.Keys() {
		v, _ := f.Properties.Get(k)
		attrs = append(attrs, attr(k, v))
	}

	if f.Lower != 0 {
		attrs = append(attrs, attr("lowerBound", strconv.Itoa(f.Lower)))
	}

	if f.Upper != 1 {
		attrs = append(attrs, attr("upperBound", strconv.Itoa(int(f.Upper))))
	}

	if f.Type != "" {
		attrs = append(attrs, attr("eType", f.Type))
	}

	if f.Containment {
		attrs = append(attrs, attr("containment", "true"))
	}

	if f.Opposite != "" {
		attrs = append(attrs, attr("eOpposite", f.Opposite))
	}

	w.start("eStructuralFeatures", attrs...)
	w.annotations(f.Annotations)
	w.end("eStructuralFeatures")
}

func marshalEcore(s *Schema) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	w := &ecoreWriter{enc: xml.NewEncoder(&buf)}
	w.enc.Indent("", "  ")

	w.start("ecore:EPackage",
		attr("xmi:version", "2.0"),
		attr("xmlns:xmi", xmiNamespace),
		attr("xmlns:xsi", xsiNamespace),
		attr("xmlns:ecore", ecoreNamespace),
		attr("name", s.Name),
		attr("nsURI", s.NsURI),
		attr("nsPrefix", s.NsPrefix),
	)
	w.annotations(s.Annotations)

	for _, c := range s.Classes() {
		w.classifier(c)
	}

	w.end("ecore:EPackage")

	if w.err == nil {
		w.err = w.enc.Flush()
	}

	if w.err != nil {
		return nil, fmt.Errorf("failed to encode Ecore XMI: %w", w.err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
