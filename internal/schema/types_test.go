package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()

	s := New("fhir", "http://hl7.org/fhir", "fhir")

	resource := NewClass("Resource")
	resource.Abstract = true
	resource.AddFeature(NewFeature("id", FeatureAttribute, "#//Id"))

	domain := NewClass("DomainResource")
	domain.SuperTypes = []string{"Resource"}
	domain.AddFeature(NewFeature("text", FeatureReference, "#//Narrative"))

	patient := NewClass("Patient")
	patient.SuperTypes = []string{"DomainResource"}
	name := NewFeature("name", FeatureReference, "#//HumanName")
	name.Upper = Unbounded
	name.Containment = true
	patient.AddFeature(name)

	code := &Class{Name: "code", Kind: KindDataType, InstanceClassName: "java.lang.String"}

	for _, c := range []*Class{resource, domain, patient, code} {
		require.NoError(t, s.Add(c))
	}

	return s
}

func TestSchemaLookup(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	assert.Equal(t, 4, s.Len())
	assert.NotNil(t, s.Lookup("Patient"))
	assert.Nil(t, s.Lookup("Unknown"))
	assert.NotNil(t, s.Lookup("code"))
	assert.Nil(t, s.LookupClass("code"), "data types are not class-shaped")
	assert.NotNil(t, s.LookupClass("Patient"))

	var nilSchema *Schema
	assert.Nil(t, nilSchema.Lookup("Patient"))
}

func TestSchemaAddDuplicate(t *testing.T) {
	t.Parallel()

	s := New("p", "", "")
	require.NoError(t, s.Add(NewClass("A")))
	require.Error(t, s.Add(NewClass("A")))
	require.Error(t, s.Add(&Class{}))
	assert.Equal(t, 1, s.Len())
}

func TestFindFeatureInherited(t *testing.T) {
	t.Parallel()

	s := testSchema(t)
	patient := s.Lookup("Patient")

	assert.Equal(t, "name", s.FindFeature(patient, "name").Name)
	assert.Equal(t, "#//Narrative", s.FindFeature(patient, "text").Type)
	assert.Equal(t, "#//Id", s.FindFeature(patient, "id").Type)
	assert.Nil(t, s.FindFeature(patient, "missing"))
	assert.Nil(t, patient.Feature("id"), "own lookup does not flatten")

	names := []string{}
	for _, f := range s.AllFeatures(patient) {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"id", "text", "name"}, names)
}

func TestFindFeatureCycle(t *testing.T) {
	t.Parallel()

	s := New("p", "", "")
	a := NewClass("A")
	a.SuperTypes = []string{"B"}
	b := NewClass("B")
	b.SuperTypes = []string{"A"}
	b.AddFeature(NewFeature("x", FeatureAttribute, "#//EString"))
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	assert.NotNil(t, s.FindFeature(a, "x"))
	assert.Nil(t, s.FindFeature(a, "y"))
	assert.Len(t, s.AllFeatures(a), 1)
}

func TestShell(t *testing.T) {
	t.Parallel()

	s := testSchema(t)
	ann := NewAnnotation("http://www.eclipse.org/emf/2002/GenModel")
	ann.Details.Set("documentation", "FHIR")
	s.Annotations = append(s.Annotations, ann)

	shell := s.Shell()
	assert.Equal(t, "fhir", shell.Name)
	assert.Equal(t, "http://hl7.org/fhir", shell.NsURI)
	assert.Equal(t, "fhir", shell.NsPrefix)
	assert.Equal(t, 0, shell.Len())
	require.Len(t, shell.Annotations, 1)

	shell.Annotations[0].Details.Set("documentation", "changed")
	v, _ := ann.Details.Get("documentation")
	assert.Equal(t, "FHIR", v, "shell annotations must not alias the source")
}

func TestFeatureClone(t *testing.T) {
	t.Parallel()

	f := NewFeature("name", FeatureReference, "#//HumanName")
	f.Upper = Unbounded
	f.Containment = true
	f.Properties = NewDetails()
	f.Properties.Set("transient", "true")
	f.EnsureAnnotation("src").Details.Set("k", "v")

	c := f.Clone()
	assert.Equal(t, "name", c.Name)
	assert.Equal(t, FeatureReference, c.Kind)
	assert.Equal(t, "#//HumanName", c.Type)
	assert.Equal(t, Unbounded, c.Upper)
	assert.True(t, c.Containment)
	assert.Empty(t, c.Annotations)

	c.Lower = 1
	c.Upper = 1
	c.Properties.Set("transient", "false")
	c.EnsureAnnotation("src").Details.Set("k", "other")

	assert.Equal(t, 0, f.Lower)
	assert.Equal(t, Unbounded, f.Upper)
	v, _ := f.Properties.Get("transient")
	assert.Equal(t, "true", v)
	v, _ = f.Annotation("src").Details.Get("k")
	assert.Equal(t, "v", v)
}

func TestEnsureAnnotationSingle(t *testing.T) {
	t.Parallel()

	f := NewFeature("x", FeatureAttribute, "")
	a1 := f.EnsureAnnotation("http://hl7.org/fhir")
	a2 := f.EnsureAnnotation("http://hl7.org/fhir")

	assert.Same(t, a1, a2)
	assert.Len(t, f.Annotations, 1)
	assert.Nil(t, f.Annotation("other"))
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindClass, KindDataType, KindEnum} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("interface")
	require.Error(t, err)
	assert.Equal(t, "unknown", KindUnknown.String())

	for _, k := range []FeatureKind{FeatureAttribute, FeatureReference} {
		parsed, err := ParseFeatureKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err = ParseFeatureKind("operation")
	require.Error(t, err)
}
