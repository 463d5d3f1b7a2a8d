package derive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"schema-profiler/internal/diagnostic"
	"schema-profiler/internal/schema"
)

// baseSchema builds a small FHIR-like base model:
//
//	Resource { id }
//	DomainResource : Resource { text }
//	Patient : DomainResource { name 0..*, gender 0..1, contact 0..* }
//	Observation : DomainResource { value 0..1 }
//	code (data type)
func baseSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s := schema.New("fhir", "http://hl7.org/fhir", "fhir")
	doc := schema.NewAnnotation(DocumentationNamespace)
	doc.Details.Set("documentation", "base")
	s.Annotations = append(s.Annotations, doc)

	resource := schema.NewClass("Resource")
	resource.Abstract = true
	resource.AddFeature(schema.NewFeature("id", schema.FeatureReference, "#//Id"))

	domain := schema.NewClass("DomainResource")
	domain.SuperTypes = []string{"Resource"}
	domain.AddFeature(schema.NewFeature("text", schema.FeatureReference, "#//Narrative"))

	patient := schema.NewClass("Patient")
	patient.SuperTypes = []string{"DomainResource"}

	name := schema.NewFeature("name", schema.FeatureReference, "#//HumanName")
	name.Upper = schema.Unbounded
	name.Containment = true
	name.EnsureAnnotation(DocumentationNamespace).Details.Set("documentation", "A name")

	contact := schema.NewFeature("contact", schema.FeatureReference, "#//PatientContact")
	contact.Upper = schema.Unbounded

	patient.AddFeature(name)
	patient.AddFeature(schema.NewFeature("gender", schema.FeatureReference, "#//AdministrativeGender"))
	patient.AddFeature(contact)

	observation := schema.NewClass("Observation")
	observation.SuperTypes = []string{"DomainResource"}
	observation.AddFeature(schema.NewFeature("value", schema.FeatureReference, "#//Element"))

	code := &schema.Class{Name: "code", Kind: schema.KindDataType, InstanceClassName: "java.lang.String"}

	for _, c := range []*schema.Class{resource, domain, patient, observation, code} {
		require.NoError(t, s.Add(c))
	}

	return s
}

func detail(t *testing.T, f *schema.Feature, source, key string) string {
	t.Helper()

	a := f.Annotation(source)
	require.NotNil(t, a, "annotation %s", source)

	v, ok := a.Details.Get(key)
	require.True(t, ok, "detail %s in %s", key, source)

	return v
}

// collect returns every diagnostic in d that matches keep, errors first.
func collect(d *diagnostic.Diagnostics, keep func(diagnostic.Diagnostic) bool) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	for _, group := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if keep(diag) {
				out = append(out, diag)
			}
		}
	}

	return out
}

func forPath(d *diagnostic.Diagnostics, path string) []diagnostic.Diagnostic {
	return collect(d, func(diag diagnostic.Diagnostic) bool { return diag.Path == path })
}

func withCode(d *diagnostic.Diagnostics, code string) []diagnostic.Diagnostic {
	return collect(d, func(diag diagnostic.Diagnostic) bool { return diag.Code == code })
}
