package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEcore = `<?xml version="1.0" encoding="UTF-8"?>
<ecore:EPackage xmi:version="2.0" xmlns:xmi="http://www.omg.org/XMI" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xmlns:ecore="http://www.eclipse.org/emf/2002/Ecore" name="fhir" nsURI="http://hl7.org/fhir" nsPrefix="fhir">
  <eAnnotations source="http://www.eclipse.org/emf/2002/GenModel">
    <details key="documentation" value="FHIR core model"/>
  </eAnnotations>
  <eClassifiers xsi:type="ecore:EClass" name="Resource" abstract="true">
    <eStructuralFeatures xsi:type="ecore:EReference" name="id" eType="#//Id" containment="true"/>
  </eClassifiers>
  <eClassifiers xsi:type="ecore:EClass" name="Patient" eSuperTypes="#//Resource">
    <eStructuralFeatures xsi:type="ecore:EReference" name="name" upperBound="-1" eType="#//HumanName" containment="true">
      <eAnnotations source="http://www.eclipse.org/emf/2002/GenModel">
        <details key="documentation" value="A name associated with the individual."/>
      </eAnnotations>
    </eStructuralFeatures>
    <eStructuralFeatures xsi:type="ecore:EAttribute" name="active" lowerBound="1" eType="ecore:EDataType http://www.eclipse.org/emf/2002/Ecore#//EBoolean" unsettable="true"/>
  </eClassifiers>
  <eClassifiers xsi:type="ecore:EDataType" name="IdPrimitive" instanceClassName="java.lang.String"/>
  <eClassifiers xsi:type="ecore:EEnum" name="AdministrativeGenderList">
    <eLiterals name="male"/>
    <eLiterals name="female" value="1"/>
  </eClassifiers>
</ecore:EPackage>
`

func TestParseEcore(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sampleEcore), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "fhir", s.Name)
	assert.Equal(t, "http://hl7.org/fhir", s.NsURI)
	assert.Equal(t, "fhir", s.NsPrefix)
	require.Len(t, s.Annotations, 1)
	require.Equal(t, 4, s.Len(), spew.Sdump(s.Classes()))

	resource := s.Lookup("Resource")
	require.NotNil(t, resource)
	assert.True(t, resource.Abstract)

	patient := s.LookupClass("Patient")
	require.NotNil(t, patient)
	assert.Equal(t, []string{"Resource"}, patient.SuperTypes)
	require.Len(t, patient.Features, 2)

	name := patient.Features[0]
	assert.Equal(t, FeatureReference, name.Kind)
	assert.Equal(t, "#//HumanName", name.Type)
	assert.Equal(t, 0, name.Lower)
	assert.Equal(t, Unbounded, name.Upper)
	assert.True(t, name.Containment)
	require.NotNil(t, name.Annotation("http://www.eclipse.org/emf/2002/GenModel"))

	active := patient.Features[1]
	assert.Equal(t, FeatureAttribute, active.Kind)
	assert.Equal(t, 1, active.Lower)
	assert.Equal(t, Bound(1), active.Upper)
	assert.Equal(t, "ecore:EDataType http://www.eclipse.org/emf/2002/Ecore#//EBoolean", active.Type)
	v, ok := active.Properties.Get("unsettable")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	assert.Equal(t, KindDataType, s.Lookup("IdPrimitive").Kind)
	assert.Equal(t, "java.lang.String", s.Lookup("IdPrimitive").InstanceClassName)

	enum := s.Lookup("AdministrativeGenderList")
	assert.Equal(t, KindEnum, enum.Kind)
	assert.Equal(t, []Literal{{Name: "male"}, {Name: "female", Value: 1}}, enum.Literals)

	assert.NotNil(t, s.FindFeature(patient, "id"))
}

func TestParseEcoreErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"malformed xml", `<ecore:EPackage name="x"`},
		{"bad classifier type", `<EPackage><eClassifiers xsi:type="ecore:EPackage" name="A"/></EPackage>`},
		{"bad upper bound", `<EPackage><eClassifiers name="A"><eStructuralFeatures name="f" upperBound="many"/></eClassifiers></EPackage>`},
		{"bad lower bound", `<EPackage><eClassifiers name="A"><eStructuralFeatures name="f" lowerBound="-3"/></eClassifiers></EPackage>`},
		{"duplicate classifier", `<EPackage><eClassifiers name="A"/><eClassifiers name="A"/></EPackage>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), FormatEcore)
			require.Error(t, err)
		})
	}
}

func TestEcoreRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sampleEcore), FormatEcore)
	require.NoError(t, err)

	data, err := Marshal(s, FormatEcore)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<ecore:EPackage xmi:version="2.0" xmlns:xmi="http://www.omg.org/XMI"`)
	assert.Contains(t, string(data), `xsi:type="ecore:EReference" name="name" upperBound="-1" eType="#//HumanName" containment="true"`)

	again, err := Parse(data, FormatAuto)
	require.NoError(t, err)
	assertSameSchema(t, s, again)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sampleEcore), FormatEcore)
	require.NoError(t, err)

	data, err := Marshal(s, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "upper: '*'")

	again, err := Parse(data, FormatAuto)
	require.NoError(t, err)
	assertSameSchema(t, s, again)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	data := `
name: mini
classes:
  - name: Patient
    features:
      - name: name
        kind: reference
        type: "#//HumanName"
        upper: "*"
      - name: gender
        type: "#//Code"
        lower: 1
        annotations:
          - source: http://hl7.org/fhir
            details:
              mustSupport: "true"
  - name: Code
    kind: datatype
`

	s, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)

	p := s.LookupClass("Patient")
	require.NotNil(t, p)
	assert.Equal(t, Unbounded, p.Feature("name").Upper)
	assert.Equal(t, Bound(1), p.Feature("gender").Upper, "upper defaults to 1")
	assert.Equal(t, 1, p.Feature("gender").Lower)

	v, ok := p.Feature("gender").Annotation("http://hl7.org/fhir").Details.Get("mustSupport")
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	assert.Equal(t, KindDataType, s.Lookup("Code").Kind)

	_, err = Parse([]byte("classes:\n  - name: X\n    kind: widget\n"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte("classes: [\n"), FormatYAML)
	require.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Parse([]byte(sampleEcore), FormatEcore)
	require.NoError(t, err)

	for _, name := range []string{"out.ecore", "out.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(s, path, FormatAuto))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assertSameSchema(t, s, loaded)
	}

	// Unknown extension defaults to Ecore and is sniffed on load.
	path := filepath.Join(dir, "out.model")
	require.NoError(t, WriteFile(s, path, FormatAuto))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<?xml")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Len(), loaded.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.ecore"))
	require.Error(t, err)

	require.Error(t, WriteFile(s, filepath.Join(dir, "no", "such", "dir.ecore"), FormatAuto))
}

func TestFormats(t *testing.T) {
	t.Parallel()

	f, err := FormatFromPath("a/b/fhir.ECORE")
	require.NoError(t, err)
	assert.Equal(t, FormatEcore, f)

	f, err = FormatFromPath("profiled.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("x.json")
	require.ErrorIs(t, err, ErrUnknownFormat)

	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("json")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Marshal(New("x", "", ""), Format("json"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse(nil, Format("json"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func assertSameSchema(t *testing.T, want, got *Schema) {
	t.Helper()

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.NsURI, got.NsURI)
	assert.Equal(t, want.NsPrefix, got.NsPrefix)
	require.Equal(t, want.Len(), got.Len())
	require.Len(t, got.Annotations, len(want.Annotations))

	for i, wc := range want.Classes() {
		gc := got.Classes()[i]
		assert.Equal(t, wc.Name, gc.Name)
		assert.Equal(t, wc.Kind, gc.Kind)
		assert.Equal(t, wc.Abstract, gc.Abstract)
		assert.Equal(t, wc.SuperTypes, gc.SuperTypes)
		assert.Equal(t, wc.InstanceClassName, gc.InstanceClassName)
		assert.Equal(t, wc.Literals, gc.Literals)
		require.Len(t, gc.Features, len(wc.Features), wc.Name)

		for j, wf := range wc.Features {
			gf := gc.Features[j]
			assert.Equal(t, wf.Name, gf.Name)
			assert.Equal(t, wf.Kind, gf.Kind)
			assert.Equal(t, wf.Type, gf.Type)
			assert.Equal(t, wf.Lower, gf.Lower)
			assert.Equal(t, wf.Upper, gf.Upper)
			assert.Equal(t, wf.Containment, gf.Containment)
			assert.Equal(t, wf.Properties.Map(), gf.Properties.Map())
			require.Len(t, gf.Annotations, len(wf.Annotations))

			for k, wa := range wf.Annotations {
				assert.Equal(t, wa.Source, gf.Annotations[k].Source)
				assert.Equal(t, wa.Details.Keys(), gf.Annotations[k].Details.Keys())
				assert.Equal(t, wa.Details.Map(), gf.Annotations[k].Details.Map())
			}
		}
	}
}
