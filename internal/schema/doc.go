// Package schema provides the in-memory model shared by base and derived
// schemas, plus loading and saving in the Ecore XMI and YAML formats.
//
// The model is an explicit name-keyed representation of an Ecore package:
//   - Schema: package header (name, nsURI, nsPrefix), package annotations,
//     and an ordered list of classifiers indexed by name
//   - Class: a classifier (class, data type or enum) with ordered features
//   - Feature: an attribute or reference with an opaque type reference and
//     lower/upper multiplicity bounds
//   - Annotation: a source URI and an ordered key/value Details map
//
// Classifiers are looked up through typed accessors (Lookup, FindFeature,
// AllFeatures) instead of reflection. Feature copies made with Clone never
// share mutable state with their source.
//
// # Formats
//
// ".ecore" (and ".xmi"/".xml") files use the EMF XMI serialization:
//
//	<ecore:EPackage name="fhir" nsURI="http://hl7.org/fhir" nsPrefix="fhir">
//	  <eClassifiers xsi:type="ecore:EClass" name="Patient" eSuperTypes="#//DomainResource">
//	    <eStructuralFeatures xsi:type="ecore:EReference" name="name" upperBound="-1"
//	        eType="#//HumanName" containment="true"/>
//	  </eClassifiers>
//	</ecore:EPackage>
//
// ".yaml"/".yml" files carry the same content:
//
//	name: fhir
//	nsURI: http://hl7.org/fhir
//	classes:
//	  - name: Patient
//	    superTypes: [DomainResource]
//	    features:
//	      - name: name
//	        kind: reference
//	        type: "#//HumanName"
//	        upper: "*"
//	        containment: true
package schema
