// Package profile provides the element constraint model and the loader that
// turns a FHIR StructureDefinition into an ordered constraint list.
//
// A profile may be supplied as JSON, YAML or XML. JSON documents are read
// with the YAML decoder, which accepts JSON as a subset. Only the snapshot
// element list is used; differential-only profiles are rejected with
// ErrNoSnapshot.
//
//	{
//	  "resourceType": "StructureDefinition",
//	  "type": "Patient",
//	  "snapshot": {
//	    "element": [
//	      {"path": "Patient.name", "min": 1, "max": "1", "mustSupport": true,
//	       "short": "Patient's name",
//	       "slicing": {"discriminator": [{"type": "value", "path": "use"}], "rules": "open"},
//	       "binding": {"strength": "required", "valueSet": "http://hl7.org/fhir/ValueSet/name-use"}}
//	    ]
//	  }
//	}
//
// A bare list under an "elements" key is accepted as well, which keeps
// hand-written constraint files short.
//
// Optional values are pointers: nil means absent, which is distinct from
// an empty string or false.
package profile
