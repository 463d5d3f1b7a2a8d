package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() fallback for enum values outside their range.
const UnknownStr = "unknown"

// RefName returns the classifier name addressed by an Ecore reference such as
// "#//HumanName" or "ecore:EDataType http://www.eclipse.org/emf/2002/Ecore#//EString".
// Returns empty string if ref is empty.
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if i := strings.LastIndex(ref, "#"); i >= 0 {
		ref = ref[i+1:]
	}

	return path.Base(ref)
}

// LocalRef builds a same-package Ecore reference ("#//Name") for a classifier name.
func LocalRef(name string) string {
	return "#//" + name
}
