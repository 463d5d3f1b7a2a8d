// Package match finds the closest name among a set of candidates.
//
// It backs the "did you mean" hints attached to constraints whose class or
// feature name does not exist in the base schema. Names are compared after
// case folding and separator stripping, so "birth_date" and "birthDate"
// are considered identical.
package match
