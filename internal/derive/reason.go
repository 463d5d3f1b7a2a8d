package derive

//go:generate go tool stringer -type=Reason -linecomment -output=reason_string.go

// Reason explains why a constraint was skipped. String() yields the
// diagnostic code.
type Reason int

const (
	_ Reason = iota // zero value is not a valid reason

	ReasonMalformedPath   // root_or_malformed_path
	ReasonClassNotFound   // class_not_found
	ReasonNotAClass       // not_a_class
	ReasonFeatureNotFound // feature_not_found
)

// Diagnostic codes for problems that do not skip the whole constraint.
const (
	CodeInvalidMin    = "invalid_min"
	CodeInvalidMax    = "invalid_max"
	CodePathTruncated = "path_truncated"
)
