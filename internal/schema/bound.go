package schema

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Bound is an upper multiplicity bound. Unbounded is the "many" marker.
type Bound int

// Unbounded matches Ecore's UNBOUNDED_MULTIPLICITY.
const Unbounded Bound = -1

// Wildcard is the textual form of Unbounded.
const Wildcard = "*"

// IsUnbounded reports whether b is the unbounded marker.
func (b Bound) IsUnbounded() bool {
	return b == Unbounded
}

// String returns "*" for Unbounded, the decimal value otherwise.
func (b Bound) String() string {
	if b.IsUnbounded() {
		return Wildcard
	}

	return strconv.Itoa(int(b))
}

// ParseBound parses "*" or a non-negative decimal integer.
func ParseBound(s string) (Bound, error) {
	if s == Wildcard {
		return Unbounded, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q: not a number", s)
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid bound %q: negative", s)
	}

	return Bound(n), nil
}

// parseEcoreBound accepts the XMI integer encoding where -1 means unbounded.
func parseEcoreBound(s string) (Bound, error) {
	if s == "-1" {
		return Unbounded, nil
	}

	return ParseBound(s)
}

// MarshalYAML renders the bound as "*" or an integer.
func (b Bound) MarshalYAML() (any, error) {
	if b.IsUnbounded() {
		return Wildcard, nil
	}

	return int(b), nil
}

// UnmarshalYAML accepts "*", -1, or a non-negative integer.
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("bound must be a scalar")
	}

	v, err := parseEcoreBound(node.Value)
	if err != nil {
		return err
	}

	*b = v

	return nil
}
