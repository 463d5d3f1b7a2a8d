package derive

import (
	"fmt"
	"strings"

	"schema-profiler/internal/match"
	"schema-profiler/internal/schema"
)

const choiceSuffix = "[x]"

// Path is a constraint path split into its class and feature segments.
type Path struct {
	Raw     string
	Class   string
	Feature string
	// Depth is the number of dot-separated segments in Raw.
	Depth int
}

// Truncated reports whether segments beyond the feature were ignored.
func (p Path) Truncated() bool {
	return p.Depth > 2
}

// ParsePath splits raw on "." and keeps the first two segments.
// It returns false for root paths and paths with empty leading segments.
func ParsePath(raw string) (Path, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Path{Raw: raw, Depth: len(parts)}, false
	}

	return Path{Raw: raw, Class: parts[0], Feature: parts[1], Depth: len(parts)}, true
}

// Resolution is a successfully resolved constraint path.
type Resolution struct {
	Path    Path
	Class   *schema.Class
	Feature *schema.Feature
}

// Skip describes a constraint that could not be resolved.
type Skip struct {
	Reason  Reason
	Path    string
	Class   string
	Feature string

	// Suggestion is the closest existing name, if any.
	Suggestion string
}

// Error implements error.
func (s *Skip) Error() string {
	msg := s.message()
	if s.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s.Suggestion)
	}

	return msg
}

func (s *Skip) message() string {
	switch s.Reason {
	case ReasonMalformedPath:
		return fmt.Sprintf("root or malformed path %q", s.Path)
	case ReasonClassNotFound:
		return fmt.Sprintf("could not find class %q in base schema", s.Class)
	case ReasonNotAClass:
		return fmt.Sprintf("classifier %q in base schema is not a class", s.Class)
	case ReasonFeatureNotFound:
		return fmt.Sprintf("could not find feature %q in class %q", s.Feature, s.Class)
	default:
		return fmt.Sprintf("skipped %q: %s", s.Path, s.Reason)
	}
}

// Resolve finds the base class and feature addressed by raw.
// Features are searched on the class and its supertypes. The base schema is
// not modified.
func Resolve(raw string, base *schema.Schema) (Resolution, *Skip) {
	p, ok := ParsePath(raw)
	if !ok {
		return Resolution{}, &Skip{Reason: ReasonMalformedPath, Path: raw}
	}

	c := base.LookupClass(p.Class)
	if c == nil {
		if base.Lookup(p.Class) != nil {
			return Resolution{}, &Skip{Reason: ReasonNotAClass, Path: raw, Class: p.Class}
		}

		skip := &Skip{Reason: ReasonClassNotFound, Path: raw, Class: p.Class}
		skip.Suggestion, _ = match.Closest(p.Class, classNames(base), match.DefaultThreshold)

		return Resolution{}, skip
	}

	f := base.FindFeature(c, p.Feature)
	if f == nil && strings.HasSuffix(p.Feature, choiceSuffix) {
		f = base.FindFeature(c, strings.TrimSuffix(p.Feature, choiceSuffix))
	}

	if f == nil {
		skip := &Skip{Reason: ReasonFeatureNotFound, Path: raw, Class: p.Class, Feature: p.Feature}
		skip.Suggestion, _ = match.Closest(p.Feature, featureNames(base, c), match.DefaultThreshold)

		return Resolution{}, skip
	}

	return Resolution{Path: p, Class: c, Feature: f}, nil
}

func classNames(s *schema.Schema) []string {
	var names []string

	for _, c := range s.Classes() {
		if c.IsClass() {
			names = append(names, c.Name)
		}
	}

	return names
}

func featureNames(s *schema.Schema, c *schema.Class) []string {
	all := s.AllFeatures(c)
	names := make([]string, 0, len(all))

	for _, f := range all {
		names = append(names, f.Name)
	}

	return names
}
