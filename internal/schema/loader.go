package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a persisted schema format.
type Format string

const (
	FormatAuto  Format = ""
	FormatEcore Format = "ecore"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned when a format cannot be determined.
var ErrUnknownFormat = errors.New("unknown schema format")

// ParseFormat validates a format name. An empty name means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatEcore, FormatYAML:
		return f, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ecore", ".xmi", ".xml":
		return FormatEcore, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
	}
}

// sniffFormat treats anything starting with '<' as XMI.
func sniffFormat(data []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return FormatEcore
	}

	return FormatYAML
}

// LoadFile loads a schema from the given path. The format is taken from the
// extension, falling back to content sniffing.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		format = FormatAuto
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema file %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes schema data in the given format.
func Parse(data []byte, format Format) (*Schema, error) {
	if format == FormatAuto {
		format = sniffFormat(data)
	}

	switch format {
	case FormatEcore:
		return parseEcore(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Marshal encodes a schema in the given format. FormatAuto means Ecore.
func Marshal(s *Schema, format Format) ([]byte, error) {
	switch format {
	case FormatAuto, FormatEcore:
		return marshalEcore(s)
	case FormatYAML:
		return marshalYAML(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile writes a schema to path. FormatAuto picks the format from the
// extension, defaulting to Ecore.
func WriteFile(s *Schema, path string, format Format) error {
	if format == FormatAuto {
		if f, err := FormatFromPath(path); err == nil {
			format = f
		}
	}

	data, err := Marshal(s, format)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
