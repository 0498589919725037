package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.json
var embedded []byte

// FormatVersion is the lexicon file layout this package reads
const FormatVersion = 1

// Format of a serialized lexicon
type Format string

// Supported formats
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks a format from a file extension, defaulting to JSON
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

var loadDefault = sync.OnceValues(func() (*Store, error) {
	t, err := Decode(embedded, JSON)
	if err != nil {
		return nil, fmt.Errorf("lexicon: embedded lexicon.json: %w", err)
	}
	return New(t)
})

// Default returns the store built from the embedded lexicon.json.
// The store is built once per process.
func Default() (*Store, error) { return loadDefault() }

// Embedded returns a copy of the raw embedded lexicon
func Embedded() []byte { return bytes.Clone(embedded) }

// Decode parses serialized tables without building a store.
// Unknown fields are rejected so misspelled table names fail loudly.
func Decode(data []byte, f Format) (Tables, error) {
	var t Tables
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return Tables{}, fmt.Errorf("decode yaml: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Tables{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Tables{}, fmt.Errorf("unsupported lexicon format %q", f)
	}
	if t.Version != FormatVersion {
		return Tables{}, fmt.Errorf("unsupported lexicon version %d (want %d)", t.Version, FormatVersion)
	}
	return t, nil
}

// Parse decodes data and builds a store
func Parse(data []byte, f Format) (*Store, error) {
	t, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	return New(t)
}

// LoadFile reads a JSON or YAML lexicon from disk
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return s, nil
}

// Open returns the store at path, or the embedded default when path is empty
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}
