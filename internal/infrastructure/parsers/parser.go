// Package parsers provides parsers for importing families from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson represents a person parsed from an external source before validation.
type RawPerson struct {
	ID       string `json:"id"` // Source id, used only to resolve relationships
	Name     string `json:"name"`
	Alias    string `json:"alias,omitempty"`
	Age      *int   `json:"age,omitempty"` // Pointer to distinguish 0 from unset
	Gender   string `json:"gender,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	LineNum  int    `json:"-"` // Line number in source file (set by parser)
}

// RawRelationship represents an edge between two source ids.
type RawRelationship struct {
	PersonA string `json:"person_a"`
	PersonB string `json:"person_b"`
	Type    string `json:"relation_type"`
	LineNum int    `json:"-"`
}

// RawFamily is everything parsed from one file.
type RawFamily struct {
	Persons       []RawPerson       `json:"persons"`
	Relationships []RawRelationship `json:"relationships"`
}

// Parser defines the interface for parsing families from various formats.
type Parser interface {
	Parse(r io.Reader) (*RawFamily, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
