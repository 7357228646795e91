package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses the document written by `kudumbam export --format json`.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed family.
func (p *JSONParser) Parse(r io.Reader) (*RawFamily, error) {
	var family RawFamily

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&family); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range family.Persons {
		family.Persons[i].LineNum = i + 1
	}
	for i := range family.Relationships {
		family.Relationships[i].LineNum = i + 1
	}

	return &family, nil
}
