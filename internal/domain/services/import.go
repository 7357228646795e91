package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific row during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Persons       int
	Relationships int
	Skipped       int
	Errors        []ImportError
	// IDs maps source ids to the ids the persons were stored under.
	IDs map[string]string
}

// ImportService loads parsed families into an existing family.
type ImportService struct {
	families      *FamilyService
	persons       *PersonService
	relationships *RelationshipService
}

// NewImportService creates a new import service.
func NewImportService(families *FamilyService, persons *PersonService, relationships *RelationshipService) *ImportService {
	return &ImportService{
		families:      families,
		persons:       persons,
		relationships: relationships,
	}
}

// Import validates and adds the persons and relationships of raw to the family behind
// token. Invalid rows are reported and skipped; edges that already exist are counted
// as skipped.
func (s *ImportService) Import(ctx context.Context, token string, raw *parsers.RawFamily, opts ImportOptions) (*ImportResult, error) {
	if _, err := s.families.Resolve(ctx, token); err != nil {
		return nil, err
	}

	result := &ImportResult{IDs: make(map[string]string, len(raw.Persons))}

	for i := range raw.Persons {
		if err := s.importPerson(ctx, token, &raw.Persons[i], opts, result); err != nil {
			return nil, err
		}
	}

	seen := make(map[edgeKey]bool, len(raw.Relationships))
	for i := range raw.Relationships {
		if err := s.importRelationship(ctx, token, &raw.Relationships[i], opts, seen, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *ImportService) importPerson(ctx context.Context, token string, raw *parsers.RawPerson, opts ImportOptions, result *ImportResult) error {
	if importErr := validateRawPerson(raw, result.IDs); importErr != nil {
		result.Errors = append(result.Errors, *importErr)
		return nil
	}

	if opts.DryRun {
		result.IDs[raw.ID] = raw.ID
		result.Persons++
		return nil
	}

	p, err := s.persons.Create(ctx, token, PersonInput{
		Name:     raw.Name,
		Alias:    raw.Alias,
		Age:      raw.Age,
		Gender:   raw.Gender,
		PhotoURL: raw.PhotoURL,
	})
	if errors.Is(err, ErrInvalidInput) {
		result.Errors = append(result.Errors, ImportError{Line: raw.LineNum, Message: err.Error()})
		return nil
	}
	if err != nil {
		return fmt.Errorf("importing person on line %d: %w", raw.LineNum, err)
	}

	result.IDs[raw.ID] = p.ID
	result.Persons++
	return nil
}

type edgeKey struct {
	a, b    string
	relType entities.RelationType
}

func (s *ImportService) importRelationship(
	ctx context.Context,
	token string,
	raw *parsers.RawRelationship,
	opts ImportOptions,
	seen map[edgeKey]bool,
	result *ImportResult,
) error {
	relType := entities.RelationType(strings.ToLower(strings.TrimSpace(raw.Type)))
	if !relType.IsValid() {
		result.Errors = append(result.Errors, ImportError{
			Line:    raw.LineNum,
			Field:   "relation_type",
			Value:   raw.Type,
			Message: fmt.Sprintf("invalid relation_type %q (valid: parent, spouse)", raw.Type),
		})
		return nil
	}

	a, okA := result.IDs[raw.PersonA]
	b, okB := result.IDs[raw.PersonB]
	if !okA || !okB {
		missing := raw.PersonA
		if okA {
			missing = raw.PersonB
		}
		result.Errors = append(result.Errors, ImportError{
			Line:    raw.LineNum,
			Field:   "person",
			Value:   missing,
			Message: fmt.Sprintf("unknown person %q", missing),
		})
		return nil
	}

	// Reverse edges are duplicates for both types.
	if seen[edgeKey{a, b, relType}] || seen[edgeKey{b, a, relType}] {
		result.Skipped++
		return nil
	}
	seen[edgeKey{a, b, relType}] = true

	if opts.DryRun {
		if a == b {
			result.Errors = append(result.Errors, ImportError{Line: raw.LineNum, Message: "a person cannot be related to themselves"})
			return nil
		}
		result.Relationships++
		return nil
	}

	_, err := s.relationships.Create(ctx, token, a, b, relType)
	switch {
	case errors.Is(err, ErrRelationshipExists):
		result.Skipped++
	case errors.Is(err, ErrInvalidInput):
		result.Errors = append(result.Errors, ImportError{Line: raw.LineNum, Message: err.Error()})
	case err != nil:
		return fmt.Errorf("importing relationship on line %d: %w", raw.LineNum, err)
	default:
		result.Relationships++
	}
	return nil
}

// validateRawPerson checks a raw person and returns an error if invalid.
func validateRawPerson(raw *parsers.RawPerson, ids map[string]string) *ImportError {
	if strings.TrimSpace(raw.ID) == "" {
		return &ImportError{Line: raw.LineNum, Field: "id", Message: "missing required field: id"}
	}
	if _, dup := ids[raw.ID]; dup {
		return &ImportError{Line: raw.LineNum, Field: "id", Value: raw.ID, Message: fmt.Sprintf("duplicate id %q", raw.ID)}
	}
	if strings.TrimSpace(raw.Name) == "" {
		return &ImportError{Line: raw.LineNum, Field: "name", Message: "missing required field: name"}
	}
	if _, ok := entities.ParseGender(raw.Gender); !ok {
		return &ImportError{Line: raw.LineNum, Field: "gender", Value: raw.Gender, Message: "gender must be M, F or empty"}
	}
	if raw.Age != nil && (*raw.Age < 0 || *raw.Age > MaxAge) {
		return &ImportError{
			Line:    raw.LineNum,
			Field:   "age",
			Value:   fmt.Sprintf("%d", *raw.Age),
			Message: fmt.Sprintf("age must be between 0 and %d", MaxAge),
		}
	}
	return nil
}
