package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// RelationshipService manages parent and spouse edges between persons.
type RelationshipService struct {
	relationalDB ports.RelationalDB
	families     *FamilyService
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(relationalDB ports.RelationalDB, families *FamilyService) *RelationshipService {
	return &RelationshipService{
		relationalDB: relationalDB,
		families:     families,
	}
}

// Create adds an edge between two persons of the family behind token.
// For parent edges personA is the parent of personB.
func (s *RelationshipService) Create(
	ctx context.Context,
	token, personA, personB string,
	relType entities.RelationType,
) (*entities.Relationship, error) {
	if !relType.IsValid() {
		return nil, fmt.Errorf("%w: invalid relation_type %q", ErrInvalidInput, relType)
	}
	if personA == "" || personB == "" {
		return nil, fmt.Errorf("%w: person_a and person_b are required", ErrInvalidInput)
	}
	if personA == personB {
		return nil, fmt.Errorf("%w: a person cannot be related to themselves", ErrInvalidInput)
	}

	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	// Validate both persons exist in this family
	for _, id := range []string{personA, personB} {
		p, err := s.relationalDB.FindPersonByID(ctx, family.ID, id)
		if err != nil {
			return nil, fmt.Errorf("finding person: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
		}
	}

	// Check for duplicate and reverse-duplicate edges
	for _, pair := range [][2]string{{personA, personB}, {personB, personA}} {
		existing, err := s.relationalDB.FindRelationship(ctx, family.ID, pair[0], pair[1], relType)
		if err != nil {
			return nil, fmt.Errorf("checking existing relationship: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w (id: %s)", ErrRelationshipExists, existing.ID)
		}
	}

	rel := &entities.Relationship{
		ID:           uuid.New().String(),
		FamilyID:     family.ID,
		PersonA:      personA,
		PersonB:      personB,
		RelationType: relType,
		CreatedAt:    timeNow().UTC(),
	}
	if err := s.relationalDB.SaveRelationship(ctx, rel); err != nil {
		// A concurrent writer won the race past the checks above.
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, ErrRelationshipExists
		}
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	return rel, nil
}

// Delete removes an edge of the family behind token.
func (s *RelationshipService) Delete(ctx context.Context, token, id string) error {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return err
	}
	rel, err := s.relationalDB.FindRelationshipByID(ctx, family.ID, id)
	if err != nil {
		return fmt.Errorf("finding relationship: %w", err)
	}
	if rel == nil {
		return ErrRelationshipNotFound
	}
	if err := s.relationalDB.DeleteRelationship(ctx, family.ID, id); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return nil
}

// List returns every edge of the family behind token.
func (s *RelationshipService) List(ctx context.Context, token string) ([]entities.Relationship, error) {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	rels, err := s.relationalDB.ListRelationships(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	return rels, nil
}
