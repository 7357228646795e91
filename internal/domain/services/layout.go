package services

import (
	"context"
	"fmt"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// LayoutService stores diagram coordinates chosen by the user.
type LayoutService struct {
	relationalDB ports.RelationalDB
	families     *FamilyService
}

// NewLayoutService creates a new LayoutService.
func NewLayoutService(relationalDB ports.RelationalDB, families *FamilyService) *LayoutService {
	return &LayoutService{
		relationalDB: relationalDB,
		families:     families,
	}
}

// Save replaces every saved position of the family behind token.
// Positions of persons outside the family are rejected.
func (s *LayoutService) Save(ctx context.Context, token string, positions []entities.NodePosition) error {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return err
	}

	persons, err := s.relationalDB.ListPersons(ctx, family.ID)
	if err != nil {
		return fmt.Errorf("listing persons: %w", err)
	}
	known := make(map[string]bool, len(persons))
	for _, p := range persons {
		known[p.ID] = true
	}

	seen := make(map[string]bool, len(positions))
	for _, pos := range positions {
		if !known[pos.PersonID] {
			return fmt.Errorf("%w: %s", ErrPersonNotFound, pos.PersonID)
		}
		if seen[pos.PersonID] {
			return fmt.Errorf("%w: duplicate position for %s", ErrInvalidInput, pos.PersonID)
		}
		seen[pos.PersonID] = true
	}

	if err := s.relationalDB.ReplacePositions(ctx, family.ID, positions); err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}
	return nil
}

// Get returns the saved positions of the family behind token.
func (s *LayoutService) Get(ctx context.Context, token string) ([]entities.NodePosition, error) {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	positions, err := s.relationalDB.ListPositions(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	return positions, nil
}
