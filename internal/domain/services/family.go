// Package services holds the family tree use cases on top of the storage ports.
package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

const (
	tokenLength   = 32
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var timeNow = time.Now

// FamilyService creates families and loads their snapshots.
type FamilyService struct {
	relationalDB ports.RelationalDB
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(relationalDB ports.RelationalDB) *FamilyService {
	return &FamilyService{relationalDB: relationalDB}
}

// Create stores a new empty family and returns it with its share token.
func (s *FamilyService) Create(ctx context.Context) (*entities.Family, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	family := &entities.Family{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: timeNow().UTC(),
	}
	if err := s.relationalDB.SaveFamily(ctx, family); err != nil {
		return nil, fmt.Errorf("saving family: %w", err)
	}
	return family, nil
}

// Resolve looks up the family behind a share token.
func (s *FamilyService) Resolve(ctx context.Context, token string) (*entities.Family, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: family token is required", ErrInvalidInput)
	}
	family, err := s.relationalDB.FindFamilyByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("finding family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	return family, nil
}

// Get returns the full snapshot of a family: persons, relationships and saved positions.
func (s *FamilyService) Get(ctx context.Context, token string) (*entities.FamilyData, error) {
	family, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	persons, err := s.relationalDB.ListPersons(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	rels, err := s.relationalDB.ListRelationships(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	positions, err := s.relationalDB.ListPositions(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}

	return &entities.FamilyData{
		Family:        *family,
		Persons:       persons,
		Relationships: rels,
		Positions:     positions,
	}, nil
}

func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
