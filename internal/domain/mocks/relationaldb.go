package mocks

import (
	"context"
	"sort"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

// RelationalDB is an in-memory implementation of ports.RelationalDB.
type RelationalDB struct {
	Families      map[string]*entities.Family // keyed by token
	Persons       map[string]*entities.Person
	Relationships map[string]*entities.Relationship
	Positions     map[string][]entities.NodePosition // keyed by family ID
	Err           error

	// Call tracking
	FindFamilyCallCount int
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Families:      make(map[string]*entities.Family),
		Persons:       make(map[string]*entities.Person),
		Relationships: make(map[string]*entities.Relationship),
		Positions:     make(map[string][]entities.NodePosition),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// Family methods.

// SaveFamily inserts a new family.
func (m *RelationalDB) SaveFamily(_ context.Context, f *entities.Family) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *f
	m.Families[f.Token] = &cp
	return nil
}

// FindFamilyByToken finds a family by its share token.
func (m *RelationalDB) FindFamilyByToken(_ context.Context, token string) (*entities.Family, error) {
	m.FindFamilyCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	f, ok := m.Families[token]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

// Person methods.

// SavePerson inserts a new person.
func (m *RelationalDB) SavePerson(_ context.Context, p *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *p
	m.Persons[p.ID] = &cp
	return nil
}

// UpdatePerson overwrites an existing person.
func (m *RelationalDB) UpdatePerson(_ context.Context, p *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Persons[p.ID]; !ok {
		return nil
	}
	cp := *p
	m.Persons[p.ID] = &cp
	return nil
}

// FindPersonByID finds a person within a family.
func (m *RelationalDB) FindPersonByID(_ context.Context, familyID, id string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Persons[id]
	if !ok || p.FamilyID != familyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// ListPersons lists the persons of a family ordered by creation time.
func (m *RelationalDB) ListPersons(_ context.Context, familyID string) ([]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []entities.Person{}
	for _, p := range m.Persons {
		if p.FamilyID == familyID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// DeletePerson deletes a person together with their relationships and position.
func (m *RelationalDB) DeletePerson(_ context.Context, familyID, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if p, ok := m.Persons[id]; !ok || p.FamilyID != familyID {
		return nil
	}
	delete(m.Persons, id)
	for rid, r := range m.Relationships {
		if r.FamilyID == familyID && r.Involves(id) {
			delete(m.Relationships, rid)
		}
	}
	kept := m.Positions[familyID][:0]
	for _, p := range m.Positions[familyID] {
		if p.PersonID != id {
			kept = append(kept, p)
		}
	}
	m.Positions[familyID] = kept
	return nil
}

// Relationship methods.

// SaveRelationship inserts a new relationship.
func (m *RelationalDB) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *rel
	m.Relationships[rel.ID] = &cp
	return nil
}

// FindRelationship finds the edge of the given type from personA to personB.
func (m *RelationalDB) FindRelationship(_ context.Context, familyID, a, b string, t entities.RelationType) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Relationships {
		if r.FamilyID == familyID && r.PersonA == a && r.PersonB == b && r.RelationType == t {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// FindRelationshipByID finds a relationship within a family.
func (m *RelationalDB) FindRelationshipByID(_ context.Context, familyID, id string) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.Relationships[id]
	if !ok || r.FamilyID != familyID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

// ListRelationships lists every relationship of a family.
func (m *RelationalDB) ListRelationships(_ context.Context, familyID string) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []entities.Relationship{}
	for _, r := range m.Relationships {
		if r.FamilyID == familyID {
			result = append(result, *r)
		}
	}
	// Sort by ID for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteRelationship deletes a relationship from a family.
func (m *RelationalDB) DeleteRelationship(_ context.Context, familyID, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if r, ok := m.Relationships[id]; ok && r.FamilyID == familyID {
		delete(m.Relationships, id)
	}
	return nil
}

// Layout methods.

// ReplacePositions replaces all saved node positions of a family.
func (m *RelationalDB) ReplacePositions(_ context.Context, familyID string, positions []entities.NodePosition) error {
	if m.Err != nil {
		return m.Err
	}
	m.Positions[familyID] = append([]entities.NodePosition(nil), positions...)
	return nil
}

// ListPositions lists the saved node positions of a family.
func (m *RelationalDB) ListPositions(_ context.Context, familyID string) ([]entities.NodePosition, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entities.NodePosition{}, m.Positions[familyID]...), nil
}
