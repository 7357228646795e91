package ports

import (
	"context"
	"errors"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

// ErrDuplicate is returned by RelationalDB writes that violate a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// RelationalDB defines the interface for family tree storage.
// Lookups return nil, nil when the row does not exist.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Family operations

	// SaveFamily inserts a new family.
	SaveFamily(ctx context.Context, family *entities.Family) error

	// FindFamilyByToken finds a family by its share token.
	FindFamilyByToken(ctx context.Context, token string) (*entities.Family, error)

	// Person operations

	// SavePerson inserts a new person.
	SavePerson(ctx context.Context, person *entities.Person) error

	// UpdatePerson overwrites the mutable fields of an existing person.
	UpdatePerson(ctx context.Context, person *entities.Person) error

	// FindPersonByID finds a person within a family.
	FindPersonByID(ctx context.Context, familyID, id string) (*entities.Person, error)

	// ListPersons lists the persons of a family ordered by creation time.
	ListPersons(ctx context.Context, familyID string) ([]entities.Person, error)

	// DeletePerson atomically deletes a person together with their relationships
	// and saved position.
	DeletePerson(ctx context.Context, familyID, id string) error

	// Relationship operations

	// SaveRelationship inserts a new relationship.
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// FindRelationship finds the edge of the given type from personA to personB.
	FindRelationship(ctx context.Context, familyID, personA, personB string, relType entities.RelationType) (*entities.Relationship, error)

	// FindRelationshipByID finds a relationship within a family.
	FindRelationshipByID(ctx context.Context, familyID, id string) (*entities.Relationship, error)

	// ListRelationships lists every relationship of a family.
	ListRelationships(ctx context.Context, familyID string) ([]entities.Relationship, error)

	// DeleteRelationship deletes a relationship from a family.
	DeleteRelationship(ctx context.Context, familyID, id string) error

	// Layout operations

	// ReplacePositions atomically replaces all saved node positions of a family.
	ReplacePositions(ctx context.Context, familyID string, positions []entities.NodePosition) error

	// ListPositions lists the saved node positions of a family.
	ListPositions(ctx context.Context, familyID string) ([]entities.NodePosition, error)
}
