package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// MaxAge bounds the age a person may be recorded with.
const MaxAge = 200

// PersonInput holds the fields of a new person.
type PersonInput struct {
	Name     string
	Alias    string
	Age      *int
	Gender   string
	PhotoURL string
}

// PersonPatch holds a partial update. Nil fields are left untouched.
type PersonPatch struct {
	Name     *string
	Alias    *string
	Age      *int
	Gender   *string
	PhotoURL *string
}

// PersonService manages the members of a family.
type PersonService struct {
	relationalDB ports.RelationalDB
	families     *FamilyService
	photos       ports.PhotoStore
}

// NewPersonService creates a new PersonService. photos may be nil, in which case
// photo references are stored exactly as received.
func NewPersonService(relationalDB ports.RelationalDB, families *FamilyService, photos ports.PhotoStore) *PersonService {
	return &PersonService{
		relationalDB: relationalDB,
		families:     families,
		photos:       photos,
	}
}

// Create adds a person to the family behind token.
func (s *PersonService) Create(ctx context.Context, token string, in PersonInput) (*entities.Person, error) {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	gender, err := parseGender(in.Gender)
	if err != nil {
		return nil, err
	}
	if err := checkAge(in.Age); err != nil {
		return nil, err
	}

	person := &entities.Person{
		ID:        uuid.New().String(),
		FamilyID:  family.ID,
		Name:      name,
		Alias:     strings.TrimSpace(in.Alias),
		Age:       in.Age,
		Gender:    gender,
		CreatedAt: timeNow().UTC(),
	}
	if person.PhotoURL, err = s.storePhoto(ctx, person, in.PhotoURL); err != nil {
		return nil, err
	}

	if err := s.relationalDB.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	return person, nil
}

// Update applies a partial update to a person of the family behind token.
func (s *PersonService) Update(ctx context.Context, token, id string, patch PersonPatch) (*entities.Person, error) {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	person, err := s.find(ctx, family.ID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		person.Name = name
	}
	if patch.Alias != nil {
		person.Alias = strings.TrimSpace(*patch.Alias)
	}
	if patch.Age != nil {
		if err := checkAge(patch.Age); err != nil {
			return nil, err
		}
		person.Age = patch.Age
	}
	if patch.Gender != nil {
		if person.Gender, err = parseGender(*patch.Gender); err != nil {
			return nil, err
		}
	}
	if patch.PhotoURL != nil {
		if person.PhotoURL, err = s.storePhoto(ctx, person, *patch.PhotoURL); err != nil {
			return nil, err
		}
	}

	if err := s.relationalDB.UpdatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("updating person: %w", err)
	}
	return person, nil
}

// Delete removes a person together with their relationships and saved position.
func (s *PersonService) Delete(ctx context.Context, token, id string) error {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.find(ctx, family.ID, id); err != nil {
		return err
	}

	if err := s.relationalDB.DeletePerson(ctx, family.ID, id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return nil
}

// List returns the persons of a family ordered by creation time.
func (s *PersonService) List(ctx context.Context, token string) ([]entities.Person, error) {
	family, err := s.families.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	persons, err := s.relationalDB.ListPersons(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	return persons, nil
}

func (s *PersonService) find(ctx context.Context, familyID, id string) (*entities.Person, error) {
	person, err := s.relationalDB.FindPersonByID(ctx, familyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

func parseGender(s string) (entities.Gender, error) {
	g, ok := entities.ParseGender(s)
	if !ok {
		return entities.GenderUnknown, fmt.Errorf("%w: gender must be M, F or empty", ErrInvalidInput)
	}
	return g, nil
}

func checkAge(age *int) error {
	if age != nil && (*age < 0 || *age > MaxAge) {
		return fmt.Errorf("%w: age must be between 0 and %d", ErrInvalidInput, MaxAge)
	}
	return nil
}
