package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/mocks"
)

type testServices struct {
	db            *mocks.RelationalDB
	photos        *mocks.PhotoStore
	families      *FamilyService
	persons       *PersonService
	relationships *RelationshipService
	layout        *LayoutService
	relations     *RelationService
	diagram       *DiagramService
	imports       *ImportService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	// Monotonic clock so creation order is stable.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	orig := timeNow
	timeNow = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { timeNow = orig })

	db := mocks.NewRelationalDB()
	photos := mocks.NewPhotoStore()
	families := NewFamilyService(db)
	persons := NewPersonService(db, families, photos)
	relationships := NewRelationshipService(db, families)
	return &testServices{
		db:            db,
		photos:        photos,
		families:      families,
		persons:       persons,
		relationships: relationships,
		layout:        NewLayoutService(db, families),
		relations:     NewRelationService(families),
		diagram:       NewDiagramService(families),
		imports:       NewImportService(families, persons, relationships),
	}
}

func (s *testServices) newFamily(t *testing.T) *entities.Family {
	t.Helper()
	f, err := s.families.Create(context.Background())
	require.NoError(t, err)
	return f
}

func (s *testServices) addPerson(t *testing.T, token, name, gender string) *entities.Person {
	t.Helper()
	p, err := s.persons.Create(context.Background(), token, PersonInput{Name: name, Gender: gender})
	require.NoError(t, err)
	return p
}

func (s *testServices) relate(t *testing.T, token, a string, rt entities.RelationType, b string) *entities.Relationship {
	t.Helper()
	r, err := s.relationships.Create(context.Background(), token, a, b, rt)
	require.NoError(t, err)
	return r
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
