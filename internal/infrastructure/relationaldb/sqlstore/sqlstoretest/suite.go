// Package sqlstoretest holds the behaviour tests every ports.RelationalDB backend must pass.
package sqlstoretest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
)

// Run exercises a repository created fresh for every subtest by newRepo.
// newRepo is responsible for schema creation and cleanup.
func Run(t *testing.T, newRepo func(t *testing.T) ports.RelationalDB) {
	t.Run("families", func(t *testing.T) { testFamilies(t, newRepo(t)) })
	t.Run("persons", func(t *testing.T) { testPersons(t, newRepo(t)) })
	t.Run("relationships", func(t *testing.T) { testRelationships(t, newRepo(t)) })
	t.Run("positions", func(t *testing.T) { testPositions(t, newRepo(t)) })
	t.Run("family isolation", func(t *testing.T) { testIsolation(t, newRepo(t)) })
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func saveFamily(t *testing.T, repo ports.RelationalDB, id, token string) *entities.Family {
	t.Helper()
	f := &entities.Family{ID: id, Token: token, CreatedAt: base}
	require.NoError(t, repo.SaveFamily(context.Background(), f))
	return f
}

func savePerson(t *testing.T, repo ports.RelationalDB, familyID, id, name string, offset time.Duration) *entities.Person {
	t.Helper()
	p := &entities.Person{ID: id, FamilyID: familyID, Name: name, CreatedAt: base.Add(offset)}
	require.NoError(t, repo.SavePerson(context.Background(), p))
	return p
}

func saveEdge(t *testing.T, repo ports.RelationalDB, familyID, id, a, b string, relType entities.RelationType) {
	t.Helper()
	r := &entities.Relationship{ID: id, FamilyID: familyID, PersonA: a, PersonB: b, RelationType: relType, CreatedAt: base}
	require.NoError(t, repo.SaveRelationship(context.Background(), r))
}

func testFamilies(t *testing.T, repo ports.RelationalDB) {
	ctx := context.Background()
	saveFamily(t, repo, "fam-1", "tok-1")

	found, err := repo.FindFamilyByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "fam-1", found.ID)
	assert.True(t, base.Equal(found.CreatedAt))

	missing, err := repo.FindFamilyByToken(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.SaveFamily(ctx, &entities.Family{ID: "fam-2", Token: "tok-1", CreatedAt: base})
	assert.ErrorIs(t, err, ports.ErrDuplicate)
}

func testPersons(t *testing.T, repo ports.RelationalDB) {
	ctx := context.Background()
	saveFamily(t, repo, "fam-1", "tok-1")

	age := 54
	full := &entities.Person{
		ID:        "p-1",
		FamilyID:  "fam-1",
		Name:      "Mary Thomas",
		Alias:     "Ammachi",
		Age:       &age,
		Gender:    entities.GenderFemale,
		PhotoURL:  "http://photos.test/p-1.jpg",
		CreatedAt: base.Add(2 * time.Minute),
	}
	require.NoError(t, repo.SavePerson(ctx, full))
	savePerson(t, repo, "fam-1", "p-0", "Earliest", 0)

	t.Run("find round-trips every field", func(t *testing.T) {
		found, err := repo.FindPersonByID(ctx, "fam-1", "p-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Mary Thomas", found.Name)
		assert.Equal(t, "Ammachi", found.Alias)
		require.NotNil(t, found.Age)
		assert.Equal(t, 54, *found.Age)
		assert.Equal(t, entities.GenderFemale, found.Gender)
		assert.Equal(t, "http://photos.test/p-1.jpg", found.PhotoURL)
	})

	t.Run("missing age stays nil", func(t *testing.T) {
		found, err := repo.FindPersonByID(ctx, "fam-1", "p-0")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.Age)
		assert.Equal(t, entities.GenderUnknown, found.Gender)
	})

	t.Run("list is ordered by creation", func(t *testing.T) {
		list, err := repo.ListPersons(ctx, "fam-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "p-0", list[0].ID)
		assert.Equal(t, "p-1", list[1].ID)
	})

	t.Run("update", func(t *testing.T) {
		updated := *full
		updated.Name = "Mary T."
		updated.Age = nil
		updated.Gender = entities.GenderUnknown
		require.NoError(t, repo.UpdatePerson(ctx, &updated))

		found, err := repo.FindPersonByID(ctx, "fam-1", "p-1")
		require.NoError(t, err)
		assert.Equal(t, "Mary T.", found.Name)
		assert.Nil(t, found.Age)
		assert.Equal(t, entities.GenderUnknown, found.Gender)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeletePerson(ctx, "fam-1", "p-0"))
		found, err := repo.FindPersonByID(ctx, "fam-1", "p-0")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("empty family lists nothing", func(t *testing.T) {
		list, err := repo.ListPersons(ctx, "fam-none")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func testRelationships(t *testing.T, repo ports.RelationalDB) {
	ctx := context.Background()
	saveFamily(t, repo, "fam-1", "tok-1")
	savePerson(t, repo, "fam-1", "dad", "Dad", 0)
	savePerson(t, repo, "fam-1", "mom", "Mom", time.Second)
	savePerson(t, repo, "fam-1", "kid", "Kid", 2*time.Second)

	saveEdge(t, repo, "fam-1", "r-1", "dad", "kid", entities.RelationParent)
	saveEdge(t, repo, "fam-1", "r-2", "mom", "kid", entities.RelationParent)
	saveEdge(t, repo, "fam-1", "r-3", "dad", "mom", entities.RelationSpouse)

	t.Run("find by endpoints", func(t *testing.T) {
		found, err := repo.FindRelationship(ctx, "fam-1", "dad", "kid", entities.RelationParent)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "r-1", found.ID)

		reverse, err := repo.FindRelationship(ctx, "fam-1", "kid", "dad", entities.RelationParent)
		require.NoError(t, err)
		assert.Nil(t, reverse)

		otherType, err := repo.FindRelationship(ctx, "fam-1", "dad", "kid", entities.RelationSpouse)
		require.NoError(t, err)
		assert.Nil(t, otherType)
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindRelationshipByID(ctx, "fam-1", "r-3")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entities.RelationSpouse, found.RelationType)
		assert.Equal(t, "dad", found.PersonA)
		assert.Equal(t, "mom", found.PersonB)
	})

	t.Run("duplicate edge is rejected", func(t *testing.T) {
		dup := &entities.Relationship{
			ID: "r-dup", FamilyID: "fam-1", PersonA: "dad", PersonB: "kid",
			RelationType: entities.RelationParent, CreatedAt: base,
		}
		assert.ErrorIs(t, repo.SaveRelationship(ctx, dup), ports.ErrDuplicate)
	})

	t.Run("list", func(t *testing.T) {
		list, err := repo.ListRelationships(ctx, "fam-1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"r-1", "r-2", "r-3"}, []string{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("delete one", func(t *testing.T) {
		require.NoError(t, repo.DeleteRelationship(ctx, "fam-1", "r-2"))
		found, err := repo.FindRelationshipByID(ctx, "fam-1", "r-2")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("deleting a person removes their edges", func(t *testing.T) {
		require.NoError(t, repo.DeletePerson(ctx, "fam-1", "dad"))
		list, err := repo.ListRelationships(ctx, "fam-1")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func testPositions(t *testing.T, repo ports.RelationalDB) {
	ctx := context.Background()
	saveFamily(t, repo, "fam-1", "tok-1")
	savePerson(t, repo, "fam-1", "a", "A", 0)
	savePerson(t, repo, "fam-1", "b", "B", time.Second)

	first := []entities.NodePosition{{PersonID: "a", X: 10, Y: -20.5}, {PersonID: "b", X: 0, Y: 0}}
	require.NoError(t, repo.ReplacePositions(ctx, "fam-1", first))

	got, err := repo.ListPositions(ctx, "fam-1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	t.Run("replace drops positions not resent", func(t *testing.T) {
		require.NoError(t, repo.ReplacePositions(ctx, "fam-1", []entities.NodePosition{{PersonID: "b", X: 5, Y: 6}}))
		got, err := repo.ListPositions(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, []entities.NodePosition{{PersonID: "b", X: 5, Y: 6}}, got)
	})

	t.Run("duplicate person in one batch rolls back", func(t *testing.T) {
		err := repo.ReplacePositions(ctx, "fam-1", []entities.NodePosition{{PersonID: "a"}, {PersonID: "a"}})
		require.Error(t, err)

		got, err := repo.ListPositions(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, []entities.NodePosition{{PersonID: "b", X: 5, Y: 6}}, got)
	})

	t.Run("empty replace clears", func(t *testing.T) {
		require.NoError(t, repo.ReplacePositions(ctx, "fam-1", first))
		require.NoError(t, repo.ReplacePositions(ctx, "fam-1", nil))
		got, err := repo.ListPositions(ctx, "fam-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("deleting a person removes their position", func(t *testing.T) {
		require.NoError(t, repo.ReplacePositions(ctx, "fam-1", first))
		require.NoError(t, repo.DeletePerson(ctx, "fam-1", "b"))
		got, err := repo.ListPositions(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, []entities.NodePosition{{PersonID: "a", X: 10, Y: -20.5}}, got)
	})
}

func testIsolation(t *testing.T, repo ports.RelationalDB) {
	ctx := context.Background()
	saveFamily(t, repo, "fam-1", "tok-1")
	saveFamily(t, repo, "fam-2", "tok-2")
	savePerson(t, repo, "fam-1", "a", "A", 0)
	savePerson(t, repo, "fam-1", "b", "B", time.Second)
	saveEdge(t, repo, "fam-1", "r-1", "a", "b", entities.RelationSpouse)

	p, err := repo.FindPersonByID(ctx, "fam-2", "a")
	require.NoError(t, err)
	assert.Nil(t, p)

	r, err := repo.FindRelationshipByID(ctx, "fam-2", "r-1")
	require.NoError(t, err)
	assert.Nil(t, r)

	require.NoError(t, repo.DeletePerson(ctx, "fam-2", "a"))
	p, err = repo.FindPersonByID(ctx, "fam-1", "a")
	require.NoError(t, err)
	assert.NotNil(t, p)
}
