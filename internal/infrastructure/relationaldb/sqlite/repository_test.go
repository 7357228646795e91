package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/ports"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/sqlstore/sqlstoretest"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.DatabaseConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.DatabaseConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	tables := []string{"families", "persons", "relationships", "node_positions"}
	for _, table := range tables {
		var count int
		err := repo.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_Behaviour(t *testing.T) {
	sqlstoretest.Run(t, func(t *testing.T) ports.RelationalDB {
		return setupTestRepo(t)
	})
}

func TestRepository_DeletePersonCascades(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "a", FamilyID: "fam", Name: "A", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "b", FamilyID: "fam", Name: "B", CreatedAt: now}))
	require.NoError(t, repo.SaveRelationship(ctx, &entities.Relationship{
		ID: "r", FamilyID: "fam", PersonA: "a", PersonB: "b", RelationType: entities.RelationParent, CreatedAt: now,
	}))
	require.NoError(t, repo.ReplacePositions(ctx, "fam", []entities.NodePosition{{PersonID: "a", X: 1, Y: 2}}))

	require.NoError(t, repo.DeletePerson(ctx, "fam", "a"))

	rels, err := repo.ListRelationships(ctx, "fam")
	require.NoError(t, err)
	assert.Empty(t, rels)

	positions, err := repo.ListPositions(ctx, "fam")
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestRepository_RejectsUnknownRelationType(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "a", FamilyID: "fam", Name: "A", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "b", FamilyID: "fam", Name: "B", CreatedAt: now}))

	err := repo.SaveRelationship(ctx, &entities.Relationship{
		ID: "r", FamilyID: "fam", PersonA: "a", PersonB: "b", RelationType: "sibling", CreatedAt: now,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrDuplicate)
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "plain path",
			path: "kudumbam.db",
			want: "kudumbam.db?_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29&_pragma=journal_mode%28WAL%29",
		},
		{
			name: "path with query",
			path: "file:kudumbam.db?cache=shared",
			want: "file:kudumbam.db?cache=shared&_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29&_pragma=journal_mode%28WAL%29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataSourceName(tt.path))
		})
	}
}

// setupFileRepo opens a file-backed repository, which uses a real connection pool.
func setupFileRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kudumbam.db")
	repo, err := NewRepository(config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestRepository_PragmasApplyToEveryConnection(t *testing.T) {
	repo := setupFileRepo(t)
	ctx := context.Background()

	// Hold both connections open so the pool has to hand out two distinct ones.
	conns := make([]*sql.Conn, 2)
	for i := range conns {
		conn, err := repo.DB().Conn(ctx)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		conns[i] = conn
	}

	for i, conn := range conns {
		var foreignKeys, busyTimeout int
		var journalMode string
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout))
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode))

		assert.Equal(t, 1, foreignKeys, "conn %d foreign_keys", i)
		assert.Equal(t, 5000, busyTimeout, "conn %d busy_timeout", i)
		assert.Equal(t, "wal", strings.ToLower(journalMode), "conn %d journal_mode", i)
	}
}

func TestRepository_CascadeOnSecondConnection(t *testing.T) {
	repo := setupFileRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "a", FamilyID: "fam", Name: "A", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "b", FamilyID: "fam", Name: "B", CreatedAt: now}))
	require.NoError(t, repo.SaveRelationship(ctx, &entities.Relationship{
		ID: "r", FamilyID: "fam", PersonA: "a", PersonB: "b", RelationType: entities.RelationSpouse, CreatedAt: now,
	}))

	first, err := repo.DB().Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := repo.DB().Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.ExecContext(ctx, "DELETE FROM persons WHERE id = 'a'")
	require.NoError(t, err)

	var remaining int
	require.NoError(t, first.QueryRowContext(ctx, "SELECT COUNT(*) FROM relationships").Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestRepository_DeletePersonIsAtomic(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "a", FamilyID: "fam", Name: "A", CreatedAt: now}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{ID: "b", FamilyID: "fam", Name: "B", CreatedAt: now}))
	require.NoError(t, repo.SaveRelationship(ctx, &entities.Relationship{
		ID: "r", FamilyID: "fam", PersonA: "a", PersonB: "b", RelationType: entities.RelationParent, CreatedAt: now,
	}))
	require.NoError(t, repo.ReplacePositions(ctx, "fam", []entities.NodePosition{{PersonID: "a", X: 1, Y: 2}}))

	// Fail the final step so the earlier deletes have to be rolled back.
	_, err := repo.DB().ExecContext(ctx, `
		CREATE TRIGGER block_person_delete BEFORE DELETE ON persons
		BEGIN SELECT RAISE(ABORT, 'blocked'); END`)
	require.NoError(t, err)

	require.Error(t, repo.DeletePerson(ctx, "fam", "a"))

	rels, err := repo.ListRelationships(ctx, "fam")
	require.NoError(t, err)
	assert.Len(t, rels, 1)

	positions, err := repo.ListPositions(ctx, "fam")
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}
