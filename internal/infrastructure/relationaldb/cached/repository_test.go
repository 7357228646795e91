package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/mocks"
)

func TestRepository_FindFamilyByToken(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	db.Families["tok"] = &entities.Family{ID: "fam", Token: "tok", CreatedAt: time.Now()}

	repo, err := New(db, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		f, err := repo.FindFamilyByToken(ctx, "tok")
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "fam", f.ID)
	}
	assert.Equal(t, 1, db.FindFamilyCallCount)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	repo, err := New(db, 8)
	require.NoError(t, err)

	f, err := repo.FindFamilyByToken(ctx, "later")
	require.NoError(t, err)
	assert.Nil(t, f)

	db.Families["later"] = &entities.Family{ID: "fam", Token: "later"}
	f, err = repo.FindFamilyByToken(ctx, "later")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 2, db.FindFamilyCallCount)
}

func TestRepository_ErrorsPassThrough(t *testing.T) {
	db := mocks.NewRelationalDB()
	db.Err = errors.New("db down")
	repo, err := New(db, 8)
	require.NoError(t, err)

	_, err = repo.FindFamilyByToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, 0, repo.Len())
}

func TestRepository_SaveFamilyPrimesCache(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	repo, err := New(db, 8)
	require.NoError(t, err)

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok"}))
	f, err := repo.FindFamilyByToken(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 0, db.FindFamilyCallCount)
}

func TestRepository_Eviction(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	repo, err := New(db, 1)
	require.NoError(t, err)

	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "a", Token: "ta"}))
	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "b", Token: "tb"}))
	assert.Equal(t, 1, repo.Len())

	_, err = repo.FindFamilyByToken(ctx, "ta")
	require.NoError(t, err)
	assert.Equal(t, 1, db.FindFamilyCallCount)
}

func TestRepository_CallerCannotMutateCache(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	repo, err := New(db, 8)
	require.NoError(t, err)
	require.NoError(t, repo.SaveFamily(ctx, &entities.Family{ID: "fam", Token: "tok"}))

	f, err := repo.FindFamilyByToken(ctx, "tok")
	require.NoError(t, err)
	f.ID = "changed"

	again, err := repo.FindFamilyByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "fam", again.ID)
}
