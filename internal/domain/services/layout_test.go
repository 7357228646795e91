package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

func TestLayoutService_SaveReplaces(t *testing.T) {
	s := newTestServices(t)
	f := s.newFamily(t)
	a := s.addPerson(t, f.Token, "A", "")
	b := s.addPerson(t, f.Token, "B", "")
	ctx := context.Background()

	require.NoError(t, s.layout.Save(ctx, f.Token, []entities.NodePosition{
		{PersonID: a.ID, X: 1, Y: 1}, {PersonID: b.ID, X: 2, Y: 2},
	}))
	require.NoError(t, s.layout.Save(ctx, f.Token, []entities.NodePosition{
		{PersonID: b.ID, X: 5, Y: -5},
	}))

	got, err := s.layout.Get(ctx, f.Token)
	require.NoError(t, err)
	assert.Equal(t, []entities.NodePosition{{PersonID: b.ID, X: 5, Y: -5}}, got)

	require.NoError(t, s.layout.Save(ctx, f.Token, nil))
	got, err = s.layout.Get(ctx, f.Token)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLayoutService_SaveValidation(t *testing.T) {
	s := newTestServices(t)
	f := s.newFamily(t)
	a := s.addPerson(t, f.Token, "A", "")
	ctx := context.Background()

	err := s.layout.Save(ctx, f.Token, []entities.NodePosition{{PersonID: "ghost"}})
	assert.ErrorIs(t, err, ErrPersonNotFound)

	err = s.layout.Save(ctx, f.Token, []entities.NodePosition{{PersonID: a.ID}, {PersonID: a.ID, X: 3}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.layout.Save(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrFamilyNotFound)

	_, err = s.layout.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}
