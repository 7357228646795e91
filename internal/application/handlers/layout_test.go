package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func TestLayoutHandler(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	empty, err := h.layout.HandleGet(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = h.layout.HandleSave(ctx, SaveLayoutRequest{FamilyToken: token})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = h.layout.HandleSave(ctx, SaveLayoutRequest{FamilyToken: token, Positions: []PositionInput{{X: 1}}})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	p, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "A"})
	require.NoError(t, err)

	res, err := h.layout.HandleSave(ctx, SaveLayoutRequest{
		FamilyToken: token,
		Positions:   []PositionInput{{PersonID: p.ID, X: 3, Y: 4}},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	got, err := h.layout.HandleGet(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, []entities.NodePosition{{PersonID: p.ID, X: 3, Y: 4}}, got)
}
