package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/kinship"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func TestRelationsHandler_HandleCompute(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	mum, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "Mum", Gender: "F"})
	require.NoError(t, err)
	me, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "Me", Gender: "M"})
	require.NoError(t, err)
	_, err = h.relationships.HandleCreate(ctx, CreateRelationshipRequest{
		FamilyToken: token, PersonA: mum.ID, PersonB: me.ID, RelationType: "parent",
	})
	require.NoError(t, err)

	view, err := h.relations.HandleCompute(ctx, token, me.ID)
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelMother, view.Relations[mum.ID].Label)

	view, err = h.relations.HandleCompute(ctx, token, mum.ID)
	require.NoError(t, err)
	assert.Equal(t, "Son", view.Relations[me.ID].Display)

	_, err = h.relations.HandleCompute(ctx, token, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = h.relations.HandleCompute(ctx, "missing", me.ID)
	assert.ErrorIs(t, err, services.ErrFamilyNotFound)
}

func TestRelationsHandler_HandleComputeWithFamily(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	a, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "A", Gender: "M"})
	require.NoError(t, err)
	b, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "B", Gender: "F"})
	require.NoError(t, err)
	_, err = h.relationships.HandleCreate(ctx, CreateRelationshipRequest{
		FamilyToken: token, PersonA: a.ID, PersonB: b.ID, RelationType: "spouse",
	})
	require.NoError(t, err)

	calls := h.db.FindFamilyCallCount
	data, view, err := h.relations.HandleComputeWithFamily(ctx, token, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.db.FindFamilyCallCount-calls)

	require.Len(t, data.Persons, 2)
	require.Len(t, data.Relationships, 1)
	assert.Equal(t, kinship.LabelWife, view.Relations[b.ID].Label)

	_, _, err = h.relations.HandleComputeWithFamily(ctx, token, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestRelationsHandler_HandleDiagram(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	p, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "Solo"})
	require.NoError(t, err)

	d, err := h.relations.HandleDiagram(ctx, token, p.ID)
	require.NoError(t, err)
	require.Len(t, d.Nodes, 1)
	assert.True(t, d.Nodes[0].IsRoot)
	assert.Equal(t, services.Point{}, d.Nodes[0].Position)

	_, err = h.relations.HandleDiagram(ctx, "missing", "")
	assert.ErrorIs(t, err, services.ErrFamilyNotFound)
}
