package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func TestRelationshipHandler(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	a, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "A"})
	require.NoError(t, err)
	b, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "B"})
	require.NoError(t, err)

	t.Run("invalid relation type", func(t *testing.T) {
		_, err := h.relationships.HandleCreate(ctx, CreateRelationshipRequest{
			FamilyToken: token, PersonA: a.ID, PersonB: b.ID, RelationType: "sibling",
		})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
		assert.Contains(t, err.Error(), "relation_type must be one of [parent spouse]")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := h.relationships.HandleCreate(ctx, CreateRelationshipRequest{FamilyToken: token})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
		assert.Contains(t, err.Error(), "person_a is required")
		assert.Contains(t, err.Error(), "person_b is required")
	})

	rel, err := h.relationships.HandleCreate(ctx, CreateRelationshipRequest{
		FamilyToken: token, PersonA: a.ID, PersonB: b.ID, RelationType: "parent",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RelationParent, rel.RelationType)

	_, err = h.relationships.HandleCreate(ctx, CreateRelationshipRequest{
		FamilyToken: token, PersonA: b.ID, PersonB: a.ID, RelationType: "parent",
	})
	assert.ErrorIs(t, err, services.ErrRelationshipExists)

	list, err := h.relationships.HandleList(ctx, token)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, h.relationships.HandleDelete(ctx, token, rel.ID))
	assert.ErrorIs(t, h.relationships.HandleDelete(ctx, token, rel.ID), services.ErrRelationshipNotFound)
}
