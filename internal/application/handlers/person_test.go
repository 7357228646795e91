package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func TestPersonHandler_HandleCreate_Validation(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)

	tests := []struct {
		name    string
		req     CreatePersonRequest
		wantErr string
	}{
		{"valid", CreatePersonRequest{FamilyToken: token, Name: "Asha", Gender: "F", Age: intPtr(30)}, ""},
		{"missing token", CreatePersonRequest{Name: "Asha"}, "familyToken is required"},
		{"missing name", CreatePersonRequest{FamilyToken: token}, "name is required"},
		{"bad gender", CreatePersonRequest{FamilyToken: token, Name: "A", Gender: "X"}, "gender must be one of"},
		{"bad age", CreatePersonRequest{FamilyToken: token, Name: "A", Age: intPtr(250)}, "age must be at most 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := h.persons.HandleCreate(context.Background(), tt.req)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, services.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entities.GenderFemale, p.Gender)
		})
	}
}

func TestPersonHandler_UpdateDeleteList(t *testing.T) {
	h := newTestHandlers(t)
	token := h.token(t)
	ctx := context.Background()

	p, err := h.persons.HandleCreate(ctx, CreatePersonRequest{FamilyToken: token, Name: "Asha"})
	require.NoError(t, err)

	alias := "Amma"
	got, err := h.persons.HandleUpdate(ctx, p.ID, UpdatePersonRequest{FamilyToken: token, Alias: &alias})
	require.NoError(t, err)
	assert.Equal(t, "Amma", got.Alias)

	_, err = h.persons.HandleUpdate(ctx, p.ID, UpdatePersonRequest{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	list, err := h.persons.HandleList(ctx, token)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, h.persons.HandleDelete(ctx, token, p.ID))
	assert.ErrorIs(t, h.persons.HandleDelete(ctx, token, p.ID), services.ErrPersonNotFound)
}
