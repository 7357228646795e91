package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

func TestFamilyHandler(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	res, err := h.families.HandleCreate(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Token, 32)

	data, err := h.families.HandleGet(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Token, data.Family.Token)
	assert.Empty(t, data.Persons)

	_, err = h.families.HandleGet(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrFamilyNotFound)
}
