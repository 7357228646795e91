package handlers

import (
	"context"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

// FamilyHandler handles family operations.
type FamilyHandler struct {
	service *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(service *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{service: service}
}

// CreateFamilyResult is returned when a family is created.
type CreateFamilyResult struct {
	Token string `json:"token"`
}

// HandleCreate creates a new empty family.
func (h *FamilyHandler) HandleCreate(ctx context.Context) (*CreateFamilyResult, error) {
	family, err := h.service.Create(ctx)
	if err != nil {
		return nil, err
	}
	return &CreateFamilyResult{Token: family.Token}, nil
}

// HandleGet returns the full snapshot of a family.
func (h *FamilyHandler) HandleGet(ctx context.Context, token string) (*entities.FamilyData, error) {
	return h.service.Get(ctx, token)
}
