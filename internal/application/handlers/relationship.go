package handlers

import (
	"context"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

// CreateRelationshipRequest is the body of a relationship creation.
type CreateRelationshipRequest struct {
	FamilyToken  string `json:"familyToken" validate:"required"`
	PersonA      string `json:"person_a" validate:"required"`
	PersonB      string `json:"person_b" validate:"required"`
	RelationType string `json:"relation_type" validate:"required,oneof=parent spouse"`
}

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	service *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(service *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

// HandleCreate validates and stores a new relationship.
func (h *RelationshipHandler) HandleCreate(ctx context.Context, req CreateRelationshipRequest) (*entities.Relationship, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return h.service.Create(ctx, req.FamilyToken, req.PersonA, req.PersonB, entities.RelationType(req.RelationType))
}

// HandleDelete removes a relationship by ID.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, token, id string) error {
	return h.service.Delete(ctx, token, id)
}

// HandleList returns every relationship of a family.
func (h *RelationshipHandler) HandleList(ctx context.Context, token string) ([]entities.Relationship, error) {
	return h.service.List(ctx, token)
}
