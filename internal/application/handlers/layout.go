package handlers

import (
	"context"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

// PositionInput is one saved node coordinate.
type PositionInput struct {
	PersonID string  `json:"person_id" validate:"required"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// SaveLayoutRequest is the body of a layout save.
type SaveLayoutRequest struct {
	FamilyToken string          `json:"familyToken" validate:"required"`
	Positions   []PositionInput `json:"positions" validate:"required,dive"`
}

// SaveLayoutResult acknowledges a layout save.
type SaveLayoutResult struct {
	Success bool `json:"success"`
}

// LayoutHandler handles diagram layout operations.
type LayoutHandler struct {
	service *services.LayoutService
}

// NewLayoutHandler creates a new LayoutHandler.
func NewLayoutHandler(service *services.LayoutService) *LayoutHandler {
	return &LayoutHandler{service: service}
}

// HandleSave replaces the saved positions of a family.
func (h *LayoutHandler) HandleSave(ctx context.Context, req SaveLayoutRequest) (*SaveLayoutResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	positions := make([]entities.NodePosition, len(req.Positions))
	for i, p := range req.Positions {
		positions[i] = entities.NodePosition{PersonID: p.PersonID, X: p.X, Y: p.Y}
	}
	if err := h.service.Save(ctx, req.FamilyToken, positions); err != nil {
		return nil, err
	}
	return &SaveLayoutResult{Success: true}, nil
}

// HandleGet returns the saved positions of a family.
func (h *LayoutHandler) HandleGet(ctx context.Context, token string) ([]entities.NodePosition, error) {
	positions, err := h.service.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if positions == nil {
		positions = []entities.NodePosition{}
	}
	return positions, nil
}
