package handlers

import (
	"context"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

// CreatePersonRequest is the body of a person creation.
type CreatePersonRequest struct {
	FamilyToken string `json:"familyToken" validate:"required"`
	Name        string `json:"name" validate:"required,max=200"`
	Alias       string `json:"alias" validate:"max=200"`
	Age         *int   `json:"age" validate:"omitempty,min=0,max=200"`
	Gender      string `json:"gender" validate:"omitempty,oneof=M F m f"`
	PhotoURL    string `json:"photo_url"`
}

// UpdatePersonRequest is the body of a partial person update.
type UpdatePersonRequest struct {
	FamilyToken string  `json:"familyToken" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Alias       *string `json:"alias" validate:"omitempty,max=200"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=200"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=M F m f"`
	PhotoURL    *string `json:"photo_url"`
}

// PersonHandler handles person operations.
type PersonHandler struct {
	service *services.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(service *services.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// HandleCreate validates and stores a new person.
func (h *PersonHandler) HandleCreate(ctx context.Context, req CreatePersonRequest) (*entities.Person, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return h.service.Create(ctx, req.FamilyToken, services.PersonInput{
		Name:     req.Name,
		Alias:    req.Alias,
		Age:      req.Age,
		Gender:   req.Gender,
		PhotoURL: req.PhotoURL,
	})
}

// HandleUpdate validates and applies a partial update.
func (h *PersonHandler) HandleUpdate(ctx context.Context, id string, req UpdatePersonRequest) (*entities.Person, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return h.service.Update(ctx, req.FamilyToken, id, services.PersonPatch{
		Name:     req.Name,
		Alias:    req.Alias,
		Age:      req.Age,
		Gender:   req.Gender,
		PhotoURL: req.PhotoURL,
	})
}

// HandleDelete removes a person and everything attached to them.
func (h *PersonHandler) HandleDelete(ctx context.Context, token, id string) error {
	return h.service.Delete(ctx, token, id)
}

// HandleList returns the persons of a family.
func (h *PersonHandler) HandleList(ctx context.Context, token string) ([]entities.Person, error) {
	return h.service.List(ctx, token)
}
