package handlers

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/metrics"
)

var tracer = otel.Tracer("kudumbam.handlers")

// RelationsHandler serves root-based views of a family.
type RelationsHandler struct {
	relations *services.RelationService
	diagram   *services.DiagramService
}

// NewRelationsHandler creates a new RelationsHandler.
func NewRelationsHandler(relations *services.RelationService, diagram *services.DiagramService) *RelationsHandler {
	return &RelationsHandler{
		relations: relations,
		diagram:   diagram,
	}
}

// HandleCompute labels the family behind token from rootID's point of view.
func (h *RelationsHandler) HandleCompute(ctx context.Context, token, rootID string) (*services.RelationView, error) {
	_, view, err := h.HandleComputeWithFamily(ctx, token, rootID)
	return view, err
}

// HandleComputeWithFamily is HandleCompute that also returns the loaded family.
func (h *RelationsHandler) HandleComputeWithFamily(ctx context.Context, token, rootID string) (*entities.FamilyData, *services.RelationView, error) {
	if rootID == "" {
		return nil, nil, fmt.Errorf("%w: root is required", services.ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "relations.Compute", trace.WithAttributes(
		attribute.String("kinship.root", rootID),
	))
	defer span.End()

	start := time.Now()
	data, view, err := h.relations.ComputeWithFamily(ctx, token, rootID)
	if err != nil {
		metrics.ObserveRelations(0, time.Since(start), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	metrics.ObserveRelations(len(view.Relations), time.Since(start), nil)
	span.SetAttributes(attribute.Int("kinship.labelled", len(view.Relations)))
	return data, view, nil
}

// HandleDiagram builds the annotated diagram. rootID may be empty.
func (h *RelationsHandler) HandleDiagram(ctx context.Context, token, rootID string) (*services.Diagram, error) {
	ctx, span := tracer.Start(ctx, "relations.Diagram", trace.WithAttributes(
		attribute.String("kinship.root", rootID),
	))
	defer span.End()

	d, err := h.diagram.Build(ctx, token, rootID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return d, nil
}
