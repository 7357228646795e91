package services

import (
	"context"
	"sort"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/kinship"
)

// RelationEntry is one labelled person in a relation view.
type RelationEntry struct {
	Label   kinship.RelationLabel `json:"label"`
	Display string                `json:"display"`
}

// RelationView is the set of labels computed from one root person.
type RelationView struct {
	Root      string                   `json:"root"`
	Relations map[string]RelationEntry `json:"relations"`
}

// IDs returns the labelled person ids in ascending order.
func (v *RelationView) IDs() []string {
	ids := make([]string, 0, len(v.Relations))
	for id := range v.Relations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RelationService labels a family from the point of view of one member.
type RelationService struct {
	families *FamilyService
}

// NewRelationService creates a new RelationService.
func NewRelationService(families *FamilyService) *RelationService {
	return &RelationService{families: families}
}

// Compute loads the family behind token and labels everyone reachable from rootID.
// An unknown root yields an empty view rather than an error.
func (s *RelationService) Compute(ctx context.Context, token, rootID string) (*RelationView, error) {
	_, view, err := s.ComputeWithFamily(ctx, token, rootID)
	return view, err
}

// ComputeWithFamily is Compute that also returns the snapshot the view was built from.
func (s *RelationService) ComputeWithFamily(ctx context.Context, token, rootID string) (*entities.FamilyData, *RelationView, error) {
	data, err := s.families.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return data, BuildRelationView(data, rootID), nil
}

// BuildRelationView labels an already loaded snapshot.
func BuildRelationView(data *entities.FamilyData, rootID string) *RelationView {
	labels := kinship.ComputeRelations(rootID, data.Persons, data.Relationships)
	view := &RelationView{
		Root:      rootID,
		Relations: make(map[string]RelationEntry, len(labels)),
	}
	for id, l := range labels {
		view.Relations[id] = RelationEntry{Label: l, Display: kinship.DisplayName(l)}
	}
	return view
}
