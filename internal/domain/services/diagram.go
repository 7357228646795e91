package services

import (
	"context"
	"math"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
	"github.com/Sid-0307/Kudumbam/internal/domain/kinship"
)

// GridSpacing is the distance between default diagram positions.
const GridSpacing = 250.0

// Point is a diagram coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DiagramNode is one person on the family diagram.
type DiagramNode struct {
	entities.Person
	Relation      kinship.RelationLabel `json:"relation,omitempty"`
	RelationLabel string                `json:"relation_label,omitempty"`
	IsRoot        bool                  `json:"is_root"`
	Position      Point                 `json:"position"`
}

// DiagramEdge is one relationship on the family diagram.
type DiagramEdge struct {
	ID           string                `json:"id"`
	Source       string                `json:"source"`
	Target       string                `json:"target"`
	RelationType entities.RelationType `json:"relation_type"`
	Label        string                `json:"label"`
}

// Diagram is a render-ready view of a family.
type Diagram struct {
	Root  string        `json:"root,omitempty"`
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}

// DiagramService annotates a family snapshot for drawing.
type DiagramService struct {
	families *FamilyService
}

// NewDiagramService creates a new DiagramService.
func NewDiagramService(families *FamilyService) *DiagramService {
	return &DiagramService{families: families}
}

// Build loads the family behind token and annotates it from rootID's perspective.
// An empty rootID produces an unlabelled diagram.
func (s *DiagramService) Build(ctx context.Context, token, rootID string) (*Diagram, error) {
	data, err := s.families.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return BuildDiagram(data, rootID), nil
}

// BuildDiagram annotates an already loaded snapshot.
func BuildDiagram(data *entities.FamilyData, rootID string) *Diagram {
	var labels kinship.Relations
	if rootID != "" {
		labels = kinship.ComputeRelations(rootID, data.Persons, data.Relationships)
	}

	saved := make(map[string]Point, len(data.Positions))
	for _, p := range data.Positions {
		saved[p.PersonID] = Point{X: p.X, Y: p.Y}
	}

	d := &Diagram{
		Root:  rootID,
		Nodes: make([]DiagramNode, 0, len(data.Persons)),
		Edges: make([]DiagramEdge, 0, len(data.Relationships)),
	}
	for i, p := range data.Persons {
		node := DiagramNode{Person: p, IsRoot: rootID != "" && p.ID == rootID}
		if l, ok := labels[p.ID]; ok {
			node.Relation = l
			node.RelationLabel = kinship.DisplayName(l)
		}
		pos, ok := saved[p.ID]
		if !ok {
			pos = GridPosition(i, len(data.Persons))
		}
		node.Position = pos
		d.Nodes = append(d.Nodes, node)
	}

	for _, r := range data.Relationships {
		d.Edges = append(d.Edges, DiagramEdge{
			ID:           r.ID,
			Source:       r.PersonA,
			Target:       r.PersonB,
			RelationType: r.RelationType,
			Label:        edgeLabel(r, rootID, labels),
		})
	}
	return d
}

// edgeLabel names an edge. Edges touching the root show the other endpoint's
// relation to the root; all others show the relation type.
func edgeLabel(r entities.Relationship, rootID string, labels kinship.Relations) string {
	if rootID == "" || !r.Involves(rootID) {
		return string(r.RelationType)
	}

	other, fallback := r.PersonA, kinship.LabelParent
	if r.PersonA == rootID {
		other, fallback = r.PersonB, kinship.LabelChild
	}
	if r.RelationType == entities.RelationSpouse {
		fallback = kinship.LabelSpouse
	}

	l, ok := labels[other]
	if !ok {
		l = fallback
	}
	return kinship.DisplayName(l)
}

// GridPosition returns the default coordinate of the index-th of total persons:
// a near-square grid centred on the origin.
func GridPosition(index, total int) Point {
	if total <= 1 {
		return Point{}
	}
	cols := int(math.Ceil(math.Sqrt(float64(total))))
	rows := int(math.Ceil(float64(total) / float64(cols)))
	row, col := index/cols, index%cols
	return Point{
		X: (float64(col) - float64(cols-1)/2) * GridSpacing,
		Y: (float64(row) - float64(rows-1)/2) * GridSpacing,
	}
}
