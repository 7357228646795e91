package kinship

import (
	"sort"

	"github.com/Sid-0307/Kudumbam/internal/domain/entities"
)

// IDSet is a set of person ids.
type IDSet map[string]struct{}

// Add inserts id into the set.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Node is one person's adjacency in a Graph.
type Node struct {
	ID       string
	Gender   entities.Gender
	Parents  IDSet
	Children IDSet
	Spouses  IDSet
}

// Graph is an adjacency view over one family snapshot.
type Graph struct {
	nodes map[string]*Node
}

// BuildGraph creates one node per person and links them along the given edges.
// Edges that reference an unknown person or carry an unknown type are skipped.
func BuildGraph(persons []entities.Person, rels []entities.Relationship) *Graph {
	g := &Graph{nodes: make(map[string]*Node, len(persons))}
	for _, p := range persons {
		g.nodes[p.ID] = &Node{
			ID:       p.ID,
			Gender:   p.Gender,
			Parents:  IDSet{},
			Children: IDSet{},
			Spouses:  IDSet{},
		}
	}

	for _, r := range rels {
		a, okA := g.nodes[r.PersonA]
		b, okB := g.nodes[r.PersonB]
		if !okA || !okB {
			continue
		}
		switch r.RelationType {
		case entities.RelationParent:
			a.Children.Add(b.ID)
			b.Parents.Add(a.ID)
		case entities.RelationSpouse:
			a.Spouses.Add(b.ID)
			b.Spouses.Add(a.ID)
		}
	}
	return g
}

// Node returns the node for id, or nil when id is not part of the graph.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) gender(id string) entities.Gender {
	if n := g.nodes[id]; n != nil {
		return n.Gender
	}
	return entities.GenderUnknown
}
