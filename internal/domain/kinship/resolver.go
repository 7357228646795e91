package kinship

import "github.com/Sid-0307/Kudumbam/internal/domain/entities"

// Relations maps person id to the label describing that person from the root's view.
type Relations map[string]RelationLabel

// ComputeRelations labels every person reachable from rootID.
// An unknown root yields an empty, non-nil map.
func ComputeRelations(rootID string, persons []entities.Person, rels []entities.Relationship) Relations {
	return Resolve(BuildGraph(persons, rels), rootID)
}

type visit struct {
	id  string
	gen int
}

// Resolve runs the labelling passes over an already built graph.
func Resolve(g *Graph, rootID string) Relations {
	out := Relations{}
	root := g.Node(rootID)
	if root == nil {
		return out
	}
	out[rootID] = LabelSelf

	walk(g, root, out)

	r := resolver{g: g, root: root, out: out}
	r.siblings()
	r.spouseFamily()
	r.childrenSpouses()
	r.parentSiblings()
	r.siblingChildren()
	r.cousins()
	return out
}

// walk is a breadth-first expansion from the root. Generation is tracked relative to
// the node being expanded: parents sit one above, children one below, spouses level.
func walk(g *Graph, root *Node, out Relations) {
	visited := IDSet{root.ID: {}}
	queue := []visit{{id: root.ID}}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		node := g.Node(cur.id)

		for _, id := range node.Parents.Sorted() {
			if visited.Has(id) {
				continue
			}
			visited.Add(id)
			out[id] = ancestorLabel(cur.gen, g.gender(id))
			queue = append(queue, visit{id: id, gen: cur.gen + 1})
		}

		for _, id := range node.Children.Sorted() {
			if visited.Has(id) {
				continue
			}
			visited.Add(id)
			out[id] = descendantLabel(cur.gen, g.gender(id))
			queue = append(queue, visit{id: id, gen: cur.gen - 1})
		}

		for _, id := range node.Spouses.Sorted() {
			if visited.Has(id) {
				continue
			}
			visited.Add(id)
			out[id] = spouseLabel(cur.gen, root.Gender, g.gender(id))
			queue = append(queue, visit{id: id, gen: cur.gen})
		}
	}
}

type resolver struct {
	g    *Graph
	root *Node
	out  Relations
}

// set assigns a label, never replacing the root's own entry.
func (r *resolver) set(id string, l RelationLabel) {
	if id == r.root.ID {
		return
	}
	r.out[id] = l
}

// relabel assigns a label only to people an earlier pass already reached.
func (r *resolver) relabel(id string, t tier) {
	if _, ok := r.out[id]; !ok {
		return
	}
	r.set(id, t.forGender(r.g.gender(id)))
}

// siblingsOf returns the other children of id's parents, excluding id.
func (r *resolver) siblingsOf(id string) []string {
	n := r.g.Node(id)
	if n == nil {
		return nil
	}
	sibs := IDSet{}
	for _, pid := range n.Parents.Sorted() {
		for _, cid := range r.g.Node(pid).Children.Sorted() {
			if cid != id {
				sibs.Add(cid)
			}
		}
	}
	return sibs.Sorted()
}

func (r *resolver) siblings() {
	for _, id := range r.siblingsOf(r.root.ID) {
		r.relabel(id, siblingTier)
	}
}

func (r *resolver) spouseFamily() {
	for _, sid := range r.root.Spouses.Sorted() {
		spouse := r.g.Node(sid)
		for _, pid := range spouse.Parents.Sorted() {
			r.relabel(pid, parentInLawTier)
		}
		for _, id := range r.siblingsOf(sid) {
			r.relabel(id, siblingInLawTier)
		}
	}
}

func (r *resolver) childrenSpouses() {
	for _, cid := range r.root.Children.Sorted() {
		for _, sid := range r.g.Node(cid).Spouses.Sorted() {
			r.relabel(sid, childInLawTier)
		}
	}
}

// parentSiblingIDs returns the other children of the root's grandparents.
func (r *resolver) parentSiblingIDs() []string {
	out := IDSet{}
	for _, pid := range r.root.Parents.Sorted() {
		for _, id := range r.siblingsOf(pid) {
			out.Add(id)
		}
	}
	return out.Sorted()
}

// parentSiblings labels aunts and uncles whether or not the walk reached them.
func (r *resolver) parentSiblings() {
	for _, id := range r.parentSiblingIDs() {
		r.set(id, parentSiblingTier.forGender(r.g.gender(id)))
	}
}

// siblingChildren only relabels nieces and nephews already present in the result.
// A sibling's child the walk never reached stays unlabelled.
func (r *resolver) siblingChildren() {
	for _, sid := range r.siblingsOf(r.root.ID) {
		for _, cid := range r.g.Node(sid).Children.Sorted() {
			r.relabel(cid, siblingChildTier)
		}
	}
}

func (r *resolver) cousins() {
	for _, uid := range r.parentSiblingIDs() {
		for _, cid := range r.g.Node(uid).Children.Sorted() {
			if _, ok := r.out[cid]; ok {
				r.set(cid, LabelCousin)
			}
		}
	}
}
