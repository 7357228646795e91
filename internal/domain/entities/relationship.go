package entities

import "time"

// RelationType defines the kind of edge between two people.
type RelationType string

const (
	// RelationParent is directed: PersonA is the parent of PersonB.
	RelationParent RelationType = "parent"
	// RelationSpouse is symmetric.
	RelationSpouse RelationType = "spouse"
)

// ValidRelationTypes lists all valid relationship type strings.
var ValidRelationTypes = []string{string(RelationParent), string(RelationSpouse)}

// IsValid reports whether t is a known relation type.
func (t RelationType) IsValid() bool {
	return t == RelationParent || t == RelationSpouse
}

// Relationship is a stored edge between two people of the same family.
type Relationship struct {
	ID           string       `json:"id"`
	FamilyID     string       `json:"family_id"`
	PersonA      string       `json:"person_a"`
	PersonB      string       `json:"person_b"`
	RelationType RelationType `json:"relation_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Involves reports whether personID is either endpoint of the edge.
func (r *Relationship) Involves(personID string) bool {
	return r.PersonA == personID || r.PersonB == personID
}
