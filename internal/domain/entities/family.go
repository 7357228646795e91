// Package entities contains core domain data structures.
package entities

import "time"

// Family is the shared record that scopes a set of people and their relationships.
// Anyone holding the token can read and edit the family.
type Family struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyData is a complete snapshot of one family.
type FamilyData struct {
	Family        Family         `json:"family"`
	Persons       []Person       `json:"persons"`
	Relationships []Relationship `json:"relationships"`
	Positions     []NodePosition `json:"positions,omitempty"`
}
