package entities

// NodePosition is the saved diagram coordinate of one person.
type NodePosition struct {
	PersonID string  `json:"person_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}
