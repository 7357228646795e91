package entities

import (
	"strings"
	"time"
)

// Gender is the recorded gender of a person. The zero value means unknown.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
)

// ParseGender converts user input to a Gender. Empty input maps to GenderUnknown.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return GenderUnknown, true
	case "M":
		return GenderMale, true
	case "F":
		return GenderFemale, true
	default:
		return GenderUnknown, false
	}
}

// Person is a member of a family tree.
type Person struct {
	ID        string    `json:"id"`
	FamilyID  string    `json:"family_id"`
	Name      string    `json:"name"`
	Alias     string    `json:"alias,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Gender    Gender    `json:"gender,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the alias when set, otherwise the name.
func (p *Person) DisplayName() string {
	if alias := strings.TrimSpace(p.Alias); alias != "" {
		return alias
	}
	return p.Name
}
