package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Gender
		ok       bool
	}{
		{name: "empty is unknown", input: "", expected: GenderUnknown, ok: true},
		{name: "male", input: "M", expected: GenderMale, ok: true},
		{name: "female lowercase", input: "f", expected: GenderFemale, ok: true},
		{name: "padded", input: " m ", expected: GenderMale, ok: true},
		{name: "invalid", input: "X", expected: GenderUnknown, ok: false},
		{name: "word is invalid", input: "male", expected: GenderUnknown, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := ParseGender(tt.input)
			assert.Equal(t, tt.expected, g)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPerson_DisplayName(t *testing.T) {
	p := Person{Name: "Alice Mary"}
	assert.Equal(t, "Alice Mary", p.DisplayName())

	p.Alias = "Ammu"
	assert.Equal(t, "Ammu", p.DisplayName())

	p.Alias = "   "
	assert.Equal(t, "Alice Mary", p.DisplayName())
}

func TestRelationType_IsValid(t *testing.T) {
	assert.True(t, RelationParent.IsValid())
	assert.True(t, RelationSpouse.IsValid())
	assert.False(t, RelationType("sibling").IsValid())
	assert.False(t, RelationType("").IsValid())
}
