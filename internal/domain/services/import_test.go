package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/kinship"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/parsers"
)

func rawNuclearFamily() *parsers.RawFamily {
	return &parsers.RawFamily{
		Persons: []parsers.RawPerson{
			{ID: "dad", Name: "Joseph", Gender: "M", Age: intPtr(60), LineNum: 1},
			{ID: "mom", Name: "Mary", Gender: "F", LineNum: 2},
			{ID: "kid", Name: "Anna", Gender: "F", LineNum: 3},
		},
		Relationships: []parsers.RawRelationship{
			{PersonA: "dad", PersonB: "kid", Type: "parent", LineNum: 1},
			{PersonA: "mom", PersonB: "kid", Type: "parent", LineNum: 2},
			{PersonA: "dad", PersonB: "mom", Type: "spouse", LineNum: 3},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	family := s.newFamily(t)

	result, err := s.imports.Import(ctx, family.Token, rawNuclearFamily(), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Persons)
	assert.Equal(t, 3, result.Relationships)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)
	require.Len(t, result.IDs, 3)
	assert.NotEqual(t, "kid", result.IDs["kid"])

	view, err := s.relations.Compute(ctx, family.Token, result.IDs["kid"])
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelFather, view.Relations[result.IDs["dad"]].Label)
	assert.Equal(t, kinship.LabelMother, view.Relations[result.IDs["mom"]].Label)
}

func TestImportService_Import_DryRun(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	family := s.newFamily(t)

	result, err := s.imports.Import(ctx, family.Token, rawNuclearFamily(), ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Persons)
	assert.Equal(t, 3, result.Relationships)
	assert.Empty(t, s.db.Persons)
	assert.Empty(t, s.db.Relationships)
}

func TestImportService_Import_RowErrors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	family := s.newFamily(t)

	raw := &parsers.RawFamily{
		Persons: []parsers.RawPerson{
			{ID: "a", Name: "A", LineNum: 1},
			{ID: "a", Name: "A again", LineNum: 2},
			{ID: "b", Name: " ", LineNum: 3},
			{ID: "c", Name: "C", Gender: "X", LineNum: 4},
			{ID: "d", Name: "D", Age: intPtr(500), LineNum: 5},
			{ID: "", Name: "E", LineNum: 6},
			{ID: "f", Name: "F", LineNum: 7},
		},
		Relationships: []parsers.RawRelationship{
			{PersonA: "a", PersonB: "f", Type: "sibling", LineNum: 1},
			{PersonA: "a", PersonB: "ghost", Type: "parent", LineNum: 2},
			{PersonA: "a", PersonB: "a", Type: "spouse", LineNum: 3},
			{PersonA: "a", PersonB: "f", Type: "Spouse", LineNum: 4},
			{PersonA: "f", PersonB: "a", Type: "spouse", LineNum: 5},
		},
	}

	result, err := s.imports.Import(ctx, family.Token, raw, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Persons)
	assert.Equal(t, 1, result.Relationships)
	assert.Equal(t, 1, result.Skipped)

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"id", "name", "gender", "age", "id", "relation_type", "person", ""}, fields)
	assert.Equal(t, "line 2: duplicate id \"a\"", result.Errors[0].Error())
	assert.Equal(t, "ghost", result.Errors[6].Value)
}

func TestImportService_Import_DuplicateEdgesAreSkipped(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	family := s.newFamily(t)

	raw := rawNuclearFamily()
	raw.Relationships = append(raw.Relationships,
		parsers.RawRelationship{PersonA: "dad", PersonB: "kid", Type: "parent", LineNum: 4},
		parsers.RawRelationship{PersonA: "kid", PersonB: "mom", Type: "parent", LineNum: 5},
		parsers.RawRelationship{PersonA: "mom", PersonB: "dad", Type: "spouse", LineNum: 6},
	)

	result, err := s.imports.Import(ctx, family.Token, raw, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Relationships)
	assert.Equal(t, 3, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Len(t, s.db.Relationships, 3)
}

func TestImportService_Import_UnknownFamily(t *testing.T) {
	s := newTestServices(t)
	_, err := s.imports.Import(context.Background(), "nope", rawNuclearFamily(), ImportOptions{})
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}
