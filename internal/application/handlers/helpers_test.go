package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sid-0307/Kudumbam/internal/domain/mocks"
	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

type testHandlers struct {
	db            *mocks.RelationalDB
	families      *FamilyHandler
	persons       *PersonHandler
	relationships *RelationshipHandler
	layout        *LayoutHandler
	relations     *RelationsHandler
	imports       *ImportHandler
}

func newTestHandlers(t *testing.T) *testHandlers {
	t.Helper()
	db := mocks.NewRelationalDB()
	families := services.NewFamilyService(db)
	persons := services.NewPersonService(db, families, nil)
	relationships := services.NewRelationshipService(db, families)
	return &testHandlers{
		db:            db,
		families:      NewFamilyHandler(families),
		persons:       NewPersonHandler(persons),
		relationships: NewRelationshipHandler(relationships),
		layout:        NewLayoutHandler(services.NewLayoutService(db, families)),
		relations:     NewRelationsHandler(services.NewRelationService(families), services.NewDiagramService(families)),
		imports:       NewImportHandler(services.NewImportService(families, persons, relationships)),
	}
}

func (h *testHandlers) token(t *testing.T) string {
	t.Helper()
	res, err := h.families.HandleCreate(context.Background())
	require.NoError(t, err)
	return res.Token
}

func intPtr(v int) *int { return &v }
