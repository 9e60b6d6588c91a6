package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

type capturingLogger struct {
	levels   []string
	messages []string
}

func (l *capturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.levels = append(l.levels, level)
	l.messages = append(l.messages, message)
}

type failingProvider struct{}

func (p *failingProvider) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	return nil, errors.New("database unavailable")
}

func newMediator(t *testing.T, provider catalog.Provider) mediator.Mediator {
	t.Helper()
	m := mediator.NewMediator()
	require.NoError(t, queries.RegisterHandlers(m, provider, production.DefaultBundle(), 16))
	return m
}

func TestPlanRequirementsHandler_BuildsPlan(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	ctx := logging.WithLogger(context.Background(), logger)
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))

	// Act
	resp, err := m.Send(ctx, &queries.PlanRequirementsQuery{EntityID: "knight", TargetRate: 1})

	// Assert
	require.NoError(t, err)
	plan, ok := resp.(*queries.PlanRequirementsResponse)
	require.True(t, ok)
	_, parseErr := uuid.Parse(plan.PlanID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "knight", plan.Tree.ID)
	assert.Equal(t, catalog.SourceHero, plan.Entity.Source)
	assert.Equal(t, production.DefaultBundle(), plan.Bundle)
	assert.Equal(t, 3, plan.Summary.NodeCount)
	assert.Equal(t, 3.0, plan.Settings.PipetteRate)
	assert.False(t, plan.GeneratedAt.IsZero())
	assert.Equal(t, []string{"INFO"}, logger.levels)
}

func TestPlanRequirementsHandler_UsesQueryBundle(t *testing.T) {
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))
	bundle := production.DefaultBundle()
	bundle.Coefficients.Pipette = 100

	resp, err := m.Send(context.Background(), &queries.PlanRequirementsQuery{EntityID: "slime", TargetRate: 2, Bundle: &bundle})

	require.NoError(t, err)
	assert.Equal(t, 6.0, resp.(*queries.PlanRequirementsResponse).Settings.PipetteRate)
}

func TestPlanRequirementsHandler_Failures(t *testing.T) {
	badBundle := production.DefaultBundle()
	badBundle.Boosts.Circle = 50

	tests := []struct {
		name     string
		provider catalog.Provider
		query    *queries.PlanRequirementsQuery
		kind     string
	}{
		{"zero rate", catalog.NewStaticProvider(helpers.FixtureCatalog()), &queries.PlanRequirementsQuery{EntityID: "slime"}, production.KindInvalidRate},
		{"unknown entity", catalog.NewStaticProvider(helpers.FixtureCatalog()), &queries.PlanRequirementsQuery{EntityID: "dragon", TargetRate: 1}, production.KindUnknownEntity},
		{"invalid bundle", catalog.NewStaticProvider(helpers.FixtureCatalog()), &queries.PlanRequirementsQuery{EntityID: "slime", TargetRate: 1, Bundle: &badBundle}, production.KindInvalidBundle},
		{"catalog unavailable", &failingProvider{}, &queries.PlanRequirementsQuery{EntityID: "slime", TargetRate: 1}, production.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			logger := &capturingLogger{}
			ctx := logging.WithLogger(context.Background(), logger)
			m := newMediator(t, tt.provider)

			// Act
			resp, err := m.Send(ctx, tt.query)

			// Assert
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.kind, production.ErrorKind(err))
			assert.Equal(t, []string{"ERROR"}, logger.levels)
		})
	}
}

func TestPlanRequirementsHandler_RejectsWrongRequestType(t *testing.T) {
	handler := queries.NewPlanRequirementsHandler(catalog.NewStaticProvider(helpers.FixtureCatalog()), production.DefaultBundle(), 0)

	_, err := handler.Handle(context.Background(), &queries.ListEntitiesQuery{})

	assert.ErrorContains(t, err, "invalid request type")
}

func TestResolveEquipmentHandler(t *testing.T) {
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))
	bundle := production.DefaultBundle()
	bundle.Tiers.Pipette = catalog.TierTop

	resp, err := m.Send(context.Background(), &queries.ResolveEquipmentQuery{Bundle: &bundle})

	require.NoError(t, err)
	result := resp.(*queries.ResolveEquipmentResponse)
	assert.Equal(t, 6.0, result.Settings.PipetteRate)
	assert.Equal(t, bundle, result.Bundle)
}

func TestResolveEquipmentHandler_InvalidTier(t *testing.T) {
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))
	bundle := production.DefaultBundle()
	bundle.Tiers.Canvas = "legendary"

	_, err := m.Send(context.Background(), &queries.ResolveEquipmentQuery{Bundle: &bundle})

	var bundleErr *production.ErrInvalidBundle
	require.ErrorAs(t, err, &bundleErr)
	assert.Contains(t, bundleErr.Field, "Canvas")
	assert.Contains(t, bundleErr.Reason, "one of")
}

func TestListEntitiesHandler(t *testing.T) {
	// Arrange
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))

	// Act
	resp, err := m.Send(context.Background(), &queries.ListEntitiesQuery{Source: catalog.SourceHero})

	// Assert
	require.NoError(t, err)
	list := resp.(*queries.ListEntitiesResponse)
	require.Len(t, list.Entities, 4)
	assert.Equal(t, "knight", list.DefaultEntityID)
	require.Len(t, list.Groups, 3)
	assert.Equal(t, queries.RankGroupTop, list.Groups[0].Name)
	assert.Len(t, list.Groups[0].Entities, 2)
	assert.Equal(t, queries.RankGroupB, list.Groups[1].Name)
	assert.Equal(t, queries.RankGroupC, list.Groups[2].Name)
}

func TestListEntitiesHandler_AllSources(t *testing.T) {
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))

	resp, err := m.Send(context.Background(), &queries.ListEntitiesQuery{})

	require.NoError(t, err)
	list := resp.(*queries.ListEntitiesResponse)
	assert.Len(t, list.Entities, 8)
	assert.Equal(t, "knight", list.DefaultEntityID)
}

func TestGroupByRank_DefaultFallsBackToFirstHero(t *testing.T) {
	entities := []catalog.ProductionEntity{
		{ID: "bolt", Source: catalog.SourcePart},
		{ID: "goblin", Source: catalog.SourceHero, Rank: catalog.RankD},
		{ID: "orc", Source: catalog.SourceHero, Rank: catalog.RankB},
	}
	cat := catalog.NewCatalog(catalog.Snapshot{Parts: entities[:1], Heroes: entities[1:]})
	m := newMediator(t, catalog.NewStaticProvider(cat))

	resp, err := m.Send(context.Background(), &queries.ListEntitiesQuery{})

	require.NoError(t, err)
	list := resp.(*queries.ListEntitiesResponse)
	assert.Equal(t, "goblin", list.DefaultEntityID)
	assert.Equal(t, []string{queries.RankGroupB, queries.RankGroupD, queries.RankGroupNone},
		[]string{list.Groups[0].Name, list.Groups[1].Name, list.Groups[2].Name})
}

func TestRegisterHandlers_RejectsDoubleRegistration(t *testing.T) {
	m := newMediator(t, catalog.NewStaticProvider(helpers.FixtureCatalog()))

	err := queries.RegisterHandlers(m, catalog.NewStaticProvider(helpers.FixtureCatalog()), production.DefaultBundle(), 16)

	assert.Error(t, err)
}
