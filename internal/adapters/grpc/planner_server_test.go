package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/test/bufconn"

	plannergrpc "github.com/andrescamacho/motif-planner/internal/adapters/grpc"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

func newPlannerMediator(t *testing.T, cat *catalog.Catalog) mediator.Mediator {
	t.Helper()
	m := mediator.NewMediator()
	require.NoError(t, queries.RegisterHandlers(m, catalog.NewStaticProvider(cat), production.DefaultBundle(), 64))
	return m
}

// startServer serves med over an in-memory listener and returns a connected client
func startServer(t *testing.T, med mediator.Mediator, opts plannergrpc.ServerOptions) *plannergrpc.PlannerClientGRPC {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := plannergrpc.NewPlannerServerWithListener(med, listener, opts)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()
	t.Cleanup(func() {
		server.Stop()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	client, err := plannergrpc.NewPlannerClientGRPC("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestPlannerServer_PlanMatchesLocal(t *testing.T) {
	// Arrange
	med := newPlannerMediator(t, helpers.FixtureCatalog())
	remote := startServer(t, med, plannergrpc.ServerOptions{RequestTimeout: time.Second})
	local := plannergrpc.NewPlannerClientLocal(med)
	query := &queries.PlanRequirementsQuery{EntityID: "knight", TargetRate: 2.5}

	// Act
	want, err := local.Plan(context.Background(), query)
	require.NoError(t, err)
	got, err := remote.Plan(context.Background(), query)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, got.PlanID)
	assert.Equal(t, want.Entity, got.Entity)
	assert.Equal(t, want.Bundle, got.Bundle)
	assert.Equal(t, want.Summary.NodeCount, got.Summary.NodeCount)
	assert.Equal(t, want.Summary.Equipment, got.Summary.Equipment)
	assert.Equal(t, want.Summary.CanvasesByEntity, got.Summary.CanvasesByEntity)
	assert.Equal(t, want.Summary.UsedMaterials, got.Summary.UsedMaterials)
	assert.Equal(t, want.Tree.FlattenToList()[1].ID, got.Tree.FlattenToList()[1].ID)
	assert.InDelta(t, want.Tree.RequiredRate, got.Tree.RequiredRate, 1e-12)
	assert.InDelta(t, want.Settings.PipetteRate, got.Settings.PipetteRate, 1e-12)
	for id, req := range want.Tree.Materials {
		require.Contains(t, got.Tree.Materials, id)
		assert.InDelta(t, req.Count, got.Tree.Materials[id].Count, 1e-9)
		assert.Equal(t, req.NeedsBottle, got.Tree.Materials[id].NeedsBottle)
	}
}

func TestPlannerServer_ResolveEquipmentWithBundle(t *testing.T) {
	med := newPlannerMediator(t, helpers.FixtureCatalog())
	client := startServer(t, med, plannergrpc.ServerOptions{})
	bundle := production.DefaultBundle()
	bundle.Tiers.Pipette = catalog.TierHigh

	resp, err := client.ResolveEquipment(context.Background(), &queries.ResolveEquipmentQuery{Bundle: &bundle})

	require.NoError(t, err)
	assert.Equal(t, 4.0, resp.Settings.PipetteRate)
	assert.Equal(t, bundle, resp.Bundle)
}

func TestPlannerServer_ListEntities(t *testing.T) {
	med := newPlannerMediator(t, helpers.FixtureCatalog())
	client := startServer(t, med, plannergrpc.ServerOptions{})

	resp, err := client.ListEntities(context.Background(), &queries.ListEntitiesQuery{Source: catalog.SourceSpell})

	require.NoError(t, err)
	require.Len(t, resp.Entities, 1)
	assert.Equal(t, "fireball", resp.Entities[0].ID)
	assert.Equal(t, "fireball", resp.DefaultEntityID)
}

func TestPlannerServer_ErrorKindsSurviveTransport(t *testing.T) {
	cyclic := catalog.NewCatalog(catalog.Snapshot{
		Parts: []catalog.ProductionEntity{
			{ID: "egg", OutputPerCycle: 1, CycleSeconds: 1, Recipe: []catalog.RecipeLine{{MaterialID: "hen", Quantity: 1}}},
			{ID: "hen", OutputPerCycle: 1, CycleSeconds: 1, Recipe: []catalog.RecipeLine{{MaterialID: "egg", Quantity: 1}}},
		},
		Equipment: helpers.StockEquipment(),
	})
	client := startServer(t, newPlannerMediator(t, cyclic), plannergrpc.ServerOptions{})

	tests := []struct {
		name  string
		query *queries.PlanRequirementsQuery
		code  codes.Code
		kind  string
	}{
		{"invalid rate", &queries.PlanRequirementsQuery{EntityID: "egg", TargetRate: -1}, codes.InvalidArgument, production.KindInvalidRate},
		{"unknown entity", &queries.PlanRequirementsQuery{EntityID: "dragon", TargetRate: 1}, codes.NotFound, production.KindUnknownEntity},
		{"recipe cycle", &queries.PlanRequirementsQuery{EntityID: "egg", TargetRate: 1}, codes.FailedPrecondition, production.KindRecipeCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := client.Plan(context.Background(), tt.query)

			// Assert
			var remoteErr *plannergrpc.RemoteError
			require.True(t, errors.As(err, &remoteErr), "expected RemoteError, got %v", err)
			assert.Equal(t, tt.code, remoteErr.Code)
			assert.Equal(t, tt.kind, production.ErrorKind(err))
		})
	}
}

func TestPlannerServer_RateLimited(t *testing.T) {
	med := newPlannerMediator(t, helpers.FixtureCatalog())
	client := startServer(t, med, plannergrpc.ServerOptions{RateLimit: 0.001, Burst: 1})
	query := &queries.ListEntitiesQuery{}

	_, first := client.ListEntities(context.Background(), query)
	_, second := client.ListEntities(context.Background(), query)

	require.NoError(t, first)
	var remoteErr *plannergrpc.RemoteError
	require.ErrorAs(t, second, &remoteErr)
	assert.Equal(t, codes.ResourceExhausted, remoteErr.Code)
}

func TestPlannerServer_ReportsServingHealth(t *testing.T) {
	med := newPlannerMediator(t, helpers.FixtureCatalog())
	client := startServer(t, med, plannergrpc.ServerOptions{})

	status, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)
}
