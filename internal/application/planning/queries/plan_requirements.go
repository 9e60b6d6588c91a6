package queries

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/motif-planner/internal/adapters/metrics"
	"github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// PlanRequirementsQuery requests the requirement tree for an entity at a target rate
type PlanRequirementsQuery struct {
	EntityID   string                          `json:"entityId"`         // Hero, part or spell id (e.g., "knight")
	TargetRate float64                         `json:"targetRate"`       // Units per second, must be > 0
	Bundle     *production.ConfigurationBundle `json:"bundle,omitempty"` // nil uses the planner defaults
}

// PlanRequirementsResponse contains the tree and its aggregates
type PlanRequirementsResponse struct {
	PlanID      string                         `json:"planId"`
	Entity      catalog.ProductionEntity       `json:"entity"`
	Bundle      production.ConfigurationBundle `json:"bundle"`
	Settings    production.EquipmentSettings   `json:"settings"`
	Tree        *production.RequirementNode    `json:"tree"`
	Summary     *services.RequirementSummary   `json:"summary"`
	GeneratedAt time.Time                      `json:"generatedAt"`
}

// PlanRequirementsHandler handles requirement planning queries
type PlanRequirementsHandler struct {
	catalogs catalog.Provider
	defaults production.ConfigurationBundle
	maxDepth int
	resolver *services.EquipmentRateResolver
	analyzer *services.RequirementAnalyzer
}

// NewPlanRequirementsHandler creates a new handler
func NewPlanRequirementsHandler(
	catalogs catalog.Provider,
	defaults production.ConfigurationBundle,
	maxDepth int,
) *PlanRequirementsHandler {
	return &PlanRequirementsHandler{
		catalogs: catalogs,
		defaults: defaults,
		maxDepth: maxDepth,
		resolver: services.NewEquipmentRateResolver(),
		analyzer: services.NewRequirementAnalyzer(),
	}
}

// Handle executes the query
func (h *PlanRequirementsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*PlanRequirementsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanRequirementsQuery")
	}

	logger := logging.LoggerFromContext(ctx)
	planID := uuid.New().String()

	bundle := h.defaults
	if query.Bundle != nil {
		bundle = *query.Bundle
	}

	response, err := h.plan(ctx, planID, query, bundle)
	if err != nil {
		kind := production.ErrorKind(err)
		metrics.RecordPlanFailure(kind)
		logger.Log("ERROR", "Plan failed", map[string]interface{}{
			"plan_id":     planID,
			"entity_id":   query.EntityID,
			"target_rate": query.TargetRate,
			"kind":        kind,
			"error":       err.Error(),
		})
		return nil, err
	}

	logger.Log("INFO", "Plan built", map[string]interface{}{
		"plan_id":     planID,
		"entity_id":   query.EntityID,
		"target_rate": query.TargetRate,
		"nodes":       response.Summary.NodeCount,
		"depth":       response.Summary.Depth,
		"canvases":    response.Summary.TotalCanvases(),
	})
	return response, nil
}

func (h *PlanRequirementsHandler) plan(
	ctx context.Context,
	planID string,
	query *PlanRequirementsQuery,
	bundle production.ConfigurationBundle,
) (*PlanRequirementsResponse, error) {
	if !(query.TargetRate > 0) || math.IsInf(query.TargetRate, 1) {
		return nil, &production.ErrInvalidRate{Rate: query.TargetRate}
	}
	if err := ValidateBundle(bundle); err != nil {
		return nil, err
	}

	cat, err := h.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	entity, found := cat.Lookup(query.EntityID)
	if !found {
		return nil, &production.ErrUnknownEntity{EntityID: query.EntityID}
	}

	settings, err := h.resolver.Resolve(cat.Equipment(), bundle)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	builder := services.NewRequirementTreeBuilder(cat, services.WithMaxDepth(h.maxDepth))
	tree, err := builder.BuildEntityWithSettings(entity, query.TargetRate, bundle, settings)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	summary := h.analyzer.Summarize(tree)
	metrics.RecordPlan(string(entity.Source), summary.NodeCount, summary.TotalCanvases(), elapsed)

	return &PlanRequirementsResponse{
		PlanID:      planID,
		Entity:      entity,
		Bundle:      bundle,
		Settings:    settings,
		Tree:        tree,
		Summary:     summary,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
