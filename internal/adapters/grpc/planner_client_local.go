package grpc

import (
	"context"
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
)

// PlannerClientLocal serves the planner client API in-process through the mediator.
// The CLI uses it when no daemon is requested.
type PlannerClientLocal struct {
	mediator mediator.Mediator
}

// NewPlannerClientLocal creates a new local planner client
func NewPlannerClientLocal(med mediator.Mediator) *PlannerClientLocal {
	return &PlannerClientLocal{mediator: med}
}

// Close is a no-op for the local client
func (c *PlannerClientLocal) Close() error {
	return nil
}

// Plan builds a requirement tree in-process
func (c *PlannerClientLocal) Plan(ctx context.Context, query *queries.PlanRequirementsQuery) (*queries.PlanRequirementsResponse, error) {
	resp, err := c.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	plan, ok := resp.(*queries.PlanRequirementsResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return plan, nil
}

// ResolveEquipment resolves equipment settings in-process
func (c *PlannerClientLocal) ResolveEquipment(ctx context.Context, query *queries.ResolveEquipmentQuery) (*queries.ResolveEquipmentResponse, error) {
	resp, err := c.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	settings, ok := resp.(*queries.ResolveEquipmentResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return settings, nil
}

// ListEntities lists catalog entities in-process
func (c *PlannerClientLocal) ListEntities(ctx context.Context, query *queries.ListEntitiesQuery) (*queries.ListEntitiesResponse, error) {
	resp, err := c.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	list, ok := resp.(*queries.ListEntitiesResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return list, nil
}
