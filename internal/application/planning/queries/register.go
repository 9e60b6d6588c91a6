package queries

import (
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// RegisterHandlers registers every planning query handler with m
func RegisterHandlers(
	m mediator.Mediator,
	catalogs catalog.Provider,
	defaults production.ConfigurationBundle,
	maxDepth int,
) error {
	if err := mediator.RegisterHandler[*PlanRequirementsQuery](m, NewPlanRequirementsHandler(catalogs, defaults, maxDepth)); err != nil {
		return fmt.Errorf("failed to register PlanRequirements handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ResolveEquipmentQuery](m, NewResolveEquipmentHandler(catalogs, defaults)); err != nil {
		return fmt.Errorf("failed to register ResolveEquipment handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ListEntitiesQuery](m, NewListEntitiesHandler(catalogs)); err != nil {
		return fmt.Errorf("failed to register ListEntities handler: %w", err)
	}
	return nil
}
