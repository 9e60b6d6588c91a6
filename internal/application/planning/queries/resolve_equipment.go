package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// ResolveEquipmentQuery requests the resolved equipment throughput for a bundle
type ResolveEquipmentQuery struct {
	Bundle *production.ConfigurationBundle `json:"bundle,omitempty"` // nil uses the planner defaults
}

// ResolveEquipmentResponse contains the resolved settings
type ResolveEquipmentResponse struct {
	Bundle   production.ConfigurationBundle `json:"bundle"`
	Settings production.EquipmentSettings   `json:"settings"`
}

// ResolveEquipmentHandler handles equipment resolution queries
type ResolveEquipmentHandler struct {
	catalogs catalog.Provider
	defaults production.ConfigurationBundle
	resolver *services.EquipmentRateResolver
}

// NewResolveEquipmentHandler creates a new handler
func NewResolveEquipmentHandler(catalogs catalog.Provider, defaults production.ConfigurationBundle) *ResolveEquipmentHandler {
	return &ResolveEquipmentHandler{
		catalogs: catalogs,
		defaults: defaults,
		resolver: services.NewEquipmentRateResolver(),
	}
}

// Handle executes the query
func (h *ResolveEquipmentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ResolveEquipmentQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveEquipmentQuery")
	}

	bundle := h.defaults
	if query.Bundle != nil {
		bundle = *query.Bundle
	}
	if err := ValidateBundle(bundle); err != nil {
		return nil, err
	}

	cat, err := h.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	settings, err := h.resolver.Resolve(cat.Equipment(), bundle)
	if err != nil {
		return nil, err
	}

	return &ResolveEquipmentResponse{Bundle: bundle, Settings: settings}, nil
}
