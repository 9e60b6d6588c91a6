package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// Rank groups in display order. S and A ranks share a group.
const (
	RankGroupTop  = "S+A"
	RankGroupB    = "B"
	RankGroupC    = "C"
	RankGroupD    = "D"
	RankGroupNone = "-"
)

var rankGroupOrder = []string{RankGroupTop, RankGroupB, RankGroupC, RankGroupD, RankGroupNone}

// ListEntitiesQuery lists catalog entities, optionally restricted to one source
type ListEntitiesQuery struct {
	Source catalog.Source `json:"source,omitempty"` // empty lists every source
}

// RankGroup is a named group of entities in load order
type RankGroup struct {
	Name     string                     `json:"name"`
	Entities []catalog.ProductionEntity `json:"entities"`
}

// ListEntitiesResponse contains the entities and their rank grouping
type ListEntitiesResponse struct {
	Entities []catalog.ProductionEntity `json:"entities"`
	Groups   []RankGroup                `json:"groups"`

	// DefaultEntityID is the first S or A rank hero, else the first hero, else the
	// first listed entity
	DefaultEntityID string `json:"defaultEntityId"`
}

// ListEntitiesHandler handles entity listing queries
type ListEntitiesHandler struct {
	catalogs catalog.Provider
}

// NewListEntitiesHandler creates a new handler
func NewListEntitiesHandler(catalogs catalog.Provider) *ListEntitiesHandler {
	return &ListEntitiesHandler{catalogs: catalogs}
}

// Handle executes the query
func (h *ListEntitiesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListEntitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEntitiesQuery")
	}

	cat, err := h.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var entities []catalog.ProductionEntity
	if query.Source == "" {
		entities = cat.Entities()
	} else {
		entities = cat.EntitiesBySource(query.Source)
	}

	return &ListEntitiesResponse{
		Entities:        entities,
		Groups:          GroupByRank(entities),
		DefaultEntityID: defaultEntityID(entities),
	}, nil
}

// RankGroupOf returns the display group of a rank
func RankGroupOf(rank catalog.Rank) string {
	switch rank {
	case catalog.RankS, catalog.RankA:
		return RankGroupTop
	case catalog.RankB:
		return RankGroupB
	case catalog.RankC:
		return RankGroupC
	case catalog.RankD:
		return RankGroupD
	}
	return RankGroupNone
}

// GroupByRank groups entities by rank group, preserving their order within a group.
// Empty groups are omitted.
func GroupByRank(entities []catalog.ProductionEntity) []RankGroup {
	byGroup := make(map[string][]catalog.ProductionEntity)
	for _, e := range entities {
		g := RankGroupOf(e.Rank)
		byGroup[g] = append(byGroup[g], e)
	}

	groups := make([]RankGroup, 0, len(byGroup))
	for _, name := range rankGroupOrder {
		if members := byGroup[name]; len(members) > 0 {
			groups = append(groups, RankGroup{Name: name, Entities: members})
		}
	}
	return groups
}

func defaultEntityID(entities []catalog.ProductionEntity) string {
	var firstHero string
	for _, e := range entities {
		if e.Source != catalog.SourceHero {
			continue
		}
		if RankGroupOf(e.Rank) == RankGroupTop {
			return e.ID
		}
		if firstHero == "" {
			firstHero = e.ID
		}
	}
	if firstHero != "" {
		return firstHero
	}
	if len(entities) > 0 {
		return entities[0].ID
	}
	return ""
}
