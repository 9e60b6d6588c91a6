package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

const rateTolerance = 1e-9

type planningContext struct {
	snapshot catalog.Snapshot
	bundle   production.ConfigurationBundle
	response *queries.PlanRequirementsResponse
	err      error
}

func (ctx *planningContext) reset() {
	ctx.snapshot = catalog.Snapshot{}
	ctx.bundle = production.DefaultBundle()
	ctx.response = nil
	ctx.err = nil
}

// Given steps

func (ctx *planningContext) theStockEquipmentCatalog() error {
	ctx.snapshot.Equipment = helpers.StockEquipment()
	return nil
}

func (ctx *planningContext) theFollowingParts(table *godog.Table) error {
	entities, err := parseEntityTable(table)
	if err != nil {
		return err
	}
	ctx.snapshot.Parts = append(ctx.snapshot.Parts, entities...)
	return nil
}

func (ctx *planningContext) theFollowingHeroes(table *godog.Table) error {
	entities, err := parseEntityTable(table)
	if err != nil {
		return err
	}
	ctx.snapshot.Heroes = append(ctx.snapshot.Heroes, entities...)
	return nil
}

func (ctx *planningContext) theFollowingSpells(table *godog.Table) error {
	entities, err := parseEntityTable(table)
	if err != nil {
		return err
	}
	ctx.snapshot.Spells = append(ctx.snapshot.Spells, entities...)
	return nil
}

func (ctx *planningContext) theOptionIsEnabled(option string) error {
	switch option {
	case "scissors double port":
		ctx.bundle.Options.ScissorsDoublePort = true
	case "tutu double port":
		ctx.bundle.Options.TutuDoublePort = true
	case "triple ink bottle consumption":
		ctx.bundle.Options.TripleInkBottleConsumption = true
	case "big motif bonus":
		ctx.bundle.Options.BigMotifBonus = true
	default:
		return fmt.Errorf("unknown option %q", option)
	}
	return nil
}

func (ctx *planningContext) thePipetteTierIs(tier string) error {
	ctx.bundle.Tiers.Pipette = catalog.Tier(tier)
	return nil
}

// When steps

func (ctx *planningContext) iPlanAtUnitsPerSecond(entityID string, rate float64) error {
	m := mediator.NewMediator()
	provider := catalog.NewStaticProvider(catalog.NewCatalog(ctx.snapshot))
	if err := queries.RegisterHandlers(m, provider, production.DefaultBundle(), 0); err != nil {
		return err
	}

	bundle := ctx.bundle
	resp, err := m.Send(context.Background(), &queries.PlanRequirementsQuery{
		EntityID:   entityID,
		TargetRate: rate,
		Bundle:     &bundle,
	})
	ctx.err = err
	ctx.response = nil
	if err == nil {
		ctx.response = resp.(*queries.PlanRequirementsResponse)
	}
	return nil
}

// Then steps

func (ctx *planningContext) thePlanSucceeds() error {
	if ctx.err != nil {
		return fmt.Errorf("expected plan to succeed, got: %w", ctx.err)
	}
	return nil
}

func (ctx *planningContext) thePlanFailsWithErrorKind(kind string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected plan to fail with %s, but it succeeded", kind)
	}
	if got := production.ErrorKind(ctx.err); got != kind {
		return fmt.Errorf("expected error kind %s, got %s (%v)", kind, got, ctx.err)
	}
	return nil
}

func (ctx *planningContext) nodeRunsAtOn(nodeID string, rate float64, canvases int, class string) error {
	node, err := ctx.findNode(nodeID)
	if err != nil {
		return err
	}
	if math.Abs(node.RequiredRate-rate) > rateTolerance {
		return fmt.Errorf("expected %s at %v/s, got %v/s", nodeID, rate, node.RequiredRate)
	}
	if node.CanvasCount != canvases || string(node.CanvasClass) != class {
		return fmt.Errorf("expected %s on %d %s, got %d %s", nodeID, canvases, class, node.CanvasCount, node.CanvasClass)
	}
	return nil
}

func (ctx *planningContext) theChildrenOfAre(nodeID, expected string) error {
	node, err := ctx.findNode(nodeID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		ids = append(ids, child.ID)
	}
	if got := strings.Join(ids, ", "); got != expected {
		return fmt.Errorf("expected children of %s to be %q, got %q", nodeID, expected, got)
	}
	return nil
}

func (ctx *planningContext) nodeNeedsAtUsing(nodeID, materialID string, rate float64, count int, class string) error {
	req, err := ctx.findMaterial(nodeID, materialID)
	if err != nil {
		return err
	}
	if math.Abs(req.Count-rate) > rateTolerance {
		return fmt.Errorf("expected %s in %s at %v/s, got %v/s", materialID, nodeID, rate, req.Count)
	}
	if got := req.Equipment[catalog.EquipmentClass(class)]; got != count {
		return fmt.Errorf("expected %s in %s to use %d %s, got %d (%v)", materialID, nodeID, count, class, got, req.Equipment)
	}
	return nil
}

func (ctx *planningContext) nodeNeedsBottled(nodeID, materialID string) error {
	req, err := ctx.findMaterial(nodeID, materialID)
	if err != nil {
		return err
	}
	if !req.NeedsBottle {
		return fmt.Errorf("expected %s in %s to be bottled", materialID, nodeID)
	}
	return nil
}

func (ctx *planningContext) thePlanSummaryHasNodesAndDepth(nodes, depth int) error {
	if ctx.response == nil {
		return fmt.Errorf("no plan: %v", ctx.err)
	}
	summary := ctx.response.Summary
	if summary.NodeCount != nodes || summary.Depth != depth {
		return fmt.Errorf("expected %d nodes at depth %d, got %d at depth %d", nodes, depth, summary.NodeCount, summary.Depth)
	}
	return nil
}

func (ctx *planningContext) findNode(nodeID string) (*production.RequirementNode, error) {
	if ctx.response == nil {
		return nil, fmt.Errorf("no plan: %v", ctx.err)
	}
	for _, node := range ctx.response.Tree.FlattenToList() {
		if node.ID == nodeID {
			return node, nil
		}
	}
	return nil, fmt.Errorf("node %s not found in tree", nodeID)
}

func (ctx *planningContext) findMaterial(nodeID, materialID string) (production.MaterialRequirement, error) {
	node, err := ctx.findNode(nodeID)
	if err != nil {
		return production.MaterialRequirement{}, err
	}
	req, ok := node.Materials[materialID]
	if !ok {
		return production.MaterialRequirement{}, fmt.Errorf("node %s has no material %s", nodeID, materialID)
	}
	return req, nil
}

// parseEntityTable reads rows of id, name, [rank,] output, cycle and a recipe written
// as "material:qty, material:qty"
func parseEntityTable(table *godog.Table) ([]catalog.ProductionEntity, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	cell := func(row *messages.PickleTableRow, column string) string {
		return getCellValue(table, row, column)
	}

	entities := make([]catalog.ProductionEntity, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		output, err := strconv.ParseFloat(cell(row, "output"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid output for %s: %w", cell(row, "id"), err)
		}
		cycle, err := strconv.ParseFloat(cell(row, "cycle"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cycle for %s: %w", cell(row, "id"), err)
		}
		recipe, err := parseRecipe(cell(row, "recipe"))
		if err != nil {
			return nil, fmt.Errorf("invalid recipe for %s: %w", cell(row, "id"), err)
		}

		entities = append(entities, catalog.ProductionEntity{
			ID:             cell(row, "id"),
			Name:           cell(row, "name"),
			Rank:           catalog.Rank(cell(row, "rank")),
			OutputPerCycle: output,
			CycleSeconds:   cycle,
			Recipe:         recipe,
		})
	}
	return entities, nil
}

// getCellValue returns the trimmed cell of row under columnName, or "" when the
// column is absent
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName && i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].Value)
		}
	}
	return ""
}

func parseRecipe(text string) ([]catalog.RecipeLine, error) {
	if text == "" {
		return nil, nil
	}

	var lines []catalog.RecipeLine
	for _, part := range strings.Split(text, ",") {
		id, qty, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("expected material:quantity, got %q", part)
		}
		quantity, err := strconv.ParseFloat(qty, 64)
		if err != nil {
			return nil, err
		}
		lines = append(lines, catalog.RecipeLine{MaterialID: id, Quantity: quantity})
	}
	return lines, nil
}

// InitializePlanningScenario registers requirement planning step definitions
func InitializePlanningScenario(sc *godog.ScenarioContext) {
	ctx := &planningContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	// Given steps
	sc.Step(`^the stock equipment catalog$`, ctx.theStockEquipmentCatalog)
	sc.Step(`^the following parts:$`, ctx.theFollowingParts)
	sc.Step(`^the following heroes:$`, ctx.theFollowingHeroes)
	sc.Step(`^the following spells:$`, ctx.theFollowingSpells)
	sc.Step(`^the "([^"]*)" option is enabled$`, ctx.theOptionIsEnabled)
	sc.Step(`^the pipette tier is "([^"]*)"$`, ctx.thePipetteTierIs)

	// When steps
	sc.Step(`^I plan "([^"]*)" at (-?[\d.]+) units per second$`, ctx.iPlanAtUnitsPerSecond)

	// Then steps
	sc.Step(`^the plan succeeds$`, ctx.thePlanSucceeds)
	sc.Step(`^the plan fails with error kind "([^"]*)"$`, ctx.thePlanFailsWithErrorKind)
	sc.Step(`^node "([^"]*)" runs at ([\d.]+) units per second on (\d+) "([^"]*)"$`, ctx.nodeRunsAtOn)
	sc.Step(`^the children of "([^"]*)" are "([^"]*)"$`, ctx.theChildrenOfAre)
	sc.Step(`^node "([^"]*)" needs "([^"]*)" at ([\d.]+) units per second using (\d+) "([^"]*)"$`, ctx.nodeNeedsAtUsing)
	sc.Step(`^node "([^"]*)" needs bottled "([^"]*)"$`, ctx.nodeNeedsBottled)
	sc.Step(`^the plan summary has (\d+) nodes and depth (\d+)$`, ctx.thePlanSummaryHasNodesAndDepth)
}
