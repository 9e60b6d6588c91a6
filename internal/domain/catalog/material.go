package catalog

import "strings"

// MaterialKind is the tagged classification of a recipe material id.
// It is computed once when a catalog is built so the tree builder never
// pattern-matches ids itself.
type MaterialKind string

const (
	// KindShape is a base geometric motif (circle, square, triangle)
	KindShape MaterialKind = "SHAPE"

	// KindCutShape is a motif produced by cutting a base shape (rect, trapezoid, semicircle)
	KindCutShape MaterialKind = "CUT_SHAPE"

	// KindBaseInk is a primary ink drawn with a pipette
	KindBaseInk MaterialKind = "BASE_INK"

	// KindCompositeInk is an ink mixed from two primaries (cyan, magenta, yellow)
	KindCompositeInk MaterialKind = "COMPOSITE_INK"

	// KindWhiteInk is white ink synthesized from red, green and blue
	KindWhiteInk MaterialKind = "WHITE_INK"

	// KindBottledInk is the bottled form of an ink
	KindBottledInk MaterialKind = "BOTTLED_INK"

	// KindSpecialMotif is a motif made in a tutu house from an auxiliary part (star, heart)
	KindSpecialMotif MaterialKind = "SPECIAL_MOTIF"

	// KindIntermediate is anything with its own recipe (part, hero or spell)
	KindIntermediate MaterialKind = "INTERMEDIATE"
)

// Motif and ink ids understood by the planner
const (
	ShapeCircle   = "circle"
	ShapeSquare   = "square"
	ShapeTriangle = "triangle"

	CutRect       = "rect"
	CutTrapezoid  = "trapezoid"
	CutSemicircle = "semicircle"

	MotifStar  = "star"
	MotifHeart = "heart"

	InkRed     = "ink_red"
	InkGreen   = "ink_green"
	InkBlue    = "ink_blue"
	InkCyan    = "ink_cyan"
	InkMagenta = "ink_magenta"
	InkYellow  = "ink_yellow"
	InkWhite   = "ink_white"

	inkPrefix       = "ink_"
	inkBottlePrefix = "inkbottle_"
)

// Auxiliary parts that feed the tutu house for special motifs
const (
	PartHammer = "hammer"
	PartCheese = "cheese"
)

// BaseShapes lists the shapes a motif maker draws directly
var BaseShapes = []string{ShapeCircle, ShapeSquare, ShapeTriangle}

var cutShapeSources = map[string]string{
	CutRect:       ShapeSquare,
	CutTrapezoid:  ShapeTriangle,
	CutSemicircle: ShapeCircle,
}

var specialMotifParts = map[string]string{
	MotifStar:  PartHammer,
	MotifHeart: PartCheese,
}

var compositeInkPrimaries = map[string][]string{
	InkCyan:    {InkBlue, InkGreen},
	InkMagenta: {InkRed, InkBlue},
	InkYellow:  {InkRed, InkGreen},
}

var whiteInkPrimaries = []string{InkRed, InkGreen, InkBlue}

// Material is the classification of one material id
type Material struct {
	ID   string
	Kind MaterialKind

	// Underlying is the ink id inside a bottled ink
	Underlying string

	// BaseShape is the shape a cut motif is cut from
	BaseShape string

	// Primaries are the inputs a composite or white ink decomposes into
	Primaries []string

	// AuxiliaryPart is the part routed through the tutu house for a special motif
	AuxiliaryPart string
}

// IsTerminal reports whether the material is a leaf of the requirement tree
func (m Material) IsTerminal() bool {
	return m.Kind != KindIntermediate
}

// IsInk reports whether the material belongs to the ink family (bottled included)
func (m Material) IsInk() bool {
	switch m.Kind {
	case KindBaseInk, KindCompositeInk, KindWhiteInk, KindBottledInk:
		return true
	}
	return false
}

// Classify derives the Material for an id from the fixed motif and ink rules
func Classify(id string) Material {
	m := Material{ID: id, Kind: KindIntermediate}

	switch {
	case id == ShapeCircle || id == ShapeSquare || id == ShapeTriangle:
		m.Kind = KindShape
	case cutShapeSources[id] != "":
		m.Kind = KindCutShape
		m.BaseShape = cutShapeSources[id]
	case specialMotifParts[id] != "":
		m.Kind = KindSpecialMotif
		m.AuxiliaryPart = specialMotifParts[id]
	case strings.HasPrefix(id, inkBottlePrefix):
		m.Kind = KindBottledInk
		m.Underlying = inkPrefix + strings.TrimPrefix(id, inkBottlePrefix)
	case id == InkWhite:
		m.Kind = KindWhiteInk
		m.Primaries = append([]string(nil), whiteInkPrimaries...)
	case compositeInkPrimaries[id] != nil:
		m.Kind = KindCompositeInk
		m.Primaries = append([]string(nil), compositeInkPrimaries[id]...)
	case strings.HasPrefix(id, inkPrefix):
		m.Kind = KindBaseInk
	}

	return m
}
