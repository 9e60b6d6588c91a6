package production

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// Domain errors for requirement planning

// ErrInvalidRate indicates a target rate that is not a positive finite number
type ErrInvalidRate struct {
	Rate float64
	// Reason replaces the default explanation when set
	Reason string
}

func (e *ErrInvalidRate) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be a positive finite number"
	}
	return fmt.Sprintf("invalid target rate %v: %s", e.Rate, reason)
}

// ErrUnknownEntity indicates the requested root entity is not in the catalog
type ErrUnknownEntity struct {
	EntityID string
}

func (e *ErrUnknownEntity) Error() string {
	return fmt.Sprintf("unknown entity: %s", e.EntityID)
}

// ErrMissingCatalogEntry indicates a recipe references a material that resolves to no
// entity in any catalog table
type ErrMissingCatalogEntry struct {
	MaterialID   string
	ReferencedBy string
}

func (e *ErrMissingCatalogEntry) Error() string {
	return fmt.Sprintf("missing catalog entry: %s (referenced by %s)", e.MaterialID, e.ReferencedBy)
}

// ErrRecipeCycle indicates an entity was reached again on its own recursion path
type ErrRecipeCycle struct {
	EntityID string
	Chain    []string
}

func (e *ErrRecipeCycle) Error() string {
	return fmt.Sprintf("recipe cycle detected for %s: %s", e.EntityID, strings.Join(e.Chain, " -> "))
}

// ErrDepthExceeded indicates the tree grew deeper than the configured ceiling
type ErrDepthExceeded struct {
	Limit int
	Chain []string
}

func (e *ErrDepthExceeded) Error() string {
	return fmt.Sprintf("requirement tree exceeds max depth %d at %s", e.Limit, strings.Join(e.Chain, " -> "))
}

// ErrInvalidEquipmentRate indicates a resolved equipment throughput that cannot be
// divided by (zero, negative, NaN or infinite)
type ErrInvalidEquipmentRate struct {
	Class catalog.EquipmentClass
	Value float64
}

func (e *ErrInvalidEquipmentRate) Error() string {
	return fmt.Sprintf("invalid resolved rate for %s: %v", e.Class, e.Value)
}

// ErrInvalidBundle indicates a configuration bundle field outside its allowed range
type ErrInvalidBundle struct {
	Field  string
	Reason string
}

func (e *ErrInvalidBundle) Error() string {
	return fmt.Sprintf("invalid configuration bundle: %s %s", e.Field, e.Reason)
}

// Error kinds reported by ErrorKind
const (
	KindInvalidRate          = "invalid_rate"
	KindUnknownEntity        = "unknown_entity"
	KindMissingCatalogEntry  = "missing_catalog_entry"
	KindRecipeCycle          = "recipe_cycle"
	KindDepthExceeded        = "depth_exceeded"
	KindInvalidEquipmentRate = "invalid_equipment_rate"
	KindInvalidBundle        = "invalid_bundle"
	KindInternal             = "internal"
)

// KindedError is implemented by errors that carry their kind explicitly, such as
// failures reported by a remote planner
type KindedError interface {
	error
	Kind() string
}

// ErrorKind classifies err into one of the planning error kinds.
// Wrapped errors are unwrapped; anything else is KindInternal.
func ErrorKind(err error) string {
	var (
		invalidRate   *ErrInvalidRate
		unknownEntity *ErrUnknownEntity
		missing       *ErrMissingCatalogEntry
		cycle         *ErrRecipeCycle
		depth         *ErrDepthExceeded
		equipmentRate *ErrInvalidEquipmentRate
		bundle        *ErrInvalidBundle
		kinded        KindedError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &invalidRate):
		return KindInvalidRate
	case errors.As(err, &unknownEntity):
		return KindUnknownEntity
	case errors.As(err, &missing):
		return KindMissingCatalogEntry
	case errors.As(err, &cycle):
		return KindRecipeCycle
	case errors.As(err, &depth):
		return KindDepthExceeded
	case errors.As(err, &equipmentRate):
		return KindInvalidEquipmentRate
	case errors.As(err, &bundle):
		return KindInvalidBundle
	case errors.As(err, &kinded):
		return kinded.Kind()
	}
	return KindInternal
}
