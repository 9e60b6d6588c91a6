package production

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

type remoteFailure struct{ kind string }

func (e *remoteFailure) Error() string { return "remote: " + e.kind }
func (e *remoteFailure) Kind() string  { return e.kind }

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"invalid rate", &ErrInvalidRate{Rate: -1}, KindInvalidRate},
		{"unknown entity", &ErrUnknownEntity{EntityID: "dragon"}, KindUnknownEntity},
		{"missing entry", &ErrMissingCatalogEntry{MaterialID: "gear", ReferencedBy: "robot"}, KindMissingCatalogEntry},
		{"cycle", &ErrRecipeCycle{EntityID: "egg", Chain: []string{"egg", "hen", "egg"}}, KindRecipeCycle},
		{"depth", &ErrDepthExceeded{Limit: 2}, KindDepthExceeded},
		{"equipment rate", &ErrInvalidEquipmentRate{Class: catalog.EquipmentPipette}, KindInvalidEquipmentRate},
		{"bundle", &ErrInvalidBundle{Field: "Boosts.Circle"}, KindInvalidBundle},
		{"wrapped", fmt.Errorf("plan failed: %w", &ErrRecipeCycle{EntityID: "egg"}), KindRecipeCycle},
		{"kinded", &remoteFailure{kind: KindUnknownEntity}, KindUnknownEntity},
		{"wrapped kinded", fmt.Errorf("call: %w", &remoteFailure{kind: KindDepthExceeded}), KindDepthExceeded},
		{"plain", errors.New("disk full"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorKind(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "recipe cycle detected for egg: egg -> hen -> egg",
		(&ErrRecipeCycle{EntityID: "egg", Chain: []string{"egg", "hen", "egg"}}).Error())
	assert.Equal(t, "missing catalog entry: gear (referenced by robot)",
		(&ErrMissingCatalogEntry{MaterialID: "gear", ReferencedBy: "robot"}).Error())
	assert.Contains(t, (&ErrInvalidRate{Rate: 0}).Error(), "positive finite")
}
