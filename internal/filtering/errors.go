package filtering

import (
	"errors"

	"github.com/bnema/adshield/internal/domain/entity"
)

var (
	// ErrNetwork is the rejection a blocked fetch settles with.
	ErrNetwork = errors.New("network error")

	// ErrNotConfigurable is returned when a page primitive cannot be hooked.
	ErrNotConfigurable = errors.New("property not configurable")

	// ErrShieldDisabled indicates the shield is off for the page.
	ErrShieldDisabled = errors.New("shield disabled")

	// ErrAlreadyInstalled is returned when a component is installed twice.
	ErrAlreadyInstalled = errors.New("already installed")
)

// BlockHandler is notified of every request or element a shield
// component suppresses.
type BlockHandler func(rawURL string, resourceType entity.ResourceType, verdict entity.Verdict)
