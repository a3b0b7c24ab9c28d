package domain

import (
	"fmt"
	"strings"
)

// ModelTier selects between a faster, cheaper remote configuration and a more
// capable, slower one. The concrete model id is resolved from configuration.
type ModelTier string

const (
	ModelFast  ModelTier = "fast"
	ModelSmart ModelTier = "smart"
)

// ParseModelTier accepts "fast"/"flash" and "smart"/"pro", case-insensitively.
// An empty string selects the fast tier.
func ParseModelTier(s string) (ModelTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fast", "flash":
		return ModelFast, nil
	case "smart", "pro":
		return ModelSmart, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidModelTier, s)
	}
}

// Valid reports whether the tier is one of the known values.
func (m ModelTier) Valid() bool {
	return m == ModelFast || m == ModelSmart
}

// Label is the human-readable name shown in selectors.
func (m ModelTier) Label() string {
	switch m {
	case ModelSmart:
		return "Pro (Smarter)"
	default:
		return "Flash (Faster)"
	}
}
