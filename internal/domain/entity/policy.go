package entity

import (
	"fmt"
	"strings"

	"bridgequote/internal/domain"
)

// SortPolicy selects how candidate routes are ordered.
type SortPolicy string

const (
	PolicyOptimal    SortPolicy = "optimal"
	PolicyFastest    SortPolicy = "fastest"
	PolicyMostTokens SortPolicy = "most_tokens"
)

// ParseSortPolicy maps user input to a policy. Empty input means optimal.
func ParseSortPolicy(raw string) (SortPolicy, error) {
	switch SortPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyOptimal:
		return PolicyOptimal, nil
	case PolicyFastest:
		return PolicyFastest, nil
	case PolicyMostTokens:
		return PolicyMostTokens, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPolicy, raw)
	}
}

// Label is the tag given to the top-ranked route under this policy.
func (p SortPolicy) Label() string {
	switch p {
	case PolicyFastest:
		return "fastest"
	case PolicyMostTokens:
		return "most received"
	default:
		return "best"
	}
}

// Description explains the ordering for display next to a policy picker.
func (p SortPolicy) Description() string {
	switch p {
	case PolicyFastest:
		return "sorted by estimated transfer time, shortest first"
	case PolicyMostTokens:
		return "sorted by amount received, highest first"
	default:
		return "sorted by amount received after fees, highest first"
	}
}
