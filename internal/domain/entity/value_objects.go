package entity

import (
	"fmt"
	"strings"
)

// ChainID is the quoting backend's chain identifier (e.g. "1", "56", "501").
type ChainID string

// NewChainID creates a ChainID from raw input.
func NewChainID(raw string) (ChainID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("chain id cannot be empty")
	}
	if strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("chain id '%s' contains reserved characters", raw)
	}
	return ChainID(id), nil
}

// String returns the string representation of the ChainID.
func (c ChainID) String() string {
	return string(c)
}
