package repository

import (
	"context"

	"bridgequote/internal/domain/entity"
)

// CacheRepository defines the in-process store for chain and token metadata.
// Entries are never evicted; a Set overwrites whatever was stored for the key.
type CacheRepository interface {
	// GetChains retrieves the cached chain set.
	GetChains(ctx context.Context) ([]entity.Chain, bool, error)

	// SetChains stores the chain set.
	SetChains(ctx context.Context, chains []entity.Chain) error

	// GetTokens retrieves the cached token list for a chain. An empty list with
	// found=true means the chain is known to have no queryable tokens.
	GetTokens(ctx context.Context, chainID entity.ChainID) ([]entity.Token, bool, error)

	// SetTokens stores the token list for a chain.
	SetTokens(ctx context.Context, chainID entity.ChainID, tokens []entity.Token) error
}
