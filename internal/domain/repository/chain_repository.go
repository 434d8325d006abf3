package repository

import (
	"context"

	"bridgequote/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks . MetadataRepository,QuoteRepository

// MetadataRepository defines access to chain and token metadata on the quoting backend.
type MetadataRepository interface {
	// GetChains retrieves every chain the backend supports.
	GetChains(ctx context.Context) ([]entity.Chain, error)

	// GetTokens retrieves the token list for one chain. A chain the backend
	// rejects with a 400-class status yields apperrors.ErrUnsupportedChain.
	GetTokens(ctx context.Context, chainID entity.ChainID) ([]entity.Token, error)
}

// QuoteRepository defines access to bridge route quotes.
type QuoteRepository interface {
	// GetQuotes returns candidate routes. A structurally successful answer
	// with no routes is an empty slice and a nil error.
	GetQuotes(ctx context.Context, req entity.QuoteRequest) ([]entity.QuoteRoute, error)
}
