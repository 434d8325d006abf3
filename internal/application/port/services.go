package port

import (
	"context"

	"bridgequote/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . MetadataService,QuoteService

// MetadataService owns the startup chain set and the per-chain token cache.
// None of its methods surface fetch failures; they degrade to empty results.
type MetadataService interface {
	// LoadChains fetches the chain set once. On failure the set stays empty and the error is returned for logging.
	LoadChains(ctx context.Context) error

	// Chains returns the chain set loaded at startup.
	Chains(ctx context.Context) []entity.Chain

	// ChainName returns the display name of a chain, or "Chain <id>" when unknown.
	ChainName(ctx context.Context, chainID entity.ChainID) string

	// GetTokens returns the cached tokens of a chain, or an empty list when nothing is cached yet.
	GetTokens(ctx context.Context, chainID entity.ChainID) []entity.Token

	// EnsureLoaded fetches the token list of a chain if it is not cached, with at most one fetch in flight per chain.
	EnsureLoaded(ctx context.Context, chainID entity.ChainID) []entity.Token

	// Refresh re-fetches the token list of a chain and overwrites the cached entry.
	Refresh(ctx context.Context, chainID entity.ChainID) []entity.Token

	// FilterTokens searches the cached tokens of a chain by symbol or name and returns them in display order.
	FilterTokens(ctx context.Context, chainID entity.ChainID, query string) []entity.Token
}

// QuoteService fetches and ranks bridge routes.
type QuoteService interface {
	// FetchQuotes requests raw, unranked routes for a valid selection.
	FetchQuotes(ctx context.Context, selection entity.SelectionState) ([]entity.QuoteRoute, error)

	// Compare resolves tokens, fetches routes once and ranks them under the requested policy.
	Compare(ctx context.Context, req CompareRequest) (CompareResult, error)
}

// CompareRequest is a one-shot quote comparison addressed by chain id and token contract address.
type CompareRequest struct {
	FromChainID      entity.ChainID
	ToChainID        entity.ChainID
	FromTokenAddress string
	ToTokenAddress   string
	// Amount is a human decimal amount of the source token.
	Amount   string
	Slippage string
	Policy   entity.SortPolicy
}

// CompareResult holds ranked routes and the display data derived from the top route.
type CompareResult struct {
	Selection    entity.SelectionState `json:"selection"`
	Policy       entity.SortPolicy     `json:"policy"`
	Routes       []entity.QuoteRoute   `json:"routes"`
	ExchangeRate string                `json:"exchangeRate,omitempty"`
}
