package quoteapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	dto "bridgequote/internal/adapter/storage/quoteapi/dto"
	"bridgequote/internal/domain/entity"

	"go.uber.org/zap"
)

// toDomainChains converts raw chain DTOs to domain chains, skipping entries without an id.
func toDomainChains(rawChains []dto.ChainRaw, logger *zap.Logger) []entity.Chain {
	chains := make([]entity.Chain, 0, len(rawChains))
	for _, raw := range rawChains {
		id, err := entity.NewChainID(string(raw.ChainIndex))
		if err != nil {
			logger.Warn("Skipping chain with invalid id", zap.String("chainName", raw.ChainName), zap.Error(err))
			continue
		}
		chains = append(chains, entity.Chain{
			ID:         id,
			Name:       raw.ChainName,
			ShortName:  raw.ShortName,
			LogoURL:    raw.LogoURL,
			Category:   raw.Category,
			Ecosystem:  raw.Ecosystem,
			IsMainnet:  raw.IsMainnet,
			TokenCount: raw.TokenCount,
			Priority:   raw.Priority,
			IsPopular:  raw.IsPopular,
		})
	}
	return chains
}

// toDomainTokens converts raw token DTOs. Tokens whose decimals cannot be parsed are skipped.
func toDomainTokens(rawTokens []dto.TokenRaw, chainID entity.ChainID, logger *zap.Logger) []entity.Token {
	tokens := make([]entity.Token, 0, len(rawTokens))
	for _, raw := range rawTokens {
		decimals, err := strconv.ParseInt(string(raw.Decimals), 10, 32)
		if err != nil || decimals < 0 {
			logger.Warn("Skipping token with invalid decimals",
				zap.Stringer("chainId", chainID),
				zap.String("symbol", raw.TokenSymbol),
				zap.String("decimals", string(raw.Decimals)),
			)
			continue
		}
		tokens = append(tokens, entity.Token{
			Symbol:          raw.TokenSymbol,
			Name:            raw.TokenName,
			ContractAddress: raw.TokenContractAddress,
			Decimals:        int32(decimals),
			LogoURL:         raw.LogoURL,
			IsPopular:       raw.IsPopular,
		})
	}
	return tokens
}

func toQuoteRequestRaw(req entity.QuoteRequest) dto.QuoteRequestRaw {
	return dto.QuoteRequestRaw{
		FromChainID:      req.FromChainID.String(),
		ToChainID:        req.ToChainID.String(),
		FromTokenAddress: req.FromTokenAddress,
		ToTokenAddress:   req.ToTokenAddress,
		Amount:           req.Amount,
		UserAddress:      req.UserAddress,
		Slippage:         req.Slippage,
	}
}

// toDomainRoutes converts raw routes. Rank fields are left zero for the ranking step.
func toDomainRoutes(rawRoutes []dto.RouteRaw, logger *zap.Logger) []entity.QuoteRoute {
	routes := make([]entity.QuoteRoute, 0, len(rawRoutes))
	for _, raw := range rawRoutes {
		var steps []entity.RouteStep
		if len(raw.RouteSteps) > 0 {
			steps = make([]entity.RouteStep, len(raw.RouteSteps))
			for i, s := range raw.RouteSteps {
				steps[i] = entity.RouteStep{
					Step:        s.Step,
					Action:      s.Action,
					ChainID:     entity.ChainID(s.ChainID),
					Token:       s.Token,
					TokenLogo:   s.TokenLogo,
					Amount:      string(s.Amount),
					Bridge:      s.Bridge,
					Description: s.Description,
				}
			}
		}

		routes = append(routes, entity.QuoteRoute{
			BridgeName:      raw.BridgeName,
			BridgeID:        string(raw.BridgeID),
			BridgeLogoURL:   raw.BridgeLogoURL,
			FromTokenAmount: string(raw.FromTokenAmount),
			ToTokenAmount:   string(raw.ToTokenAmount),
			EstimatedAmount: string(raw.EstimatedAmount),
			MinimumReceived: string(raw.MinimumReceived),
			TotalFeeUSD:     string(raw.TotalFeeUSD),
			GasFeeUSD:       string(raw.GasFeeUSD),
			BridgeFeeUSD:    string(raw.BridgeFeeUSD),
			EstimatedTime:   mapEstimatedTime(raw.EstimatedTime, raw.BridgeName, logger),
			PriceImpact:     string(raw.PriceImpact),
			SafetyRating:    mapSafetyRating(raw.SafetyRating, raw.BridgeName, logger),
			ExchangeRate:    string(raw.ExchangeRate),
			Steps:           steps,
		})
	}
	return routes
}

// mapEstimatedTime decodes the string-or-object estimatedTime field through
// the entity's own decoder. An unknown shape degrades to an empty value.
func mapEstimatedTime(raw json.RawMessage, bridge string, logger *zap.Logger) entity.EstimatedTime {
	var out entity.EstimatedTime
	if len(bytes.TrimSpace(raw)) == 0 {
		return entity.SimpleEstimatedTime("")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Unrecognized estimatedTime shape", zap.String("bridge", bridge), zap.ByteString("raw", raw))
		return entity.SimpleEstimatedTime("")
	}
	return out
}

// mapSafetyRating decodes the string-or-object safetyRating field the same way.
func mapSafetyRating(raw json.RawMessage, bridge string, logger *zap.Logger) entity.SafetyRating {
	var out entity.SafetyRating
	if len(bytes.TrimSpace(raw)) == 0 {
		return entity.SimpleSafetyRating("")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Unrecognized safetyRating shape", zap.String("bridge", bridge), zap.ByteString("raw", raw))
		return entity.SimpleSafetyRating("")
	}
	return out
}
