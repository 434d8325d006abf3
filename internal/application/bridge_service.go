package application

import (
	"context"
	"fmt"
	"strings"

	"bridgequote/internal/application/port"
	"bridgequote/internal/config"
	"bridgequote/internal/domain"
	"bridgequote/internal/domain/amount"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/domain/ranking"
	domainRepo "bridgequote/internal/domain/repository"
	"bridgequote/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check
var _ port.QuoteService = (*BridgeService)(nil)

// BridgeService turns selections into quote requests and ranks the answers.
type BridgeService struct {
	quoteRepo       domainRepo.QuoteRepository
	metadata        port.MetadataService
	userAddress     string
	defaultSlippage string
	logger          *zap.Logger
}

// NewBridgeService creates a new bridge service.
func NewBridgeService(
	quoteRepo domainRepo.QuoteRepository,
	metadata port.MetadataService,
	cfg config.QuoteAPIConfig,
	logger *zap.Logger,
) *BridgeService {
	return &BridgeService{
		quoteRepo:       quoteRepo,
		metadata:        metadata,
		userAddress:     cfg.UserAddress,
		defaultSlippage: cfg.DefaultSlippage,
		logger:          logger.Named("BridgeService"),
	}
}

// FetchQuotes converts the selection amount to base units and requests raw routes.
func (s *BridgeService) FetchQuotes(ctx context.Context, selection entity.SelectionState) ([]entity.QuoteRoute, error) {
	if !selection.Valid() {
		return nil, domain.ErrInvalidSelection
	}

	baseUnits, err := amount.ToBaseUnits(selection.Amount, selection.SourceToken.Decimals)
	if err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}

	req := entity.QuoteRequest{
		FromChainID:      selection.SourceChain,
		ToChainID:        selection.DestChain,
		FromTokenAddress: selection.SourceToken.ContractAddress,
		ToTokenAddress:   selection.DestToken.ContractAddress,
		Amount:           baseUnits,
		UserAddress:      s.userAddress,
		Slippage:         selection.Slippage,
	}

	s.logger.Debug("Requesting quotes",
		zap.Stringer("fromChain", req.FromChainID),
		zap.Stringer("toChain", req.ToChainID),
		zap.String("fromToken", selection.SourceToken.Symbol),
		zap.String("toToken", selection.DestToken.Symbol),
		zap.String("amount", req.Amount),
	)

	routes, err := s.quoteRepo.GetQuotes(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get quotes: %w", err)
	}
	return routes, nil
}

// Compare resolves both tokens on their chains, fetches routes once and ranks them.
// No routes is a normal empty result.
func (s *BridgeService) Compare(ctx context.Context, req port.CompareRequest) (port.CompareResult, error) {
	fromToken, err := s.resolveToken(ctx, req.FromChainID, req.FromTokenAddress)
	if err != nil {
		return port.CompareResult{}, err
	}
	toToken, err := s.resolveToken(ctx, req.ToChainID, req.ToTokenAddress)
	if err != nil {
		return port.CompareResult{}, err
	}

	slippage := strings.TrimSpace(req.Slippage)
	if slippage == "" {
		slippage = s.defaultSlippage
	}
	policy := req.Policy
	if policy == "" {
		policy = entity.PolicyOptimal
	}

	selection := entity.SelectionState{
		SourceChain: req.FromChainID,
		DestChain:   req.ToChainID,
		SourceToken: &fromToken,
		DestToken:   &toToken,
		Amount:      strings.TrimSpace(req.Amount),
		Slippage:    slippage,
	}
	if !selection.Valid() {
		return port.CompareResult{}, fmt.Errorf("%w: amount %q", domain.ErrInvalidSelection, req.Amount)
	}

	routes, err := s.FetchQuotes(ctx, selection)
	if err != nil {
		return port.CompareResult{}, err
	}

	result := port.CompareResult{
		Selection: selection,
		Policy:    policy,
		Routes:    ranking.Rank(routes, policy),
	}
	if top, ok := ranking.Recommended(result.Routes); ok {
		rate, err := FormatExchangeRate(selection, top)
		if err != nil {
			s.logger.Warn("Failed to compute exchange rate", zap.String("bridge", top.BridgeName), zap.Error(err))
		}
		result.ExchangeRate = rate
	}
	return result, nil
}

func (s *BridgeService) resolveToken(ctx context.Context, chainID entity.ChainID, address string) (entity.Token, error) {
	if chainID == "" || strings.TrimSpace(address) == "" {
		return entity.Token{}, fmt.Errorf("%w: chain id and token address are required", apperrors.ErrInvalidInput)
	}
	for _, t := range s.metadata.EnsureLoaded(ctx, chainID) {
		if strings.EqualFold(t.ContractAddress, strings.TrimSpace(address)) {
			return t, nil
		}
	}
	return entity.Token{}, fmt.Errorf("%w: token %s on chain %s", apperrors.ErrNotFound, address, chainID)
}

// FormatExchangeRate renders "1 FROM = rate TO" for a route, using the destination
// amount as displayed with six fractional digits.
func FormatExchangeRate(selection entity.SelectionState, route entity.QuoteRoute) (string, error) {
	if selection.SourceToken == nil || selection.DestToken == nil {
		return "", domain.ErrInvalidSelection
	}
	rate, err := amount.ExchangeRate(selection.Amount, route.ToTokenAmount, selection.DestToken.Decimals)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("1 %s = %s %s", selection.SourceToken.Symbol, rate, selection.DestToken.Symbol), nil
}
