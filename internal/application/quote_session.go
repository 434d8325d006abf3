package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"bridgequote/internal/application/port"
	"bridgequote/internal/config"
	"bridgequote/internal/domain"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/domain/ranking"
	"bridgequote/internal/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionSnapshot is a read-only view of a QuoteSession.
type SessionSnapshot struct {
	ID                string                `json:"id"`
	Selection         entity.SelectionState `json:"selection"`
	Valid             bool                  `json:"valid"`
	Policy            entity.SortPolicy     `json:"policy"`
	PolicyDescription string                `json:"policyDescription"`
	Loading           bool                  `json:"loading"`
	Routes            []entity.QuoteRoute   `json:"routes"`
	SelectedRoute     *entity.QuoteRoute    `json:"selectedRoute,omitempty"`
	ExchangeRate      string                `json:"exchangeRate,omitempty"`
}

// QuoteSession holds one user's interactive bridge selection and the ranked
// routes for it. Selection changes go through a FetchTrigger; results arrive
// asynchronously and are reported through the onChange callback.
type QuoteSession struct {
	id              string
	metadata        port.MetadataService
	trigger         *FetchTrigger
	defaultSlippage string
	onChange        func(SessionSnapshot)
	logger          *zap.Logger

	mu         sync.Mutex
	selection  entity.SelectionState
	policy     entity.SortPolicy
	raw        []entity.QuoteRoute
	ranked     []entity.QuoteRoute
	selectedID string
}

// NewQuoteSession creates a session with an empty selection and the optimal policy.
// onChange may be nil.
func NewQuoteSession(
	ctx context.Context,
	quotes port.QuoteService,
	metadata port.MetadataService,
	cfg config.Config,
	logger *zap.Logger,
	onChange func(SessionSnapshot),
) *QuoteSession {
	id := uuid.NewString()
	s := &QuoteSession{
		id:              id,
		metadata:        metadata,
		defaultSlippage: cfg.QuoteAPI.DefaultSlippage,
		onChange:        onChange,
		logger:          logger.Named("QuoteSession").With(zap.String("sessionId", id)),
		selection:       entity.SelectionState{Slippage: cfg.QuoteAPI.DefaultSlippage},
		policy:          entity.PolicyOptimal,
		raw:             []entity.QuoteRoute{},
		ranked:          []entity.QuoteRoute{},
	}
	s.trigger = NewFetchTrigger(ctx, cfg.Trigger.GetDebounce(), quotes.FetchQuotes, s.onResult, s.logger)
	return s
}

// ID returns the session identifier.
func (s *QuoteSession) ID() string {
	return s.id
}

// SetSourceChain selects the source chain, loads its tokens and drops a source
// token that is not listed on it.
func (s *QuoteSession) SetSourceChain(ctx context.Context, chainID entity.ChainID) {
	tokens := s.metadata.EnsureLoaded(ctx, chainID)
	s.change(func(sel *entity.SelectionState) {
		sel.SourceChain = chainID
		if !containsToken(tokens, sel.SourceToken) {
			sel.SourceToken = nil
		}
	})
}

// SetDestChain selects the destination chain, loads its tokens and drops a
// destination token that is not listed on it.
func (s *QuoteSession) SetDestChain(ctx context.Context, chainID entity.ChainID) {
	tokens := s.metadata.EnsureLoaded(ctx, chainID)
	s.change(func(sel *entity.SelectionState) {
		sel.DestChain = chainID
		if !containsToken(tokens, sel.DestToken) {
			sel.DestToken = nil
		}
	})
}

// SetSourceToken selects a source token by contract address on the current source chain.
func (s *QuoteSession) SetSourceToken(ctx context.Context, address string) error {
	chainID := s.Snapshot().Selection.SourceChain
	token, err := s.findToken(ctx, chainID, address)
	if err != nil {
		return err
	}
	s.change(func(sel *entity.SelectionState) {
		if sel.SourceChain == chainID {
			sel.SourceToken = &token
		}
	})
	return nil
}

// SetDestToken selects a destination token by contract address on the current destination chain.
func (s *QuoteSession) SetDestToken(ctx context.Context, address string) error {
	chainID := s.Snapshot().Selection.DestChain
	token, err := s.findToken(ctx, chainID, address)
	if err != nil {
		return err
	}
	s.change(func(sel *entity.SelectionState) {
		if sel.DestChain == chainID {
			sel.DestToken = &token
		}
	})
	return nil
}

// SetAmount sets the human decimal input amount.
func (s *QuoteSession) SetAmount(value string) {
	s.change(func(sel *entity.SelectionState) {
		sel.Amount = strings.TrimSpace(value)
	})
}

// SetSlippage sets the slippage percent; empty input restores the default.
func (s *QuoteSession) SetSlippage(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = s.defaultSlippage
	}
	s.change(func(sel *entity.SelectionState) {
		sel.Slippage = value
	})
}

// SwapDirection exchanges source and destination chains and tokens and drops held routes.
func (s *QuoteSession) SwapDirection() {
	s.change(func(sel *entity.SelectionState) {
		sel.SourceChain, sel.DestChain = sel.DestChain, sel.SourceChain
		sel.SourceToken, sel.DestToken = sel.DestToken, sel.SourceToken
	})
}

// SetPolicy re-ranks the held routes and selects the new top route.
func (s *QuoteSession) SetPolicy(raw string) error {
	policy, err := entity.ParseSortPolicy(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.policy = policy
	s.rerankLocked()
	s.mu.Unlock()

	s.logger.Debug("Policy changed", zap.String("policy", string(policy)))
	s.notify()
	return nil
}

// SelectRoute marks the route with the given bridge id as selected.
func (s *QuoteSession) SelectRoute(bridgeID string) error {
	s.mu.Lock()
	found := false
	for _, r := range s.ranked {
		if r.BridgeID == bridgeID {
			found = true
			break
		}
	}
	if found {
		s.selectedID = bridgeID
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %q", domain.ErrRouteNotFound, bridgeID)
	}
	s.notify()
	return nil
}

// Snapshot returns a copy of the session state.
func (s *QuoteSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	snap := SessionSnapshot{
		ID:                s.id,
		Selection:         s.selection.Clone(),
		Valid:             s.selection.Valid(),
		Policy:            s.policy,
		PolicyDescription: s.policy.Description(),
		Routes:            append([]entity.QuoteRoute{}, s.ranked...),
	}
	for i := range snap.Routes {
		if snap.Routes[i].BridgeID == s.selectedID {
			r := snap.Routes[i]
			snap.SelectedRoute = &r
			break
		}
	}
	s.mu.Unlock()

	snap.Loading = s.trigger.State() != TriggerIdle
	if snap.SelectedRoute != nil {
		if rate, err := FormatExchangeRate(snap.Selection, *snap.SelectedRoute); err == nil {
			snap.ExchangeRate = rate
		}
	}
	return snap
}

// ExchangeRate returns "1 FROM = rate TO" for the selected route.
func (s *QuoteSession) ExchangeRate() (string, error) {
	snap := s.Snapshot()
	if snap.SelectedRoute == nil {
		return "", domain.ErrNoRoutes
	}
	return FormatExchangeRate(snap.Selection, *snap.SelectedRoute)
}

// Close stops any pending or in-flight fetch.
func (s *QuoteSession) Close() {
	s.trigger.Close()
}

// change applies mutate to the selection, drops routes computed for the old
// selection and hands the new selection to the trigger.
func (s *QuoteSession) change(mutate func(sel *entity.SelectionState)) {
	s.mu.Lock()
	before := s.selection.Clone()
	mutate(&s.selection)
	if s.selection.Equal(before) {
		s.mu.Unlock()
		return
	}
	s.raw = []entity.QuoteRoute{}
	s.ranked = []entity.QuoteRoute{}
	s.selectedID = ""
	next := s.selection.Clone()
	s.mu.Unlock()

	// the trigger may publish synchronously, and onResult takes s.mu
	s.trigger.Update(next)
	s.notify()
}

func (s *QuoteSession) onResult(res FetchResult) {
	s.mu.Lock()
	if !res.Cleared && !res.Selection.Equal(s.selection) {
		s.mu.Unlock()
		return
	}
	s.raw = res.Routes
	s.rerankLocked()
	count := len(s.ranked)
	s.mu.Unlock()

	s.logger.Debug("Quote results updated", zap.Uint64("seq", res.Seq), zap.Int("routes", count), zap.Bool("cleared", res.Cleared))
	s.notify()
}

func (s *QuoteSession) rerankLocked() {
	s.ranked = ranking.Rank(s.raw, s.policy)
	s.selectedID = ""
	if top, ok := ranking.Recommended(s.ranked); ok {
		s.selectedID = top.BridgeID
	}
}

func (s *QuoteSession) notify() {
	if s.onChange != nil {
		s.onChange(s.Snapshot())
	}
}

func (s *QuoteSession) findToken(ctx context.Context, chainID entity.ChainID, address string) (entity.Token, error) {
	if chainID == "" {
		return entity.Token{}, fmt.Errorf("%w: select a chain before its token", apperrors.ErrInvalidInput)
	}
	for _, t := range s.metadata.EnsureLoaded(ctx, chainID) {
		if strings.EqualFold(t.ContractAddress, strings.TrimSpace(address)) {
			return t, nil
		}
	}
	return entity.Token{}, fmt.Errorf("%w: token %s on chain %s", apperrors.ErrNotFound, address, chainID)
}

func containsToken(tokens []entity.Token, token *entity.Token) bool {
	if token == nil {
		return true
	}
	for i := range tokens {
		if tokens[i].SameAs(token) {
			return true
		}
	}
	return false
}
