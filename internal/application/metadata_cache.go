package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"bridgequote/internal/application/port"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/entity"
	domainRepo "bridgequote/internal/domain/repository"
	"bridgequote/internal/domain/tokenpriority"
	"bridgequote/internal/metrics"
	"bridgequote/internal/pkg/apperrors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compile-time check
var _ port.MetadataService = (*MetadataCache)(nil)

// MetadataCache implements port.MetadataService. Token lists are fetched at
// most once concurrently per chain and, once stored, are only replaced by Refresh.
type MetadataCache struct {
	metaRepo     domainRepo.MetadataRepository
	store        domainRepo.CacheRepository
	priority     *tokenpriority.Table
	fetchTimeout time.Duration
	group        singleflight.Group
	logger       *zap.Logger
}

// NewMetadataCache creates a new metadata cache.
func NewMetadataCache(
	metaRepo domainRepo.MetadataRepository,
	store domainRepo.CacheRepository,
	priority *tokenpriority.Table,
	cfg config.QuoteAPIConfig,
	logger *zap.Logger,
) *MetadataCache {
	return &MetadataCache{
		metaRepo:     metaRepo,
		store:        store,
		priority:     priority,
		fetchTimeout: cfg.GetTimeout(),
		logger:       logger.Named("MetadataCache"),
	}
}

// LoadChains fetches the chain set and stores it. An empty set is stored on failure.
func (m *MetadataCache) LoadChains(ctx context.Context) error {
	chains, err := m.metaRepo.GetChains(ctx)
	if err != nil {
		m.logger.Error("Failed to load chains, chain list stays empty", zap.Error(err))
		if setErr := m.store.SetChains(ctx, []entity.Chain{}); setErr != nil {
			m.logger.Error("Failed to store empty chain set", zap.Error(setErr))
		}
		metrics.ChainsLoaded.Set(0)
		return fmt.Errorf("load chains: %w", err)
	}

	if err := m.store.SetChains(ctx, chains); err != nil {
		m.logger.Error("Failed to store chain set", zap.Error(err))
		return fmt.Errorf("store chains: %w", err)
	}
	metrics.ChainsLoaded.Set(float64(len(chains)))
	m.logger.Info("Loaded chains", zap.Int("count", len(chains)))
	return nil
}

// Chains returns the chain set loaded at startup.
func (m *MetadataCache) Chains(ctx context.Context) []entity.Chain {
	chains, found, err := m.store.GetChains(ctx)
	if err != nil {
		m.logger.Warn("Cache error when getting chains", zap.Error(err))
		return []entity.Chain{}
	}
	if !found {
		return []entity.Chain{}
	}
	return chains
}

// ChainName returns the display name of a chain, or "Chain <id>" when unknown.
func (m *MetadataCache) ChainName(ctx context.Context, chainID entity.ChainID) string {
	for _, c := range m.Chains(ctx) {
		if c.ID == chainID && c.Name != "" {
			return c.Name
		}
	}
	return "Chain " + chainID.String()
}

// GetTokens returns the cached tokens of a chain or an empty list.
func (m *MetadataCache) GetTokens(ctx context.Context, chainID entity.ChainID) []entity.Token {
	tokens, found, err := m.store.GetTokens(ctx, chainID)
	if err != nil {
		m.logger.Warn("Cache error when getting tokens", zap.Stringer("chainId", chainID), zap.Error(err))
		return []entity.Token{}
	}
	if !found {
		return []entity.Token{}
	}
	return tokens
}

// EnsureLoaded returns the cached token list, fetching it first on a cache miss.
// If ctx ends before the shared fetch completes, whatever is cached at that point is returned.
func (m *MetadataCache) EnsureLoaded(ctx context.Context, chainID entity.ChainID) []entity.Token {
	tokens, found, err := m.store.GetTokens(ctx, chainID)
	if err == nil && found {
		m.logger.Debug("Cache hit for chain tokens", zap.Stringer("chainId", chainID))
		return tokens
	}
	return m.load(ctx, chainID)
}

// Refresh re-fetches the token list of a chain and overwrites the cached entry.
func (m *MetadataCache) Refresh(ctx context.Context, chainID entity.ChainID) []entity.Token {
	return m.load(ctx, chainID)
}

func (m *MetadataCache) load(ctx context.Context, chainID entity.ChainID) []entity.Token {
	ch := m.group.DoChan(chainID.String(), func() (any, error) {
		// a caller leaving early must not abort the fetch other callers share
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.fetchTimeout)
		defer cancel()
		return m.fetch(fetchCtx, chainID), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.logger.Debug("Joined in-flight token fetch", zap.Stringer("chainId", chainID))
		}
		return res.Val.([]entity.Token)
	case <-ctx.Done():
		m.logger.Debug("Caller left before token fetch finished", zap.Stringer("chainId", chainID))
		return m.GetTokens(context.WithoutCancel(ctx), chainID)
	}
}

// fetch always stores a result: the fetched list, or an empty list on any failure.
func (m *MetadataCache) fetch(ctx context.Context, chainID entity.ChainID) []entity.Token {
	tokens, err := m.metaRepo.GetTokens(ctx, chainID)
	switch {
	case err == nil:
		metrics.TokenFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	case errors.Is(err, apperrors.ErrUnsupportedChain):
		m.logger.Warn("Chain has no queryable tokens, caching empty list", zap.Stringer("chainId", chainID))
		metrics.TokenFetches.WithLabelValues(metrics.OutcomeUnsupported).Inc()
		tokens = []entity.Token{}
	default:
		m.logger.Error("Token fetch failed, caching empty list", zap.Stringer("chainId", chainID), zap.Error(err))
		metrics.TokenFetches.WithLabelValues(metrics.OutcomeError).Inc()
		tokens = []entity.Token{}
	}
	if tokens == nil {
		tokens = []entity.Token{}
	}

	if err := m.store.SetTokens(ctx, chainID, tokens); err != nil {
		m.logger.Error("Failed to cache tokens", zap.Stringer("chainId", chainID), zap.Error(err))
	}
	return tokens
}

// FilterTokens returns cached tokens whose symbol or name contains query,
// case-insensitively, ordered native first, then popular, then by symbol.
func (m *MetadataCache) FilterTokens(ctx context.Context, chainID entity.ChainID, query string) []entity.Token {
	all := m.GetTokens(ctx, chainID)
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]entity.Token, 0, len(all))
	for _, t := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Symbol), q) ||
			strings.Contains(strings.ToLower(t.Name), q) {
			matched = append(matched, t)
		}
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)
	slices.SortStableFunc(matched, func(a, b entity.Token) int {
		if ta, tb := m.tier(chainID, a), m.tier(chainID, b); ta != tb {
			return ta - tb
		}
		if c := col.CompareString(a.Symbol, b.Symbol); c != 0 {
			return c
		}
		if c := strings.Compare(a.Symbol, b.Symbol); c != 0 {
			return c
		}
		return strings.Compare(a.ContractAddress, b.ContractAddress)
	})
	return matched
}

func (m *MetadataCache) tier(chainID entity.ChainID, t entity.Token) int {
	switch {
	case m.priority.IsNative(chainID, t.Symbol):
		return 0
	case m.priority.IsPopular(t.Symbol):
		return 1
	default:
		return 2
	}
}
