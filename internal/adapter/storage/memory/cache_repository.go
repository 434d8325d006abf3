package memory

import (
	"context"
	"fmt"

	"bridgequote/internal/config"
	"bridgequote/internal/domain/entity"
	domainRepo "bridgequote/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	allChainsKey         = "chains"
	chainTokensKeyPrefix = "tokens_"
)

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
// Metadata lives for the process lifetime, so every entry is stored without expiration.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(cache.NoExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for metadata storage",
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemoryCacheStorage"),
	}
}

// GetChains retrieves the cached chain set, returning found status.
func (r *CacheRepository) GetChains(_ context.Context) ([]entity.Chain, bool, error) {
	x, found := r.cache.Get(allChainsKey)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", allChainsKey))
		return nil, false, nil
	}
	chains, ok := x.([]entity.Chain)
	if !ok {
		return nil, false, fmt.Errorf("memory cache data type mismatch for key %s: %T", allChainsKey, x)
	}
	r.logger.Debug("Memory cache hit", zap.String("key", allChainsKey))
	return chains, true, nil
}

// SetChains stores the chain set.
func (r *CacheRepository) SetChains(_ context.Context, chains []entity.Chain) error {
	r.cache.Set(allChainsKey, chains, cache.NoExpiration)
	r.logger.Debug("Memory cache set", zap.String("key", allChainsKey), zap.Int("count", len(chains)))
	return nil
}

// GetTokens retrieves the cached token list for a chain, returning found status.
func (r *CacheRepository) GetTokens(_ context.Context, chainID entity.ChainID) ([]entity.Token, bool, error) {
	key := r.getChainTokensKey(chainID)
	x, found := r.cache.Get(key)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", key))
		return nil, false, nil
	}
	tokens, ok := x.([]entity.Token)
	if !ok {
		return nil, false, fmt.Errorf("memory cache data type mismatch for key %s: %T", key, x)
	}
	r.logger.Debug("Memory cache hit", zap.String("key", key))
	return tokens, true, nil
}

// SetTokens stores the token list for a chain, replacing any previous entry.
func (r *CacheRepository) SetTokens(_ context.Context, chainID entity.ChainID, tokens []entity.Token) error {
	key := r.getChainTokensKey(chainID)
	if tokens == nil {
		tokens = []entity.Token{}
	}
	r.cache.Set(key, tokens, cache.NoExpiration)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Int("count", len(tokens)))
	return nil
}

// getChainTokensKey generates the cache key for a chain's token list.
func (r *CacheRepository) getChainTokensKey(chainID entity.ChainID) string {
	return chainTokensKeyPrefix + chainID.String()
}
