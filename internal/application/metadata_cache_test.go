package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bridgequote/internal/adapter/storage/memory"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/domain/repository/mocks"
	"bridgequote/internal/domain/tokenpriority"
	"bridgequote/internal/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestMetadataCache(t *testing.T) (*MetadataCache, *mocks.MockMetadataRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMetadataRepository(ctrl)
	store := memory.NewCacheRepository(config.CacheConfig{}, zap.NewNop())
	cfg := config.QuoteAPIConfig{Timeout: time.Second}
	return NewMetadataCache(repo, store, tokenpriority.Default(), cfg, zap.NewNop()), repo
}

func TestMetadataCache_LoadChains(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mc, repo := newTestMetadataCache(t)
		repo.EXPECT().GetChains(gomock.Any()).Return([]entity.Chain{{ID: "1", Name: "Ethereum"}}, nil)

		require.NoError(t, mc.LoadChains(t.Context()))
		require.Len(t, mc.Chains(t.Context()), 1)
		require.Equal(t, "Ethereum", mc.ChainName(t.Context(), "1"))
		require.Equal(t, "Chain 56", mc.ChainName(t.Context(), "56"))
	})

	t.Run("failure leaves chain list empty", func(t *testing.T) {
		t.Parallel()
		mc, repo := newTestMetadataCache(t)
		repo.EXPECT().GetChains(gomock.Any()).Return(nil, apperrors.ErrExternalServiceFailure)

		err := mc.LoadChains(t.Context())
		require.ErrorIs(t, err, apperrors.ErrExternalServiceFailure)
		require.Empty(t, mc.Chains(t.Context()))
		require.NotNil(t, mc.Chains(t.Context()))
	})
}

func TestMetadataCache_EnsureLoaded_SingleFetchPerChain(t *testing.T) {
	t.Parallel()

	// Arrange
	mc, repo := newTestMetadataCache(t)
	release := make(chan struct{})
	want := []entity.Token{{Symbol: "ETH", ContractAddress: "0xeeee", Decimals: 18}}
	repo.EXPECT().
		GetTokens(gomock.Any(), entity.ChainID("1")).
		DoAndReturn(func(context.Context, entity.ChainID) ([]entity.Token, error) {
			<-release
			return want, nil
		}).
		Times(1)

	// Act
	var wg sync.WaitGroup
	results := make([][]entity.Token, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = mc.EnsureLoaded(t.Context(), "1")
		}(i)
	}
	close(release)
	wg.Wait()

	// Assert
	for _, got := range results {
		require.Equal(t, want, got)
	}
	require.Equal(t, want, mc.GetTokens(t.Context(), "1"))
}

func TestMetadataCache_EnsureLoaded_FailuresCacheEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "unsupported chain", err: apperrors.ErrUnsupportedChain},
		{name: "transient failure", err: errors.New("connection reset")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mc, repo := newTestMetadataCache(t)
			repo.EXPECT().GetTokens(gomock.Any(), entity.ChainID("999")).Return(nil, tc.err).Times(1)

			require.Empty(t, mc.EnsureLoaded(t.Context(), "999"))
			// cached empty entry short-circuits the second lookup
			require.Empty(t, mc.EnsureLoaded(t.Context(), "999"))
		})
	}
}

func TestMetadataCache_GetTokens_UnknownChain(t *testing.T) {
	t.Parallel()

	mc, _ := newTestMetadataCache(t)
	tokens := mc.GetTokens(t.Context(), "42")
	require.NotNil(t, tokens)
	require.Empty(t, tokens)
}

func TestMetadataCache_Refresh_Overwrites(t *testing.T) {
	t.Parallel()

	mc, repo := newTestMetadataCache(t)
	first := []entity.Token{{Symbol: "USDC", ContractAddress: "0xa0b8", Decimals: 6}}
	second := []entity.Token{{Symbol: "USDT", ContractAddress: "0xdac1", Decimals: 6}}
	gomock.InOrder(
		repo.EXPECT().GetTokens(gomock.Any(), entity.ChainID("1")).Return(first, nil),
		repo.EXPECT().GetTokens(gomock.Any(), entity.ChainID("1")).Return(second, nil),
	)

	require.Equal(t, first, mc.EnsureLoaded(t.Context(), "1"))
	require.Equal(t, second, mc.Refresh(t.Context(), "1"))
	require.Equal(t, second, mc.GetTokens(t.Context(), "1"))
}

func TestMetadataCache_FilterTokens(t *testing.T) {
	t.Parallel()

	mc, repo := newTestMetadataCache(t)
	repo.EXPECT().GetTokens(gomock.Any(), entity.ChainID("1")).Return([]entity.Token{
		{Symbol: "DAI", Name: "Dai Stablecoin", ContractAddress: "0x6b17"},
		{Symbol: "USDT", Name: "Tether USD", ContractAddress: "0xdac1"},
		{Symbol: "WETH", Name: "Wrapped Ether", ContractAddress: "0xc02a"},
		{Symbol: "aave", Name: "Aave Token", ContractAddress: "0x7fc6"},
		{Symbol: "USDC", Name: "USD Coin", ContractAddress: "0xa0b8"},
		{Symbol: "ETH", Name: "Ether", ContractAddress: "0xeeee"},
		{Symbol: "stETH", Name: "Lido Staked Ether", ContractAddress: "0xae7a"},
	}, nil)
	mc.EnsureLoaded(t.Context(), "1")

	symbols := func(tokens []entity.Token) []string {
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			out[i] = tok.Symbol
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all in priority order", query: "", want: []string{"ETH", "WETH", "USDC", "USDT", "aave", "DAI", "stETH"}},
		{name: "matches symbol case-insensitively", query: "usd", want: []string{"USDC", "USDT"}},
		{name: "matches name or symbol", query: "ether", want: []string{"ETH", "WETH", "USDT", "stETH"}},
		{name: "no match", query: "doge", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mc.FilterTokens(t.Context(), "1", tc.query)
			require.Equal(t, tc.want, symbols(got))
			require.Equal(t, got, mc.FilterTokens(t.Context(), "1", tc.query))
		})
	}
}
