package application

import (
	"context"
	"testing"
	"time"

	"bridgequote/internal/application/port/mocks"
	"bridgequote/internal/config"
	"bridgequote/internal/domain"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	usdcEth = entity.Token{Symbol: "USDC", Name: "USD Coin", ContractAddress: "0xa0b8", Decimals: 6}
	usdtBsc = entity.Token{Symbol: "USDT", Name: "Tether USD", ContractAddress: "0x55d3", Decimals: 18}
)

func sessionRoutes() []entity.QuoteRoute {
	return []entity.QuoteRoute{
		{
			BridgeName:    "Slowbridge",
			BridgeID:      "slow",
			ToTokenAmount: "99500000000000000000",
			TotalFeeUSD:   "1.2",
			EstimatedTime: entity.SimpleEstimatedTime("15 min"),
		},
		{
			BridgeName:    "Fastbridge",
			BridgeID:      "fast",
			ToTokenAmount: "99000000000000000000",
			TotalFeeUSD:   "0.5",
			EstimatedTime: entity.SimpleEstimatedTime("2分钟"),
		},
	}
}

func newTestSession(t *testing.T) (*QuoteSession, *mocks.MockQuoteService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	metadata := mocks.NewMockMetadataService(ctrl)
	quotes := mocks.NewMockQuoteService(ctrl)

	metadata.EXPECT().EnsureLoaded(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, chainID entity.ChainID) []entity.Token {
			switch chainID {
			case "1":
				return []entity.Token{usdcEth}
			case "56":
				return []entity.Token{usdtBsc}
			default:
				return []entity.Token{}
			}
		}).AnyTimes()

	cfg := config.Config{
		QuoteAPI: config.QuoteAPIConfig{DefaultSlippage: "0.5"},
		Trigger:  config.TriggerConfig{Debounce: 20 * time.Millisecond},
	}
	s := NewQuoteSession(t.Context(), quotes, metadata, cfg, zap.NewNop(), nil)
	t.Cleanup(s.Close)
	return s, quotes
}

func fillSelection(t *testing.T, s *QuoteSession) {
	t.Helper()
	s.SetSourceChain(t.Context(), "1")
	s.SetDestChain(t.Context(), "56")
	require.NoError(t, s.SetSourceToken(t.Context(), "0xA0B8"))
	require.NoError(t, s.SetDestToken(t.Context(), "0x55d3"))
	s.SetAmount("100")
}

func TestQuoteSession_FetchRankAndSelect(t *testing.T) {
	t.Parallel()

	// Arrange
	s, quotes := newTestSession(t)
	quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sel entity.SelectionState) ([]entity.QuoteRoute, error) {
			require.Equal(t, "100", sel.Amount)
			return sessionRoutes(), nil
		}).Times(1)

	// Act
	fillSelection(t, s)

	// Assert
	require.Eventually(t, func() bool { return len(s.Snapshot().Routes) == 2 }, time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	require.True(t, snap.Valid)
	require.False(t, snap.Loading)
	require.Equal(t, "slow", snap.Routes[0].BridgeID)
	require.Equal(t, "best", snap.Routes[0].RouteLabel)
	require.NotNil(t, snap.SelectedRoute)
	require.Equal(t, "slow", snap.SelectedRoute.BridgeID)
	require.Equal(t, "1 USDC = 0.995000 USDT", snap.ExchangeRate)

	require.NoError(t, s.SetPolicy("fastest"))
	snap = s.Snapshot()
	require.Equal(t, entity.PolicyFastest, snap.Policy)
	require.Equal(t, "fast", snap.Routes[0].BridgeID)
	require.Equal(t, "fast", snap.SelectedRoute.BridgeID)

	require.NoError(t, s.SelectRoute("slow"))
	rate, err := s.ExchangeRate()
	require.NoError(t, err)
	require.Equal(t, "1 USDC = 0.995000 USDT", rate)

	require.ErrorIs(t, s.SelectRoute("missing"), domain.ErrRouteNotFound)
	require.ErrorIs(t, s.SetPolicy("cheapest"), domain.ErrUnknownPolicy)
}

func TestQuoteSession_InvalidAmountClearsRoutes(t *testing.T) {
	t.Parallel()

	s, quotes := newTestSession(t)
	quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return(sessionRoutes(), nil).Times(1)

	fillSelection(t, s)
	require.Eventually(t, func() bool { return len(s.Snapshot().Routes) == 2 }, time.Second, 5*time.Millisecond)

	s.SetAmount("0")

	snap := s.Snapshot()
	require.False(t, snap.Valid)
	require.Empty(t, snap.Routes)
	require.Nil(t, snap.SelectedRoute)
	_, err := s.ExchangeRate()
	require.ErrorIs(t, err, domain.ErrNoRoutes)
}

func TestQuoteSession_SwapDirection(t *testing.T) {
	t.Parallel()

	s, quotes := newTestSession(t)
	quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return(sessionRoutes(), nil).MinTimes(1)

	fillSelection(t, s)
	require.Eventually(t, func() bool { return len(s.Snapshot().Routes) == 2 }, time.Second, 5*time.Millisecond)

	s.SwapDirection()

	snap := s.Snapshot()
	require.Equal(t, entity.ChainID("56"), snap.Selection.SourceChain)
	require.Equal(t, entity.ChainID("1"), snap.Selection.DestChain)
	require.Equal(t, "USDT", snap.Selection.SourceToken.Symbol)
	require.Equal(t, "USDC", snap.Selection.DestToken.Symbol)
	require.Empty(t, snap.Routes)
	require.True(t, snap.Loading)

	require.Eventually(t, func() bool { return len(s.Snapshot().Routes) == 2 }, time.Second, 5*time.Millisecond)
}

func TestQuoteSession_ChainChangeDropsForeignToken(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.SetSourceChain(t.Context(), "1")
	require.NoError(t, s.SetSourceToken(t.Context(), "0xa0b8"))

	s.SetSourceChain(t.Context(), "56")
	require.Nil(t, s.Snapshot().Selection.SourceToken)

	err := s.SetSourceToken(t.Context(), "0xa0b8")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuoteSession_SlippageDefault(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	require.Equal(t, "0.5", s.Snapshot().Selection.Slippage)

	s.SetSlippage("1")
	require.Equal(t, "1", s.Snapshot().Selection.Slippage)

	s.SetSlippage("  ")
	require.Equal(t, "0.5", s.Snapshot().Selection.Slippage)
	require.NotEmpty(t, s.ID())
}
