package http

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bridgequote/internal/application/port"
	"bridgequote/internal/application/port/mocks"
	"bridgequote/internal/domain"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeProbe struct {
	latency time.Duration
	err     error
}

func (p fakeProbe) Probe(context.Context) (time.Duration, error) {
	return p.latency, p.err
}

func newTestHandler(t *testing.T) (*QuoteHandler, *mocks.MockMetadataService, *mocks.MockQuoteService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	metadata := mocks.NewMockMetadataService(ctrl)
	quotes := mocks.NewMockQuoteService(ctrl)
	return NewQuoteHandler(metadata, quotes, fakeProbe{latency: 12 * time.Millisecond}, zap.NewNop()), metadata, quotes
}

func TestQuoteHandler_GetChains(t *testing.T) {
	t.Parallel()

	h, metadata, _ := newTestHandler(t)
	metadata.EXPECT().Chains(gomock.Any()).Return([]entity.Chain{{ID: "1", Name: "Ethereum", IsMainnet: true}})

	var ctx fasthttp.RequestCtx
	h.GetChains(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var got []map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0]["chainIndex"])
	require.Equal(t, "Ethereum", got[0]["chainName"])
}

func TestQuoteHandler_GetTokens(t *testing.T) {
	t.Parallel()

	h, metadata, _ := newTestHandler(t)
	usdc := entity.Token{Symbol: "USDC", Name: "USD Coin", ContractAddress: "0xa0b8", Decimals: 6}
	gomock.InOrder(
		metadata.EXPECT().EnsureLoaded(gomock.Any(), entity.ChainID("1")).Return([]entity.Token{usdc}),
		metadata.EXPECT().FilterTokens(gomock.Any(), entity.ChainID("1"), "usd").Return([]entity.Token{usdc}),
	)

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/chains/1/tokens?q=usd")
	ctx.SetUserValue("chainId", "1")
	h.GetTokens(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var got []entity.Token
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	require.Equal(t, []entity.Token{usdc}, got)
}

func TestQuoteHandler_GetTokens_InvalidChain(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("chainId", "  ")
	h.GetTokens(&ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestQuoteHandler_RefreshTokens(t *testing.T) {
	t.Parallel()

	h, metadata, _ := newTestHandler(t)
	metadata.EXPECT().Refresh(gomock.Any(), entity.ChainID("56")).Return([]entity.Token{})

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("chainId", "56")
	h.RefreshTokens(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.JSONEq(t, `[]`, string(ctx.Response.Body()))
}

func TestQuoteHandler_CompareQuotes(t *testing.T) {
	t.Parallel()

	h, _, quotes := newTestHandler(t)
	quotes.EXPECT().Compare(gomock.Any(), port.CompareRequest{
		FromChainID:      "1",
		ToChainID:        "56",
		FromTokenAddress: "0xa0b8",
		ToTokenAddress:   "0x55d3",
		Amount:           "100",
		Policy:           entity.PolicyFastest,
	}).Return(port.CompareResult{
		Policy: entity.PolicyFastest,
		Routes: []entity.QuoteRoute{{BridgeID: "fast", Rank: 1, IsRecommended: true, RouteLabel: "fastest"}},
	}, nil)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBodyString(`{"fromChainId":"1","toChainId":"56","fromTokenAddress":"0xa0b8","toTokenAddress":"0x55d3","amount":"100","policy":"fastest"}`)
	h.CompareQuotes(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var got struct {
		Policy string `json:"policy"`
		Routes []struct {
			BridgeID   string `json:"bridgeId"`
			Rank       int    `json:"rank"`
			RouteLabel string `json:"routeLabel"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	require.Equal(t, "fastest", got.Policy)
	require.Len(t, got.Routes, 1)
	require.Equal(t, 1, got.Routes[0].Rank)
	require.Equal(t, "fastest", got.Routes[0].RouteLabel)
}

func TestQuoteHandler_CompareQuotes_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		compareErr error
		wantStatus int
	}{
		{name: "malformed body", body: `{`, wantStatus: fasthttp.StatusBadRequest},
		{name: "unknown policy", body: `{"policy":"cheapest"}`, wantStatus: fasthttp.StatusBadRequest},
		{name: "invalid selection", body: `{}`, compareErr: domain.ErrInvalidSelection, wantStatus: fasthttp.StatusBadRequest},
		{name: "unknown token", body: `{}`, compareErr: apperrors.ErrNotFound, wantStatus: fasthttp.StatusNotFound},
		{name: "upstream down", body: `{}`, compareErr: apperrors.ErrExternalServiceFailure, wantStatus: fasthttp.StatusBadGateway},
		{name: "upstream timeout", body: `{}`, compareErr: apperrors.ErrTimeout, wantStatus: fasthttp.StatusGatewayTimeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h, _, quotes := newTestHandler(t)
			if tc.compareErr != nil {
				quotes.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(port.CompareResult{}, tc.compareErr)
			}

			var ctx fasthttp.RequestCtx
			ctx.Request.Header.SetMethod(fasthttp.MethodPost)
			ctx.Request.SetBodyString(tc.body)
			h.CompareQuotes(&ctx)

			require.Equal(t, tc.wantStatus, ctx.Response.StatusCode())
			var body errorBody
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestQuoteHandler_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		chains     []entity.Chain
		probe      fakeProbe
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ready",
			chains:     []entity.Chain{{ID: "1"}},
			probe:      fakeProbe{latency: 12 * time.Millisecond},
			wantStatus: fasthttp.StatusOK,
			wantBody:   `{"ready":true,"chains":1,"latencyMs":12}`,
		},
		{
			name:       "no chains loaded",
			chains:     []entity.Chain{},
			probe:      fakeProbe{latency: 3 * time.Millisecond},
			wantStatus: fasthttp.StatusServiceUnavailable,
			wantBody:   `{"ready":false,"chains":0,"latencyMs":3}`,
		},
		{
			name:       "backend down",
			chains:     []entity.Chain{{ID: "1"}},
			probe:      fakeProbe{err: errors.New("connection refused")},
			wantStatus: fasthttp.StatusServiceUnavailable,
			wantBody:   `{"ready":false,"chains":1,"latencyMs":0,"error":"connection refused"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			metadata := mocks.NewMockMetadataService(ctrl)
			metadata.EXPECT().Chains(gomock.Any()).Return(tc.chains)
			h := NewQuoteHandler(metadata, mocks.NewMockQuoteService(ctrl), tc.probe, zap.NewNop())

			var ctx fasthttp.RequestCtx
			h.Ready(&ctx)

			require.Equal(t, tc.wantStatus, ctx.Response.StatusCode())
			require.JSONEq(t, tc.wantBody, string(ctx.Response.Body()))
		})
	}
}
