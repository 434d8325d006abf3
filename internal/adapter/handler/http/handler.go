package http

import (
	"encoding/json"
	"errors"

	"bridgequote/internal/application/port"
	"bridgequote/internal/domain"
	"bridgequote/internal/domain/entity"
	domainService "bridgequote/internal/domain/service"
	"bridgequote/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// QuoteHandler serves chain metadata and one-shot route comparisons.
type QuoteHandler struct {
	metadata port.MetadataService
	quotes   port.QuoteService
	probe    domainService.BackendProbe
	logger   *zap.Logger
}

func NewQuoteHandler(
	metadata port.MetadataService,
	quotes port.QuoteService,
	probe domainService.BackendProbe,
	logger *zap.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		metadata: metadata,
		quotes:   quotes,
		probe:    probe,
		logger:   logger.Named("QuoteHandler"),
	}
}

type compareRequestBody struct {
	FromChainID      string `json:"fromChainId"`
	ToChainID        string `json:"toChainId"`
	FromTokenAddress string `json:"fromTokenAddress"`
	ToTokenAddress   string `json:"toTokenAddress"`
	Amount           string `json:"amount"`
	Slippage         string `json:"slippage"`
	Policy           string `json:"policy"`
}

type readyBody struct {
	Ready     bool   `json:"ready"`
	Chains    int    `json:"chains"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// GetChains handles requests for the chain set loaded at startup.
func (h *QuoteHandler) GetChains(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, h.metadata.Chains(ctx))
}

// GetTokens handles token search on a chain. The token list is loaded on first use.
func (h *QuoteHandler) GetTokens(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	h.metadata.EnsureLoaded(ctx, chainID)
	tokens := h.metadata.FilterTokens(ctx, chainID, string(ctx.QueryArgs().Peek("q")))
	h.writeJSON(ctx, fasthttp.StatusOK, tokens)
}

// RefreshTokens re-fetches the token list of a chain.
func (h *QuoteHandler) RefreshTokens(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	tokens := h.metadata.Refresh(ctx, chainID)
	h.logger.Info("Token list refreshed", zap.Stringer("chainId", chainID), zap.Int("count", len(tokens)))
	h.writeJSON(ctx, fasthttp.StatusOK, tokens)
}

// CompareQuotes handles a one-shot quote comparison.
func (h *QuoteHandler) CompareQuotes(ctx *fasthttp.RequestCtx) {
	var body compareRequestBody
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		h.logger.Debug("Malformed compare request", zap.Error(err))
		h.writeError(ctx, apperrors.ErrInvalidInput)
		return
	}

	policy, err := entity.ParseSortPolicy(body.Policy)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	result, err := h.quotes.Compare(ctx, port.CompareRequest{
		FromChainID:      entity.ChainID(body.FromChainID),
		ToChainID:        entity.ChainID(body.ToChainID),
		FromTokenAddress: body.FromTokenAddress,
		ToTokenAddress:   body.ToTokenAddress,
		Amount:           body.Amount,
		Slippage:         body.Slippage,
		Policy:           policy,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, result)
}

// Health reports liveness.
func (h *QuoteHandler) Health(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString("OK")
}

// Ready reports whether the quoting backend answers and chains are loaded.
func (h *QuoteHandler) Ready(ctx *fasthttp.RequestCtx) {
	body := readyBody{Chains: len(h.metadata.Chains(ctx))}
	latency, err := h.probe.Probe(ctx)
	body.LatencyMs = latency.Milliseconds()
	if err != nil {
		body.Error = err.Error()
		h.logger.Warn("Quoting backend not ready", zap.Error(err))
		h.writeJSON(ctx, fasthttp.StatusServiceUnavailable, body)
		return
	}
	body.Ready = body.Chains > 0
	status := fasthttp.StatusOK
	if !body.Ready {
		status = fasthttp.StatusServiceUnavailable
	}
	h.writeJSON(ctx, status, body)
}

func (h *QuoteHandler) chainID(ctx *fasthttp.RequestCtx) (entity.ChainID, bool) {
	raw, _ := ctx.UserValue("chainId").(string)
	chainID, err := entity.NewChainID(raw)
	if err != nil {
		h.logger.Debug("Invalid chainId", zap.String("chainId", raw), zap.Error(err))
		h.writeError(ctx, apperrors.ErrInvalidInput)
		return "", false
	}
	return chainID, true
}

func (h *QuoteHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *QuoteHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	}
	h.writeJSON(ctx, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrUnknownPolicy):
		return fasthttp.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, domain.ErrRouteNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, apperrors.ErrTimeout):
		return fasthttp.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrExternalServiceFailure):
		return fasthttp.StatusBadGateway
	default:
		return fasthttp.StatusInternalServerError
	}
}
