package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	dto "bridgequote/internal/adapter/storage/quoteapi/dto"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/entity"
	domainRepo "bridgequote/internal/domain/repository"
	"bridgequote/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time checks
var (
	_ domainRepo.MetadataRepository = (*Client)(nil)
	_ domainRepo.QuoteRepository    = (*Client)(nil)
)

// Client talks to the quoting backend over HTTP.
type Client struct {
	client     *fasthttp.Client
	baseURL    string
	tokenLimit int
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(cl *Client) {
		cl.baseURL = baseURL
	}
}

// NewClient creates a quoting backend client from config.
func NewClient(cfg config.QuoteAPIConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		client:     &fasthttp.Client{Name: "bridgequote"},
		baseURL:    cfg.BaseURL,
		tokenLimit: cfg.TokenLimit,
		timeout:    cfg.GetTimeout(),
		logger:     logger.Named("QuoteAPI"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	return c
}

// GetChains fetches every chain the backend supports.
func (c *Client) GetChains(ctx context.Context) ([]entity.Chain, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/chains/")
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, req, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Chains request returned non-OK status",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("body", sample(resp.Body())),
		)
		return nil, fmt.Errorf("%w: chains returned status %d", apperrors.ErrExternalServiceFailure, resp.StatusCode())
	}

	body, err := c.body(resp)
	if err != nil {
		return nil, err
	}

	var raw []dto.ChainRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Error("Failed to unmarshal chains response", zap.Error(err), zap.ByteString("bodySample", sample(body)))
		return nil, fmt.Errorf("%w: failed to parse chains response: %v", apperrors.ErrExternalServiceFailure, err)
	}

	chains := toDomainChains(raw, c.logger)
	c.logger.Info("Fetched chains", zap.Int("count", len(chains)))
	return chains, nil
}

// GetTokens fetches the token list of one chain. A 4xx answer means the
// backend does not support the chain and yields ErrUnsupportedChain.
func (c *Client) GetTokens(ctx context.Context, chainID entity.ChainID) ([]entity.Token, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + "/tokens/" + url.PathEscape(chainID.String()) + "?limit=" + strconv.Itoa(c.tokenLimit)
	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, req, resp); err != nil {
		return nil, err
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusOK:
	case status >= 400 && status < 500:
		c.logger.Warn("Chain not supported by quoting backend",
			zap.Stringer("chainId", chainID),
			zap.Int("statusCode", status),
		)
		return nil, fmt.Errorf("%w: chain %s (status %d)", apperrors.ErrUnsupportedChain, chainID, status)
	default:
		c.logger.Error("Tokens request returned non-OK status",
			zap.Stringer("chainId", chainID),
			zap.Int("statusCode", status),
			zap.ByteString("body", sample(resp.Body())),
		)
		return nil, fmt.Errorf("%w: tokens for chain %s returned status %d",
			apperrors.ErrExternalServiceFailure, chainID, status,
		)
	}

	body, err := c.body(resp)
	if err != nil {
		return nil, err
	}

	var raw []dto.TokenRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Error("Failed to unmarshal tokens response",
			zap.Stringer("chainId", chainID),
			zap.Error(err),
			zap.ByteString("bodySample", sample(body)),
		)
		return nil, fmt.Errorf("%w: failed to parse tokens response: %v", apperrors.ErrExternalServiceFailure, err)
	}

	tokens := toDomainTokens(raw, chainID, c.logger)
	c.logger.Debug("Fetched tokens", zap.Stringer("chainId", chainID), zap.Int("count", len(tokens)))
	return tokens, nil
}

// GetQuotes posts a quote request. A response with success=false or no data
// is an empty result, not an error.
func (c *Client) GetQuotes(ctx context.Context, quoteReq entity.QuoteRequest) ([]entity.QuoteRoute, error) {
	payload, err := json.Marshal(toQuoteRequestRaw(quoteReq))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode quote request: %v", apperrors.ErrInternal, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/quote/")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := c.do(ctx, req, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Quote request returned non-OK status",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("body", sample(resp.Body())),
		)
		return nil, fmt.Errorf("%w: quote returned status %d", apperrors.ErrExternalServiceFailure, resp.StatusCode())
	}

	body, err := c.body(resp)
	if err != nil {
		return nil, err
	}

	var envelope dto.QuoteResponseRaw
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error("Failed to unmarshal quote response", zap.Error(err), zap.ByteString("bodySample", sample(body)))
		return nil, fmt.Errorf("%w: failed to parse quote response: %v", apperrors.ErrExternalServiceFailure, err)
	}
	if !envelope.Success {
		c.logger.Info("Quoting backend reported no quote", zap.String("message", envelope.Message))
		return []entity.QuoteRoute{}, nil
	}

	routes := toDomainRoutes(envelope.Data, c.logger)
	c.logger.Debug("Fetched quotes",
		zap.Stringer("fromChain", quoteReq.FromChainID),
		zap.Stringer("toChain", quoteReq.ToChainID),
		zap.Int("routes", len(routes)),
	)
	return routes, nil
}

// do executes the request with a timeout bounded by the context deadline.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	c.logger.Debug("Calling quoting backend",
		zap.ByteString("method", req.Header.Method()),
		zap.ByteString("uri", req.RequestURI()),
		zap.Duration("timeout", timeout),
	)

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			c.logger.Warn("Quoting backend request timed out", zap.Duration("timeout", timeout))
			return fmt.Errorf("%w: quoting backend after %v", apperrors.ErrTimeout, timeout)
		}
		c.logger.Error("Failed to execute request to quoting backend", zap.Error(err))
		return fmt.Errorf("%w: failed to execute request: %v", apperrors.ErrExternalServiceFailure, err)
	}
	return nil
}

// body returns the response body, decompressing gzip when needed.
func (c *Client) body(resp *fasthttp.Response) ([]byte, error) {
	if !bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		return resp.Body(), nil
	}
	body, err := resp.BodyGunzip()
	if err != nil {
		c.logger.Error("Failed to gunzip response body", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to decompress response: %v", apperrors.ErrExternalServiceFailure, err)
	}
	return body, nil
}

func sample(body []byte) []byte {
	return body[:min(1024, len(body))]
}
