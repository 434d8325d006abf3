package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bridgequote/internal/config"
	domainService "bridgequote/internal/domain/service"
	"bridgequote/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.BackendProbe = (*Checker)(nil)

// Checker probes the quoting backend's chain listing endpoint.
type Checker struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewChecker creates a probe for the configured quoting backend. client may be nil.
func NewChecker(cfg config.QuoteAPIConfig, client *fasthttp.Client, logger *zap.Logger) *Checker {
	if client == nil {
		client = &fasthttp.Client{ReadTimeout: 10 * time.Second}
	}
	return &Checker{
		client:  client,
		url:     cfg.BaseURL + "/chains/",
		timeout: cfg.GetTimeout(),
		logger:  logger.Named("BackendProbe"),
	}
}

// Probe issues one GET and treats any 2xx status as healthy.
func (c *Checker) Probe(ctx context.Context) (time.Duration, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	// the body is not needed
	resp.SkipBody = true

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && (timeout <= 0 || remaining < timeout) {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	start := time.Now()
	err := c.client.DoTimeout(req, resp, timeout)
	latency := time.Since(start)

	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			c.logger.Debug("Backend probe timed out", zap.String("url", c.url), zap.Duration("timeout", timeout))
			return latency, fmt.Errorf("%w: probe of %s after %v", apperrors.ErrTimeout, c.url, timeout)
		}
		c.logger.Debug("Backend probe failed", zap.String("url", c.url), zap.Error(err))
		return latency, fmt.Errorf("%w: probe of %s: %v", apperrors.ErrExternalServiceFailure, c.url, err)
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		c.logger.Debug("Backend probe returned non-2xx status", zap.String("url", c.url), zap.Int("statusCode", status))
		return latency, fmt.Errorf("%w: probe of %s returned status %d", apperrors.ErrExternalServiceFailure, c.url, status)
	}

	c.logger.Debug("Backend probe succeeded", zap.Duration("latency", latency))
	return latency, nil
}
