package probe

import (
	"net"
	"testing"
	"time"

	"bridgequote/internal/config"
	"bridgequote/internal/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
)

func newTestChecker(t *testing.T, handler fasthttp.RequestHandler) *Checker {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	client := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	cfg := config.QuoteAPIConfig{BaseURL: "http://quotes.test/api/v1", Timeout: time.Second}
	return NewChecker(cfg, client, zap.NewNop())
}

func TestChecker_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "healthy", status: fasthttp.StatusOK},
		{name: "unhealthy", status: fasthttp.StatusServiceUnavailable, wantErr: apperrors.ErrExternalServiceFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestChecker(t, func(ctx *fasthttp.RequestCtx) {
				require.Equal(t, "/api/v1/chains/", string(ctx.Path()))
				ctx.SetStatusCode(tc.status)
			})

			latency, err := c.Probe(t.Context())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Positive(t, latency)
		})
	}
}
