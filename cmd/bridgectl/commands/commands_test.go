package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/chains/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"chainIndex":"1","chainName":"Ethereum","isMainnet":true},{"chainIndex":"56","chainName":"BNB Chain"}]`))
	})
	mux.HandleFunc("/api/v1/tokens/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"tokenSymbol":"USDC","tokenName":"USD Coin","tokenContractAddress":"0xa0b8","decimals":"6"}]`))
	})
	mux.HandleFunc("/api/v1/tokens/56", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"tokenSymbol":"USDT","tokenName":"Tether USD","tokenContractAddress":"0x55d3","decimals":"18"}]`))
	})
	mux.HandleFunc("/api/v1/quote/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"bridgeName":"Stargate","bridgeId":"stargate","toTokenAmount":"9950000000000000000","minimumReceived":"9900000000000000000","totalFeeUsd":"0.42","estimatedTime":"3分钟"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", t.TempDir(), "--log-level", "error"}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestChainsCommand(t *testing.T) {
	srv := newBackend(t)

	out := run(t, "--base-url", srv.URL+"/api/v1", "chains")

	require.Contains(t, out, "Ethereum")
	require.Contains(t, out, "BNB Chain")
}

func TestTokensCommand_JSON(t *testing.T) {
	srv := newBackend(t)

	out := run(t, "--base-url", srv.URL+"/api/v1", "--json", "tokens", "1", "-q", "usd")

	require.JSONEq(t, `[{"tokenSymbol":"USDC","tokenName":"USD Coin","tokenContractAddress":"0xa0b8","decimals":6,"isPopular":false}]`, out)
}

func TestQuoteCommand(t *testing.T) {
	srv := newBackend(t)

	out := run(t, "--base-url", srv.URL+"/api/v1", "quote",
		"--from-chain", "1", "--to-chain", "56",
		"--from-token", "0xa0b8", "--to-token", "0x55d3",
		"--amount", "10",
	)

	require.Contains(t, out, "Stargate")
	require.Contains(t, out, "9.950000 USDT")
	require.Contains(t, out, "0.420")
	require.Contains(t, out, "1 USDC = 0.995000 USDT")
	require.Contains(t, out, "best")
}
