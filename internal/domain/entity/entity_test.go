package entity

import (
	"encoding/json"
	"testing"

	"bridgequote/internal/domain"

	"github.com/stretchr/testify/require"
)

func validSelection() SelectionState {
	return SelectionState{
		SourceChain: "1",
		DestChain:   "56",
		SourceToken: &Token{Symbol: "USDC", ContractAddress: "0xa0b8", Decimals: 6},
		DestToken:   &Token{Symbol: "USDT", ContractAddress: "0x55d3", Decimals: 18},
		Amount:      "10",
		Slippage:    "0.5",
	}
}

func TestSelectionState_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, validSelection().Valid())

	cases := map[string]func(*SelectionState){
		"no source chain": func(s *SelectionState) { s.SourceChain = "" },
		"no dest chain":   func(s *SelectionState) { s.DestChain = "" },
		"no source token": func(s *SelectionState) { s.SourceToken = nil },
		"no dest token":   func(s *SelectionState) { s.DestToken = nil },
		"empty amount":    func(s *SelectionState) { s.Amount = "" },
		"zero amount":     func(s *SelectionState) { s.Amount = "0" },
		"negative amount": func(s *SelectionState) { s.Amount = "-1" },
		"garbage amount":  func(s *SelectionState) { s.Amount = "1e" },
		"no slippage":     func(s *SelectionState) { s.Slippage = "" },
	}
	for name, mutate := range cases {
		s := validSelection()
		mutate(&s)
		require.False(t, s.Valid(), name)
	}
}

func TestSelectionState_EqualAndClone(t *testing.T) {
	t.Parallel()

	a := validSelection()
	b := a.Clone()
	require.True(t, a.Equal(b))
	require.NotSame(t, a.SourceToken, b.SourceToken)

	b.Amount = "11"
	require.False(t, a.Equal(b))

	c := a.Clone()
	c.DestToken = &Token{ContractAddress: "0xother"}
	require.False(t, a.Equal(c))
}

func TestParseSortPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseSortPolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyOptimal, p)

	p, err = ParseSortPolicy(" Fastest ")
	require.NoError(t, err)
	require.Equal(t, PolicyFastest, p)

	_, err = ParseSortPolicy("cheapest")
	require.ErrorIs(t, err, domain.ErrUnknownPolicy)

	require.Equal(t, "best", PolicyOptimal.Label())
	require.Equal(t, "fastest", PolicyFastest.Label())
	require.Equal(t, "most received", PolicyMostTokens.Label())
}

func TestTaggedVariants_MarshalOriginalShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(SimpleEstimatedTime("3 min"))
	require.NoError(t, err)
	require.JSONEq(t, `"3 min"`, string(b))

	b, err = json.Marshal(StructuredEstimatedTime(7, "5-10 min"))
	require.NoError(t, err)
	require.JSONEq(t, `{"estimatedMinutes":7,"range":"5-10 min"}`, string(b))

	b, err = json.Marshal(StructuredSafetyRating("high", 92.5, nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"rating":"high","score":92.5,"factors":[]}`, string(b))

	b, err = json.Marshal(SimpleSafetyRating("medium"))
	require.NoError(t, err)
	require.JSONEq(t, `"medium"`, string(b))
}

func TestTaggedVariants_DecodeEitherShape(t *testing.T) {
	t.Parallel()

	var route QuoteRoute
	require.NoError(t, json.Unmarshal([]byte(`{
		"bridgeId":"across",
		"estimatedTime":{"estimatedMinutes":2,"range":"1-3 min"},
		"safetyRating":"high"
	}`), &route))
	require.Equal(t, StructuredEstimatedTime(2, "1-3 min"), route.EstimatedTime)
	require.Equal(t, SimpleSafetyRating("high"), route.SafetyRating)

	require.NoError(t, json.Unmarshal([]byte(`{"estimatedTime":"5分钟","safetyRating":{"rating":"low","score":3,"factors":["new"]}}`), &route))
	require.Equal(t, SimpleEstimatedTime("5分钟"), route.EstimatedTime)
	require.Equal(t, StructuredSafetyRating("low", 3, []string{"new"}), route.SafetyRating)

	require.Error(t, json.Unmarshal([]byte(`{"estimatedTime":12}`), &route))
}
