package quoteapi_dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts either a JSON string or a JSON number and keeps the literal text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

// ChainRaw is a chain as returned by GET /chains/.
type ChainRaw struct {
	ChainIndex FlexString `json:"chainIndex"`
	ChainName  string     `json:"chainName"`
	ShortName  string     `json:"shortName,omitempty"`
	LogoURL    string     `json:"logoUrl,omitempty"`
	Category   string     `json:"category,omitempty"`
	Ecosystem  string     `json:"ecosystem,omitempty"`
	IsMainnet  bool       `json:"isMainnet,omitempty"`
	TokenCount int        `json:"tokenCount,omitempty"`
	Priority   int        `json:"priority,omitempty"`
	IsPopular  bool       `json:"isPopular,omitempty"`
}

// TokenRaw is a token as returned by GET /tokens/{chainId}.
type TokenRaw struct {
	TokenSymbol          string     `json:"tokenSymbol"`
	TokenName            string     `json:"tokenName"`
	TokenContractAddress string     `json:"tokenContractAddress"`
	Decimals             FlexString `json:"decimals"`
	LogoURL              string     `json:"logoUrl,omitempty"`
	IsPopular            bool       `json:"isPopular,omitempty"`
}

// QuoteRequestRaw is the POST /quote/ body.
type QuoteRequestRaw struct {
	FromChainID      string `json:"from_chain_id"`
	ToChainID        string `json:"to_chain_id"`
	FromTokenAddress string `json:"from_token_address"`
	ToTokenAddress   string `json:"to_token_address"`
	Amount           string `json:"amount"`
	UserAddress      string `json:"user_address"`
	Slippage         string `json:"slippage"`
}

// QuoteResponseRaw is the POST /quote/ envelope.
type QuoteResponseRaw struct {
	Success bool       `json:"success"`
	Data    []RouteRaw `json:"data"`
	Message string     `json:"message"`
}

// RouteRaw is one candidate route. EstimatedTime and SafetyRating arrive as
// either a string or an object and are decoded by the entity variants.
type RouteRaw struct {
	BridgeName      string          `json:"bridgeName"`
	BridgeID        FlexString      `json:"bridgeId"`
	BridgeLogoURL   string          `json:"bridgeLogoUrl,omitempty"`
	FromTokenAmount FlexString      `json:"fromTokenAmount"`
	ToTokenAmount   FlexString      `json:"toTokenAmount"`
	EstimatedAmount FlexString      `json:"estimatedAmount,omitempty"`
	MinimumReceived FlexString      `json:"minimumReceived"`
	TotalFeeUSD     FlexString      `json:"totalFeeUsd"`
	GasFeeUSD       FlexString      `json:"gasFeeUsd"`
	BridgeFeeUSD    FlexString      `json:"bridgeFeeUsd,omitempty"`
	EstimatedTime   json.RawMessage `json:"estimatedTime"`
	PriceImpact     FlexString      `json:"priceImpact"`
	SafetyRating    json.RawMessage `json:"safetyRating"`
	ExchangeRate    FlexString      `json:"exchangeRate,omitempty"`
	RouteSteps      []RouteStepRaw  `json:"routeSteps,omitempty"`
}

// RouteStepRaw is one descriptive step of a route.
type RouteStepRaw struct {
	Step        int        `json:"step"`
	Action      string     `json:"action"`
	ChainID     FlexString `json:"chainId,omitempty"`
	Token       string     `json:"token,omitempty"`
	TokenLogo   string     `json:"tokenLogo,omitempty"`
	Amount      FlexString `json:"amount,omitempty"`
	Bridge      string     `json:"bridge,omitempty"`
	Description string     `json:"description"`
}
