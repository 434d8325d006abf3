package entity

import (
	"bytes"
	"encoding/json"
)

// EstimatedTimeKind tags which shape an EstimatedTime carries.
type EstimatedTimeKind uint8

const (
	// EstimatedTimeSimple is a free-form display string such as "5分钟20秒".
	EstimatedTimeSimple EstimatedTimeKind = iota
	// EstimatedTimeStructured carries an explicit minute count plus a range string.
	EstimatedTimeStructured
)

// EstimatedTime is either Simple(text) or Structured{minutes, range}.
type EstimatedTime struct {
	Kind    EstimatedTimeKind
	Text    string
	Minutes int
	Range   string
}

// SimpleEstimatedTime builds the plain string variant.
func SimpleEstimatedTime(text string) EstimatedTime {
	return EstimatedTime{Kind: EstimatedTimeSimple, Text: text}
}

// StructuredEstimatedTime builds the structured variant.
func StructuredEstimatedTime(minutes int, rangeText string) EstimatedTime {
	return EstimatedTime{Kind: EstimatedTimeStructured, Minutes: minutes, Range: rangeText}
}

// Display returns the human text for either variant.
func (e EstimatedTime) Display() string {
	if e.Kind == EstimatedTimeStructured {
		return e.Range
	}
	return e.Text
}

// MarshalJSON emits the same shape the quoting backend sent.
func (e EstimatedTime) MarshalJSON() ([]byte, error) {
	if e.Kind == EstimatedTimeStructured {
		return json.Marshal(struct {
			EstimatedMinutes int    `json:"estimatedMinutes"`
			Range            string `json:"range"`
		}{e.Minutes, e.Range})
	}
	return json.Marshal(e.Text)
}

// UnmarshalJSON accepts either shape. null decodes to an empty simple value.
func (e *EstimatedTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*e = SimpleEstimatedTime("")
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*e = SimpleEstimatedTime(text)
		return nil
	}
	var v struct {
		EstimatedMinutes int    `json:"estimatedMinutes"`
		Range            string `json:"range"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = StructuredEstimatedTime(v.EstimatedMinutes, v.Range)
	return nil
}

// SafetyRatingKind tags which shape a SafetyRating carries.
type SafetyRatingKind uint8

const (
	SafetyRatingSimple SafetyRatingKind = iota
	SafetyRatingStructured
)

// SafetyRating is either Simple(text) or Structured{rating, score, factors}.
type SafetyRating struct {
	Kind    SafetyRatingKind
	Rating  string
	Score   float64
	Factors []string
}

// SimpleSafetyRating builds the plain string variant.
func SimpleSafetyRating(rating string) SafetyRating {
	return SafetyRating{Kind: SafetyRatingSimple, Rating: rating}
}

// StructuredSafetyRating builds the structured variant.
func StructuredSafetyRating(rating string, score float64, factors []string) SafetyRating {
	return SafetyRating{Kind: SafetyRatingStructured, Rating: rating, Score: score, Factors: factors}
}

// MarshalJSON emits the same shape the quoting backend sent.
func (s SafetyRating) MarshalJSON() ([]byte, error) {
	if s.Kind == SafetyRatingStructured {
		factors := s.Factors
		if factors == nil {
			factors = []string{}
		}
		return json.Marshal(struct {
			Rating  string   `json:"rating"`
			Score   float64  `json:"score"`
			Factors []string `json:"factors"`
		}{s.Rating, s.Score, factors})
	}
	return json.Marshal(s.Rating)
}

// UnmarshalJSON accepts either shape. null decodes to an empty simple value.
func (s *SafetyRating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = SimpleSafetyRating("")
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*s = SimpleSafetyRating(text)
		return nil
	}
	var v struct {
		Rating  string   `json:"rating"`
		Score   float64  `json:"score"`
		Factors []string `json:"factors"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = StructuredSafetyRating(v.Rating, v.Score, v.Factors)
	return nil
}

// RouteStep is one descriptive hop of a route. Produced by the quoting backend, never mutated.
type RouteStep struct {
	Step        int     `json:"step"`
	Action      string  `json:"action"`
	ChainID     ChainID `json:"chainId,omitempty"`
	Token       string  `json:"token,omitempty"`
	TokenLogo   string  `json:"tokenLogo,omitempty"`
	Amount      string  `json:"amount,omitempty"`
	Bridge      string  `json:"bridge,omitempty"`
	Description string  `json:"description"`
}

// QuoteRoute is one candidate bridge route. Amounts are base-unit strings,
// fees are USD decimal strings. Rank, IsRecommended and RouteLabel are set by ranking.
type QuoteRoute struct {
	BridgeName      string        `json:"bridgeName"`
	BridgeID        string        `json:"bridgeId"`
	BridgeLogoURL   string        `json:"bridgeLogoUrl,omitempty"`
	FromTokenAmount string        `json:"fromTokenAmount"`
	ToTokenAmount   string        `json:"toTokenAmount"`
	EstimatedAmount string        `json:"estimatedAmount,omitempty"`
	MinimumReceived string        `json:"minimumReceived"`
	TotalFeeUSD     string        `json:"totalFeeUsd"`
	GasFeeUSD       string        `json:"gasFeeUsd"`
	BridgeFeeUSD    string        `json:"bridgeFeeUsd,omitempty"`
	EstimatedTime   EstimatedTime `json:"estimatedTime"`
	PriceImpact     string        `json:"priceImpact"`
	SafetyRating    SafetyRating  `json:"safetyRating"`
	ExchangeRate    string        `json:"exchangeRate,omitempty"`
	Steps           []RouteStep   `json:"routeSteps,omitempty"`

	Rank          int    `json:"rank"`
	IsRecommended bool   `json:"isRecommended"`
	RouteLabel    string `json:"routeLabel"`
}

// QuoteRequest is the payload sent to the quoting backend.
type QuoteRequest struct {
	FromChainID      ChainID
	ToChainID        ChainID
	FromTokenAddress string
	ToTokenAddress   string
	// Amount is in base units of the source token.
	Amount      string
	UserAddress string
	// Slippage is a percent string, e.g. "0.5".
	Slippage string
}
