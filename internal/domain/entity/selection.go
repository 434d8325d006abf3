package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SelectionState is the user's current bridge selection. A quote fetch is
// only valid when every field is present and the amount is positive.
type SelectionState struct {
	SourceChain ChainID `json:"sourceChain"`
	DestChain   ChainID `json:"destChain"`
	SourceToken *Token  `json:"sourceToken,omitempty"`
	DestToken   *Token  `json:"destToken,omitempty"`
	Amount      string  `json:"amount"`
	Slippage    string  `json:"slippage"`
}

// Valid reports whether a quote may be requested for this selection.
func (s SelectionState) Valid() bool {
	if s.SourceChain == "" || s.DestChain == "" || s.SourceToken == nil || s.DestToken == nil {
		return false
	}
	if strings.TrimSpace(s.Slippage) == "" {
		return false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(s.Amount))
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// Equal compares selections field by field; tokens compare by contract address.
func (s SelectionState) Equal(other SelectionState) bool {
	return s.SourceChain == other.SourceChain &&
		s.DestChain == other.DestChain &&
		s.SourceToken.SameAs(other.SourceToken) &&
		s.DestToken.SameAs(other.DestToken) &&
		s.Amount == other.Amount &&
		s.Slippage == other.Slippage
}

// Clone returns a copy that shares no token pointers with s.
func (s SelectionState) Clone() SelectionState {
	out := s
	if s.SourceToken != nil {
		t := *s.SourceToken
		out.SourceToken = &t
	}
	if s.DestToken != nil {
		t := *s.DestToken
		out.DestToken = &t
	}
	return out
}
