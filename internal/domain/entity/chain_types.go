package entity

// Chain represents a blockchain network supported by the quoting backend.
// The chain set is fetched once at startup and never mutated afterwards.
type Chain struct {
	ID         ChainID `json:"chainIndex"`
	Name       string  `json:"chainName"`
	ShortName  string  `json:"shortName,omitempty"`
	LogoURL    string  `json:"logoUrl,omitempty"`
	Category   string  `json:"category,omitempty"`
	Ecosystem  string  `json:"ecosystem,omitempty"`
	IsMainnet  bool    `json:"isMainnet"`
	TokenCount int     `json:"tokenCount,omitempty"`
	Priority   int     `json:"priority,omitempty"`
	IsPopular  bool    `json:"isPopular"`
}

// Token is a token on a specific chain. The contract address identifies it within that chain.
type Token struct {
	Symbol          string `json:"tokenSymbol"`
	Name            string `json:"tokenName"`
	ContractAddress string `json:"tokenContractAddress"`
	Decimals        int32  `json:"decimals"`
	LogoURL         string `json:"logoUrl,omitempty"`
	IsPopular       bool   `json:"isPopular"`
}

// SameAs reports whether both tokens share a contract address.
func (t *Token) SameAs(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ContractAddress == other.ContractAddress
}
