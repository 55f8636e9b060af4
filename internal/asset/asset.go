// Package asset resolves ERC20 contract addresses to the tokens they belong to.
// DEX tickers often name a pair by contract address rather than symbol.
package asset

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an ERC20 token deployed on a chain.
// The address is its identity; the symbol is display metadata.
type Token struct {
	chainID  uint64
	address  common.Address
	symbol   string
	name     string
	decimals uint8
}

// NewToken creates a token. It panics on a zero address or empty symbol.
func NewToken(chainID uint64, address common.Address, symbol, name string, decimals uint8) *Token {
	if address == (common.Address{}) {
		panic("asset: zero token address")
	}
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > 30 {
		panic("asset: suspicious decimals (>30)")
	}
	return &Token{
		chainID:  chainID,
		address:  address,
		symbol:   symbol,
		name:     name,
		decimals: decimals,
	}
}

// ChainID returns the chain the token lives on.
func (t *Token) ChainID() uint64 { return t.chainID }

// Address returns the token contract address.
func (t *Token) Address() common.Address { return t.address }

// Symbol returns the ticker symbol (e.g., "WETH").
func (t *Token) Symbol() string { return t.symbol }

// Name returns the human-readable name, falling back to the symbol.
func (t *Token) Name() string {
	if t.name == "" {
		return t.symbol
	}
	return t.name
}

// Decimals returns the number of decimal places.
func (t *Token) Decimals() uint8 { return t.decimals }

// String returns "SYMBOL@chain:0x...".
func (t *Token) String() string {
	return fmt.Sprintf("%s@%d:%s", t.symbol, t.chainID, t.address.Hex())
}
