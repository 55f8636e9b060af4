package asset

import "github.com/ethereum/go-ethereum/common"

// Chain IDs
const (
	ChainIDEthereum = 1
	ChainIDArbitrum = 42161
)

// Well-known token addresses on Ethereum Mainnet
var (
	// Stablecoins
	AddrUSDCEthereum = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	AddrUSDTEthereum = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	AddrDAIEthereum  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")

	// Wrapped
	AddrWETHEthereum = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	AddrWBTCEthereum = common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599")

	// Governance
	AddrLINKEthereum = common.HexToAddress("0x514910771AF9Ca656af840dff83E8264EcF986CA")
	AddrUNIEthereum  = common.HexToAddress("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984")
)

// Well-known token addresses on Arbitrum One
var (
	AddrUSDCArbitrum = common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831")
	AddrWETHArbitrum = common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1")
)

// DefaultRegistry returns a registry pre-populated with well-known tokens.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Ethereum Mainnet
	r.Register(NewToken(ChainIDEthereum, AddrUSDCEthereum, "USDC", "USD Coin", 6))
	r.Register(NewToken(ChainIDEthereum, AddrUSDTEthereum, "USDT", "Tether USD", 6))
	r.Register(NewToken(ChainIDEthereum, AddrDAIEthereum, "DAI", "Dai Stablecoin", 18))
	r.Register(NewToken(ChainIDEthereum, AddrWETHEthereum, "WETH", "Wrapped Ether", 18))
	r.Register(NewToken(ChainIDEthereum, AddrWBTCEthereum, "WBTC", "Wrapped Bitcoin", 8))
	r.Register(NewToken(ChainIDEthereum, AddrLINKEthereum, "LINK", "Chainlink", 18))
	r.Register(NewToken(ChainIDEthereum, AddrUNIEthereum, "UNI", "Uniswap", 18))

	// Arbitrum One
	r.Register(NewToken(ChainIDArbitrum, AddrUSDCArbitrum, "USDC", "USD Coin", 6))
	r.Register(NewToken(ChainIDArbitrum, AddrWETHArbitrum, "WETH", "Wrapped Ether", 18))

	return r
}
