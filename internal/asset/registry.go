package asset

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type tokenKey struct {
	chainID uint64
	address common.Address
}

// Registry is a thread-safe registry of known tokens.
type Registry struct {
	byKey     map[tokenKey]*Token
	byAddress map[common.Address][]*Token // same address may be deployed on several chains
	bySymbol  map[string][]*Token
	mu        sync.RWMutex
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:     make(map[tokenKey]*Token),
		byAddress: make(map[common.Address][]*Token),
		bySymbol:  make(map[string][]*Token),
	}
}

// Register adds a token to the registry.
// Panics if the token is already registered on its chain.
func (r *Registry) Register(t *Token) {
	if t == nil {
		panic("asset: cannot register nil token")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := tokenKey{chainID: t.chainID, address: t.address}
	if _, exists := r.byKey[key]; exists {
		panic(fmt.Sprintf("asset: %s already registered", t))
	}

	r.byKey[key] = t
	r.byAddress[t.address] = append(r.byAddress[t.address], t)
	sym := strings.ToUpper(t.symbol)
	r.bySymbol[sym] = append(r.bySymbol[sym], t)
}

// Get retrieves a token by chain and address.
func (r *Registry) Get(chainID uint64, address common.Address) (*Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byKey[tokenKey{chainID: chainID, address: address}]
	return t, ok
}

// Lookup resolves a hex address on any chain. When the address is
// registered on several chains the first registration wins.
func (r *Registry) Lookup(hex string) (*Token, bool) {
	if !common.IsHexAddress(hex) {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := r.byAddress[common.HexToAddress(hex)]
	if len(tokens) == 0 {
		return nil, false
	}
	return tokens[0], true
}

// BySymbol returns every token with the given symbol, case-insensitively.
// Returns nil if none are registered.
func (r *Registry) BySymbol(symbol string) []*Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := r.bySymbol[strings.ToUpper(symbol)]
	if len(tokens) == 0 {
		return nil
	}

	// Return a copy to prevent mutation
	result := make([]*Token, len(tokens))
	copy(result, tokens)
	return result
}

// Count returns the number of registered tokens.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
