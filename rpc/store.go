// Package rpc exposes a thin, read-only view over a set of isolated
// lending markets: a chi-routed HTTP surface (http.go) and a gRPC
// snapshot service (rpc/lendingpb), both backed by the MarketStore
// interface defined here. Every mutating operation
// (Supply/Withdraw/Borrow/Repay/Liquidate/...) is exercised directly
// against market.Wrapper by its caller, never over this package — the
// RPC surface only ever reads, mirroring the teacher's
// gateway/routes/lending.go proxy pattern but against an in-memory store
// rather than a remote gRPC backend.
package rpc

import (
	"sort"
	"sync"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/market"
	"github.com/autara-finance/lending-core/position"
)

// MarketRecord pairs a market's address with its current state.
type MarketRecord struct {
	Address autarapubkey.Pubkey
	Market  *market.Market
}

// SupplyPositionRecord pairs a supply position's address with its state.
type SupplyPositionRecord struct {
	Address  autarapubkey.Pubkey
	Position *position.SupplyPosition
}

// BorrowPositionRecord pairs a borrow position's address with its state.
type BorrowPositionRecord struct {
	Address  autarapubkey.Pubkey
	Position *position.BorrowPosition
}

// MarketStore is the read-only view the RPC surface queries. It never
// mutates anything; a caller that wants to change state constructs a
// market.Wrapper from the same underlying market directly.
type MarketStore interface {
	// Markets returns every known market, sorted by address for a stable
	// response ordering.
	Markets() []MarketRecord
	// Market looks up a single market by address.
	Market(addr autarapubkey.Pubkey) (MarketRecord, bool)
	// SupplyPositionsByAuthority returns every supply position the given
	// authority holds, across all markets.
	SupplyPositionsByAuthority(authority autarapubkey.Pubkey) []SupplyPositionRecord
	// BorrowPositionsByAuthority returns every borrow position the given
	// authority holds, across all markets.
	BorrowPositionsByAuthority(authority autarapubkey.Pubkey) []BorrowPositionRecord
}

// MemStore is an in-memory MarketStore, guarded by a single RWMutex the
// way the teacher's in-process caches (e.g. gateway's rate limiter state)
// are guarded for concurrent reader/single-writer access.
type MemStore struct {
	mu              sync.RWMutex
	markets         map[autarapubkey.Pubkey]*market.Market
	supplyPositions map[autarapubkey.Pubkey]*position.SupplyPosition
	borrowPositions map[autarapubkey.Pubkey]*position.BorrowPosition
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		markets:         make(map[autarapubkey.Pubkey]*market.Market),
		supplyPositions: make(map[autarapubkey.Pubkey]*position.SupplyPosition),
		borrowPositions: make(map[autarapubkey.Pubkey]*position.BorrowPosition),
	}
}

// PutMarket inserts or replaces the market stored at addr.
func (s *MemStore) PutMarket(addr autarapubkey.Pubkey, m *market.Market) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markets[addr] = m
}

// PutSupplyPosition inserts or replaces the supply position stored at
// addr.
func (s *MemStore) PutSupplyPosition(addr autarapubkey.Pubkey, p *position.SupplyPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplyPositions[addr] = p
}

// PutBorrowPosition inserts or replaces the borrow position stored at
// addr.
func (s *MemStore) PutBorrowPosition(addr autarapubkey.Pubkey, p *position.BorrowPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.borrowPositions[addr] = p
}

func (s *MemStore) Markets() []MarketRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MarketRecord, 0, len(s.markets))
	for addr, m := range s.markets {
		out = append(out, MarketRecord{Address: addr, Market: m})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address.String() < out[j].Address.String()
	})
	return out
}

func (s *MemStore) Market(addr autarapubkey.Pubkey) (MarketRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markets[addr]
	if !ok {
		return MarketRecord{}, false
	}
	return MarketRecord{Address: addr, Market: m}, true
}

func (s *MemStore) SupplyPositionsByAuthority(authority autarapubkey.Pubkey) []SupplyPositionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SupplyPositionRecord
	for addr, p := range s.supplyPositions {
		if p.Authority == authority {
			out = append(out, SupplyPositionRecord{Address: addr, Position: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address.String() < out[j].Address.String()
	})
	return out
}

func (s *MemStore) BorrowPositionsByAuthority(authority autarapubkey.Pubkey) []BorrowPositionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []BorrowPositionRecord
	for addr, p := range s.borrowPositions {
		if p.Authority == authority {
			out = append(out, BorrowPositionRecord{Address: addr, Position: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address.String() < out[j].Address.String()
	})
	return out
}
