// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package memstore is an in-memory implementation of the header, payload,
// and cut database contracts chainweb defines, used by unit tests. It
// models a braid with no reorgs: a
// header once added is permanently on its chain's confirmed frontier.
package memstore

import (
	"context"
	"sync"

	"github.com/jaxnet/spvproof/chainhash"
	"github.com/jaxnet/spvproof/chainweb"
)

// ChainStore is a single chain's header index: by height and by hash,
// plus the running best header.
type ChainStore struct {
	mu        sync.RWMutex
	byHeight  map[chainweb.Height]*chainweb.Header
	byHash    map[chainweb.BlockHash]*chainweb.Header
	maxHeight chainweb.Height
	hasAny    bool
}

// NewChainStore builds an empty ChainStore.
func NewChainStore() *ChainStore {
	return &ChainStore{
		byHeight: make(map[chainweb.Height]*chainweb.Header),
		byHash:   make(map[chainweb.BlockHash]*chainweb.Header),
	}
}

// Put inserts h, extending the chain's best header if h is higher than
// whatever was previously stored.
func (c *ChainStore) Put(h *chainweb.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byHeight[h.Height] = h
	c.byHash[h.BlockHash()] = h
	if !c.hasAny || h.Height > c.maxHeight {
		c.maxHeight = h.Height
		c.hasAny = true
	}
}

func (c *ChainStore) MaxHeader(_ context.Context) (*chainweb.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasAny {
		return nil, chainweb.NewInternalInvariantViolation("memstore: chain has no headers")
	}
	return c.byHeight[c.maxHeight], nil
}

func (c *ChainStore) HeaderAtHeight(_ context.Context, height chainweb.Height) (*chainweb.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byHeight[height], nil
}

func (c *ChainStore) HeaderByHash(_ context.Context, hash chainweb.BlockHash) (*chainweb.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byHash[hash], nil
}

// Store is the aggregate per-chain header web plus the three
// content-addressed payload sub-stores.
type Store struct {
	mu           sync.RWMutex
	chains       map[chainweb.ChainID]*ChainStore
	payloads     map[chainhash.Hash]*chainweb.Payload
	transactions map[chainhash.Hash]chainweb.Transactions
	outputs      map[chainhash.Hash]chainweb.Outputs
}

// New builds an empty Store.
func New() *Store {
	return &Store{
		chains:       make(map[chainweb.ChainID]*ChainStore),
		payloads:     make(map[chainhash.Hash]*chainweb.Payload),
		transactions: make(map[chainhash.Hash]chainweb.Transactions),
		outputs:      make(map[chainhash.Hash]chainweb.Outputs),
	}
}

// Chain returns (creating if needed) the ChainStore for chain.
func (s *Store) Chain(chain chainweb.ChainID) *ChainStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.chains[chain]
	if !ok {
		cs = NewChainStore()
		s.chains[chain] = cs
	}
	return cs
}

// Web returns the chainweb.WebHeaderDB view over every chain currently
// known to the store.
func (s *Store) Web() chainweb.WebHeaderDB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	web := make(chainweb.WebHeaderDB, len(s.chains))
	for id, cs := range s.chains {
		web[id] = cs
	}
	return web
}

// PutBlock stores a header's payload and both body sequences, keyed by
// their respective content hashes, and stores the header itself on its
// chain. It is the fixture-building counterpart to the builder's own
// read-only lookups.
func (s *Store) PutBlock(h *chainweb.Header, payload *chainweb.Payload, txs chainweb.Transactions, outs chainweb.Outputs) {
	s.mu.Lock()
	s.payloads[payload.Hash()] = payload
	s.transactions[payload.TransactionsRoot] = txs
	s.outputs[payload.OutputsRoot] = outs
	s.mu.Unlock()

	s.Chain(h.Chain).Put(h)
}

func (s *Store) BlockPayload(_ context.Context, payloadHash chainhash.Hash) (*chainweb.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payloads[payloadHash], nil
}

func (s *Store) BlockTransactions(_ context.Context, transactionsRoot chainhash.Hash) (chainweb.Transactions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions[transactionsRoot], nil
}

func (s *Store) BlockOutputs(_ context.Context, outputsRoot chainhash.Hash) (chainweb.Outputs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputs[outputsRoot], nil
}

// CutDB is a chainweb.CutDB backed by a Store: the confirmed frontier of
// a chain is every header the store has ever been given for it, since
// Store models a braid with no reorgs.
type CutDB struct {
	store *Store
}

// NewCutDB wraps store as a CutDB.
func NewCutDB(store *Store) *CutDB {
	return &CutDB{store: store}
}

func (c *CutDB) Member(ctx context.Context, chain chainweb.ChainID, hash chainweb.BlockHash) (bool, error) {
	h, err := c.store.Chain(chain).HeaderByHash(ctx, hash)
	if err != nil {
		return false, err
	}
	return h != nil, nil
}

func (c *CutDB) Web() chainweb.WebHeaderDB {
	return c.store.Web()
}
