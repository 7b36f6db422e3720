// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package badgerstore is a badger-backed implementation of the header,
// payload, and cut database contracts chainweb defines. It keeps every
// chain's header index and the three payload sub-stores in one badger
// database, namespaced by a one-byte key prefix per record kind.
package badgerstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/jaxnet/spvproof/chainhash"
	"github.com/jaxnet/spvproof/chainweb"
)

const (
	prefixHeaderByHeight byte = 0x01
	prefixHeaderByHash   byte = 0x02
	prefixPayload        byte = 0x03
	prefixTransactions    byte = 0x04
	prefixOutputs         byte = 0x05
)

// headerRecord is the JSON-on-disk shape of a chainweb.Header. Hashes are
// stored as chainhash.Hash, which marshals through its own hex
// MarshalText, rather than chainweb.BlockHash, which has no text codec of
// its own.
type headerRecord struct {
	Chain          string                     `json:"chain"`
	Height         uint64                     `json:"height"`
	PayloadHash    chainhash.Hash             `json:"payload_hash"`
	ParentHash     chainhash.Hash             `json:"parent_hash"`
	AdjacentHashes map[string]chainhash.Hash `json:"adjacent_hashes,omitempty"`
}

func toRecord(h *chainweb.Header) headerRecord {
	adj := make(map[string]chainhash.Hash, len(h.AdjacentHashes))
	for c, bh := range h.AdjacentHashes {
		adj[string(c)] = bh.Hash()
	}
	return headerRecord{
		Chain:          string(h.Chain),
		Height:         uint64(h.Height),
		PayloadHash:    h.PayloadHash,
		ParentHash:     h.ParentHash.Hash(),
		AdjacentHashes: adj,
	}
}

func fromRecord(r headerRecord) *chainweb.Header {
	adj := make(map[chainweb.ChainID]chainweb.BlockHash, len(r.AdjacentHashes))
	for c, hash := range r.AdjacentHashes {
		adj[chainweb.ChainID(c)] = chainweb.BlockHash(hash)
	}
	return &chainweb.Header{
		Chain:          chainweb.ChainID(r.Chain),
		Height:         chainweb.Height(r.Height),
		PayloadHash:    r.PayloadHash,
		ParentHash:     chainweb.BlockHash(r.ParentHash),
		AdjacentHashes: adj,
	}
}

func heightKey(chain chainweb.ChainID, height chainweb.Height) []byte {
	key := make([]byte, 1+len(chain)+8)
	key[0] = prefixHeaderByHeight
	n := copy(key[1:], chain)
	binary.BigEndian.PutUint64(key[1+n:], uint64(height))
	return key
}

func hashKey(prefix byte, hash chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	key[0] = prefix
	copy(key[1:], hash[:])
	return key
}

// Store is the aggregate badger-backed header web plus the three
// content-addressed payload sub-stores, all sharing one database handle.
type Store struct {
	db *badger.DB

	mu        sync.RWMutex
	maxHeight map[chainweb.ChainID]chainweb.Height
}

// Open opens (creating if needed) a badger database at dir and rebuilds
// the per-chain max-height cache by scanning its header-by-height keys.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: open")
	}
	return newStore(db)
}

// OpenInMemory opens an ephemeral in-memory database, used by tests.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true))
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: open in-memory")
	}
	return newStore(db)
}

func newStore(db *badger.DB) (*Store, error) {
	s := &Store{db: db, maxHeight: make(map[chainweb.ChainID]chainweb.Height)}
	if err := s.rebuildMaxHeights(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) rebuildMaxHeights() error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{prefixHeaderByHeight}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var rec headerRecord
			if err := item.Value(func(v []byte) error { return json.Unmarshal(v, &rec) }); err != nil {
				return errors.Wrap(err, "badgerstore: decode header during max-height scan")
			}
			chain := chainweb.ChainID(rec.Chain)
			height := chainweb.Height(rec.Height)
			if cur, ok := s.maxHeight[chain]; !ok || height > cur {
				s.maxHeight[chain] = height
			}
		}
		return nil
	})
}

// Close releases the underlying badger database.
func (s *Store) Close() error { return s.db.Close() }

// Chain returns a chainweb.HeaderDB view scoped to one chain.
func (s *Store) Chain(chain chainweb.ChainID) *ChainStore {
	return &ChainStore{store: s, chain: chain}
}

// Web returns the chainweb.WebHeaderDB view over chains, each backed by
// this store's single badger database.
func (s *Store) Web(chains []chainweb.ChainID) chainweb.WebHeaderDB {
	web := make(chainweb.WebHeaderDB, len(chains))
	for _, c := range chains {
		web[c] = s.Chain(c)
	}
	return web
}

// PutBlock stores a header's payload and both body sequences, keyed by
// their respective content hashes, and stores the header itself under
// both its height key and its hash key, in one badger transaction.
func (s *Store) PutBlock(h *chainweb.Header, payload *chainweb.Payload, txs chainweb.Transactions, outs chainweb.Outputs) error {
	rec := toRecord(h)
	recBytes, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "badgerstore: encode header")
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "badgerstore: encode payload")
	}
	txBytes, err := json.Marshal(txs)
	if err != nil {
		return errors.Wrap(err, "badgerstore: encode transactions")
	}
	outBytes, err := json.Marshal(outs)
	if err != nil {
		return errors.Wrap(err, "badgerstore: encode outputs")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(heightKey(h.Chain, h.Height), recBytes); err != nil {
			return err
		}
		if err := txn.Set(hashKey(prefixHeaderByHash, h.BlockHash().Hash()), recBytes); err != nil {
			return err
		}
		if err := txn.Set(hashKey(prefixPayload, payload.Hash()), payloadBytes); err != nil {
			return err
		}
		if err := txn.Set(hashKey(prefixTransactions, payload.TransactionsRoot), txBytes); err != nil {
			return err
		}
		return txn.Set(hashKey(prefixOutputs, payload.OutputsRoot), outBytes)
	})
	if err != nil {
		return errors.Wrap(err, "badgerstore: put block")
	}

	s.mu.Lock()
	if cur, ok := s.maxHeight[h.Chain]; !ok || h.Height > cur {
		s.maxHeight[h.Chain] = h.Height
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) getHeader(key []byte) (*chainweb.Header, error) {
	var rec headerRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error { return json.Unmarshal(v, &rec) })
	})
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: get header")
	}
	if rec.Chain == "" {
		return nil, nil
	}
	return fromRecord(rec), nil
}

// ChainStore is a chainweb.HeaderDB view scoped to one chain of a Store.
type ChainStore struct {
	store *Store
	chain chainweb.ChainID
}

func (c *ChainStore) MaxHeader(ctx context.Context) (*chainweb.Header, error) {
	c.store.mu.RLock()
	height, ok := c.store.maxHeight[c.chain]
	c.store.mu.RUnlock()
	if !ok {
		return nil, chainweb.NewInternalInvariantViolation("badgerstore: chain " + string(c.chain) + " has no headers")
	}
	return c.HeaderAtHeight(ctx, height)
}

func (c *ChainStore) HeaderAtHeight(_ context.Context, height chainweb.Height) (*chainweb.Header, error) {
	return c.store.getHeader(heightKey(c.chain, height))
}

func (c *ChainStore) HeaderByHash(_ context.Context, hash chainweb.BlockHash) (*chainweb.Header, error) {
	h, err := c.store.getHeader(hashKey(prefixHeaderByHash, hash.Hash()))
	if err != nil || h == nil || h.Chain != c.chain {
		return nil, err
	}
	return h, nil
}

func (s *Store) BlockPayload(_ context.Context, payloadHash chainhash.Hash) (*chainweb.Payload, error) {
	var p *chainweb.Payload
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hashKey(prefixPayload, payloadHash))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			p = &chainweb.Payload{}
			return json.Unmarshal(v, p)
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: get payload")
	}
	return p, nil
}

func (s *Store) BlockTransactions(_ context.Context, transactionsRoot chainhash.Hash) (chainweb.Transactions, error) {
	var txs chainweb.Transactions
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hashKey(prefixTransactions, transactionsRoot))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error { return json.Unmarshal(v, &txs) })
	})
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: get transactions")
	}
	return txs, nil
}

func (s *Store) BlockOutputs(_ context.Context, outputsRoot chainhash.Hash) (chainweb.Outputs, error) {
	var outs chainweb.Outputs
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hashKey(prefixOutputs, outputsRoot))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error { return json.Unmarshal(v, &outs) })
	})
	if err != nil {
		return nil, errors.Wrap(err, "badgerstore: get outputs")
	}
	return outs, nil
}

// CutDB is a chainweb.CutDB backed by a Store, scoped to a fixed set of
// chains (a braid's topology never changes at runtime).
type CutDB struct {
	store  *Store
	chains []chainweb.ChainID
}

// NewCutDB wraps store as a CutDB over chains.
func NewCutDB(store *Store, chains []chainweb.ChainID) *CutDB {
	return &CutDB{store: store, chains: chains}
}

func (c *CutDB) Member(ctx context.Context, chain chainweb.ChainID, hash chainweb.BlockHash) (bool, error) {
	h, err := c.store.Chain(chain).HeaderByHash(ctx, hash)
	if err != nil {
		return false, err
	}
	return h != nil, nil
}

func (c *CutDB) Web() chainweb.WebHeaderDB {
	return c.store.Web(c.chains)
}
