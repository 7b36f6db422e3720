// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainweb holds the data model of the braided chain: chain
// identifiers, block headers and payloads, the fixed adjacency graph
// between chains, and the store/cut-database contracts the proof builder
// and verifier need to traverse it.
package chainweb

import (
	"sort"

	"github.com/jaxnet/spvproof/chainhash"
)

// ChainID opaquely identifies one chain within the braided set. It is
// compared and sorted by its natural string ordering, which is also the
// canonical encoding used wherever a deterministic tie-break or ordering
// is required (shortest-path search, a header's adjacent-hash ordering).
type ChainID string

// Height is a block height: non-negative, monotone along the parent
// relation of a single chain.
type Height uint64

// BlockHash is the identity of a header: the root of its canonical Merkle
// encoding. It wraps a chainhash.Hash rather than aliasing it so that a
// header's own identity is never accidentally interchanged with an
// arbitrary content hash at the type level.
type BlockHash chainhash.Hash

// Hash returns the underlying digest.
func (h BlockHash) Hash() chainhash.Hash { return chainhash.Hash(h) }

func (h BlockHash) String() string { return chainhash.Hash(h).String() }

// IsZero reports whether h is the zero hash, used to mark "no parent" at
// a chain's genesis header.
func (h BlockHash) IsZero() bool { return h == BlockHash{} }

// Header is a block header on one chain of the braid. Besides its own
// identity fields it carries one adjacent-parent hash per neighboring
// chain in the ChainGraph, which is what lets a proof hop sideways between
// chains as well as walking back through a single chain's parent chain.
type Header struct {
	Chain          ChainID
	Height         Height
	PayloadHash    chainhash.Hash
	ParentHash     BlockHash
	AdjacentHashes map[ChainID]BlockHash
}

// IsGenesis reports whether h has no parent.
func (h *Header) IsGenesis() bool { return h.ParentHash.IsZero() }

// SortedAdjacentChains returns the chains named in h.AdjacentHashes, in
// their canonical (lexicographic ChainID) order. This ordering is what
// both ChainIdxInAdjacentRecord and the header's Merkle encoding use, so
// the two always agree on which leaf position names which neighbor.
func (h *Header) SortedAdjacentChains() []ChainID {
	chains := make([]ChainID, 0, len(h.AdjacentHashes))
	for c := range h.AdjacentHashes {
		chains = append(chains, c)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })
	return chains
}

// Payload holds a block's two sub-roots. Its own hash is the value stored
// as PayloadHash in the header that owns it.
type Payload struct {
	TransactionsRoot chainhash.Hash
	OutputsRoot      chainhash.Hash
}

// Transaction is a single, already-encoded transaction.
type Transaction []byte

// TransactionOutput is a single, already-encoded transaction output.
type TransactionOutput []byte

// Transactions is the ordered sequence of a block's transactions; its
// Merkle root is the payload's TransactionsRoot.
type Transactions []Transaction

// Outputs is the ordered sequence of a block's transaction outputs; its
// Merkle root is the payload's OutputsRoot.
type Outputs []TransactionOutput
