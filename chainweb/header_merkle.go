package chainweb

import (
	"fmt"

	"github.com/jaxnet/spvproof/chainhash"
	"github.com/jaxnet/spvproof/merklelog"
)

// Canonical Merkle-universe tags for a header's direct children. An
// adjacent-parent child is tagged per neighbor chain (TagAdjacentParent),
// since the same hash value playing the role of "parent" on one chain and
// "adjacent parent on chain C" on another must never hash identically.
const (
	TagPayloadHash merklelog.Tag = "payload-hash"
	TagParent      merklelog.Tag = "parent"

	TagTransactionsRoot merklelog.Tag = "transactions-root"
	TagOutputsRoot      merklelog.Tag = "outputs-root"

	TagTransaction merklelog.Tag = "transaction"
	TagOutput      merklelog.Tag = "output"
)

// TagAdjacentParent is the per-neighbor Merkle-universe tag for the
// adjacent-parent child naming chain.
func TagAdjacentParent(chain ChainID) merklelog.Tag {
	return merklelog.Tag("adjacent-parent:" + string(chain))
}

type headerField struct {
	tag     merklelog.Tag
	content []byte
}

// canonicalHeaderFields lists h's direct Merkle children in the single
// canonical order every header-tree builder and every
// ChainIdxInAdjacentRecord call must agree on: payload hash, then parent
// hash, then each adjacent-parent hash sorted by chain ID.
func canonicalHeaderFields(h *Header) []headerField {
	payload := h.PayloadHash
	parent := h.ParentHash.Hash()
	fields := []headerField{
		{TagPayloadHash, payload[:]},
		{TagParent, parent[:]},
	}
	for _, chain := range h.SortedAdjacentChains() {
		adj := h.AdjacentHashes[chain].Hash()
		fields = append(fields, headerField{TagAdjacentParent(chain), adj[:]})
	}
	return fields
}

func headerTree(h *Header) *merklelog.Tree {
	fields := canonicalHeaderFields(h)
	leaves := make([]chainhash.Hash, len(fields))
	for i, f := range fields {
		leaves[i] = merklelog.HashLeaf(f.tag, f.content)
	}
	return merklelog.NewTree(leaves)
}

// BlockHash computes h's identity: the root of its canonical Merkle
// encoding. The data model requires this to be the value every other
// header's ParentHash / AdjacentHashes entry for h actually stores.
func (h *Header) BlockHash() BlockHash {
	return BlockHash(headerTree(h).Root())
}

// HeaderFrame builds the (position, tree) frame that splices through the
// child of h named by tag. It fails with InternalInvariantViolation if
// tag does not name one of h's children (e.g. an adjacent-parent tag for
// a chain h has no adjacency to).
func HeaderFrame(h *Header, tag merklelog.Tag) (merklelog.Frame, error) {
	fields := canonicalHeaderFields(h)
	for i, f := range fields {
		if f.tag == tag {
			return merklelog.Frame{Position: i, Tag: tag, Tree: headerTree(h)}, nil
		}
	}
	return merklelog.Frame{}, NewInternalInvariantViolation(
		fmt.Sprintf("header %s@%d has no child tagged %q", h.Chain, h.Height, tag))
}

// ChainIdxInAdjacentRecord returns the position of chain's adjacent-parent
// hash within h's canonical Merkle encoding, the frame position the
// cross-chain step in proof construction splices through.
func ChainIdxInAdjacentRecord(h *Header, chain ChainID) (int, error) {
	if _, ok := h.AdjacentHashes[chain]; !ok {
		return 0, NewInternalInvariantViolation(
			fmt.Sprintf("header %s@%d has no adjacent-parent hash for chain %s", h.Chain, h.Height, chain))
	}
	fields := canonicalHeaderFields(h)
	tag := TagAdjacentParent(chain)
	for i, f := range fields {
		if f.tag == tag {
			return i, nil
		}
	}
	return 0, NewInternalInvariantViolation(
		fmt.Sprintf("header %s@%d: adjacent-parent tag for chain %s not found in canonical encoding", h.Chain, h.Height, chain))
}

func payloadTree(p *Payload) *merklelog.Tree {
	return merklelog.NewTree([]chainhash.Hash{
		merklelog.HashLeaf(TagTransactionsRoot, p.TransactionsRoot[:]),
		merklelog.HashLeaf(TagOutputsRoot, p.OutputsRoot[:]),
	})
}

// Hash computes p's identity: the root of its canonical Merkle encoding.
// The data model requires this to equal the owning header's PayloadHash.
func (p *Payload) Hash() chainhash.Hash {
	return payloadTree(p).Root()
}

// PayloadFrame builds the (position, tree) frame that splices through the
// child of p named by tag (TagTransactionsRoot or TagOutputsRoot).
func PayloadFrame(p *Payload, tag merklelog.Tag) (merklelog.Frame, error) {
	switch tag {
	case TagTransactionsRoot:
		return merklelog.Frame{Position: 0, Tag: tag, Tree: payloadTree(p)}, nil
	case TagOutputsRoot:
		return merklelog.Frame{Position: 1, Tag: tag, Tree: payloadTree(p)}, nil
	default:
		return merklelog.Frame{}, NewInternalInvariantViolation(fmt.Sprintf("payload has no child tagged %q", tag))
	}
}

// transactionBytes and outputBytes adapt a typed body sequence to the
// raw byte slices SequenceTree and SequenceFrame operate on.
func transactionBytes(txs Transactions) [][]byte {
	out := make([][]byte, len(txs))
	for i, tx := range txs {
		out[i] = tx
	}
	return out
}

func outputBytes(outs Outputs) [][]byte {
	out := make([][]byte, len(outs))
	for i, o := range outs {
		out[i] = o
	}
	return out
}

// TransactionsRoot computes the Merkle root of an ordered transaction
// sequence, matching what a Payload's TransactionsRoot must equal.
func TransactionsRoot(txs Transactions) chainhash.Hash {
	return merklelog.SequenceTree(TagTransaction, transactionBytes(txs)).Root()
}

// OutputsRoot computes the Merkle root of an ordered output sequence,
// matching what a Payload's OutputsRoot must equal.
func OutputsRoot(outs Outputs) chainhash.Hash {
	return merklelog.SequenceTree(TagOutput, outputBytes(outs)).Root()
}

// TransactionFrame builds the (subject, frame) pair for leaf index in an
// ordered transaction sequence.
func TransactionFrame(txs Transactions, index int) (merklelog.Subject, merklelog.Frame, error) {
	return merklelog.SequenceFrame(TagTransaction, transactionBytes(txs), index)
}

// OutputFrame builds the (subject, frame) pair for leaf index in an
// ordered output sequence.
func OutputFrame(outs Outputs, index int) (merklelog.Subject, merklelog.Frame, error) {
	return merklelog.SequenceFrame(TagOutput, outputBytes(outs), index)
}
