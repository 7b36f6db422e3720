package chainweb

import "context"

// HeaderDB is the per-chain header index: lookups by height and by hash,
// plus the current best ("max") header according to the chain's confirmed
// frontier. Implementations must be safe for concurrent reads; the proof
// builder and verifier never mutate a HeaderDB.
type HeaderDB interface {
	// MaxHeader returns the chain's current best header.
	MaxHeader(ctx context.Context) (*Header, error)
	// HeaderAtHeight returns the header at the given height on this
	// chain, or nil if none is stored (a height above the chain's
	// current best, or a reorged-away height).
	HeaderAtHeight(ctx context.Context, height Height) (*Header, error)
	// HeaderByHash returns the header with the given identity hash on
	// this chain, or nil if none is stored.
	HeaderByHash(ctx context.Context, hash BlockHash) (*Header, error)
}

// WebHeaderDB is the aggregate, per-chain header index handed to the
// builder and verifier: one HeaderDB per chain, keyed by chain ID.
type WebHeaderDB map[ChainID]HeaderDB

// DB returns the HeaderDB for chain, or an InternalInvariantViolation if
// the web has no entry for it.
func (w WebHeaderDB) DB(chain ChainID) (HeaderDB, error) {
	db, ok := w[chain]
	if !ok {
		return nil, NewInternalInvariantViolation("chainweb: no header db for chain " + string(chain))
	}
	return db, nil
}

// MaxHeader fetches the current best header of chain via the web.
func MaxHeader(ctx context.Context, web WebHeaderDB, chain ChainID) (*Header, error) {
	db, err := web.DB(chain)
	if err != nil {
		return nil, err
	}
	return db.MaxHeader(ctx)
}

// LookupParentHeader returns h's parent header on the same chain. It
// fails with InternalInvariantViolation if h is a genesis header. The
// data model guarantees every non-genesis header has a parent, so a
// caller asking for one at genesis is itself the invariant violation.
func LookupParentHeader(ctx context.Context, web WebHeaderDB, h *Header) (*Header, error) {
	if h.IsGenesis() {
		return nil, NewInternalInvariantViolation("chainweb: header " + string(h.Chain) + " has no parent at genesis")
	}
	db, err := web.DB(h.Chain)
	if err != nil {
		return nil, err
	}
	parent, err := db.HeaderByHash(ctx, h.ParentHash)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, NewInternalInvariantViolation("chainweb: missing parent header " + h.ParentHash.String() + " for " + string(h.Chain))
	}
	return parent, nil
}

// LookupAdjacentParentHeader returns the header on chain adj that h's
// adjacent-hash map names for that neighbor. It fails with
// InternalInvariantViolation if h has no adjacent-hash entry for adj, or
// if the header the entry names is missing from adj's store. Both cases
// violate the data-model invariant that every non-genesis header carries
// a valid adjacent-parent hash for every neighbor chain.
func LookupAdjacentParentHeader(ctx context.Context, web WebHeaderDB, h *Header, adj ChainID) (*Header, error) {
	target, ok := h.AdjacentHashes[adj]
	if !ok {
		return nil, NewInternalInvariantViolation("chainweb: header " + string(h.Chain) + " has no adjacent-parent hash for chain " + string(adj))
	}
	db, err := web.DB(adj)
	if err != nil {
		return nil, err
	}
	header, err := db.HeaderByHash(ctx, target)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, NewInternalInvariantViolation("chainweb: missing adjacent-parent header " + target.String() + " on chain " + string(adj))
	}
	return header, nil
}
