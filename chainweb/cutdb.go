package chainweb

import "context"

// CutDB is the facade over the current confirmed frontier ("cut") of the
// braided chain: one header per chain, as of a single consistent
// snapshot. It answers the one question the verifier needs, whether a
// hash is currently on a given chain, and hands the builder the aggregate
// header index needed to walk the braid.
//
// Two sequential calls may observe different frontiers if the underlying
// chain reorganizes between them; this package makes no attempt to hide
// that, since a proof invalidated by a reorg is expected to simply fail
// at verification.
type CutDB interface {
	// Member reports whether hash names a header currently on chain's
	// confirmed frontier.
	Member(ctx context.Context, chain ChainID, hash BlockHash) (bool, error)
	// Web returns the aggregate per-chain header index backing this cut
	// database.
	Web() WebHeaderDB
}
