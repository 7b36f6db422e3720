package proof

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/merklelog"
)

// Builder orchestrates graph traversal, content-addressed store fetches,
// and Merkle-prefix construction into a single proof. It is synchronous
// and single-threaded with respect to one proof; multiple Builders (or
// concurrent calls against one, since it holds no mutable state of its
// own) may run in parallel as long as the underlying Cut and Payloads
// implementations are safe for concurrent reads.
type Builder struct {
	Cut      chainweb.CutDB
	Payloads chainweb.PayloadStore
	Graph    *chainweb.ChainGraph
	Log      zerolog.Logger
}

// NewBuilder constructs a Builder over the given collaborators.
func NewBuilder(cut chainweb.CutDB, payloads chainweb.PayloadStore, graph *chainweb.ChainGraph, log zerolog.Logger) *Builder {
	return &Builder{Cut: cut, Payloads: payloads, Graph: graph, Log: log}
}

// spine is the shared result of walking from the target chain's head down
// to the requested source leaf: everything a transaction proof and an
// output proof need in common before they diverge on which payload
// sub-tree to open.
type spine struct {
	srcHeader   *chainweb.Header
	payload     *chainweb.Payload
	headerSpine []merklelog.Frame
}

// buildSpine performs spec steps 1-4, 6-7: head & reachability, the
// adjacent-edge walk, the parent walk, opening the payload, and the
// consistency check, assembling every header-level frame along the way.
// It stops short of opening the leaf-level body tree, since that is the
// one step transaction and output proofs differ on.
func (b *Builder) buildSpine(ctx context.Context, targetChain, sourceChain chainweb.ChainID, srcHeight chainweb.Height) (*spine, error) {
	web := b.Cut.Web()

	trgHead, err := chainweb.MaxHeader(ctx, web, targetChain)
	if err != nil {
		return nil, err
	}
	path, err := b.Graph.ShortestPath(targetChain, sourceChain)
	if err != nil {
		return nil, err
	}
	if uint64(trgHead.Height)+1 < uint64(len(path)) {
		return nil, chainweb.NewTargetNotReachable("chain too young")
	}

	b.Log.Debug().
		Str("target_chain", string(targetChain)).
		Str("source_chain", string(sourceChain)).
		Int("hops", len(path)).
		Msg("walking adjacent edges toward source chain")

	cur := trgHead
	crossFrames := make([]merklelog.Frame, 0, len(path))
	for _, hop := range path {
		frame, err := chainweb.HeaderFrame(cur, chainweb.TagAdjacentParent(hop))
		if err != nil {
			return nil, err
		}
		crossFrames = append(crossFrames, frame)

		next, err := chainweb.LookupAdjacentParentHeader(ctx, web, cur, hop)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	srcHead := cur

	if srcHead.Height < srcHeight {
		return nil, chainweb.NewTargetNotReachable("source transaction above reachable source head")
	}

	b.Log.Debug().
		Str("source_chain", string(sourceChain)).
		Uint64("src_head_height", uint64(srcHead.Height)).
		Uint64("src_height", uint64(srcHeight)).
		Msg("walking parent edges down to source height")

	// Walk parent edges from srcHead down to srcHeight, then reverse so
	// the list reads ascending: [srcHeader, ..., srcHead].
	descending := []*chainweb.Header{srcHead}
	for descending[len(descending)-1].Height > srcHeight {
		h := descending[len(descending)-1]
		parent, err := chainweb.LookupParentHeader(ctx, web, h)
		if err != nil {
			return nil, err
		}
		descending = append(descending, parent)
	}
	if descending[len(descending)-1].Height != srcHeight {
		return nil, chainweb.NewTargetNotReachable("parent walk could not land on requested source height")
	}
	ascending := make([]*chainweb.Header, len(descending))
	for i, h := range descending {
		ascending[len(descending)-1-i] = h
	}
	srcHeader := ascending[0]

	payload, err := b.Payloads.BlockPayload(ctx, srcHeader.PayloadHash)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, chainweb.NewInconsistentPayloadData("missing block payload for header "+srcHeader.BlockHash().String(), nil)
	}
	if payload.Hash() != srcHeader.PayloadHash {
		return nil, chainweb.NewInconsistentPayloadData("stored payload hash does not match header's payload-hash field", nil)
	}

	headerSpine := make([]merklelog.Frame, 0, len(ascending)+len(crossFrames))

	payloadFrame, err := chainweb.HeaderFrame(srcHeader, chainweb.TagPayloadHash)
	if err != nil {
		return nil, err
	}
	headerSpine = append(headerSpine, payloadFrame)

	for _, h := range ascending[1:] {
		f, err := chainweb.HeaderFrame(h, chainweb.TagParent)
		if err != nil {
			return nil, err
		}
		headerSpine = append(headerSpine, f)
	}

	// crossFrames were collected walking target -> source (trgHead
	// first); folding must walk source -> target so the final frame
	// produces trgHead's own hash, so the frames are appended reversed.
	for i := len(crossFrames) - 1; i >= 0; i-- {
		headerSpine = append(headerSpine, crossFrames[i])
	}

	return &spine{srcHeader: srcHeader, payload: payload, headerSpine: headerSpine}, nil
}

// CreateTransactionProof builds an SPV proof that the transaction at
// leafIndex in the block at srcHeight on sourceChain is checkable against
// targetChain's current head.
func (b *Builder) CreateTransactionProof(ctx context.Context, targetChain, sourceChain chainweb.ChainID, srcHeight chainweb.Height, leafIndex int) (*TransactionProof, error) {
	sp, err := b.buildSpine(ctx, targetChain, sourceChain, srcHeight)
	if err != nil {
		return nil, err
	}

	txs, err := b.Payloads.BlockTransactions(ctx, sp.payload.TransactionsRoot)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		return nil, chainweb.NewInconsistentPayloadData("missing transaction list for transactions root", nil)
	}

	subject, bodyFrame, ferr := chainweb.TransactionFrame(txs, leafIndex)
	if ferr != nil {
		return nil, chainweb.NewTargetNotReachable("transaction index out of range for block")
	}
	payloadFrame, err := chainweb.PayloadFrame(sp.payload, chainweb.TagTransactionsRoot)
	if err != nil {
		return nil, err
	}

	frames := append([]merklelog.Frame{bodyFrame, payloadFrame}, sp.headerSpine...)
	mp, err := merklelog.NewProof(subject, frames)
	if err != nil {
		return nil, err
	}

	return &TransactionProof{ChainID: targetChain, Proof: mp}, nil
}

// CreateTransactionOutputProof is the output-proof analogue of
// CreateTransactionProof: identical traversal, but opens the block's
// output list instead of its transaction list.
func (b *Builder) CreateTransactionOutputProof(ctx context.Context, targetChain, sourceChain chainweb.ChainID, srcHeight chainweb.Height, leafIndex int) (*TransactionOutputProof, error) {
	sp, err := b.buildSpine(ctx, targetChain, sourceChain, srcHeight)
	if err != nil {
		return nil, err
	}

	outs, err := b.Payloads.BlockOutputs(ctx, sp.payload.OutputsRoot)
	if err != nil {
		return nil, err
	}
	if outs == nil {
		return nil, chainweb.NewInconsistentPayloadData("missing output list for outputs root", nil)
	}

	subject, bodyFrame, ferr := chainweb.OutputFrame(outs, leafIndex)
	if ferr != nil {
		return nil, chainweb.NewTargetNotReachable("output index out of range for block")
	}
	payloadFrame, err := chainweb.PayloadFrame(sp.payload, chainweb.TagOutputsRoot)
	if err != nil {
		return nil, err
	}

	frames := append([]merklelog.Frame{bodyFrame, payloadFrame}, sp.headerSpine...)
	mp, err := merklelog.NewProof(subject, frames)
	if err != nil {
		return nil, err
	}

	return &TransactionOutputProof{ChainID: targetChain, Proof: mp}, nil
}
