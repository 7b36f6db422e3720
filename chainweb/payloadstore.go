package chainweb

import (
	"context"

	"github.com/jaxnet/spvproof/chainhash"
)

// PayloadStore is the content-addressed store of block payloads and their
// two body sequences: BlockPayload, BlockTransactions, BlockOutputs.
// In-memory and badger backends both implement it uniformly. A missing
// lookup returns a nil value and a nil error, so presence is signaled
// purely by the returned pointer/slice, not by a distinct not-found error.
// Distinguishing "genuinely absent" from "store error" is the caller's
// job: the proof builder treats any nil result as InconsistentPayloadData.
type PayloadStore interface {
	BlockPayload(ctx context.Context, payloadHash chainhash.Hash) (*Payload, error)
	BlockTransactions(ctx context.Context, transactionsRoot chainhash.Hash) (Transactions, error)
	BlockOutputs(ctx context.Context, outputsRoot chainhash.Hash) (Outputs, error)
}
