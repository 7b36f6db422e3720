package chainweb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaxnet/spvproof/chainhash"
)

func genesisHeader(chain ChainID) *Header {
	return &Header{
		Chain:          chain,
		Height:         0,
		PayloadHash:    chainhash.HashH([]byte(string(chain) + "-genesis-payload")),
		ParentHash:     BlockHash{},
		AdjacentHashes: map[ChainID]BlockHash{},
	}
}

func TestHeaderFrameReproducesBlockHash(t *testing.T) {
	h := &Header{
		Chain:       "A",
		Height:      1,
		PayloadHash: chainhash.HashH([]byte("payload")),
		ParentHash:  BlockHash(chainhash.HashH([]byte("parent"))),
		AdjacentHashes: map[ChainID]BlockHash{
			"B": BlockHash(chainhash.HashH([]byte("adjB"))),
			"C": BlockHash(chainhash.HashH([]byte("adjC"))),
		},
	}

	frame, err := HeaderFrame(h, TagPayloadHash)
	require.NoError(t, err)
	require.Equal(t, h.BlockHash().Hash(), frame.Tree.Root())
}

func TestHeaderFrameUnknownAdjacentTagFails(t *testing.T) {
	h := genesisHeader("A")
	_, err := HeaderFrame(h, TagAdjacentParent("Z"))
	require.Error(t, err)
	require.True(t, IsKind(err, KindInternalInvariantViolation))
}

func TestChainIdxInAdjacentRecordMatchesHeaderFramePosition(t *testing.T) {
	h := &Header{
		Chain:       "A",
		Height:      1,
		PayloadHash: chainhash.HashH([]byte("payload")),
		ParentHash:  BlockHash(chainhash.HashH([]byte("parent"))),
		AdjacentHashes: map[ChainID]BlockHash{
			"B": BlockHash(chainhash.HashH([]byte("adjB"))),
			"C": BlockHash(chainhash.HashH([]byte("adjC"))),
		},
	}

	idx, err := ChainIdxInAdjacentRecord(h, "C")
	require.NoError(t, err)

	frame, err := HeaderFrame(h, TagAdjacentParent("C"))
	require.NoError(t, err)
	require.Equal(t, idx, frame.Position)
}

func TestPayloadHashMatchesPayloadFrame(t *testing.T) {
	p := &Payload{
		TransactionsRoot: chainhash.HashH([]byte("txs")),
		OutputsRoot:      chainhash.HashH([]byte("outs")),
	}
	frame, err := PayloadFrame(p, TagTransactionsRoot)
	require.NoError(t, err)
	require.Equal(t, p.Hash(), frame.Tree.Root())
}

func TestTransactionsRootMatchesTransactionFrame(t *testing.T) {
	txs := Transactions{Transaction("tx0"), Transaction("tx1"), Transaction("tx2")}
	_, frame, err := TransactionFrame(txs, 1)
	require.NoError(t, err)
	require.Equal(t, TransactionsRoot(txs), frame.Tree.Root())
}
