package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaxnet/spvproof/chainweb"
)

func TestChainStoreTracksMaxHeader(t *testing.T) {
	cs := NewChainStore()
	ctx := context.Background()

	_, err := cs.MaxHeader(ctx)
	require.Error(t, err)

	h0 := &chainweb.Header{Chain: "A", Height: 0}
	h1 := &chainweb.Header{Chain: "A", Height: 1, ParentHash: h0.BlockHash()}
	cs.Put(h0)
	cs.Put(h1)

	max, err := cs.MaxHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, chainweb.Height(1), max.Height)

	byHeight, err := cs.HeaderAtHeight(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, h0.BlockHash(), byHeight.BlockHash())

	byHash, err := cs.HeaderByHash(ctx, h1.BlockHash())
	require.NoError(t, err)
	require.Equal(t, h1.Height, byHash.Height)
}

func TestChainStoreHeaderAtHeightMissIsNilNotError(t *testing.T) {
	cs := NewChainStore()
	h, err := cs.HeaderAtHeight(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, h)
}

func TestStorePutBlockRoundTripsPayloadAndBody(t *testing.T) {
	store := New()
	ctx := context.Background()

	txs := chainweb.Transactions{chainweb.Transaction("tx0"), chainweb.Transaction("tx1")}
	outs := chainweb.Outputs{chainweb.TransactionOutput("out0")}
	payload := &chainweb.Payload{
		TransactionsRoot: chainweb.TransactionsRoot(txs),
		OutputsRoot:      chainweb.OutputsRoot(outs),
	}
	h := &chainweb.Header{Chain: "A", Height: 0, PayloadHash: payload.Hash()}
	store.PutBlock(h, payload, txs, outs)

	gotPayload, err := store.BlockPayload(ctx, h.PayloadHash)
	require.NoError(t, err)
	require.Equal(t, payload.TransactionsRoot, gotPayload.TransactionsRoot)

	gotTxs, err := store.BlockTransactions(ctx, payload.TransactionsRoot)
	require.NoError(t, err)
	require.Equal(t, txs, gotTxs)

	gotOuts, err := store.BlockOutputs(ctx, payload.OutputsRoot)
	require.NoError(t, err)
	require.Equal(t, outs, gotOuts)

	web := store.Web()
	require.Contains(t, web, chainweb.ChainID("A"))
}

func TestCutDBMemberReflectsStore(t *testing.T) {
	store := New()
	ctx := context.Background()
	h := &chainweb.Header{Chain: "A", Height: 0}
	store.Chain("A").Put(h)

	cut := NewCutDB(store)
	ok, err := cut.Member(ctx, "A", h.BlockHash())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cut.Member(ctx, "A", chainweb.BlockHash{})
	require.NoError(t, err)
	require.False(t, ok)
}
