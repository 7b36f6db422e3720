// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"fmt"

	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/store/badgerstore"
)

// seedFixture writes a deterministic braided chainweb into store: every
// chain gets leaves transactions and leaves outputs per block from
// genesis up to maxHeight, with every header linked to its same-chain
// parent and to the header one height lower on every chain graph says it
// is adjacent to. Transaction and output bytes are named by chain and
// height so a seeded store's proofs are reproducible across runs.
func seedFixture(store *badgerstore.Store, graph *chainweb.ChainGraph, chains []chainweb.ChainID, maxHeight chainweb.Height, leaves int) error {
	if leaves < 1 {
		leaves = 1
	}
	prev := map[chainweb.ChainID]*chainweb.Header{}

	for height := chainweb.Height(0); height <= maxHeight; height++ {
		cur := map[chainweb.ChainID]*chainweb.Header{}
		for _, c := range chains {
			txs := make(chainweb.Transactions, leaves)
			outs := make(chainweb.Outputs, leaves)
			for i := 0; i < leaves; i++ {
				txs[i] = chainweb.Transaction(fmt.Sprintf("%s-%d-tx%d", c, height, i))
				outs[i] = chainweb.TransactionOutput(fmt.Sprintf("%s-%d-out%d", c, height, i))
			}
			payload := &chainweb.Payload{
				TransactionsRoot: chainweb.TransactionsRoot(txs),
				OutputsRoot:      chainweb.OutputsRoot(outs),
			}
			h := &chainweb.Header{
				Chain:          c,
				Height:         height,
				PayloadHash:    payload.Hash(),
				AdjacentHashes: map[chainweb.ChainID]chainweb.BlockHash{},
			}
			if height > 0 {
				h.ParentHash = prev[c].BlockHash()
				for _, n := range graph.Adjacent(c) {
					h.AdjacentHashes[n] = prev[n].BlockHash()
				}
			}
			if err := store.PutBlock(h, payload, txs, outs); err != nil {
				return err
			}
			cur[c] = h
		}
		prev = cur
	}
	return nil
}
