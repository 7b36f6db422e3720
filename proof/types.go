// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof builds and verifies SPV proofs that a transaction or
// transaction output was included in the canonical history of one chain
// of the braid, checkable by a party who knows only another chain's
// current head.
package proof

import (
	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/merklelog"
)

// TransactionProof is opaque to callers: a tagged pair naming the target
// chain whose current head must witness the proof, and the Merkle proof
// folding from the transaction's bytes up to that chain head's hash.
type TransactionProof struct {
	ChainID chainweb.ChainID
	Proof   *merklelog.Proof
}

// TransactionOutputProof is the output-proof analogue of TransactionProof.
type TransactionOutputProof struct {
	ChainID chainweb.ChainID
	Proof   *merklelog.Proof
}
