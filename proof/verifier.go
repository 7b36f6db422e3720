package proof

import (
	"context"

	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/merklelog"
)

// RunTransactionProof folds p's Merkle proof and interprets the resulting
// root as the BlockHash of the header on p.ChainID that witnesses it.
func RunTransactionProof(p *TransactionProof) (chainweb.BlockHash, error) {
	root, err := merklelog.RunProof(p.Proof)
	if err != nil {
		return chainweb.BlockHash{}, chainweb.NewVerificationFailed(err.Error())
	}
	return chainweb.BlockHash(root), nil
}

// RunTransactionOutputProof is the output-proof analogue of
// RunTransactionProof.
func RunTransactionOutputProof(p *TransactionOutputProof) (chainweb.BlockHash, error) {
	root, err := merklelog.RunProof(p.Proof)
	if err != nil {
		return chainweb.BlockHash{}, chainweb.NewVerificationFailed(err.Error())
	}
	return chainweb.BlockHash(root), nil
}

// VerifyTransactionProof runs p's fold, checks the resulting witness
// header is currently a member of p.ChainID's confirmed frontier, and
// returns the transaction the proof claims inclusion for.
func VerifyTransactionProof(ctx context.Context, cut chainweb.CutDB, p *TransactionProof) (chainweb.Transaction, error) {
	h, err := RunTransactionProof(p)
	if err != nil {
		return nil, err
	}
	ok, err := cut.Member(ctx, p.ChainID, h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, chainweb.NewVerificationFailed("target header is not in the chain")
	}
	return chainweb.Transaction(p.Proof.Subject.Content), nil
}

// VerifyTransactionOutputProof is the output-proof analogue of
// VerifyTransactionProof.
func VerifyTransactionOutputProof(ctx context.Context, cut chainweb.CutDB, p *TransactionOutputProof) (chainweb.TransactionOutput, error) {
	h, err := RunTransactionOutputProof(p)
	if err != nil {
		return nil, err
	}
	ok, err := cut.Member(ctx, p.ChainID, h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, chainweb.NewVerificationFailed("target header is not in the chain")
	}
	return chainweb.TransactionOutput(p.Proof.Subject.Content), nil
}
