package merklelog

import (
	"fmt"

	"github.com/jaxnet/spvproof/chainhash"
)

// Tree is a binary Merkle tree over a fixed, ordered list of already
// leaf-hashed values. Odd-arity levels duplicate the last sibling, per the
// hash format used throughout this module.
//
// A Tree never mutates its own leaves; splicing a new value into a
// position happens on a throwaway copy, so the same Tree value can back
// many independent frames during proof construction.
type Tree struct {
	leaves []chainhash.Hash
}

// NewTree builds a Tree directly from pre-hashed leaves. It panics if given
// an empty leaf set: the data model never has a zero-leaf body or header
// tree, so an empty Tree indicates a bug in the caller, not user input.
func NewTree(leaves []chainhash.Hash) *Tree {
	if len(leaves) == 0 {
		panic("merklelog: tree must have at least one leaf")
	}
	out := make([]chainhash.Hash, len(leaves))
	copy(out, leaves)
	return &Tree{leaves: out}
}

// Len returns the number of leaves in the tree.
func (t *Tree) Len() int {
	return len(t.leaves)
}

// Root computes the tree's root hash from its current leaves.
func (t *Tree) Root() chainhash.Hash {
	return computeRoot(t.leaves)
}

// RootWithOverride computes the root the tree would have if the leaf at
// position were replaced by override. It does not mutate the receiver.
// It returns an error if position does not address a real leaf.
func (t *Tree) RootWithOverride(position int, override chainhash.Hash) (chainhash.Hash, error) {
	if position < 0 || position >= len(t.leaves) {
		return chainhash.Hash{}, fmt.Errorf("merklelog: position %d out of range [0,%d)", position, len(t.leaves))
	}
	leaves := make([]chainhash.Hash, len(t.leaves))
	copy(leaves, t.leaves)
	leaves[position] = override
	return computeRoot(leaves), nil
}

func computeRoot(level []chainhash.Hash) chainhash.Hash {
	if len(level) == 1 {
		return level[0]
	}
	next := make([]chainhash.Hash, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		if i+1 < len(level) {
			next = append(next, HashNode(level[i], level[i+1]))
		} else {
			next = append(next, HashNode(level[i], level[i]))
		}
	}
	return computeRoot(next)
}

// SequenceTree builds a Tree from an ordered sequence of raw item byte
// slices, each hashed as a leaf under the given tag.
func SequenceTree(tag Tag, items [][]byte) *Tree {
	leaves := make([]chainhash.Hash, len(items))
	for i, item := range items {
		leaves[i] = HashLeaf(tag, item)
	}
	return NewTree(leaves)
}
