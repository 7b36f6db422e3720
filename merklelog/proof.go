package merklelog

import (
	"github.com/pkg/errors"

	"github.com/jaxnet/spvproof/chainhash"
)

// ErrMalformedProof is returned by NewProof when a frame's position does
// not address a real leaf of its tree, or when the frame list is empty.
var ErrMalformedProof = errors.New("merklelog: malformed proof")

// Subject is the leaf a proof is about: either raw bytes (a transaction,
// an output) or a hash, tagged with the Merkle-universe tag of the slot it
// occupies in Frames[0]'s tree.
type Subject struct {
	Tag     Tag
	Content []byte
}

// Frame is one level of a proof fold: which tree to climb through, at
// which leaf position, and under which tag the value arriving at this
// level should be wrapped before being spliced in.
type Frame struct {
	Position int
	Tag      Tag
	Tree     *Tree
}

// Proof is an ordered, non-empty list of frames rooted at a tagged
// subject. Running it folds from the subject outward to a single hash.
type Proof struct {
	Subject Subject
	Frames  []Frame
}

// NewProof assembles a Proof from a subject and an ordered, non-empty list
// of frames, validating that every frame's position lies within its tree.
func NewProof(subject Subject, frames []Frame) (*Proof, error) {
	if len(frames) == 0 {
		return nil, errors.Wrap(ErrMalformedProof, "empty frame list")
	}
	for i, f := range frames {
		if f.Position < 0 || f.Position >= f.Tree.Len() {
			return nil, errors.Wrapf(ErrMalformedProof, "frame %d: position %d out of range [0,%d)", i, f.Position, f.Tree.Len())
		}
	}
	return &Proof{Subject: subject, Frames: frames}, nil
}

// RunProof folds a proof from its subject outward: the subject is hashed
// as a leaf under the tag of frame 0 and spliced into frame 0's tree at
// frame 0's position; that tree's resulting root is, in turn, hashed as a
// leaf under frame 1's tag and spliced into frame 1, and so on, until a
// single root remains.
//
// RunProof is a pure function of its argument: the same proof always
// folds to the same root.
func RunProof(p *Proof) (chainhash.Hash, error) {
	if p == nil || len(p.Frames) == 0 {
		return chainhash.Hash{}, ErrMalformedProof
	}

	cur := p.Subject.Content
	for i, f := range p.Frames {
		leaf := HashLeaf(f.Tag, cur)
		root, err := f.Tree.RootWithOverride(f.Position, leaf)
		if err != nil {
			return chainhash.Hash{}, errors.Wrapf(ErrMalformedProof, "frame %d: %s", i, err)
		}
		next := make([]byte, chainhash.HashSize)
		copy(next, root[:])
		cur = next
	}

	final, err := chainhash.NewHashFromBytes(cur)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(ErrMalformedProof, err.Error())
	}
	return final, nil
}
