package merklelog

import (
	"github.com/jaxnet/spvproof/chainhash"
)

// HashLeaf computes a domain-separated leaf hash: kind byte 0x00, followed
// by the Merkle-universe tag, followed by the leaf content.
func HashLeaf(tag Tag, content []byte) chainhash.Hash {
	buf := make([]byte, 0, 1+len(tag)+len(content))
	buf = append(buf, kindLeaf)
	buf = append(buf, []byte(tag)...)
	buf = append(buf, content...)
	return chainhash.HashH(buf)
}

// HashNode computes a domain-separated inner-node hash: kind byte 0x01
// followed by the left and right child hashes.
func HashNode(left, right chainhash.Hash) chainhash.Hash {
	buf := make([]byte, 0, 1+chainhash.HashSize*2)
	buf = append(buf, kindNode)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return chainhash.HashH(buf)
}
