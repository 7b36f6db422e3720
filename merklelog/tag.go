package merklelog

// Tag is a Merkle-universe domain-separation string. It names the semantic
// field a leaf occupies (a transaction, a transaction output, a header's
// payload-hash child, ...) so that two leaves with identical content but
// different roles in the tree never collide.
type Tag string

const (
	kindLeaf byte = 0x00
	kindNode byte = 0x01
)
