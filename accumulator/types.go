package accumulator

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/larkmoor/forestproof/common"
)

// Hash is the 32 bytes of a sha256 hash
type Hash [32]byte

// empty is a Hash of all zeroes; no live node ever holds it.
var empty Hash

// Prefix for printfs
func (h Hash) Prefix() []byte {
	return h[:4]
}

// Mini takes the first 12 slices of a hash and outputs a MiniHash
func (h Hash) Mini() (m MiniHash) {
	copy(m[:], h[:12])
	return
}

// MiniHash is the first 12 bytes of a sha256 hash
type MiniHash [12]byte

// HashFromString takes a string and hashes with sha256
func HashFromString(s string) Hash {
	return sha256.Sum256([]byte(s))
}

// node is an element in the forest, represented by a position and a
// hash.
type node struct {
	Pos uint64
	Val Hash
}

// parentHash gets you the merkle parent of two children hashes.
// Left / right order matters.
func parentHash(l, r Hash) Hash {
	if l == empty || r == empty {
		panic("parentHash: got an empty child hash")
	}
	buf := common.NewFreeBytes()
	defer buf.Free()
	buf.Bytes = append(buf.Bytes, l[:]...)
	buf.Bytes = append(buf.Bytes, r[:]...)
	return sha512.Sum512_256(buf.Bytes)
}
