package accumulator

import (
	"math/bits"
	"sort"
)

// nextPowerOfTwo returns the smallest power of two that is >= n.
// Zero maps to one: an empty forest still allocates a single
// bottom-row slot.
func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

// treeRows returns the number of rows given n leaves.  The allocated
// bottom row is always a power of two, so this is just the log2 of
// nextPowerOfTwo(n).
func treeRows(n uint64) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(bits.TrailingZeros64(nextPowerOfTwo(n)))
}

// numRoots returns the number of 1 bits in n, which is the number of
// trees in a forest with n leaves.
func numRoots(n uint64) uint8 {
	return uint8(bits.OnesCount64(n))
}

// rootPosition: given a number of leaves and a row, find the position
// of the root at that row.  Does not return an error if there's no
// root at that row so watch out and check first.  Checking is easy:
// leaves & (1<<row)
func rootPosition(leaves uint64, row, forestRows uint8) uint64 {
	mask := uint64(2<<forestRows) - 1
	before := leaves & (mask << (row + 1))
	shifted := (before >> row) | (mask << (forestRows + 1 - row))
	return shifted & mask
}

// it'd be cool if you just had .sort() methods on slices of builtin
// types...
func sortUint64s(s []uint64) {
	sort.Slice(s, func(a, b int) bool { return s[a] < s[b] })
}

// sortNodes sorts nodes ascending by position.  It has to be stable:
// two nodes claiming the same position (malformed input) keep their
// supplied order instead of reshuffling per run.
func sortNodes(s []node) {
	sort.SliceStable(s, func(a, b int) bool { return s[a].Pos < s[b].Pos })
}
