package accumulator

import (
	"fmt"
)

// Forest is a full copy of the accumulator: every hash of every row,
// stored flat in the row-major padded numbering (see the package
// doc).  This is what the proof-serving side keeps; verifiers only
// ever hold the roots.
type Forest struct {
	numLeaves uint64

	// rows in the forest; the bottom row is padded to 1<<rows slots.
	rows uint8

	// all node hashes, indexed by position.  Padding positions hold
	// zeroes.
	data []Hash

	// positionMap maps leaf hashes to their bottom-row positions.
	positionMap map[MiniHash]uint64
}

// NewForest builds a forest over the given leaves and hashes every
// row up to the roots.
func NewForest(leaves []Hash) *Forest {
	n := uint64(len(leaves))
	f := &Forest{
		numLeaves:   n,
		rows:        treeRows(n),
		positionMap: make(map[MiniHash]uint64, len(leaves)),
	}
	f.data = make([]Hash, 2<<f.rows)
	for i, l := range leaves {
		f.data[i] = l
		f.positionMap[l.Mini()] = uint64(i)
	}
	f.rehash()
	return f
}

// rehash fills in every parent row.  The unpaired node at the edge of
// an odd-length row stays put; it's a root, not somebody's child.
func (f *Forest) rehash() {
	rs := newRowState(f.numLeaves)
	for rs.actual > 1 {
		for i := uint64(0); i+1 < rs.actual; i += 2 {
			pos := rs.start + i
			f.data[rs.parentPos(pos)] = parentHash(f.data[pos], f.data[pos+1])
		}
		rs.up()
	}
}

// NumLeaves returns the number of leaves in the forest.
func (f *Forest) NumLeaves() uint64 {
	return f.numLeaves
}

// Roots returns the forest roots in ascending row order, smallest
// tree first.  Same order ComputeRoots emits.
func (f *Forest) Roots() []Hash {
	roots := make([]Hash, 0, numRoots(f.numLeaves))
	for row := uint8(0); row <= f.rows; row++ {
		if f.numLeaves&(1<<row) != 0 {
			roots = append(roots, f.data[rootPosition(f.numLeaves, row, f.rows)])
		}
	}
	return roots
}

// ProveBatch returns a batch proof for the given leaf hashes.  The
// siblings come out in exactly the order a verifier consumes them:
// ascending position within a row, rows bottom up, skipping anything
// derivable from the targets themselves.
func (f *Forest) ProveBatch(dels []Hash) (BatchProof, error) {
	var bp BatchProof
	bp.Targets = make([]uint64, len(dels))
	for i, d := range dels {
		pos, ok := f.positionMap[d.Mini()]
		if !ok {
			return bp, fmt.Errorf("ProveBatch: hash %x not found", d.Prefix())
		}
		if pos >= f.numLeaves {
			return bp, fmt.Errorf(
				"ProveBatch: got leaf position %d but only %d leaves exist",
				pos, f.numLeaves)
		}
		bp.Targets[i] = pos
	}

	// walk up row by row; within a row everything is sorted so a
	// single pass pairs twins and pulls siblings for loners.
	cur := make([]uint64, len(bp.Targets))
	copy(cur, bp.Targets)
	sortUint64s(cur)

	rs := newRowState(f.numLeaves)
	for len(cur) > 0 {
		var next []uint64
		for i := 0; i < len(cur); {
			pos := cur[i]
			if rs.isRowRoot(pos) {
				// topped out in this tree, nothing to pair with
				i++
				continue
			}
			if (pos-rs.start)&1 == 0 && i+1 < len(cur) && cur[i+1] == pos+1 {
				// both children are known, no sibling needed
				i += 2
			} else {
				// row starts are even, so pos^1 is the sibling on
				// either side
				bp.Proof = append(bp.Proof, f.data[pos^1])
				i++
			}
			next = append(next, rs.parentPos(pos))
		}
		cur = next
		rs.up()
	}
	return bp, nil
}

// VerifyBatchProof checks a batch proof against the forest's own
// roots.  toProve are the leaf hashes, in the same order as the
// proof's targets.
func (f *Forest) VerifyBatchProof(toProve []Hash, bp BatchProof) error {
	return VerifyRoots(f.Roots(), f.numLeaves, bp, toProve)
}

// ToString prints the whole forest.  Only viable for small forests.
func (f *Forest) ToString() string {
	if f.rows > 6 {
		return "forest too big to print "
	}
	s := ""
	rs := newRowState(f.numLeaves)
	for rs.padded > 0 {
		s += fmt.Sprintf("row start %d:", rs.start)
		for i := uint64(0); i < rs.actual; i++ {
			s += fmt.Sprintf(" %04x", f.data[rs.start+i][:2])
		}
		s += "\n"
		if rs.padded == 1 {
			break
		}
		rs.up()
	}
	return s
}
