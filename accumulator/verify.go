package accumulator

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughTargets means more leaf hashes were supplied than
	// the proof has target positions for.
	ErrNotEnoughTargets = errors.New("Not enough targets in the proof")

	// ErrPositionOutOfRange means a position doesn't fit in the
	// forest even after climbing past every row.
	ErrPositionOutOfRange = errors.New("Position out of range")

	// ErrProofExhausted means a sibling was needed but the proof had
	// none left.
	ErrProofExhausted = errors.New("Proof is empty")

	// ErrExtraProofData means siblings were left over after every
	// target was hashed up to a root.
	ErrExtraProofData = errors.New("Proof should be empty")

	// ErrRootMismatch means the recomputed roots aren't all present
	// in the committed root set.
	ErrRootMismatch = errors.New("Root mismatch")
)

func errPositionOutOfRange(position, rowStart uint64) error {
	return fmt.Errorf("%w: position %d, row starting at %d",
		ErrPositionOutOfRange, position, rowStart)
}

func errRootMismatch(missed, total int) error {
	return fmt.Errorf("%w: %d of %d computed roots not committed",
		ErrRootMismatch, missed, total)
}

// rowState is the bookkeeping for the row currently being hashed.
// start is the absolute position the row begins at, padded is its
// allocated width (always a power of two) and actual is the number of
// live nodes in it.
type rowState struct {
	start  uint64
	padded uint64
	actual uint64
}

func newRowState(numLeaves uint64) rowState {
	return rowState{padded: nextPowerOfTwo(numLeaves), actual: numLeaves}
}

// up moves the bookkeeping one row towards the roots.
func (rs *rowState) up() {
	rs.start += rs.padded
	rs.padded >>= 1
	rs.actual >>= 1
}

// seek climbs rows until position lands within the tracked row.
// Errors if the forest runs out of rows first.
func (rs *rowState) seek(position uint64) error {
	for position >= rs.start+rs.padded {
		rs.up()
		if rs.padded == 0 {
			return errPositionOutOfRange(position, rs.start)
		}
	}
	return nil
}

// isRowRoot reports whether position is the unpaired node at the edge
// of an odd-length row.  Such a node has no sibling; it's a root of
// one of the forest's trees as-is.
func (rs *rowState) isRowRoot(position uint64) bool {
	return rs.actual&1 == 1 && position == rs.start+rs.actual-1
}

// parentPos returns the parent position: one row up, offset past the
// padded width of the tracked row.
func (rs *rowState) parentPos(position uint64) uint64 {
	return rs.start + rs.padded + (position-rs.start)/2
}

// ComputeRoots hashes the targets of a batch proof all the way up the
// forest and returns the roots it arrives at, in ascending row order
// (smallest tree first).  delHashes are the claimed leaf hashes, in
// the same order as bp.Targets.  The caller compares the returned
// roots against the roots it has committed to; ComputeRoots itself
// has no opinion on what the roots should be.
//
// Three position-ascending streams feed the climb: the sorted
// targets, the parents computed along the way, and the proof's
// sibling list.  The first two are merged lowest-position-first; the
// third is only ever popped from the front, and popping it dry or
// finishing with leftovers fails the proof.
func ComputeRoots(
	bp BatchProof, delHashes []Hash, numLeaves uint64) ([]Hash, error) {

	if len(delHashes) > len(bp.Targets) {
		return nil, ErrNotEnoughTargets
	}

	// Pair every hash with its claimed position, then sort.  Pairing
	// comes first: the i-th hash goes with the i-th target, whatever
	// order the targets arrived in.
	leaves := make([]node, len(delHashes))
	for i, h := range delHashes {
		leaves[i] = node{Pos: bp.Targets[i], Val: h}
	}
	sortNodes(leaves)

	// computed collects parents as they're produced.  Children are
	// consumed in ascending position order so parents arrive in
	// ascending position order too; a cursor over the slice gives a
	// front-popping queue with no reshuffling.
	computed := make([]node, 0, len(leaves))
	var li, ci int

	proof := bp.Proof
	roots := make([]Hash, 0, numRoots(numLeaves))
	rs := newRowState(numLeaves)

	for {
		// Next node is the lowest position of the two queues, leaves
		// winning ties.
		var n node
		switch {
		case li < len(leaves) &&
			(ci >= len(computed) || leaves[li].Pos <= computed[ci].Pos):
			n = leaves[li]
			li++
		case ci < len(computed):
			n = computed[ci]
			ci++
		default:
			// Both queues drained: every target made it to a root.
			if len(proof) != 0 {
				return nil, ErrExtraProofData
			}
			return roots, nil
		}

		err := rs.seek(n.Pos)
		if err != nil {
			return nil, err
		}

		if rs.isRowRoot(n.Pos) {
			roots = append(roots, n.Val)
			rs.up()
			continue
		}

		var parent Hash
		if (n.Pos-rs.start)&1 == 0 {
			// Left child.  The right sibling is the next leaf, else
			// the next computed node, else the front of the proof.
			var sibling Hash
			switch {
			case li < len(leaves) && leaves[li].Pos == n.Pos+1:
				sibling = leaves[li].Val
				li++
			case ci < len(computed) && computed[ci].Pos == n.Pos+1:
				sibling = computed[ci].Val
				ci++
			case len(proof) > 0:
				sibling = proof[0]
				proof = proof[1:]
			default:
				return nil, ErrProofExhausted
			}
			parent = parentHash(n.Val, sibling)
		} else {
			// Right child.  Its left sibling would have been popped
			// already if it were a target or computed node, so it can
			// only come off the proof.
			if len(proof) == 0 {
				return nil, ErrProofExhausted
			}
			parent = parentHash(proof[0], n.Val)
			proof = proof[1:]
		}

		computed = append(computed, node{Pos: rs.parentPos(n.Pos), Val: parent})
	}
}

// VerifyRoots recomputes the roots reachable from the proof's targets
// and checks that every one of them appears, in order, in the
// committed root set.  roots must be in ascending row order, the same
// order ComputeRoots emits.
func VerifyRoots(
	roots []Hash, numLeaves uint64, bp BatchProof, delHashes []Hash) error {

	candidates, err := ComputeRoots(bp, delHashes, numLeaves)
	if err != nil {
		return err
	}

	// candidates only cover the trees the targets live in, so match
	// them as an in-order subset of the committed roots.
	matches := 0
	for _, root := range roots {
		if matches < len(candidates) && root == candidates[matches] {
			matches++
		}
	}
	if matches != len(candidates) {
		return errRootMismatch(len(candidates)-matches, len(candidates))
	}
	return nil
}
