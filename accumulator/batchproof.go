package accumulator

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/larkmoor/forestproof/common"
)

// BatchProof proves a batch of leaves at once.  Targets are the
// positions of the leaves being proven; Proof holds the sibling
// hashes a verifier can't derive from the targets themselves, in the
// exact order the verifier consumes them.
type BatchProof struct {
	Targets []uint64
	Proof   []Hash
}

/*
Batchproof serialization is:
4 bytes numTargets
4 bytes numHashes
[]Targets (8 bytes each)
[]Hashes (32 bytes each)
*/

// Serialize a batchproof to a writer.
func (bp *BatchProof) Serialize(w io.Writer) error {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	err := freeBytes.PutUint32(w, binary.BigEndian, uint32(len(bp.Targets)))
	if err != nil {
		return err
	}
	err = freeBytes.PutUint32(w, binary.BigEndian, uint32(len(bp.Proof)))
	if err != nil {
		return err
	}

	for _, t := range bp.Targets {
		err = freeBytes.PutUint64(w, binary.BigEndian, t)
		if err != nil {
			return err
		}
	}
	for _, h := range bp.Proof {
		_, err = w.Write(h[:])
		if err != nil {
			return err
		}
	}
	return nil
}

// SerializeSize says how many bytes Serialize will write.
func (bp *BatchProof) SerializeSize() int {
	// 8B for the two counts, 8B per target, 32B per hash
	return 8 + (8 * len(bp.Targets)) + (32 * len(bp.Proof))
}

// Deserialize gives a batchproof back from the serialized bytes.
func (bp *BatchProof) Deserialize(r io.Reader) error {
	var numTargets, numHashes uint32
	err := binary.Read(r, binary.BigEndian, &numTargets)
	if err != nil {
		return err
	}
	if numTargets > 1<<16 {
		return fmt.Errorf("%d targets - too many", numTargets)
	}

	err = binary.Read(r, binary.BigEndian, &numHashes)
	if err != nil {
		return err
	}
	if numHashes > 1<<16 {
		return fmt.Errorf("%d hashes - too many", numHashes)
	}

	bp.Targets = make([]uint64, numTargets)
	for i := range bp.Targets {
		err = binary.Read(r, binary.BigEndian, &bp.Targets[i])
		if err != nil {
			return err
		}
	}

	bp.Proof = make([]Hash, numHashes)
	for i := range bp.Proof {
		_, err = io.ReadFull(r, bp.Proof[i][:])
		if err != nil {
			return err
		}
	}
	return nil
}

// String shows the batchproof for logs; targets and siblings come out
// comma separated in their given order.
func (bp *BatchProof) String() string {
	s := fmt.Sprintf("%d targets: ", len(bp.Targets))
	for i, t := range bp.Targets {
		if i != 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", t)
	}
	s += fmt.Sprintf("\n%d siblings: ", len(bp.Proof))
	for i, p := range bp.Proof {
		if i != 0 {
			s += ", "
		}
		s += fmt.Sprintf("%04x", p[:4])
	}
	s += "\n"
	return s
}
