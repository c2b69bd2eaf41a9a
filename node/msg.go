package node

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/larkmoor/forestproof/accumulator"
	"github.com/larkmoor/forestproof/common"
	"github.com/larkmoor/forestproof/leafdata"
)

// ProofRequest is one proof submission: the outputs claimed to be in
// the accumulator and the batch proof for them.  The i-th leaf goes
// with the i-th target of the proof.
type ProofRequest struct {
	Leaves []leafdata.LeafData
	Proof  accumulator.BatchProof
}

// Serialize writes a leaf count, the leaves, then the proof.
func (pr *ProofRequest) Serialize(w io.Writer) error {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	err := freeBytes.PutUint32(w, binary.BigEndian, uint32(len(pr.Leaves)))
	if err != nil {
		return err
	}
	for i := range pr.Leaves {
		err = pr.Leaves[i].Serialize(w)
		if err != nil {
			return err
		}
	}
	return pr.Proof.Serialize(w)
}

// Deserialize reads a proof request back off a reader.
func (pr *ProofRequest) Deserialize(r io.Reader) error {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	numLeaves, err := freeBytes.Uint32(r, binary.BigEndian)
	if err != nil {
		return err
	}
	if numLeaves > 1<<16 {
		return fmt.Errorf("%d leaves - too many", numLeaves)
	}
	pr.Leaves = make([]leafdata.LeafData, numLeaves)
	for i := range pr.Leaves {
		err = pr.Leaves[i].Deserialize(r)
		if err != nil {
			return err
		}
	}
	return pr.Proof.Deserialize(r)
}

// LeafHashes computes the accumulator leaf hash of every leaf, in
// order.
func (pr *ProofRequest) LeafHashes() []accumulator.Hash {
	hashes := make([]accumulator.Hash, len(pr.Leaves))
	for i := range pr.Leaves {
		hashes[i] = pr.Leaves[i].LeafHash()
	}
	return hashes
}

// Verdict is the server's answer to a proof request.
type Verdict struct {
	Accept bool
	Reason string // empty on accept
}

// writeVerdict sends one verdict byte, and the reason on a reject.
func writeVerdict(w io.Writer, v Verdict) error {
	if v.Accept {
		_, err := w.Write([]byte{1})
		return err
	}
	_, err := w.Write([]byte{0})
	if err != nil {
		return err
	}
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()
	err = freeBytes.PutUint32(w, binary.BigEndian, uint32(len(v.Reason)))
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(v.Reason))
	return err
}

// readVerdict reads what writeVerdict sent.
func readVerdict(r io.Reader) (Verdict, error) {
	var v Verdict
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return v, err
	}
	if b[0] == 1 {
		v.Accept = true
		return v, nil
	}

	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()
	reasonLen, err := freeBytes.Uint32(r, binary.BigEndian)
	if err != nil {
		return v, err
	}
	if reasonLen > 1<<16 {
		return v, fmt.Errorf("%d byte reason - too long", reasonLen)
	}
	reason := make([]byte, reasonLen)
	_, err = io.ReadFull(r, reason)
	if err != nil {
		return v, err
	}
	v.Reason = string(reason)
	return v, nil
}
