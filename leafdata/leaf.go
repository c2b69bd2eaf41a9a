// Package leafdata defines what an accumulator leaf commits to: the
// full data of one unspent output.  The hash of this data is what
// actually lives in the forest, so anyone holding the output data can
// recompute its leaf and check a batch proof for it.
package leafdata

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/adiabat/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/larkmoor/forestproof/common"
)

// maxPkScriptSize caps the script length on both serialization paths.
const maxPkScriptSize = 10000

// LeafData is all the data that goes into a leaf of the accumulator.
// Enough to identify the output and verify scripts against it.
type LeafData struct {
	BlockHash chainhash.Hash
	OutPoint  wire.OutPoint
	Height    int32
	Coinbase  bool
	Amt       int64
	PkScript  []byte
}

// OPString returns just the outpoint of this leafdata as a string.
func (l *LeafData) OPString() string {
	return l.OutPoint.String()
}

// ToString turns a LeafData into a string.
func (l *LeafData) ToString() (s string) {
	s = l.OPString()
	s += fmt.Sprintf(" h %d ", l.Height)
	s += fmt.Sprintf("cb %v ", l.Coinbase)
	s += fmt.Sprintf("amt %d ", l.Amt)
	s += fmt.Sprintf("pks %x ", l.PkScript)
	s += fmt.Sprintf("%x", l.LeafHash())
	return
}

// Serialize puts LeafData onto a writer.  Height and the coinbase
// flag share four bytes, the flag in the low bit.
func (l *LeafData) Serialize(w io.Writer) error {
	hcb := l.Height << 1
	if l.Coinbase {
		hcb |= 1
	}

	_, err := w.Write(l.BlockHash[:])
	if err != nil {
		return err
	}
	_, err = w.Write(l.OutPoint.Hash[:])
	if err != nil {
		return err
	}

	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	err = freeBytes.PutUint32(w, binary.BigEndian, l.OutPoint.Index)
	if err != nil {
		return err
	}
	err = freeBytes.PutUint32(w, binary.BigEndian, uint32(hcb))
	if err != nil {
		return err
	}
	err = freeBytes.PutUint64(w, binary.BigEndian, uint64(l.Amt))
	if err != nil {
		return err
	}

	if len(l.PkScript) > maxPkScriptSize {
		return fmt.Errorf("pkscript %d bytes, max %d",
			len(l.PkScript), maxPkScriptSize)
	}
	err = freeBytes.PutUint16(w, binary.BigEndian, uint16(len(l.PkScript)))
	if err != nil {
		return err
	}
	_, err = w.Write(l.PkScript)
	return err
}

// SerializeSize says how big a leafdata is.
func (l *LeafData) SerializeSize() int {
	// 32B blockhash, 36B outpoint, 4B height/coinbase, 8B amt,
	// 2B script length, then the script
	return 82 + len(l.PkScript)
}

// Deserialize reads a LeafData back off a reader.
func (l *LeafData) Deserialize(r io.Reader) error {
	_, err := io.ReadFull(r, l.BlockHash[:])
	if err != nil {
		return err
	}
	_, err = io.ReadFull(r, l.OutPoint.Hash[:])
	if err != nil {
		return err
	}
	err = binary.Read(r, binary.BigEndian, &l.OutPoint.Index)
	if err != nil {
		return err
	}
	err = binary.Read(r, binary.BigEndian, &l.Height)
	if err != nil {
		return err
	}
	err = binary.Read(r, binary.BigEndian, &l.Amt)
	if err != nil {
		return err
	}

	var pkSize uint16
	err = binary.Read(r, binary.BigEndian, &pkSize)
	if err != nil {
		return err
	}
	if pkSize > maxPkScriptSize {
		return fmt.Errorf("op %s pkscript %d bytes, max %d",
			l.OPString(), pkSize, maxPkScriptSize)
	}
	l.PkScript = make([]byte, pkSize)
	_, err = io.ReadFull(r, l.PkScript)
	if err != nil {
		return err
	}

	l.Coinbase = l.Height&1 == 1
	l.Height >>= 1
	return nil
}

// LeafHash turns a LeafData into the 32 byte hash that goes in the
// accumulator.
func (l *LeafData) LeafHash() [32]byte {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()
	buf := bytes.NewBuffer(freeBytes.Bytes)
	l.Serialize(buf)
	return sha512.Sum512_256(buf.Bytes())
}

// PayToWitnessScript decodes a bech32 p2wpkh address into the
// pkscript a leaf commits to.
func PayToWitnessScript(addr string) ([]byte, error) {
	script, err := bech32.SegWitAddressDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(script) != 22 {
		return nil, fmt.Errorf("need a bech32 p2wpkh address, %s gives %d byte script",
			addr, len(script))
	}
	return script, nil
}
