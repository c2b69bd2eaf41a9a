package leafdata

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

func testLeaf() LeafData {
	ld := LeafData{
		Height:   2,
		Coinbase: false,
		Amt:      3000,
		PkScript: []byte{1, 2, 3, 4, 5, 6},
	}
	ld.BlockHash = chainhash.Hash{9, 9, 9}
	ld.OutPoint = wire.OutPoint{
		Hash:  chainhash.Hash{1, 2, 3, 4},
		Index: 0,
	}
	return ld
}

func TestLeafDataSerialize(t *testing.T) {
	ld := testLeaf()

	writer := &bytes.Buffer{}
	err := ld.Serialize(writer)
	if err != nil {
		t.Fatal(err)
	}
	if writer.Len() != ld.SerializeSize() {
		t.Fatalf("wrote %d bytes, SerializeSize says %d",
			writer.Len(), ld.SerializeSize())
	}
	beforeBytes := make([]byte, writer.Len())
	copy(beforeBytes, writer.Bytes())

	checkLeaf := LeafData{}
	err = checkLeaf.Deserialize(writer)
	if err != nil {
		t.Fatal(err)
	}
	if checkLeaf.Height != ld.Height || checkLeaf.Coinbase != ld.Coinbase {
		t.Fatalf("height/coinbase mangled: got %d %v want %d %v",
			checkLeaf.Height, checkLeaf.Coinbase, ld.Height, ld.Coinbase)
	}

	afterWriter := &bytes.Buffer{}
	err = checkLeaf.Serialize(afterWriter)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(beforeBytes, afterWriter.Bytes()) {
		t.Fatalf("Serialize/Deserialize LeafData fail\n"+
			"beforeBytes len: %v, afterBytes len: %v",
			len(beforeBytes), afterWriter.Len())
	}
}

func TestLeafDataCoinbaseBit(t *testing.T) {
	ld := testLeaf()
	ld.Coinbase = true

	var buf bytes.Buffer
	err := ld.Serialize(&buf)
	if err != nil {
		t.Fatal(err)
	}
	var check LeafData
	err = check.Deserialize(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !check.Coinbase || check.Height != ld.Height {
		t.Fatalf("coinbase bit lost: got height %d coinbase %v",
			check.Height, check.Coinbase)
	}
}

// Any field change has to change the leaf hash.
func TestLeafHashBinds(t *testing.T) {
	ld := testLeaf()
	base := ld.LeafHash()

	mod := ld
	mod.Amt++
	if mod.LeafHash() == base {
		t.Fatal("amount not bound by the leaf hash")
	}

	mod = ld
	mod.OutPoint.Index++
	if mod.LeafHash() == base {
		t.Fatal("outpoint index not bound by the leaf hash")
	}

	mod = ld
	mod.Coinbase = true
	if mod.LeafHash() == base {
		t.Fatal("coinbase flag not bound by the leaf hash")
	}
}

func TestPayToWitnessScript(t *testing.T) {
	// BIP173 test vector for p2wpkh
	script, err := PayToWitnessScript("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
	if err != nil {
		t.Fatal(err)
	}
	if len(script) != 22 {
		t.Fatalf("expected a 22 byte v0 witness script, got %d", len(script))
	}

	_, err = PayToWitnessScript("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5")
	if err == nil {
		t.Fatal("bad checksum address decoded")
	}
}
