package accumulator

import (
	"bytes"
	"strings"
	"testing"
)

func TestBatchProofSerialize(t *testing.T) {
	bp := BatchProof{
		Targets: []uint64{0, 4, 11},
		Proof: []Hash{
			HashFromString("sib0"),
			HashFromString("sib1"),
		},
	}

	var buf bytes.Buffer
	err := bp.Serialize(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != bp.SerializeSize() {
		t.Fatalf("wrote %d bytes, SerializeSize says %d",
			buf.Len(), bp.SerializeSize())
	}
	beforeBytes := make([]byte, buf.Len())
	copy(beforeBytes, buf.Bytes())

	var check BatchProof
	err = check.Deserialize(&buf)
	if err != nil {
		t.Fatal(err)
	}

	var after bytes.Buffer
	err = check.Serialize(&after)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(beforeBytes, after.Bytes()) {
		t.Fatal("serialize/deserialize round trip changed the proof")
	}
}

func TestBatchProofDeserializeBogusCounts(t *testing.T) {
	// 4 byte target count way over the cap
	raw := []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0}
	var bp BatchProof
	err := bp.Deserialize(bytes.NewReader(raw))
	if err == nil {
		t.Fatal("expected an error on a bogus target count")
	}
}

func TestBatchProofString(t *testing.T) {
	bp := BatchProof{
		Targets: []uint64{3, 7},
		Proof:   []Hash{HashFromString("s")},
	}
	s := bp.String()
	if !strings.Contains(s, "3, 7") {
		t.Fatalf("targets not comma separated: %q", s)
	}
	if !strings.Contains(s, "2 targets") || !strings.Contains(s, "1 siblings") {
		t.Fatalf("missing counts: %q", s)
	}
}
