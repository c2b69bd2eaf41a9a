package accumulator

import (
	"testing"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want uint64
	}{
		// an empty forest still allocates one bottom slot
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{127, 128},
		{128, 128},
		{129, 256},
		{1 << 40, 1 << 40},
		{(1 << 40) + 1, 1 << 41},
	}
	for _, test := range tests {
		got := nextPowerOfTwo(test.n)
		if got != test.want {
			t.Fatalf("nextPowerOfTwo(%d): got %d want %d",
				test.n, got, test.want)
		}
	}
}

func TestTreeRows(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint8
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1 << 20, 20},
	}
	for _, test := range tests {
		got := treeRows(test.n)
		if got != test.want {
			t.Fatalf("treeRows(%d): got %d want %d", test.n, got, test.want)
		}
	}

	// against the obvious shift-until-big-enough version
	for n := uint64(1); n < 100000; n++ {
		var e uint8
		for ; (1 << e) < n; e++ {
		}
		if treeRows(n) != e {
			t.Fatalf("treeRows(%d): got %d want %d", n, treeRows(n), e)
		}
	}
}

func TestRootPosition(t *testing.T) {
	tests := []struct {
		leaves uint64
		row    uint8
		rows   uint8
		want   uint64
	}{
		{2, 1, 1, 2},
		{3, 0, 2, 2},
		{3, 1, 2, 4},
		{5, 0, 3, 4},
		{5, 2, 3, 12},
		{15, 0, 4, 14},
		{15, 1, 4, 22},
		{15, 2, 4, 26},
		{15, 3, 4, 28},
	}
	for _, test := range tests {
		got := rootPosition(test.leaves, test.row, test.rows)
		if got != test.want {
			t.Fatalf("rootPosition(%d, %d, %d): got %d want %d",
				test.leaves, test.row, test.rows, got, test.want)
		}
	}
}

// Nodes claiming the same position keep their supplied order; the
// sort has to be stable, not just sorted.
func TestSortNodesStable(t *testing.T) {
	a := HashFromString("a")
	b := HashFromString("b")
	c := HashFromString("c")

	nodes := []node{{5, a}, {3, c}, {5, b}}
	sortNodes(nodes)

	if nodes[0].Pos != 3 || nodes[0].Val != c {
		t.Fatalf("expected position 3 first, got %d", nodes[0].Pos)
	}
	if nodes[1].Val != a || nodes[2].Val != b {
		t.Fatal("equal positions got reordered; sort isn't stable")
	}
}
