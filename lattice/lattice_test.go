package lattice

import (
	"testing"

	"github.com/nihongo/kanpyo/dict"
)

func newCategoryDef(hiraganaFrom, hiraganaTo rune) dict.CharCategoryDef {
	category := make([]byte, 0x10000)
	for r := hiraganaFrom; r <= hiraganaTo; r++ {
		category[r] = 1
	}
	return dict.CharCategoryDef{
		Classes:  []string{"DEFAULT", "HIRAGANA"},
		Category: category,
		Invoke:   []bool{false, false},
		Group:    []bool{false, true},
	}
}

func newTestDict(t *testing.T) *dict.Dict {
	if t != nil {
		t.Helper()
	}
	index, err := dict.BuildIndexTable([]string{"テスト"})
	if err != nil {
		if t != nil {
			t.Fatalf("BuildIndexTable: %v", err)
		}
		panic(err)
	}

	unk := &dict.UnkDict{
		Morphs:     dict.Morphs{{LeftID: 1, RightID: 1, Cost: 50}},
		Features:   dict.FeatureTable{},
		ByCategory: map[byte]dict.CategoryRange{1: {First: 1, Count: 1}},
	}

	return dict.New(
		dict.Morphs{{LeftID: 5, RightID: 5, Cost: 100}},
		dict.FeatureTable{},
		dict.NewConnectionTable(6, 6, make([]int16, 36)),
		index,
		newCategoryDef('あ', 'ん'),
		unk,
	)
}

func TestBuildEmptyInput(t *testing.T) {
	d := newTestDict(t)
	l := Build(d, "")
	if len(l.Edges) != 2 {
		t.Fatalf("edges length = %d, want 2", len(l.Edges))
	}
	path := l.Viterbi()
	if len(path) != 1 {
		t.Fatalf("path length = %d, want 1", len(path))
	}
	if path[0].Class() != Dummy {
		t.Errorf("path[0].Class() = %v, want Dummy", path[0].Class())
	}
}

func TestBuildExactKnownMatch(t *testing.T) {
	d := newTestDict(t)
	l := Build(d, "テスト")
	path := l.Viterbi()
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2: %+v", len(path), path)
	}
	if path[0].Class() != Known || path[0].Surface() != "テスト" {
		t.Errorf("path[0] = %+v, want Known テスト", path[0])
	}
	if path[0].BytePos() != 0 || path[0].CharPos() != 0 {
		t.Errorf("path[0] position = (%d,%d), want (0,0)", path[0].BytePos(), path[0].CharPos())
	}
	if path[1].Class() != Dummy || path[1].CharPos() != 3 {
		t.Errorf("path[1] = %+v, want Dummy at char_pos 3", path[1])
	}
}

func TestBuildPureUnknownGrouped(t *testing.T) {
	d := newTestDict(t)
	l := Build(d, "あいうえお")
	path := l.Viterbi()
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2: %+v", len(path), path)
	}
	if path[0].Class() != Unknown || path[0].Surface() != "あいうえお" {
		t.Errorf("path[0] = %+v, want Unknown あいうえお", path[0])
	}
	if path[1].Class() != Dummy {
		t.Errorf("path[1].Class() = %v, want Dummy", path[1].Class())
	}
}

// TestViterbiTieBreak constructs a lattice by hand: two equal-cost
// predecessors (P1, P2) both land in edges[1] in that order, and a
// terminal node T reaches the same minimum cost via either one. The
// earliest-inserted predecessor, P1, must win.
func TestViterbiTieBreak(t *testing.T) {
	zeroConn := dict.NewConnectionTable(1, 1, []int16{0})
	d := dict.New(nil, dict.FeatureTable{}, zeroConn, nil, dict.CharCategoryDef{}, nil)

	bos := DummyNode{BytePosV: 0, CharPosV: 0}
	p1 := KnownNode{W: Word{ID: 1, BytePos: 0, CharPos: 0, Morph: dict.Morph{Cost: 10}, Surface: "p1"}}
	p2 := KnownNode{W: Word{ID: 2, BytePos: 0, CharPos: 0, Morph: dict.Morph{Cost: 10}, Surface: "p2"}}
	tNode := KnownNode{W: Word{ID: 3, BytePos: 0, CharPos: 1, Morph: dict.Morph{Cost: 0}, Surface: "t"}}

	l := &Lattice{
		d:     d,
		Nodes: []Node{bos, p1, p2, tNode},
		Edges: [][]int{{0}, {1, 2}, {3}},
	}

	path := l.Viterbi()
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2: %+v", len(path), path)
	}
	if path[0].Surface() != "p1" {
		t.Errorf("winning predecessor = %q, want p1 (earliest inserted)", path[0].Surface())
	}
}
