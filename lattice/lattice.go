package lattice

import (
	"unicode/utf8"

	"github.com/nihongo/kanpyo/dict"
)

// maxUnknownLen bounds a single grouped unknown-word candidate so a long
// run of same-category characters (e.g. a wall of digits) cannot blow up
// lattice size.
const maxUnknownLen = 1024

// inf is the Viterbi saturation ceiling; no real path should reach it.
const inf = int32(1) << 30

// Lattice is the word-segmentation DAG built for one input string. It is
// built fresh per call and never shared across goroutines.
type Lattice struct {
	d     *dict.Dict
	Nodes []Node
	// Edges[p] holds the indices into Nodes of every node whose end
	// char position is p. BOS occupies Edges[0]; EOS occupies the last
	// bucket.
	Edges [][]int
}

func newLattice(d *dict.Dict, charCount int) *Lattice {
	return &Lattice{d: d, Edges: make([][]int, charCount+2)}
}

func (l *Lattice) push(n Node, endCharPos int) int {
	idx := len(l.Nodes)
	l.Nodes = append(l.Nodes, n)
	l.Edges[endCharPos] = append(l.Edges[endCharPos], idx)
	return idx
}

// Build constructs the lattice for input against d: BOS, one bucket of
// known/unknown candidates per character, and EOS.
func Build(d *dict.Dict, input string) *Lattice {
	runes := []rune(input)
	cc := len(runes)
	l := newLattice(d, cc)

	l.push(DummyNode{BytePosV: 0, CharPosV: 0}, 0)

	bytePos := 0
	for charPos, ch := range runes {
		text := input[bytePos:]
		anyMatch := false

		for _, m := range d.Index.SearchCommonPrefixOf(text) {
			anyMatch = true
			surface := text[:m.ByteLength]
			morph := d.Morphs.At(m.ID)
			l.push(KnownNode{W: Word{
				ID:      m.ID,
				BytePos: bytePos,
				CharPos: charPos,
				Morph:   morph,
				Surface: surface,
			}}, charPos+charCount(surface))
		}

		class := d.CharCategoryDef.CategoryOf(ch)
		if !anyMatch || d.CharCategoryDef.InvokeFor(class) {
			endBytePos := bytePos + runeLen(ch)
			unknownLen := 1
			if d.CharCategoryDef.GroupFor(class) {
				rest := runes[charPos+1:]
				for _, next := range rest {
					if d.CharCategoryDef.CategoryOf(next) != class {
						break
					}
					endBytePos += runeLen(next)
					unknownLen++
					if unknownLen >= maxUnknownLen {
						break
					}
				}
			}

			if r, ok := d.Unk.ByCategory[class]; ok {
				surface := input[bytePos:endBytePos]
				end := charPos + charCount(surface)
				for i := 0; i < r.Count; i++ {
					id := r.First + dict.KeywordID(i)
					l.push(UnknownNode{W: Word{
						ID:      id,
						BytePos: bytePos,
						CharPos: charPos,
						Morph:   d.Unk.Morphs.At(id),
						Surface: surface,
					}}, end)
				}
			}
		}

		bytePos += runeLen(ch)
	}

	l.push(DummyNode{BytePosV: len(input), CharPosV: cc}, cc+1)
	return l
}

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func runeLen(r rune) int {
	return utf8.RuneLen(r)
}

// Viterbi runs the forward dynamic program over l and backtraces from
// EOS to the minimum-cost node sequence. The returned slice includes the
// EOS dummy node but excludes BOS, which never receives a predecessor.
func (l *Lattice) Viterbi() []Node {
	n := len(l.Nodes)
	best := make([]int32, n)
	pred := make([]int, n)
	hasPred := make([]bool, n)

	bosIdx := l.Edges[0][0]
	best[bosIdx] = 0

	for p := 1; p < len(l.Edges); p++ {
		for _, i := range l.Edges[p] {
			target := l.Nodes[i]
			best[i] = inf
			for _, j := range l.Edges[target.CharPos()] {
				prev := l.Nodes[j]
				prevCost := best[j]
				wordCost := int32(target.Morph().Cost)
				matrixCost := int32(l.d.Connection.Get(int(prev.Morph().RightID), int(target.Morph().LeftID)))
				total := prevCost + wordCost + matrixCost
				if total > inf {
					total = inf
				}
				if total < best[i] {
					best[i] = total
					pred[i] = j
					hasPred[i] = true
				}
			}
		}
	}

	eosIdx := n - 1
	var path []Node
	pos := eosIdx
	for hasPred[pos] {
		path = append(path, l.Nodes[pos])
		pos = pred[pos]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
