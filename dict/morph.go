// Package dict implements the compiled dictionary: the index table,
// morpheme table, feature table, connection matrix, character category
// table, unknown-word dictionary, and the container archive that bundles
// them together.
package dict

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/nihongo/kanpyo/trie"
)

// KeywordID identifies a morpheme. Known-morpheme IDs index Dict.Morphs
// (1-based); unknown-morpheme IDs index UnkDict.Morphs (1-based). 0 is
// reserved for BOS/EOS.
type KeywordID = trie.KeywordID

// Morph is the bare connection-cost triple attached to a morpheme.
type Morph struct {
	LeftID  int16
	RightID int16
	Cost    int16
}

// Morphs is indexed by (KeywordID - 1).
type Morphs []Morph

// At returns the morph for a 1-based KeywordID.
func (m Morphs) At(id KeywordID) Morph {
	return m[id-1]
}

// ErrCostOutOfRange is returned when a build-time cost value does not
// fit in an int16.
var ErrCostOutOfRange = fmt.Errorf("dict: cost value out of int16 range")

// CheckCost validates that cost fits in an int16, per spec: cost values
// outside i16 are rejected at build time.
func CheckCost(cost int64) (int16, error) {
	if cost < math.MinInt16 || cost > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %d", ErrCostOutOfRange, cost)
	}
	return int16(cost), nil
}

// WriteDict serializes: i64 count, then count (i16 left, i16 right, i16
// cost) little-endian triples.
func (m Morphs) WriteDict(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(m))); err != nil {
		return err
	}
	for _, morph := range m {
		if err := binary.Write(w, binary.LittleEndian, morph); err != nil {
			return err
		}
	}
	return nil
}

// ReadMorphs deserializes a Morphs table written by WriteDict.
func ReadMorphs(r io.Reader) (Morphs, error) {
	var count int64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("dict: read morph count: %w", err)
	}
	morphs := make(Morphs, count)
	for i := range morphs {
		if err := binary.Read(r, binary.LittleEndian, &morphs[i]); err != nil {
			return nil, fmt.Errorf("dict: read morph[%d]: %w", i, err)
		}
	}
	return morphs, nil
}
