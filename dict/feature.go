package dict

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
)

// FeatureID identifies a de-duplicated feature string. 0 is the empty
// sentinel stored at FeatureTable.Names[0].
type FeatureID = uint32

const maxFeatureID = FeatureID(math.MaxUint32)

// FeatureTable pairs each morpheme's feature-ID vector with the
// de-duplicated string pool those IDs index into.
type FeatureTable struct {
	Features [][]FeatureID
	Names    []string
}

// gobFeatureTable mirrors FeatureTable; kept separate so the wire shape
// is decoupled from any future in-memory representation.
type gobFeatureTable struct {
	Features [][]FeatureID
	Names    []string
}

// WriteDict gob-encodes the feature table, the same "opaque
// self-describing" approach the teacher uses for ComplexData.
func (t FeatureTable) WriteDict(w io.Writer) error {
	return gob.NewEncoder(w).Encode(gobFeatureTable{Features: t.Features, Names: t.Names})
}

// ReadFeatureTable decodes a FeatureTable written by WriteDict.
func ReadFeatureTable(r io.Reader) (FeatureTable, error) {
	var g gobFeatureTable
	if err := gob.NewDecoder(r).Decode(&g); err != nil {
		return FeatureTable{}, fmt.Errorf("dict: decode feature table: %w", err)
	}
	return FeatureTable{Features: g.Features, Names: g.Names}, nil
}

// FeatureTableBuilder assigns feature IDs in first-seen order, starting
// at 1, and accumulates one feature-ID vector per pushed morpheme.
type FeatureTableBuilder struct {
	ids      map[string]FeatureID
	order    []string
	features [][]FeatureID
}

// NewFeatureTableBuilder returns an empty builder.
func NewFeatureTableBuilder() *FeatureTableBuilder {
	return &FeatureTableBuilder{ids: make(map[string]FeatureID)}
}

// Push records one morpheme's feature strings and assigns new IDs for
// any string not seen before.
func (b *FeatureTableBuilder) Push(features []string) error {
	ids := make([]FeatureID, len(features))
	for i, f := range features {
		id, err := b.insert(f)
		if err != nil {
			return err
		}
		ids[i] = id
	}
	b.features = append(b.features, ids)
	return nil
}

func (b *FeatureTableBuilder) insert(name string) (FeatureID, error) {
	if id, ok := b.ids[name]; ok {
		return id, nil
	}
	if FeatureID(len(b.order)) >= maxFeatureID {
		return 0, fmt.Errorf("dict: feature ID overflow inserting %q", name)
	}
	id := FeatureID(len(b.order)) + 1
	b.ids[name] = id
	b.order = append(b.order, name)
	return id, nil
}

// Build finalizes the builder into a FeatureTable. Names[0] is the
// empty sentinel; Names[id] is the string with that ID.
func (b *FeatureTableBuilder) Build() FeatureTable {
	names := make([]string, len(b.order)+1)
	for i, name := range b.order {
		names[i+1] = name
	}
	features := make([][]FeatureID, len(b.features))
	copy(features, b.features)
	return FeatureTable{Features: features, Names: names}
}
