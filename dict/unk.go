package dict

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// CategoryRange is the contiguous block of unknown-morpheme IDs
// registered for one character class.
type CategoryRange struct {
	First KeywordID
	Count int
}

// UnkDict is the per-category unknown-word dictionary: its own morphs
// and feature table, indexed by character class instead of surface.
type UnkDict struct {
	Morphs     Morphs
	Features   FeatureTable
	ByCategory map[byte]CategoryRange
}

// UnkRecord is one parsed unk.def-style record: a category name
// (resolved against CharCategoryDef.Classes at build time), a
// connection-cost triple, and a feature vector.
type UnkRecord struct {
	Category string
	LeftID   int
	RightID  int
	Cost     int64
	Features []string
}

// ErrCharCategoryNotFound is returned when an UnkRecord names a
// category absent from the known char_class list.
var ErrCharCategoryNotFound = fmt.Errorf("dict: character category not found")

// BuildUnkDict sorts records (grouping same-category records together,
// as spec requires for contiguous per-category ID ranges) and builds
// the unknown-word morph/feature tables plus the category→range index.
func BuildUnkDict(records []UnkRecord, charClasses []string) (*UnkDict, error) {
	sorted := make([]UnkRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		if sorted[i].LeftID != sorted[j].LeftID {
			return sorted[i].LeftID < sorted[j].LeftID
		}
		if sorted[i].RightID != sorted[j].RightID {
			return sorted[i].RightID < sorted[j].RightID
		}
		return sorted[i].Cost < sorted[j].Cost
	})

	classIndex := make(map[string]byte, len(charClasses))
	for i, c := range charClasses {
		classIndex[c] = byte(i)
	}

	morphs := make(Morphs, 0, len(sorted))
	featureBuilder := NewFeatureTableBuilder()
	byCategory := make(map[byte]CategoryRange)

	for i, rec := range sorted {
		cost, err := CheckCost(rec.Cost)
		if err != nil {
			return nil, fmt.Errorf("dict: unk record %d: %w", i, err)
		}
		morphs = append(morphs, Morph{LeftID: int16(rec.LeftID), RightID: int16(rec.RightID), Cost: cost})

		classID, ok := classIndex[rec.Category]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrCharCategoryNotFound, rec.Category)
		}
		morphID := KeywordID(i) + 1
		r, exists := byCategory[classID]
		if !exists {
			byCategory[classID] = CategoryRange{First: morphID, Count: 1}
		} else {
			r.Count++
			byCategory[classID] = r
		}

		if err := featureBuilder.Push(rec.Features); err != nil {
			return nil, fmt.Errorf("dict: unk record %d: %w", i, err)
		}
	}

	return &UnkDict{Morphs: morphs, Features: featureBuilder.Build(), ByCategory: byCategory}, nil
}

// WriteDict serializes: u64 N, then N (u8 class, KeywordID first_id,
// u64 count) triples, then the morphs block, then the feature table.
func (u *UnkDict) WriteDict(w io.Writer) error {
	classes := make([]byte, 0, len(u.ByCategory))
	for c := range u.ByCategory {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	if err := binary.Write(w, binary.LittleEndian, uint64(len(classes))); err != nil {
		return err
	}
	for _, c := range classes {
		r := u.ByCategory[c]
		if err := binary.Write(w, binary.LittleEndian, c); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, r.First); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(r.Count)); err != nil {
			return err
		}
	}

	if err := u.Morphs.WriteDict(w); err != nil {
		return fmt.Errorf("dict: write unk morphs: %w", err)
	}
	if err := u.Features.WriteDict(w); err != nil {
		return fmt.Errorf("dict: write unk features: %w", err)
	}
	return nil
}

// ReadUnkDict deserializes an UnkDict written by WriteDict.
func ReadUnkDict(r io.Reader) (*UnkDict, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("dict: read unk category count: %w", err)
	}
	byCategory := make(map[byte]CategoryRange, n)
	for i := uint64(0); i < n; i++ {
		var class byte
		var first KeywordID
		var count uint64
		if err := binary.Read(r, binary.LittleEndian, &class); err != nil {
			return nil, fmt.Errorf("dict: read unk class[%d]: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &first); err != nil {
			return nil, fmt.Errorf("dict: read unk first[%d]: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("dict: read unk count[%d]: %w", i, err)
		}
		byCategory[class] = CategoryRange{First: first, Count: int(count)}
	}

	morphs, err := ReadMorphs(r)
	if err != nil {
		return nil, fmt.Errorf("dict: read unk morphs: %w", err)
	}
	features, err := ReadFeatureTable(r)
	if err != nil {
		return nil, fmt.Errorf("dict: read unk features: %w", err)
	}
	return &UnkDict{Morphs: morphs, Features: features, ByCategory: byCategory}, nil
}
