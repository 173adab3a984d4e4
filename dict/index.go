package dict

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/nihongo/kanpyo/trie"
)

// IndexTable wraps a double-array trie over the distinct sorted surface
// forms plus a side table of how many additional morphemes beyond the
// first share each surface.
type IndexTable struct {
	da  *trie.DoubleArray
	Dup map[KeywordID]int
}

// BuildIndexTable collapses a sorted (possibly duplicate-containing)
// keyword list into a trie over the distinct keys, recording how many
// duplicates follow each distinct key's first occurrence.
//
// IDs are 1-based positions in the original sorted list, so duplicates
// occupy consecutive IDs starting at the first occurrence.
func BuildIndexTable(sortedKeywords []string) (*IndexTable, error) {
	var keys []string
	var ids []KeywordID
	dup := make(map[KeywordID]int)

	var prevKey string
	var prevID KeywordID
	havePrev := false

	for i, key := range sortedKeywords {
		if havePrev && prevKey == key {
			dup[prevID]++
			continue
		}
		prevKey, prevID, havePrev = key, KeywordID(i+1), true
		keys = append(keys, key)
		ids = append(ids, KeywordID(i+1))
	}

	da, err := trie.BuildWithIDs(keys, ids)
	if err != nil {
		return nil, fmt.Errorf("dict: build index trie: %w", err)
	}
	return &IndexTable{da: da, Dup: dup}, nil
}

// SearchCommonPrefixOf expands every trie prefix match into dup[id]+1
// sibling IDs sharing the matched surface and byte length.
func (t *IndexTable) SearchCommonPrefixOf(text string) []trie.PrefixMatch {
	matches := t.da.SearchCommonPrefixOf(text)
	if matches == nil {
		return nil
	}
	var results []trie.PrefixMatch
	for _, m := range matches {
		n := t.Dup[m.ID]
		for k := 0; k <= n; k++ {
			results = append(results, trie.PrefixMatch{ID: m.ID + trie.KeywordID(k), ByteLength: m.ByteLength})
		}
	}
	return results
}

// WriteDict serializes the trie block followed by u64 dup_len and
// dup_len (KeywordID id, u64 count) pairs.
func (t *IndexTable) WriteDict(w io.Writer) error {
	if err := t.da.WriteDict(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(t.Dup))); err != nil {
		return err
	}
	// Deterministic order for a reproducible archive.
	ids := make([]KeywordID, 0, len(t.Dup))
	for id := range t.Dup {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := binary.Write(w, binary.LittleEndian, id); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(t.Dup[id])); err != nil {
			return err
		}
	}
	return nil
}

// ReadIndexTable deserializes an IndexTable written by WriteDict.
func ReadIndexTable(r io.Reader) (*IndexTable, error) {
	da, err := trie.ReadDict(r)
	if err != nil {
		return nil, fmt.Errorf("dict: read index trie: %w", err)
	}
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("dict: read dup length: %w", err)
	}
	dup := make(map[KeywordID]int, n)
	for i := uint64(0); i < n; i++ {
		var id KeywordID
		var count uint64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, fmt.Errorf("dict: read dup id[%d]: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("dict: read dup count[%d]: %w", i, err)
		}
		dup[id] = int(count)
	}
	return &IndexTable{da: da, Dup: dup}, nil
}
