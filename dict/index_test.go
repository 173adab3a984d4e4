package dict

import (
	"bytes"
	"testing"

	"github.com/nihongo/kanpyo/trie"
)

func TestIndexTableDuplicates(t *testing.T) {
	sorted := []string{"apple", "apple", "banana", "banana", "banana", "cherry"}
	idx, err := BuildIndexTable(sorted)
	if err != nil {
		t.Fatalf("BuildIndexTable: %v", err)
	}

	if got := idx.SearchCommonPrefixOf("apple"); len(got) != 2 {
		t.Errorf("apple matches = %d, want 2", len(got))
	}
	if got := idx.SearchCommonPrefixOf("banana"); len(got) != 3 {
		t.Errorf("banana matches = %d, want 3", len(got))
	}
	if got := idx.SearchCommonPrefixOf("cherry"); len(got) != 1 {
		t.Errorf("cherry matches = %d, want 1", len(got))
	}
}

func TestIndexTableCommonPrefix(t *testing.T) {
	sorted := []string{"東京", "東京大学", "東京大学大学院"}
	idx, err := BuildIndexTable(sorted)
	if err != nil {
		t.Fatalf("BuildIndexTable: %v", err)
	}
	got := idx.SearchCommonPrefixOf("東京大学大学院情報学")
	want := []trie.PrefixMatch{{ID: 1, ByteLength: 6}, {ID: 2, ByteLength: 12}, {ID: 3, ByteLength: 21}}
	if len(got) != len(want) {
		t.Fatalf("matches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matches[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIndexTableRoundTrip(t *testing.T) {
	idx, err := BuildIndexTable([]string{"apple", "apple", "banana"})
	if err != nil {
		t.Fatalf("BuildIndexTable: %v", err)
	}
	var buf bytes.Buffer
	if err := idx.WriteDict(&buf); err != nil {
		t.Fatalf("WriteDict: %v", err)
	}
	got, err := ReadIndexTable(&buf)
	if err != nil {
		t.Fatalf("ReadIndexTable: %v", err)
	}
	if len(got.SearchCommonPrefixOf("apple")) != 2 {
		t.Errorf("round-tripped apple matches = %d, want 2", len(got.SearchCommonPrefixOf("apple")))
	}
}
