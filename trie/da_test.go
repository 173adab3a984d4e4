package trie

import (
	"bytes"
	"sort"
	"testing"
)

func TestBuildAndSearch(t *testing.T) {
	keywords := []string{
		"a", "ab", "abc", "abcd", "abcde", "abcdef",
		"abcdefg", "abcdefgh", "abcdefghi", "abcdefghij",
	}
	da, err := Build(keywords)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i, k := range keywords {
		got, ok := da.Search(k)
		if !ok || got != KeywordID(i+1) {
			t.Errorf("Search(%q) = %v, %v; want %v, true", k, got, ok, i+1)
		}
	}

	for _, k := range []string{"", "b", "abcdeh", "abcdefghijj"} {
		if _, ok := da.Search(k); ok {
			t.Errorf("Search(%q) = found, want not found", k)
		}
	}
}

func TestSearchCommonPrefix(t *testing.T) {
	keywords := []string{
		"早稲田",
		"早稲田大学",
		"東京",
		"東京大学",
		"東京大学大学院",
		"東京大学大学院情報理工学研究科",
		"東京大学大学院情報理工学研究科創造情報学専攻",
		"東京工業大学",
	}
	da, err := Build(keywords)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := da.SearchCommonPrefixOf("東京大学大学院情報理工学研究科創造情報学専攻")
	want := []PrefixMatch{
		{3, 6},
		{4, 12},
		{5, 21},
		{6, 45},
		{7, 66},
	}
	if !equalMatches(got, want) {
		t.Errorf("SearchCommonPrefixOf = %v, want %v", got, want)
	}

	got = da.SearchCommonPrefixOf("早稲田大学")
	want = []PrefixMatch{{1, 9}, {2, 15}}
	if !equalMatches(got, want) {
		t.Errorf("SearchCommonPrefixOf = %v, want %v", got, want)
	}

	got = da.SearchCommonPrefixOf("大学")
	if len(got) != 0 {
		t.Errorf("SearchCommonPrefixOf(大学) = %v, want empty", got)
	}
}

func TestBuildAndSearchMultibyte(t *testing.T) {
	keywords := []string{"12345", "2345", "１２３", "abc", "ABCD", "あいう", "Ａ"}
	sort.Strings(keywords)

	da, err := Build(keywords)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i, k := range keywords {
		got, ok := da.Search(k)
		if !ok || got != KeywordID(i+1) {
			t.Errorf("Search(%q) = %v, %v; want %v, true", k, got, ok, i+1)
		}
	}

	for _, k := range []string{"", "b", "ab", "abcdeh", "abcdefghijj", "あい", "あいうえお"} {
		if _, ok := da.Search(k); ok {
			t.Errorf("Search(%q) = found, want not found", k)
		}
	}
}

func TestEmbeddedTerminatorRejected(t *testing.T) {
	_, err := Build([]string{"a\x00b"})
	if err != ErrKeyContainsTerminator {
		t.Fatalf("Build with embedded NUL = %v, want ErrKeyContainsTerminator", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	keywords := []string{"apple", "banana", "cherry", "date"}
	da, err := Build(keywords)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := da.WriteDict(&buf); err != nil {
		t.Fatalf("WriteDict: %v", err)
	}

	got, err := ReadDict(&buf)
	if err != nil {
		t.Fatalf("ReadDict: %v", err)
	}

	for i, k := range keywords {
		id, ok := got.Search(k)
		if !ok || id != KeywordID(i+1) {
			t.Errorf("round-tripped Search(%q) = %v, %v; want %v, true", k, id, ok, i+1)
		}
	}
}

func equalMatches(a, b []PrefixMatch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
