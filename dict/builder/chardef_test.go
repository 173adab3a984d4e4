package builder

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
)

func TestParseCharDef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "char.def")
	content := "" +
		"DEFAULT 0 1 0\n" +
		"HIRAGANA 1 1 2\n" +
		"# a comment line\n" +
		"0x0000..0x007F DEFAULT\n" +
		"0x3042 HIRAGANA\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ParseCharDef(path, encoding.Nop)
	if err != nil {
		t.Fatalf("ParseCharDef: %v", err)
	}
	if len(got.Classes) != 2 || got.Classes[0] != "DEFAULT" || got.Classes[1] != "HIRAGANA" {
		t.Fatalf("Classes = %v, want [DEFAULT HIRAGANA]", got.Classes)
	}
	if got.Invoke[0] || !got.Invoke[1] {
		t.Errorf("Invoke = %v, want [false true]", got.Invoke)
	}
	if !got.Group[0] || !got.Group[1] {
		t.Errorf("Group = %v, want [true true]", got.Group)
	}
	if got.Category[0x41] != 0 {
		t.Errorf("Category['A'] = %d, want 0 (DEFAULT)", got.Category[0x41])
	}
	if got.Category[0x3042] != 1 {
		t.Errorf("Category[あ] = %d, want 1 (HIRAGANA)", got.Category[0x3042])
	}
}

func TestParseCharDefInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "char.def")
	if err := os.WriteFile(path, []byte("not a valid line at all\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ParseCharDef(path, encoding.Nop); err == nil {
		t.Fatal("expected error for invalid char.def line")
	}
}
