package dict

import (
	"encoding/gob"
	"fmt"
	"io"
)

// CharCategoryDef maps code points to a character class and carries the
// per-class invoke/group flags that drive unknown-word expansion.
type CharCategoryDef struct {
	// Classes[classID] is the class name, e.g. "DEFAULT", "KANJI".
	Classes []string
	// Category[codePoint] is the class ID for that BMP code point.
	// Code points outside the table fall back to Category[0].
	Category []byte
	// Invoke[classID]: run unknown-word expansion even when a known
	// word matched at a position of this class.
	Invoke []bool
	// Group[classID]: bundle consecutive same-class characters into a
	// single unknown candidate.
	Group []bool
}

// CategoryOf returns the class ID for ch, falling back to Category[0]
// if ch is outside the table (or the table only covers the BMP and ch
// is a non-BMP code point).
func (c CharCategoryDef) CategoryOf(ch rune) byte {
	if ch < 0 || int(ch) >= len(c.Category) {
		return c.Category[0]
	}
	return c.Category[ch]
}

// InvokeFor reports whether class classID invokes unknown-word
// expansion even when a known word matched.
func (c CharCategoryDef) InvokeFor(classID byte) bool {
	return c.Invoke[classID]
}

// GroupFor reports whether class classID groups consecutive same-class
// characters into one unknown candidate.
func (c CharCategoryDef) GroupFor(classID byte) bool {
	return c.Group[classID]
}

type gobCharCategoryDef struct {
	Classes  []string
	Category []byte
	Invoke   []bool
	Group    []bool
}

// WriteDict gob-encodes the table (self-describing, round-trip only
// contract per spec).
func (c CharCategoryDef) WriteDict(w io.Writer) error {
	return gob.NewEncoder(w).Encode(gobCharCategoryDef{
		Classes:  c.Classes,
		Category: c.Category,
		Invoke:   c.Invoke,
		Group:    c.Group,
	})
}

// ReadCharCategoryDef decodes a CharCategoryDef written by WriteDict.
func ReadCharCategoryDef(r io.Reader) (CharCategoryDef, error) {
	var g gobCharCategoryDef
	if err := gob.NewDecoder(r).Decode(&g); err != nil {
		return CharCategoryDef{}, fmt.Errorf("dict: decode char category def: %w", err)
	}
	return CharCategoryDef{Classes: g.Classes, Category: g.Category, Invoke: g.Invoke, Group: g.Group}, nil
}
