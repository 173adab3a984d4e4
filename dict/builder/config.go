// Package builder compiles a Dict from the canonical IPA-dic source
// layout: a directory of CSV lexicon files plus matrix.def, char.def,
// and unk.def.
package builder

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Config points the builder at a source tree and the encoding its files
// are written in.
type Config struct {
	RootPath string
	Encoding string // "euc-jp" or "utf-8"

	MatrixDefFileName string
	CharDefFileName   string
	UnkDefFileName    string
}

// NewConfig returns a Config with the standard IPA-dic file names.
func NewConfig(rootPath, enc string) Config {
	return Config{
		RootPath:          rootPath,
		Encoding:          enc,
		MatrixDefFileName: "matrix.def",
		CharDefFileName:   "char.def",
		UnkDefFileName:    "unk.def",
	}
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "euc-jp":
		return japanese.EUCJP, nil
	case "utf-8", "":
		return encoding.Nop, nil
	default:
		return nil, fmt.Errorf("builder: unsupported encoding %q", name)
	}
}
