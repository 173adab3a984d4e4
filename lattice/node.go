// Package lattice builds the word-segmentation DAG for an input string
// and runs the Viterbi decoder over it.
package lattice

import "github.com/nihongo/kanpyo/dict"

// KeywordID identifies a morpheme within whichever table its node class
// selects (Dict.Morphs for Known, Dict.Unk.Morphs for Unknown). 0 marks
// the BOS/EOS dummy nodes.
type KeywordID = dict.KeywordID

// Class distinguishes the three node variants without resorting to
// inheritance: Dummy (BOS/EOS), Known (matched a dictionary surface),
// Unknown (a character-category-driven candidate).
type Class int

const (
	Dummy Class = iota
	Known
	Unknown
)

func (c Class) String() string {
	switch c {
	case Dummy:
		return "Dummy"
	case Known:
		return "Known"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Word is the payload shared by Known and Unknown nodes.
type Word struct {
	ID      KeywordID
	BytePos int
	CharPos int
	Morph   dict.Morph
	Surface string
}

// Node is a lattice vertex. It is a tagged-variant sum type realized as
// an interface over three concrete, non-overlapping implementations
// rather than a class hierarchy: DummyNode, KnownNode, UnknownNode.
type Node interface {
	Class() Class
	ID() KeywordID
	BytePos() int
	CharPos() int
	Morph() dict.Morph
	Surface() string
}

// DummyNode represents BOS or EOS: zero cost, no surface.
type DummyNode struct {
	BytePosV int
	CharPosV int
}

func (DummyNode) Class() Class        { return Dummy }
func (DummyNode) ID() KeywordID       { return 0 }
func (n DummyNode) BytePos() int      { return n.BytePosV }
func (n DummyNode) CharPos() int      { return n.CharPosV }
func (DummyNode) Morph() dict.Morph   { return dict.Morph{} }
func (DummyNode) Surface() string     { return "" }

// KnownNode is a morpheme matched against the index table.
type KnownNode struct {
	W Word
}

func (KnownNode) Class() Class       { return Known }
func (n KnownNode) ID() KeywordID    { return n.W.ID }
func (n KnownNode) BytePos() int     { return n.W.BytePos }
func (n KnownNode) CharPos() int     { return n.W.CharPos }
func (n KnownNode) Morph() dict.Morph { return n.W.Morph }
func (n KnownNode) Surface() string  { return n.W.Surface }

// UnknownNode is a character-category-driven candidate with no
// dictionary match.
type UnknownNode struct {
	W Word
}

func (UnknownNode) Class() Class       { return Unknown }
func (n UnknownNode) ID() KeywordID    { return n.W.ID }
func (n UnknownNode) BytePos() int     { return n.W.BytePos }
func (n UnknownNode) CharPos() int     { return n.W.CharPos }
func (n UnknownNode) Morph() dict.Morph { return n.W.Morph }
func (n UnknownNode) Surface() string  { return n.W.Surface }
