package dict

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Entry names within the archive, per the container format.
const (
	entryMorph        = "morph.dict"
	entryMorphFeature = "morph_feature.dict"
	entryConnection   = "connection.dict"
	entryIndex        = "index.dict"
	entryCharDef      = "chardef.dict"
	entryUnk          = "unk.dict"
)

// ErrEntryMissing is returned when a required archive entry is absent.
var ErrEntryMissing = errors.New("dict: archive entry missing")

// Dict is the compiled dictionary: everything the lattice builder and
// Viterbi decoder need to analyze text.
type Dict struct {
	Morphs          Morphs
	MorphFeatures   FeatureTable
	Connection      ConnectionTable
	Index           *IndexTable
	CharCategoryDef CharCategoryDef
	Unk             *UnkDict

	// mmapFile keeps the backing mapping alive for the lifetime of the
	// Dict when it was loaded via Load. Nil for dictionaries built
	// in-process (e.g. by the builder or in tests).
	mmapFile mmap.MMap
}

// New assembles a Dict from its six components. Used by the builder and
// by tests that construct a dictionary directly in memory.
func New(morphs Morphs, features FeatureTable, connection ConnectionTable, index *IndexTable, charDef CharCategoryDef, unk *UnkDict) *Dict {
	return &Dict{
		Morphs:          morphs,
		MorphFeatures:   features,
		Connection:      connection,
		Index:           index,
		CharCategoryDef: charDef,
		Unk:             unk,
	}
}

// Build writes the Dict as a ZIP archive containing the six named
// entries, each DEFLATE-compressed with permissions 0o644.
func (d *Dict) Build(w io.Writer) error {
	zw := zip.NewWriter(w)

	write := func(name string, fn func(io.Writer) error) error {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		header.SetMode(0o644)
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("dict: create entry %s: %w", name, err)
		}
		if err := fn(entry); err != nil {
			return fmt.Errorf("dict: write entry %s: %w", name, err)
		}
		return nil
	}

	if err := write(entryMorph, d.Morphs.WriteDict); err != nil {
		return err
	}
	if err := write(entryMorphFeature, d.MorphFeatures.WriteDict); err != nil {
		return err
	}
	if err := write(entryConnection, d.Connection.WriteDict); err != nil {
		return err
	}
	if err := write(entryIndex, d.Index.WriteDict); err != nil {
		return err
	}
	if err := write(entryCharDef, d.CharCategoryDef.WriteDict); err != nil {
		return err
	}
	if err := write(entryUnk, d.Unk.WriteDict); err != nil {
		return err
	}

	return zw.Close()
}

// LoadFrom reads a Dict from an already-open random-access reader (e.g.
// an in-memory buffer in tests). The caller owns the lifetime of r.
func LoadFrom(r io.ReaderAt, size int64) (*Dict, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("dict: open archive: %w", err)
	}

	d := &Dict{}

	if err := readEntry(zr, entryMorph, func(r io.Reader) (err error) {
		d.Morphs, err = ReadMorphs(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readEntry(zr, entryMorphFeature, func(r io.Reader) (err error) {
		d.MorphFeatures, err = ReadFeatureTable(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readEntry(zr, entryConnection, func(r io.Reader) (err error) {
		d.Connection, err = ReadConnectionTable(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readEntry(zr, entryIndex, func(r io.Reader) (err error) {
		d.Index, err = ReadIndexTable(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readEntry(zr, entryCharDef, func(r io.Reader) (err error) {
		d.CharCategoryDef, err = ReadCharCategoryDef(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readEntry(zr, entryUnk, func(r io.Reader) (err error) {
		d.Unk, err = ReadUnkDict(r)
		return err
	}); err != nil {
		return nil, err
	}

	return d, nil
}

func readEntry(zr *zip.Reader, name string, fn func(io.Reader) error) error {
	f, err := zr.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %s (%v)", ErrEntryMissing, name, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("dict: corrupt entry %s: %w", name, err)
	}
	return nil
}

// Load mmaps path and loads the archive directly out of the mapped
// memory: the ZIP central directory and local headers are read without
// copying, and only the (deflated) entry payloads are inflated into
// owned memory. The mapping is kept alive on the returned Dict; call
// Close when done.
func Load(path string) (*Dict, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("dict: stat %s: %w", path, err)
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("dict: mmap %s: %w", path, err)
	}

	d, err := LoadFrom(bytes.NewReader(mapped), info.Size())
	if err != nil {
		_ = mapped.Unmap()
		return nil, err
	}
	d.mmapFile = mapped
	return d, nil
}

// Close releases the memory mapping backing a Dict loaded via Load. It
// is a no-op for dictionaries built or loaded in-process.
func (d *Dict) Close() error {
	if d.mmapFile == nil {
		return nil
	}
	err := d.mmapFile.Unmap()
	d.mmapFile = nil
	return err
}
