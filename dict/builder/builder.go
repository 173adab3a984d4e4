package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nihongo/kanpyo/dict"
)

func collectCSVFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("builder: read dir %s: %w", root, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".csv" {
			continue
		}
		files = append(files, filepath.Join(root, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func compareStrings(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Surface != b.Surface {
			return a.Surface < b.Surface
		}
		if a.LeftID != b.LeftID {
			return a.LeftID < b.LeftID
		}
		if a.RightID != b.RightID {
			return a.RightID < b.RightID
		}
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		return compareStrings(a.Features, b.Features) < 0
	})
}

// Build compiles a Dict from cfg.RootPath's CSV lexicon files plus its
// matrix.def, char.def, and unk.def.
func Build(cfg Config) (*dict.Dict, error) {
	enc, err := resolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	csvFiles, err := collectCSVFiles(cfg.RootPath)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, path := range csvFiles {
		parsed, err := ParseCSV(path, enc)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}
	sortRecords(records)

	morphs := make(dict.Morphs, 0, len(records))
	sortedKeywords := make([]string, 0, len(records))
	featureBuilder := dict.NewFeatureTableBuilder()
	for i, rec := range records {
		cost, err := dict.CheckCost(rec.Cost)
		if err != nil {
			return nil, fmt.Errorf("builder: record %d (%q): %w", i, rec.Surface, err)
		}
		morphs = append(morphs, dict.Morph{LeftID: int16(rec.LeftID), RightID: int16(rec.RightID), Cost: cost})
		sortedKeywords = append(sortedKeywords, rec.Surface)
		if err := featureBuilder.Push(rec.Features); err != nil {
			return nil, fmt.Errorf("builder: record %d (%q): %w", i, rec.Surface, err)
		}
	}
	morphFeatures := featureBuilder.Build()

	matrixPath := filepath.Join(cfg.RootPath, cfg.MatrixDefFileName)
	matrixDef, err := ParseMatrixDef(matrixPath)
	if err != nil {
		return nil, err
	}
	connection := dict.NewConnectionTable(matrixDef.Rows, matrixDef.Cols, matrixDef.Data)

	index, err := dict.BuildIndexTable(sortedKeywords)
	if err != nil {
		return nil, fmt.Errorf("builder: build index: %w", err)
	}

	charDefPath := filepath.Join(cfg.RootPath, cfg.CharDefFileName)
	charClassDef, err := ParseCharDef(charDefPath, enc)
	if err != nil {
		return nil, err
	}
	charCategoryDef := dict.CharCategoryDef{
		Classes:  charClassDef.Classes,
		Category: charClassDef.Category,
		Invoke:   charClassDef.Invoke,
		Group:    charClassDef.Group,
	}

	unkDefPath := filepath.Join(cfg.RootPath, cfg.UnkDefFileName)
	unkRecords, err := ParseUnkDef(unkDefPath, enc)
	if err != nil {
		return nil, err
	}
	unkRecordsForDict := make([]dict.UnkRecord, len(unkRecords))
	for i, r := range unkRecords {
		unkRecordsForDict[i] = dict.UnkRecord{Category: r.Category, LeftID: r.LeftID, RightID: r.RightID, Cost: r.Cost, Features: r.Features}
	}
	unkDict, err := dict.BuildUnkDict(unkRecordsForDict, charClassDef.Classes)
	if err != nil {
		return nil, fmt.Errorf("builder: build unk dict: %w", err)
	}

	return dict.New(morphs, morphFeatures, connection, index, charCategoryDef, unkDict), nil
}
