package builder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
)

// UnkDefRecord is one parsed unk.def row: a character category name
// instead of a surface form.
type UnkDefRecord struct {
	Category string
	LeftID   int
	RightID  int
	Cost     int64
	Features []string
}

// ParseUnkDef parses unk.def, which shares unk.def's CSV shape with the
// lexicon CSVs but keys on character category instead of surface.
func ParseUnkDef(path string, enc encoding.Encoding) ([]UnkDefRecord, error) {
	decoded, err := readDecoded(path, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("builder: parse csv %s: %w", path, err)
	}

	records := make([]UnkDefRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("builder: %s line %d: need at least 4 fields, got %d", path, i+1, len(row))
		}
		left, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: left_id: %w", path, i+1, err)
		}
		right, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: right_id: %w", path, i+1, err)
		}
		cost, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: cost: %w", path, i+1, err)
		}
		features := make([]string, len(row)-4)
		copy(features, row[4:])
		records = append(records, UnkDefRecord{Category: row[0], LeftID: left, RightID: right, Cost: cost, Features: features})
	}
	return records, nil
}
